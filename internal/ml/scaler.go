package ml

import (
	"fmt"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// StandardScaler is a fitted per-disease standardization transform:
// out[i] = (in[i] - Mean[i]) / Scale[i]. The fitted parameters come from an
// artifact loaded at startup and are never mutated afterwards.
type StandardScaler struct {
	disease entities.Disease
	mean    []float64
	scale   []float64
}

// NewStandardScaler builds a scaler from fitted parameters.
func NewStandardScaler(disease entities.Disease, mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler for %q: mean length %d and scale length %d must match and be non-zero",
			string(disease), len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler for %q: zero scale at position %d", string(disease), i)
		}
	}
	return &StandardScaler{disease: disease, mean: mean, scale: scale}, nil
}

// Dim returns the vector length the scaler was fitted on.
func (s *StandardScaler) Dim() int {
	return len(s.mean)
}

// Transform returns a standardized copy of the vector. The input is never
// modified; a shape mismatch fails with ScalingError.
func (s *StandardScaler) Transform(vector entities.FeatureVector) (entities.FeatureVector, error) {
	if len(vector) != len(s.mean) {
		return nil, &ScalingError{Disease: s.disease, Got: len(vector), Want: len(s.mean)}
	}
	out := make(entities.FeatureVector, len(vector))
	for i, v := range vector {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
