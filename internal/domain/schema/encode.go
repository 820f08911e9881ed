package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// MissingFeatureError reports a schema feature absent or empty in the input.
type MissingFeatureError struct {
	Feature string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing value for feature %q", e.Feature)
}

// InvalidValueError reports a value that is neither a recognized categorical
// label nor a parseable number for its feature.
type InvalidValueError struct {
	Feature string
	Value   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for feature %q", e.Value, e.Feature)
}

// Encode converts raw name→string values into an ordered feature vector.
//
// Features are visited in schema order. Categorical values are looked up in
// the feature's label domain; continuous values are parsed as finite real
// numbers — ParseFloat accepts "NaN" and "Inf" spellings but no such value is
// a clinical measurement, so they are invalid.
// The resulting vector's length equals the schema's feature count and its
// positions are 1:1 with schema order. Encode is a pure transform: on any
// failure no partial vector is returned.
func Encode(disease entities.Disease, raw map[string]string) (entities.FeatureVector, error) {
	s, err := Lookup(disease)
	if err != nil {
		return nil, err
	}

	vector := make(entities.FeatureVector, 0, len(s.Features))
	for _, feature := range s.Features {
		value, ok := raw[feature]
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			return nil, &MissingFeatureError{Feature: feature}
		}

		if domain, categorical := s.Categorical[feature]; categorical {
			code, known := domain[value]
			if !known {
				return nil, &InvalidValueError{Feature: feature, Value: value}
			}
			vector = append(vector, float64(code))
			continue
		}

		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, &InvalidValueError{Feature: feature, Value: value}
		}
		vector = append(vector, parsed)
	}

	return vector, nil
}

// FeatureMap pairs a vector back with its schema's feature names. The
// recommendation generator consumes named features rather than positions.
func FeatureMap(disease entities.Disease, vector entities.FeatureVector) (map[string]float64, error) {
	s, err := Lookup(disease)
	if err != nil {
		return nil, err
	}
	if len(vector) != len(s.Features) {
		return nil, fmt.Errorf("vector length %d does not match schema %q length %d",
			len(vector), string(disease), len(s.Features))
	}
	out := make(map[string]float64, len(vector))
	for i, feature := range s.Features {
		out[feature] = vector[i]
	}
	return out, nil
}
