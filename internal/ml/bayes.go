package ml

import (
	"fmt"
	"math"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// GaussianClass holds the fitted per-feature statistics for one class of a
// Gaussian naive Bayes model.
type GaussianClass struct {
	Prior    float64   `json:"prior"`
	Mean     []float64 `json:"mean"`
	Variance []float64 `json:"variance"`
}

// NaiveBayesModel is a fitted two-class Gaussian naive Bayes classifier.
// Classes[0] is the negative class, Classes[1] the positive class.
type NaiveBayesModel struct {
	dim     int
	classes [2]GaussianClass
}

// NewNaiveBayesModel validates the fitted class statistics.
func NewNaiveBayesModel(negative, positive GaussianClass) (*NaiveBayesModel, error) {
	dim := len(negative.Mean)
	for i, c := range []GaussianClass{negative, positive} {
		if c.Prior <= 0 || c.Prior >= 1 {
			return nil, fmt.Errorf("naive bayes: class %d prior %v outside (0,1)", i, c.Prior)
		}
		if len(c.Mean) != dim || len(c.Variance) != dim || dim == 0 {
			return nil, fmt.Errorf("naive bayes: class %d has inconsistent dimensions", i)
		}
		for j, v := range c.Variance {
			if v <= 0 {
				return nil, fmt.Errorf("naive bayes: class %d has non-positive variance at %d", i, j)
			}
		}
	}
	return &NaiveBayesModel{dim: dim, classes: [2]GaussianClass{negative, positive}}, nil
}

// Predict compares log-posteriors and returns the winning class as 0.0/1.0.
func (m *NaiveBayesModel) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != m.dim {
		return 0, fmt.Errorf("naive bayes: vector length %d, want %d", len(vector), m.dim)
	}
	if m.logPosterior(m.classes[1], vector) >= m.logPosterior(m.classes[0], vector) {
		return 1.0, nil
	}
	return 0.0, nil
}

func (m *NaiveBayesModel) logPosterior(c GaussianClass, vector entities.FeatureVector) float64 {
	sum := math.Log(c.Prior)
	for i, x := range vector {
		d := x - c.Mean[i]
		sum += -0.5*math.Log(2*math.Pi*c.Variance[i]) - d*d/(2*c.Variance[i])
	}
	return sum
}
