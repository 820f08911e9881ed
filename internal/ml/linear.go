package ml

import (
	"fmt"
	"math"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

func dot(weights []float64, vector entities.FeatureVector) float64 {
	var sum float64
	for i, w := range weights {
		sum += w * vector[i]
	}
	return sum
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// LogisticModel is a fitted logistic regression classifier. It applies the
// 0.5 decision threshold to its sigmoid output and emits a hard 0/1 decision;
// the probability itself is not exposed.
type LogisticModel struct {
	weights []float64
	bias    float64
}

// NewLogisticModel builds a logistic classifier from fitted coefficients.
func NewLogisticModel(weights []float64, bias float64) (*LogisticModel, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("logistic model: empty weights")
	}
	return &LogisticModel{weights: weights, bias: bias}, nil
}

// Predict returns the thresholded class decision as 0.0/1.0.
func (m *LogisticModel) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != len(m.weights) {
		return 0, fmt.Errorf("logistic model: vector length %d, want %d", len(vector), len(m.weights))
	}
	if sigmoid(dot(m.weights, vector)+m.bias) >= 0.5 {
		return 1.0, nil
	}
	return 0.0, nil
}

// SVMModel is a fitted linear support-vector classifier deciding by the sign
// of its margin.
type SVMModel struct {
	weights []float64
	bias    float64
}

// NewSVMModel builds an SVM classifier from fitted coefficients.
func NewSVMModel(weights []float64, bias float64) (*SVMModel, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("svm model: empty weights")
	}
	return &SVMModel{weights: weights, bias: bias}, nil
}

// Predict returns 1.0 for a non-negative margin, 0.0 otherwise.
func (m *SVMModel) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != len(m.weights) {
		return 0, fmt.Errorf("svm model: vector length %d, want %d", len(vector), len(m.weights))
	}
	if dot(m.weights, vector)+m.bias >= 0 {
		return 1.0, nil
	}
	return 0.0, nil
}
