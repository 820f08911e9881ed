package ml

import (
	"fmt"
	"math"
	"sort"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// Prototype is one labelled training vector retained by a fitted KNN model.
type Prototype struct {
	Features []float64 `json:"features"`
	Label    int       `json:"label"`
}

// KNNModel classifies by majority vote among the K nearest prototypes under
// Euclidean distance. Ties break toward the positive class, matching the
// fitted model's decision rule.
type KNNModel struct {
	k          int
	dim        int
	prototypes []Prototype
}

// NewKNNModel builds a KNN predictor from fitted prototypes.
func NewKNNModel(k int, prototypes []Prototype) (*KNNModel, error) {
	if k <= 0 {
		return nil, fmt.Errorf("knn: k must be positive, got %d", k)
	}
	if len(prototypes) < k {
		return nil, fmt.Errorf("knn: %d prototypes cannot serve k=%d", len(prototypes), k)
	}
	dim := len(prototypes[0].Features)
	for i, p := range prototypes {
		if len(p.Features) != dim {
			return nil, fmt.Errorf("knn: prototype %d has %d features, want %d", i, len(p.Features), dim)
		}
		if p.Label != 0 && p.Label != 1 {
			return nil, fmt.Errorf("knn: prototype %d has label %d outside {0,1}", i, p.Label)
		}
	}
	return &KNNModel{k: k, dim: dim, prototypes: prototypes}, nil
}

// Predict returns the majority label of the k nearest prototypes as 0.0/1.0.
func (m *KNNModel) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != m.dim {
		return 0, fmt.Errorf("knn: vector length %d, want %d", len(vector), m.dim)
	}

	type neighbor struct {
		dist  float64
		label int
	}
	neighbors := make([]neighbor, len(m.prototypes))
	for i, p := range m.prototypes {
		var sum float64
		for j, f := range p.Features {
			d := vector[j] - f
			sum += d * d
		}
		neighbors[i] = neighbor{dist: math.Sqrt(sum), label: p.Label}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].dist < neighbors[j].dist })

	votes := 0
	for _, n := range neighbors[:m.k] {
		votes += n.label
	}
	if votes*2 >= m.k {
		return 1.0, nil
	}
	return 0.0, nil
}
