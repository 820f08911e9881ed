package ml

import (
	"fmt"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// MLPLayer is one dense layer of a fitted multilayer perceptron.
// Weights[i][j] connects input j to unit i.
type MLPLayer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

// MLPModel is the continuous backend: a fitted feed-forward network with
// ReLU hidden layers and a single sigmoid output unit. Unlike the six
// discrete kinds it returns its raw probability, which is persisted verbatim.
type MLPModel struct {
	inputDim int
	layers   []MLPLayer
}

// NewMLPModel validates layer shapes end to end.
func NewMLPModel(layers []MLPLayer) (*MLPModel, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("mlp: no layers")
	}
	prev := -1
	for li, layer := range layers {
		if len(layer.Weights) == 0 || len(layer.Weights) != len(layer.Biases) {
			return nil, fmt.Errorf("mlp: layer %d has %d weight rows and %d biases",
				li, len(layer.Weights), len(layer.Biases))
		}
		width := len(layer.Weights[0])
		for ui, row := range layer.Weights {
			if len(row) != width {
				return nil, fmt.Errorf("mlp: layer %d unit %d has ragged width", li, ui)
			}
		}
		if prev >= 0 && width != prev {
			return nil, fmt.Errorf("mlp: layer %d expects %d inputs, previous layer emits %d", li, width, prev)
		}
		prev = len(layer.Weights)
	}
	if out := len(layers[len(layers)-1].Weights); out != 1 {
		return nil, fmt.Errorf("mlp: output layer has %d units, want 1", out)
	}
	return &MLPModel{inputDim: len(layers[0].Weights[0]), layers: layers}, nil
}

// Predict runs the forward pass and returns the sigmoid output in [0,1].
func (m *MLPModel) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != m.inputDim {
		return 0, fmt.Errorf("mlp: vector length %d, want %d", len(vector), m.inputDim)
	}
	activations := []float64(vector)
	for li, layer := range m.layers {
		next := make([]float64, len(layer.Weights))
		for ui, row := range layer.Weights {
			z := layer.Biases[ui]
			for j, w := range row {
				z += w * activations[j]
			}
			if li < len(m.layers)-1 && z < 0 {
				z = 0 // ReLU on hidden layers
			}
			next[ui] = z
		}
		activations = next
	}
	return sigmoid(activations[0]), nil
}
