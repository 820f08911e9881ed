package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/schema"
)

func writeArtifact(t *testing.T, dir, name string, doc any) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// writeArtifactTree lays down a complete, loadable artifact tree for every
// disease, with trivially fitted parameters sized to each schema.
func writeArtifactTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for _, disease := range entities.Diseases() {
		s, err := schema.Lookup(disease)
		require.NoError(t, err)
		dim := s.FeatureCount()

		dir := filepath.Join(root, strings.ReplaceAll(string(disease), "-", "_"))
		require.NoError(t, os.MkdirAll(dir, 0o755))

		writeArtifact(t, dir, "scaler.json", scalerArtifact{
			Mean: make([]float64, dim), Scale: ones(dim),
		})
		writeArtifact(t, dir, "knn.json", knnArtifact{
			K: 1,
			Prototypes: []Prototype{
				{Features: make([]float64, dim), Label: 0},
				{Features: ones(dim), Label: 1},
			},
		})
		writeArtifact(t, dir, "dt.json", treeArtifact{
			Nodes: []TreeNode{
				{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
				{Leaf: true, Value: 0},
				{Leaf: true, Value: 1},
			},
		})
		writeArtifact(t, dir, "rf.json", forestArtifact{
			Trees: [][]TreeNode{{{Leaf: true, Value: 1}}},
		})
		writeArtifact(t, dir, "lr.json", linearArtifact{Weights: ones(dim)})
		writeArtifact(t, dir, "svm.json", linearArtifact{Weights: ones(dim), Bias: -0.5})
		writeArtifact(t, dir, "nb.json", bayesArtifact{
			Negative: GaussianClass{Prior: 0.5, Mean: make([]float64, dim), Variance: ones(dim)},
			Positive: GaussianClass{Prior: 0.5, Mean: ones(dim), Variance: ones(dim)},
		})
		writeArtifact(t, dir, "dl.json", mlpArtifact{
			Layers: []MLPLayer{{Weights: [][]float64{ones(dim)}, Biases: []float64{0}}},
		})
	}

	return root
}

func TestLoadRegistry_LoadsEveryDiseaseAndKind(t *testing.T) {
	reg, err := LoadRegistry(writeArtifactTree(t))
	require.NoError(t, err)

	for _, disease := range entities.Diseases() {
		s, err := schema.Lookup(disease)
		require.NoError(t, err)
		vector := make(entities.FeatureVector, s.FeatureCount())

		scaled, err := reg.Scale(disease, vector)
		require.NoError(t, err, "scale %s", disease)

		for _, kind := range entities.ModelKinds() {
			score, err := reg.Predict(disease, kind, scaled)
			require.NoError(t, err, "%s/%s", disease, kind)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			if !kind.Continuous() {
				assert.Contains(t, []float64{0, 1}, score, "%s/%s must be discrete", disease, kind)
			}
		}
	}
}

func TestLoadRegistry_MissingArtifactFails(t *testing.T) {
	root := writeArtifactTree(t)
	require.NoError(t, os.Remove(filepath.Join(root, "diabetes", "svm.json")))

	_, err := LoadRegistry(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "svm.json")
}

func TestLoadRegistry_CorruptArtifactFails(t *testing.T) {
	root := writeArtifactTree(t)
	path := filepath.Join(root, "lung_cancer", "nb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadRegistry(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nb.json")
}

func TestLoadRegistry_ScalerDimensionMismatchFails(t *testing.T) {
	root := writeArtifactTree(t)
	dir := filepath.Join(root, "heart_attack")
	writeArtifact(t, dir, "scaler.json", scalerArtifact{Mean: []float64{0}, Scale: []float64{1}})

	_, err := LoadRegistry(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scaler.json")
}
