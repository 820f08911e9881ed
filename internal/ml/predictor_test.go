package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

func TestStandardScaler_Transform(t *testing.T) {
	scaler, err := NewStandardScaler(entities.DiseaseDiabetes,
		[]float64{10, 20}, []float64{2, 5})
	require.NoError(t, err)

	out, err := scaler.Transform(entities.FeatureVector{12, 10})
	require.NoError(t, err)
	assert.Equal(t, entities.FeatureVector{1, -2}, out)
}

func TestStandardScaler_ShapeMismatch(t *testing.T) {
	scaler, err := NewStandardScaler(entities.DiseaseDiabetes,
		[]float64{0, 0, 0}, []float64{1, 1, 1})
	require.NoError(t, err)

	_, err = scaler.Transform(entities.FeatureVector{1, 2})
	var scalingErr *ScalingError
	require.ErrorAs(t, err, &scalingErr)
	assert.Equal(t, 2, scalingErr.Got)
	assert.Equal(t, 3, scalingErr.Want)
}

func TestStandardScaler_RejectsZeroScale(t *testing.T) {
	_, err := NewStandardScaler(entities.DiseaseDiabetes, []float64{0}, []float64{0})
	assert.Error(t, err)
}

func TestKNNModel_MajorityVote(t *testing.T) {
	model, err := NewKNNModel(3, []Prototype{
		{Features: []float64{0, 0}, Label: 0},
		{Features: []float64{0, 1}, Label: 0},
		{Features: []float64{5, 5}, Label: 1},
		{Features: []float64{5, 6}, Label: 1},
		{Features: []float64{6, 5}, Label: 1},
	})
	require.NoError(t, err)

	score, err := model.Predict(entities.FeatureVector{5.2, 5.2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	score, err = model.Predict(entities.FeatureVector{0.1, 0.4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestKNNModel_ValidatesConstruction(t *testing.T) {
	_, err := NewKNNModel(0, []Prototype{{Features: []float64{1}, Label: 0}})
	assert.Error(t, err)

	_, err = NewKNNModel(2, []Prototype{{Features: []float64{1}, Label: 0}})
	assert.Error(t, err, "fewer prototypes than k")

	_, err = NewKNNModel(1, []Prototype{{Features: []float64{1}, Label: 7}})
	assert.Error(t, err, "label outside {0,1}")
}

func TestDecisionTree_Predict(t *testing.T) {
	// if x[0] <= 2 then 0 else (if x[1] <= 1 then 1 else 0)
	tree, err := NewDecisionTree(2, []TreeNode{
		{Feature: 0, Threshold: 2, Left: 1, Right: 2},
		{Leaf: true, Value: 0},
		{Feature: 1, Threshold: 1, Left: 3, Right: 4},
		{Leaf: true, Value: 1},
		{Leaf: true, Value: 0},
	})
	require.NoError(t, err)

	score, err := tree.Predict(entities.FeatureVector{1, 9})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = tree.Predict(entities.FeatureVector{3, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	score, err = tree.Predict(entities.FeatureVector{3, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestDecisionTree_RejectsBadNodes(t *testing.T) {
	_, err := NewDecisionTree(2, nil)
	assert.Error(t, err, "empty node array")

	_, err = NewDecisionTree(2, []TreeNode{
		{Feature: 5, Threshold: 1, Left: 1, Right: 1},
		{Leaf: true, Value: 0},
	})
	assert.Error(t, err, "feature out of range")

	_, err = NewDecisionTree(2, []TreeNode{
		{Feature: 0, Threshold: 1, Left: 0, Right: 1},
		{Leaf: true, Value: 0},
	})
	assert.Error(t, err, "child pointing backwards")
}

func TestRandomForest_MajorityVote(t *testing.T) {
	always := func(v int) []TreeNode { return []TreeNode{{Leaf: true, Value: v}} }

	forest, err := NewRandomForest(1, [][]TreeNode{always(1), always(1), always(0)})
	require.NoError(t, err)

	score, err := forest.Predict(entities.FeatureVector{0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	forest, err = NewRandomForest(1, [][]TreeNode{always(0), always(0), always(1)})
	require.NoError(t, err)

	score, err = forest.Predict(entities.FeatureVector{0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestLogisticModel_ThresholdsAtHalf(t *testing.T) {
	model, err := NewLogisticModel([]float64{1}, 0)
	require.NoError(t, err)

	score, err := model.Predict(entities.FeatureVector{2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score, "sigmoid(2) > 0.5")

	score, err = model.Predict(entities.FeatureVector{-2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score, "sigmoid(-2) < 0.5")

	score, err = model.Predict(entities.FeatureVector{0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score, "sigmoid(0) == 0.5 decides positive")
}

func TestSVMModel_MarginSign(t *testing.T) {
	model, err := NewSVMModel([]float64{1, -1}, -0.5)
	require.NoError(t, err)

	score, err := model.Predict(entities.FeatureVector{3, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	score, err = model.Predict(entities.FeatureVector{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestNaiveBayesModel_PicksLikelierClass(t *testing.T) {
	model, err := NewNaiveBayesModel(
		GaussianClass{Prior: 0.5, Mean: []float64{0}, Variance: []float64{1}},
		GaussianClass{Prior: 0.5, Mean: []float64{10}, Variance: []float64{1}},
	)
	require.NoError(t, err)

	score, err := model.Predict(entities.FeatureVector{9})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	score, err = model.Predict(entities.FeatureVector{1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestNaiveBayesModel_ValidatesStatistics(t *testing.T) {
	_, err := NewNaiveBayesModel(
		GaussianClass{Prior: 0.5, Mean: []float64{0}, Variance: []float64{0}},
		GaussianClass{Prior: 0.5, Mean: []float64{1}, Variance: []float64{1}},
	)
	assert.Error(t, err, "non-positive variance")

	_, err = NewNaiveBayesModel(
		GaussianClass{Prior: 1.5, Mean: []float64{0}, Variance: []float64{1}},
		GaussianClass{Prior: 0.5, Mean: []float64{1}, Variance: []float64{1}},
	)
	assert.Error(t, err, "prior outside (0,1)")
}

func TestMLPModel_OutputsProbability(t *testing.T) {
	// One hidden layer of two ReLU units, sigmoid output.
	model, err := NewMLPModel([]MLPLayer{
		{Weights: [][]float64{{1, 1}, {-1, -1}}, Biases: []float64{0, 0}},
		{Weights: [][]float64{{2, 2}}, Biases: []float64{-1}},
	})
	require.NoError(t, err)

	score, err := model.Predict(entities.FeatureVector{3, 3})
	require.NoError(t, err)
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 1.0)

	score, err = model.Predict(entities.FeatureVector{-3, -3})
	require.NoError(t, err)
	assert.Less(t, score, 0.5)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestMLPModel_RejectsRaggedLayers(t *testing.T) {
	_, err := NewMLPModel([]MLPLayer{
		{Weights: [][]float64{{1, 1}, {1}}, Biases: []float64{0, 0}},
		{Weights: [][]float64{{1, 1}}, Biases: []float64{0}},
	})
	assert.Error(t, err)

	_, err = NewMLPModel([]MLPLayer{
		{Weights: [][]float64{{1}, {1}}, Biases: []float64{0, 0}},
	})
	assert.Error(t, err, "output layer must have exactly one unit")
}

func TestPredictors_RejectWrongVectorLength(t *testing.T) {
	short := entities.FeatureVector{1}

	knn, _ := NewKNNModel(1, []Prototype{{Features: []float64{0, 0}, Label: 0}})
	_, err := knn.Predict(short)
	assert.Error(t, err)

	lr, _ := NewLogisticModel([]float64{1, 1}, 0)
	_, err = lr.Predict(short)
	assert.Error(t, err)

	svm, _ := NewSVMModel([]float64{1, 1}, 0)
	_, err = svm.Predict(short)
	assert.Error(t, err)
}
