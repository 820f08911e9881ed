package ml

import (
	"fmt"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// TreeNode is one node of a serialized fitted decision tree. Internal nodes
// route on Feature <= Threshold; leaves carry the class decision in Value.
// Left/Right are indices into the flat node array.
type TreeNode struct {
	Leaf      bool    `json:"leaf"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     int     `json:"value,omitempty"`
}

// DecisionTree is a fitted binary classification tree. Node 0 is the root.
type DecisionTree struct {
	dim   int
	nodes []TreeNode
}

// NewDecisionTree validates the node array and returns the tree.
func NewDecisionTree(dim int, nodes []TreeNode) (*DecisionTree, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("decision tree: non-positive dimension %d", dim)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("decision tree: empty node array")
	}
	for i, n := range nodes {
		if n.Leaf {
			if n.Value != 0 && n.Value != 1 {
				return nil, fmt.Errorf("decision tree: leaf %d has value %d outside {0,1}", i, n.Value)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= dim {
			return nil, fmt.Errorf("decision tree: node %d splits on feature %d outside [0,%d)", i, n.Feature, dim)
		}
		if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
			return nil, fmt.Errorf("decision tree: node %d has out-of-order children %d/%d", i, n.Left, n.Right)
		}
	}
	return &DecisionTree{dim: dim, nodes: nodes}, nil
}

// Predict walks the tree to a leaf and returns its decision as 0.0/1.0.
func (t *DecisionTree) Predict(vector entities.FeatureVector) (float64, error) {
	if len(vector) != t.dim {
		return 0, fmt.Errorf("decision tree: vector length %d, want %d", len(vector), t.dim)
	}
	i := 0
	for !t.nodes[i].Leaf {
		n := t.nodes[i]
		if vector[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return float64(t.nodes[i].Value), nil
}

// RandomForest is a fitted ensemble of decision trees deciding by majority
// vote. Ties break toward the positive class.
type RandomForest struct {
	trees []*DecisionTree
}

// NewRandomForest builds a forest from serialized trees.
func NewRandomForest(dim int, treeNodes [][]TreeNode) (*RandomForest, error) {
	if len(treeNodes) == 0 {
		return nil, fmt.Errorf("random forest: no trees")
	}
	trees := make([]*DecisionTree, len(treeNodes))
	for i, nodes := range treeNodes {
		tree, err := NewDecisionTree(dim, nodes)
		if err != nil {
			return nil, fmt.Errorf("random forest: tree %d: %w", i, err)
		}
		trees[i] = tree
	}
	return &RandomForest{trees: trees}, nil
}

// Predict returns the forest's majority decision as 0.0/1.0.
func (f *RandomForest) Predict(vector entities.FeatureVector) (float64, error) {
	votes := 0
	for _, tree := range f.trees {
		decision, err := tree.Predict(vector)
		if err != nil {
			return 0, err
		}
		if decision == 1.0 {
			votes++
		}
	}
	if votes*2 >= len(f.trees) {
		return 1.0, nil
	}
	return 0.0, nil
}
