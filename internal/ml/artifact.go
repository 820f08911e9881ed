package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/schema"
)

// Artifact layout on disk: one directory per disease under the artifacts
// root, holding scaler.json plus one <kind>.json per backend. All artifacts
// are fitted offline; the loader treats their parameters as opaque and a
// missing or corrupt file for any disease is startup-fatal.

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type knnArtifact struct {
	K          int         `json:"k"`
	Prototypes []Prototype `json:"prototypes"`
}

type treeArtifact struct {
	Nodes []TreeNode `json:"nodes"`
}

type forestArtifact struct {
	Trees [][]TreeNode `json:"trees"`
}

type linearArtifact struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

type bayesArtifact struct {
	Negative GaussianClass `json:"negative"`
	Positive GaussianClass `json:"positive"`
}

type mlpArtifact struct {
	Layers []MLPLayer `json:"layers"`
}

// LoadRegistry reads every disease's scaler and model artifacts from root
// and returns the fully populated, immutable registry. Any missing or
// malformed artifact fails the whole load.
func LoadRegistry(root string) (*Registry, error) {
	reg := &Registry{
		scalers: make(map[entities.Disease]*StandardScaler),
		models:  make(map[entities.Disease]map[entities.ModelKind]Predictor),
	}

	for _, disease := range entities.Diseases() {
		dir := filepath.Join(root, diseaseDir(disease))

		s, err := schema.Lookup(disease)
		if err != nil {
			return nil, err
		}

		scaler, err := loadScaler(dir, disease)
		if err != nil {
			return nil, err
		}
		if scaler.Dim() != s.FeatureCount() {
			return nil, fmt.Errorf("artifact %s/scaler.json: fitted on %d features, schema has %d",
				dir, scaler.Dim(), s.FeatureCount())
		}
		reg.scalers[disease] = scaler

		kinds := make(map[entities.ModelKind]Predictor, len(entities.ModelKinds()))
		for _, kind := range entities.ModelKinds() {
			predictor, err := loadModel(dir, disease, kind, s.FeatureCount())
			if err != nil {
				return nil, err
			}
			kinds[kind] = predictor
		}
		reg.models[disease] = kinds
	}

	return reg, nil
}

// diseaseDir maps a disease tag to its artifact directory name.
func diseaseDir(disease entities.Disease) string {
	return strings.ReplaceAll(string(disease), "-", "_")
}

func loadScaler(dir string, disease entities.Disease) (*StandardScaler, error) {
	var doc scalerArtifact
	if err := readArtifact(filepath.Join(dir, "scaler.json"), &doc); err != nil {
		return nil, err
	}
	return NewStandardScaler(disease, doc.Mean, doc.Scale)
}

func loadModel(dir string, disease entities.Disease, kind entities.ModelKind, dim int) (Predictor, error) {
	path := filepath.Join(dir, strings.ToLower(string(kind))+".json")

	var (
		predictor Predictor
		err       error
	)
	switch kind {
	case entities.ModelKNN:
		var doc knnArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewKNNModel(doc.K, doc.Prototypes)
		}
	case entities.ModelDT:
		var doc treeArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewDecisionTree(dim, doc.Nodes)
		}
	case entities.ModelRF:
		var doc forestArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewRandomForest(dim, doc.Trees)
		}
	case entities.ModelLR:
		var doc linearArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewLogisticModel(doc.Weights, doc.Bias)
		}
	case entities.ModelSVM:
		var doc linearArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewSVMModel(doc.Weights, doc.Bias)
		}
	case entities.ModelNB:
		var doc bayesArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewNaiveBayesModel(doc.Negative, doc.Positive)
		}
	case entities.ModelDL:
		var doc mlpArtifact
		if err = readArtifact(path, &doc); err == nil {
			predictor, err = NewMLPModel(doc.Layers)
		}
	default:
		return nil, &entities.UnknownModelError{Disease: disease, Model: kind}
	}

	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return predictor, nil
}

func readArtifact(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse artifact: %w", err)
	}
	return nil
}
