package entities

import "fmt"

// Disease identifies one of the supported prediction domains.
type Disease string

const (
	DiseaseHeartAttack  Disease = "heart-attack"
	DiseaseBreastCancer Disease = "breast-cancer"
	DiseaseDiabetes     Disease = "diabetes"
	DiseaseLungCancer   Disease = "lung-cancer"
)

// Diseases lists every supported disease tag.
func Diseases() []Disease {
	return []Disease{
		DiseaseHeartAttack,
		DiseaseBreastCancer,
		DiseaseDiabetes,
		DiseaseLungCancer,
	}
}

// Valid reports whether d is one of the supported disease tags.
func (d Disease) Valid() bool {
	switch d {
	case DiseaseHeartAttack, DiseaseBreastCancer, DiseaseDiabetes, DiseaseLungCancer:
		return true
	}
	return false
}

// ModelKind identifies one of the seven interchangeable classifier backends.
type ModelKind string

const (
	ModelKNN ModelKind = "KNN"
	ModelDT  ModelKind = "DT"
	ModelRF  ModelKind = "RF"
	ModelLR  ModelKind = "LR"
	ModelSVM ModelKind = "SVM"
	ModelNB  ModelKind = "NB"
	ModelDL  ModelKind = "DL"
)

// ModelKinds lists every backend key, in artifact-loading order.
func ModelKinds() []ModelKind {
	return []ModelKind{ModelKNN, ModelDT, ModelRF, ModelLR, ModelSVM, ModelNB, ModelDL}
}

// Valid reports whether k is one of the supported backend keys.
func (k ModelKind) Valid() bool {
	switch k {
	case ModelKNN, ModelDT, ModelRF, ModelLR, ModelSVM, ModelNB, ModelDL:
		return true
	}
	return false
}

// Continuous reports whether the backend emits a raw probability rather than
// a hard 0/1 decision. Only the DL backend is continuous; the other six emit
// exactly 0.0 or 1.0.
func (k ModelKind) Continuous() bool {
	return k == ModelDL
}

// UnknownDiseaseError reports a disease tag outside the supported set.
type UnknownDiseaseError struct {
	Disease Disease
}

func (e *UnknownDiseaseError) Error() string {
	return fmt.Sprintf("unknown disease %q", string(e.Disease))
}

// UnknownModelError reports a disease/backend pair the registry does not hold.
type UnknownModelError struct {
	Disease Disease
	Model   ModelKind
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("no model %q for disease %q", string(e.Model), string(e.Disease))
}
