// Package schema holds the fixed per-disease feature schemas and the input
// validator/encoder that turns raw form values into ordered feature vectors.
package schema

import (
	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// DiseaseSchema is the ordered feature list and categorical encoding table
// for one supported disease. Categorical features are a subset of Features;
// every other feature is continuous and accepts only numeric input.
// Schemas are process-wide constants, built once and never mutated.
type DiseaseSchema struct {
	Disease     entities.Disease
	Features    []string
	Categorical map[string]map[string]int
}

// FeatureCount returns the length every encoded vector must have.
func (s *DiseaseSchema) FeatureCount() int {
	return len(s.Features)
}

// IsCategorical reports whether the named feature has a closed label domain.
func (s *DiseaseSchema) IsCategorical(feature string) bool {
	_, ok := s.Categorical[feature]
	return ok
}

var registry = map[entities.Disease]*DiseaseSchema{
	entities.DiseaseHeartAttack: {
		Disease: entities.DiseaseHeartAttack,
		Features: []string{
			"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg", "thalach",
			"exang", "oldpeak", "slope", "ca", "thal",
		},
		Categorical: map[string]map[string]int{
			"sex": {"female": 0, "male": 1},
			"cp": {
				"typical_angina": 0, "atypical_angina": 1,
				"non_anginal_pain": 2, "asymptomatic": 3,
			},
			"fbs":     {"false": 0, "true": 1},
			"restecg": {"normal": 0, "st_t_abnormality": 1, "lv_hypertrophy": 2},
			"exang":   {"no": 0, "yes": 1},
			"slope":   {"upsloping": 0, "flat": 1, "downsloping": 2},
			"ca":      {"0": 0, "1": 1, "2": 2, "3": 3},
			"thal":    {"normal": 0, "fixed_defect": 1, "reversible_defect": 2, "other": 3},
		},
	},
	entities.DiseaseBreastCancer: {
		Disease: entities.DiseaseBreastCancer,
		Features: []string{
			"radius_mean", "texture_mean", "perimeter_mean", "area_mean", "smoothness_mean",
			"compactness_mean", "concavity_mean", "concave_points_mean", "symmetry_mean",
			"fractal_dimension_mean", "radius_se", "texture_se", "perimeter_se", "area_se",
			"smoothness_se", "compactness_se", "concavity_se", "concave_points_se",
			"symmetry_se", "fractal_dimension_se", "radius_worst", "texture_worst",
			"perimeter_worst", "area_worst", "smoothness_worst", "compactness_worst",
			"concavity_worst", "concave_points_worst", "symmetry_worst", "fractal_dimension_worst",
		},
		Categorical: map[string]map[string]int{},
	},
	entities.DiseaseDiabetes: {
		Disease: entities.DiseaseDiabetes,
		Features: []string{
			"Pregnancies", "Glucose", "BloodPressure", "SkinThickness", "Insulin",
			"BMI", "DiabetesPedigreeFunction", "Age",
		},
		Categorical: map[string]map[string]int{},
	},
	entities.DiseaseLungCancer: {
		Disease: entities.DiseaseLungCancer,
		Features: []string{
			"GENDER", "AGE", "SMOKING", "YELLOW_FINGERS", "ANXIETY", "PEER_PRESSURE",
			"CHRONIC_DISEASE", "FATIGUE", "ALLERGY", "WHEEZING", "ALCOHOL_CONSUMING",
			"COUGHING", "SHORTNESS_OF_BREATH", "SWALLOWING_DIFFICULTY", "CHEST_PAIN",
		},
		Categorical: map[string]map[string]int{
			"GENDER":                {"F": 0, "M": 1},
			"SMOKING":               {"1": 0, "2": 1},
			"YELLOW_FINGERS":        {"1": 0, "2": 1},
			"ANXIETY":               {"1": 0, "2": 1},
			"PEER_PRESSURE":         {"1": 0, "2": 1},
			"CHRONIC_DISEASE":       {"1": 0, "2": 1},
			"FATIGUE":               {"1": 0, "2": 1},
			"ALLERGY":               {"1": 0, "2": 1},
			"WHEEZING":              {"1": 0, "2": 1},
			"ALCOHOL_CONSUMING":     {"1": 0, "2": 1},
			"COUGHING":              {"1": 0, "2": 1},
			"SHORTNESS_OF_BREATH":   {"1": 0, "2": 1},
			"SWALLOWING_DIFFICULTY": {"1": 0, "2": 1},
			"CHEST_PAIN":            {"1": 0, "2": 1},
		},
	},
}

// Lookup returns the schema for the disease, or UnknownDiseaseError.
func Lookup(disease entities.Disease) (*DiseaseSchema, error) {
	s, ok := registry[disease]
	if !ok {
		return nil, &entities.UnknownDiseaseError{Disease: disease}
	}
	return s, nil
}
