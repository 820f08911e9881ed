package schema

import (
	"errors"
	"testing"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// validHeartAttackInput covers all 13 cardiac features with the categorical
// ones given as labels.
func validHeartAttackInput() map[string]string {
	return map[string]string{
		"age":      "54",
		"sex":      "male",
		"cp":       "atypical_angina",
		"trestbps": "130",
		"chol":     "246",
		"fbs":      "false",
		"restecg":  "normal",
		"thalach":  "150",
		"exang":    "no",
		"oldpeak":  "1.4",
		"slope":    "flat",
		"ca":       "0",
		"thal":     "reversible_defect",
	}
}

func TestEncode_VectorMatchesSchemaOrder(t *testing.T) {
	vector, err := Encode(entities.DiseaseHeartAttack, validHeartAttackInput())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := entities.FeatureVector{54, 1, 1, 130, 246, 0, 0, 150, 0, 1.4, 1, 0, 2}
	if len(vector) != len(want) {
		t.Fatalf("vector length %d, want %d", len(vector), len(want))
	}
	for i := range want {
		if vector[i] != want[i] {
			t.Errorf("position %d = %v, want %v", i, vector[i], want[i])
		}
	}
}

func TestEncode_LengthMatchesEverySchema(t *testing.T) {
	wantLengths := map[entities.Disease]int{
		entities.DiseaseHeartAttack:  13,
		entities.DiseaseBreastCancer: 30,
		entities.DiseaseDiabetes:     8,
		entities.DiseaseLungCancer:   15,
	}

	for disease, wantLen := range wantLengths {
		t.Run(string(disease), func(t *testing.T) {
			s, err := Lookup(disease)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if s.FeatureCount() != wantLen {
				t.Fatalf("schema length %d, want %d", s.FeatureCount(), wantLen)
			}

			raw := make(map[string]string, wantLen)
			for _, feature := range s.Features {
				if domain, ok := s.Categorical[feature]; ok {
					for label := range domain {
						raw[feature] = label
						break
					}
				} else {
					raw[feature] = "1.5"
				}
			}

			vector, err := Encode(disease, raw)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(vector) != wantLen {
				t.Errorf("vector length %d, want %d", len(vector), wantLen)
			}
		})
	}
}

func TestEncode_CategoricalDomainsAreClosedAndUnique(t *testing.T) {
	for _, disease := range entities.Diseases() {
		s, err := Lookup(disease)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", disease, err)
		}
		for feature, domain := range s.Categorical {
			seen := map[int]string{}
			for label, code := range domain {
				if prev, dup := seen[code]; dup {
					t.Errorf("%s/%s: labels %q and %q share code %d", disease, feature, prev, label, code)
				}
				seen[code] = label
			}

			found := false
			for _, f := range s.Features {
				if f == feature {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s: categorical feature %q not in feature list", disease, feature)
			}
		}
	}
}

func TestEncode_UnknownDisease(t *testing.T) {
	_, err := Encode(entities.Disease("gout"), map[string]string{})

	var unknownErr *entities.UnknownDiseaseError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownDiseaseError, got %v", err)
	}
	if unknownErr.Disease != "gout" {
		t.Errorf("error names disease %q, want %q", unknownErr.Disease, "gout")
	}
}

func TestEncode_MissingFeatureNamesTheFeature(t *testing.T) {
	for _, missing := range []string{"age", "thal", "oldpeak"} {
		t.Run(missing, func(t *testing.T) {
			raw := validHeartAttackInput()
			delete(raw, missing)

			_, err := Encode(entities.DiseaseHeartAttack, raw)

			var missingErr *MissingFeatureError
			if !errors.As(err, &missingErr) {
				t.Fatalf("expected MissingFeatureError, got %v", err)
			}
			if missingErr.Feature != missing {
				t.Errorf("error names feature %q, want %q", missingErr.Feature, missing)
			}
		})
	}
}

func TestEncode_EmptyValueIsMissing(t *testing.T) {
	raw := validHeartAttackInput()
	raw["chol"] = "   "

	_, err := Encode(entities.DiseaseHeartAttack, raw)

	var missingErr *MissingFeatureError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingFeatureError, got %v", err)
	}
	if missingErr.Feature != "chol" {
		t.Errorf("error names feature %q, want %q", missingErr.Feature, "chol")
	}
}

func TestEncode_RejectsUnknownCategoricalLabel(t *testing.T) {
	raw := validHeartAttackInput()
	raw["sex"] = "unknown"

	_, err := Encode(entities.DiseaseHeartAttack, raw)

	var invalidErr *InvalidValueError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalidErr.Feature != "sex" || invalidErr.Value != "unknown" {
		t.Errorf("error reports %q/%q, want sex/unknown", invalidErr.Feature, invalidErr.Value)
	}
}

func TestEncode_RejectsNonNumericContinuous(t *testing.T) {
	raw := validHeartAttackInput()
	raw["trestbps"] = "high"

	_, err := Encode(entities.DiseaseHeartAttack, raw)

	var invalidErr *InvalidValueError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if invalidErr.Feature != "trestbps" {
		t.Errorf("error names feature %q, want trestbps", invalidErr.Feature)
	}
}

func TestEncode_RejectsNonFiniteContinuous(t *testing.T) {
	// ParseFloat accepts all of these spellings; none is a measurement.
	for _, value := range []string{"NaN", "nan", "Inf", "+Inf", "-inf", "Infinity"} {
		raw := validHeartAttackInput()
		raw["chol"] = value

		_, err := Encode(entities.DiseaseHeartAttack, raw)

		var invalidErr *InvalidValueError
		if !errors.As(err, &invalidErr) {
			t.Fatalf("value %q: expected InvalidValueError, got %v", value, err)
		}
		if invalidErr.Feature != "chol" || invalidErr.Value != value {
			t.Errorf("value %q: error reports %q/%q, want chol/%q",
				value, invalidErr.Feature, invalidErr.Value, value)
		}
	}
}

func TestFeatureMap_RoundTrip(t *testing.T) {
	vector, err := Encode(entities.DiseaseHeartAttack, validHeartAttackInput())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	features, err := FeatureMap(entities.DiseaseHeartAttack, vector)
	if err != nil {
		t.Fatalf("FeatureMap: %v", err)
	}
	if len(features) != len(vector) {
		t.Fatalf("feature map has %d entries, want %d", len(features), len(vector))
	}
	if features["age"] != 54 || features["thal"] != 2 {
		t.Errorf("feature map values wrong: age=%v thal=%v", features["age"], features["thal"])
	}
}

func TestFeatureMap_RejectsWrongLength(t *testing.T) {
	_, err := FeatureMap(entities.DiseaseDiabetes, entities.FeatureVector{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for wrong vector length")
	}
}
