package entities

import "testing"

func TestClassifyRisk_StepFunction(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskTier
	}{
		{0.85, RiskHigh},
		{0.8, RiskHigh},
		{1.0, RiskHigh},
		{0.75, RiskMedium},
		{0.5, RiskMedium},
		{0.49, RiskLow},
		{0.0, RiskLow},
	}
	for _, c := range cases {
		if got := ClassifyRisk(c.score); got != c.want {
			t.Errorf("ClassifyRisk(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestClassifyRisk_DiscreteScoresSkipMedium(t *testing.T) {
	// The six discrete backends only ever emit 0.0 or 1.0, so they can
	// never produce a Medium tier.
	if got := ClassifyRisk(0.0); got != RiskLow {
		t.Errorf("ClassifyRisk(0.0) = %q, want %q", got, RiskLow)
	}
	if got := ClassifyRisk(1.0); got != RiskHigh {
		t.Errorf("ClassifyRisk(1.0) = %q, want %q", got, RiskHigh)
	}
}

func TestFeatureVector_Clone(t *testing.T) {
	v := FeatureVector{1, 2, 3}
	c := v.Clone()
	c[0] = 99
	if v[0] != 1 {
		t.Errorf("Clone shares backing array with original")
	}
}

func TestDiseaseAndModelValidity(t *testing.T) {
	for _, d := range Diseases() {
		if !d.Valid() {
			t.Errorf("disease %q should be valid", d)
		}
	}
	if Disease("ebola").Valid() {
		t.Error("unsupported disease reported valid")
	}

	for _, k := range ModelKinds() {
		if !k.Valid() {
			t.Errorf("model kind %q should be valid", k)
		}
	}
	if ModelKind("XGB").Valid() {
		t.Error("unsupported model kind reported valid")
	}

	if ModelKNN.Continuous() {
		t.Error("KNN should be discrete")
	}
	if !ModelDL.Continuous() {
		t.Error("DL should be continuous")
	}
}
