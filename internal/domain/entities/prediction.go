package entities

// FeatureVector is the ordered numeric encoding of one patient's raw inputs
// for one disease. Its length and positional meaning match the disease schema
// exactly; downstream scalers and models are positionally sensitive and carry
// no feature names.
type FeatureVector []float64

// Clone returns an independent copy of the vector.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	copy(out, v)
	return out
}

// RiskTier is the qualitative three-level classification derived from a score.
type RiskTier string

const (
	RiskLow    RiskTier = "Low Risk"
	RiskMedium RiskTier = "Medium Risk"
	RiskHigh   RiskTier = "High Risk"
)

// ClassifyRisk maps a score in [0,1] to its risk tier.
//
// Discrete backends only ever produce 0.0 or 1.0, so they yield Low or High;
// Medium is reachable only through the continuous DL backend. Callers must
// not pass out-of-range scores.
func ClassifyRisk(score float64) RiskTier {
	switch {
	case score >= 0.8:
		return RiskHigh
	case score >= 0.5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// PredictionOutcome is the result of one inference: the raw backend score,
// persisted verbatim, and its derived tier. Request-local; never mutated
// after creation.
type PredictionOutcome struct {
	Score float64  `json:"score"`
	Tier  RiskTier `json:"risk_tier"`
}

// PredictionResult is what the engine hands back to its caller after a
// completed request. RecordID is empty when no patient name was supplied and
// persistence was skipped. Recommendations are a best-effort enrichment and
// may be nil.
type PredictionResult struct {
	Disease         Disease           `json:"disease"`
	Model           ModelKind         `json:"model"`
	Outcome         PredictionOutcome `json:"outcome"`
	RecordID        string            `json:"record_id,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
}
