package ml

import "github.com/mediscope-ai/backend/internal/domain/entities"

// Predictor is the single capability every classifier backend exposes. Six
// backend kinds are discrete and return exactly 0.0 or 1.0; the DL kind
// returns a raw probability in [0,1]. Implementations are immutable after
// construction and safe for unsynchronized concurrent use.
type Predictor interface {
	Predict(vector entities.FeatureVector) (float64, error)
}
