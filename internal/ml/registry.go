// Package ml holds the fitted scalers, the seven classifier backends, and
// the registry that dispatches inference across them. Everything here is
// loaded exactly once at startup and is read-only afterwards, so the
// registry is shared by all concurrent requests without synchronization.
package ml

import (
	"fmt"
	"math"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// Registry holds scalers and predictors per disease and backend key. Build
// it with LoadRegistry (artifacts) or NewRegistry (injected predictors, used
// by tests); never mutate it after construction.
type Registry struct {
	scalers map[entities.Disease]*StandardScaler
	models  map[entities.Disease]map[entities.ModelKind]Predictor
}

// NewRegistry builds a registry from already-constructed scalers and
// predictors.
func NewRegistry(
	scalers map[entities.Disease]*StandardScaler,
	models map[entities.Disease]map[entities.ModelKind]Predictor,
) *Registry {
	return &Registry{scalers: scalers, models: models}
}

// Scale applies the disease's fitted scaler to the vector.
func (r *Registry) Scale(disease entities.Disease, vector entities.FeatureVector) (entities.FeatureVector, error) {
	scaler, ok := r.scalers[disease]
	if !ok {
		return nil, &entities.UnknownDiseaseError{Disease: disease}
	}
	return scaler.Transform(vector)
}

// Predict dispatches the scaled vector to the requested backend and returns
// the raw score. Discrete backends return exactly 0.0 or 1.0; the DL backend
// returns its probability. Backend errors and panics surface as
// InferenceError and no score is returned.
func (r *Registry) Predict(disease entities.Disease, kind entities.ModelKind, scaled entities.FeatureVector) (score float64, err error) {
	kinds, ok := r.models[disease]
	if !ok {
		return 0, &entities.UnknownModelError{Disease: disease, Model: kind}
	}
	predictor, ok := kinds[kind]
	if !ok {
		return 0, &entities.UnknownModelError{Disease: disease, Model: kind}
	}

	defer func() {
		if rec := recover(); rec != nil {
			score = 0
			err = &InferenceError{Disease: disease, Model: kind, Cause: fmt.Errorf("backend panic: %v", rec)}
		}
	}()

	raw, perr := predictor.Predict(scaled)
	if perr != nil {
		return 0, &InferenceError{Disease: disease, Model: kind, Cause: perr}
	}
	// NaN compares false against both bounds, so it needs its own check.
	if math.IsNaN(raw) || raw < 0 || raw > 1 {
		return 0, &InferenceError{Disease: disease, Model: kind,
			Cause: fmt.Errorf("backend score %v outside [0,1]", raw)}
	}
	return raw, nil
}
