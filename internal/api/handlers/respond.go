package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/schema"
	"github.com/mediscope-ai/backend/internal/ml"
	apperrors "github.com/mediscope-ai/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithEngineError maps the engine's error taxonomy onto HTTP codes.
// Validation-stage failures carry the offending feature/value back to the
// caller; inference and persistence failures do not leak internals.
func respondWithEngineError(w http.ResponseWriter, err error) {
	var (
		unknownDisease *entities.UnknownDiseaseError
		unknownModel   *entities.UnknownModelError
		missingFeature *schema.MissingFeatureError
		invalidValue   *schema.InvalidValueError
		scaling        *ml.ScalingError
		inference      *ml.InferenceError
	)

	switch {
	case errors.As(err, &unknownDisease), errors.As(err, &unknownModel):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &missingFeature), errors.As(err, &invalidValue):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &scaling):
		respondWithError(w, http.StatusInternalServerError, "feature scaling failed")
	case errors.As(err, &inference):
		respondWithError(w, http.StatusBadGateway, "model inference failed")
	case apperrors.IsType(err, apperrors.ErrorTypeUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "record store unavailable, retry the request")
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.IsType(err, apperrors.ErrorTypeConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case apperrors.IsType(err, apperrors.ErrorTypeValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsType(err, apperrors.ErrorTypeUnauthorized):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
