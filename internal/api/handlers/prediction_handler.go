package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mediscope-ai/backend/internal/api/middleware"
	"github.com/mediscope-ai/backend/internal/application/services"
	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// PredictionRunner defines the prediction operation used by the handler.
type PredictionRunner interface {
	Predict(ctx context.Context, input services.PredictionInput) (*entities.PredictionResult, error)
}

// PredictionHandler exposes the prediction pipeline over JSON.
type PredictionHandler struct {
	service PredictionRunner
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(service PredictionRunner) *PredictionHandler {
	return &PredictionHandler{service: service}
}

type predictionRequest struct {
	Disease  string            `json:"disease"`
	Model    string            `json:"model"`
	Name     string            `json:"name,omitempty"`
	Age      *int              `json:"age,omitempty"`
	Features map[string]string `json:"features"`
}

// Predict handles POST /api/predictions
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.Features) == 0 {
		respondWithError(w, http.StatusBadRequest, "features are required")
		return
	}

	result, err := h.service.Predict(r.Context(), services.PredictionInput{
		DoctorID:    doctorID,
		Disease:     entities.Disease(payload.Disease),
		Model:       entities.ModelKind(payload.Model),
		PatientName: payload.Name,
		Age:         payload.Age,
		Features:    payload.Features,
	})
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
