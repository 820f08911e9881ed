package handlers

import (
	"context"
	"net/http"

	"github.com/mediscope-ai/backend/internal/api/middleware"
	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// HistoryLister defines the record query operation used by the handler.
type HistoryLister interface {
	ListByPatient(ctx context.Context, doctorID, name string, disease entities.Disease) ([]*entities.PatientRecord, error)
}

// RecordHandler serves a doctor's stored patient outcomes.
type RecordHandler struct {
	service HistoryLister
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(service HistoryLister) *RecordHandler {
	return &RecordHandler{service: service}
}

// ListRecords handles GET /api/patients/records?name=...&disease=...
//
// An empty result is a valid response meaning the patient has no records.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	name := r.URL.Query().Get("name")
	disease := r.URL.Query().Get("disease")
	if name == "" || disease == "" {
		respondWithError(w, http.StatusBadRequest, "name and disease query parameters are required")
		return
	}

	records, err := h.service.ListByPatient(r.Context(), doctorID, name, entities.Disease(disease))
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}
