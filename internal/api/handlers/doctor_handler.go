package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mediscope-ai/backend/internal/application/services"
)

// DoctorHandler handles clinician account creation.
type DoctorHandler struct {
	service *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type createDoctorRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateDoctor handles POST /api/doctors
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var payload createDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	doctor, err := h.service.Create(r.Context(), payload.Username, payload.Password)
	if err != nil {
		respondWithEngineError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"id":       doctor.ID,
		"username": doctor.Username,
	})
}
