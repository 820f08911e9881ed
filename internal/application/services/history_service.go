package services

import (
	"context"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
)

// HistoryService serves a doctor's stored outcomes for one patient.
type HistoryService struct {
	records repositories.PatientRecordRepository
}

// NewHistoryService creates a history service.
func NewHistoryService(records repositories.PatientRecordRepository) *HistoryService {
	return &HistoryService{records: records}
}

// ListByPatient returns every record for (doctor, name, disease) in creation
// order. An empty slice means the patient has no records; it is not an error.
func (s *HistoryService) ListByPatient(ctx context.Context, doctorID, name string, disease entities.Disease) ([]*entities.PatientRecord, error) {
	if !disease.Valid() {
		return nil, &entities.UnknownDiseaseError{Disease: disease}
	}
	return s.records.ListByPatient(ctx, doctorID, name, disease)
}
