package repositories

import (
	"context"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// PatientRecordKey is the identity tuple that addresses exactly one stored
// record. A nil Age is part of the identity, distinct from any concrete age.
type PatientRecordKey struct {
	DoctorID string
	Name     string
	Disease  entities.Disease
	Age      *int
}

// PatientRecordRepository is the keyed persistence layer for prediction
// outcomes. It performs no validation of its own: callers have already
// validated and scored the inputs, and callers serialize concurrent upserts
// that target the same identity key.
type PatientRecordRepository interface {
	// GetByKey retrieves the record for the full identity key.
	// Returns a NotFound error when no record exists.
	GetByKey(ctx context.Context, key PatientRecordKey) (*entities.PatientRecord, error)

	// Upsert writes the record under its identity key: overwrite in place
	// when a record exists, insert otherwise. Returns the record's id.
	Upsert(ctx context.Context, record *entities.PatientRecord) (string, error)

	// ListByPatient returns all records for (doctor, name, disease)
	// regardless of age, in creation order. An empty slice is a valid
	// result meaning no records.
	ListByPatient(ctx context.Context, doctorID, name string, disease entities.Disease) ([]*entities.PatientRecord, error)
}
