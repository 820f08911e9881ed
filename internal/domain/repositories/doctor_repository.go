package repositories

import (
	"context"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// DoctorRepository defines persistence for clinician accounts. The engine
// only consumes doctor ids; account mechanics stay outside the core.
type DoctorRepository interface {
	// Create inserts a new doctor. Fails with a Conflict error when the
	// username is taken.
	Create(ctx context.Context, doctor *entities.Doctor) error

	// GetByID retrieves a doctor by id.
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// GetByUsername retrieves a doctor by username.
	GetByUsername(ctx context.Context, username string) (*entities.Doctor, error)
}
