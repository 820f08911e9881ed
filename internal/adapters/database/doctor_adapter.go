package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	"github.com/mediscope-ai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mediscope-ai/backend/pkg/errors"
)

// DoctorAdapter implements clinician account persistence in Postgres.
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter.
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a doctor account. Username uniqueness is guaranteed by the
// doctors table's unique constraint: the pre-check gives the common duplicate
// a friendly answer, and a concurrent duplicate that slips past it comes back
// from the insert as a unique violation, mapped to the same conflict error.
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if doctor.CreatedAt.IsZero() {
		doctor.CreatedAt = time.Now().UTC()
	}

	if _, err := a.GetByUsername(ctx, doctor.Username); err == nil {
		return apperrors.NewConflictError(fmt.Sprintf("username %q already exists", doctor.Username))
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return err
	}

	query, args, err := a.db.Insert("doctors").Rows(goqu.Record{
		"id":            doctor.ID,
		"username":      doctor.Username,
		"password_hash": doctor.PasswordHash,
		"created_at":    doctor.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build doctor insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("username %q already exists", doctor.Username))
		}
		return apperrors.NewInternalError("failed to create doctor", err)
	}
	return nil
}

// isUniqueViolation reports whether err is Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GetByID retrieves a doctor by id.
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("doctor %s not found", id))
}

// GetByUsername retrieves a doctor by username.
func (a *DoctorAdapter) GetByUsername(ctx context.Context, username string) (*entities.Doctor, error) {
	return a.getBy(ctx, goqu.Ex{"username": username}, fmt.Sprintf("doctor %q not found", username))
}

func (a *DoctorAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Doctor, error) {
	query, args, err := a.db.Select("id", "username", "password_hash", "created_at").
		From("doctors").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build doctor query", err)
	}

	doctor := &entities.Doctor{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&doctor.ID,
		&doctor.Username,
		&doctor.PasswordHash,
		&doctor.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}
	return doctor, nil
}
