package services

import (
	"context"
	"strings"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	apperrors "github.com/mediscope-ai/backend/pkg/errors"
)

// DoctorService handles clinician account creation and credential checks.
// Passwords only ever exist as bcrypt hashes at rest.
type DoctorService struct {
	repo repositories.DoctorRepository
}

// NewDoctorService creates a doctor service.
func NewDoctorService(repo repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repo: repo}
}

// Create registers a new doctor account.
func (s *DoctorService) Create(ctx context.Context, username, password string) (*entities.Doctor, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password is required")
	}

	doctor := &entities.Doctor{Username: username}
	if err := doctor.SetPassword(password); err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Authenticate resolves credentials to a doctor. The same error is returned
// for an unknown username and a wrong password.
func (s *DoctorService) Authenticate(ctx context.Context, username, password string) (*entities.Doctor, error) {
	doctor, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid username or password")
		}
		return nil, err
	}
	if !doctor.CheckPassword(password) {
		return nil, apperrors.NewUnauthorizedError("invalid username or password")
	}
	return doctor, nil
}
