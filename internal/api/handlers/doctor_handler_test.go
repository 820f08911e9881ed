package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediscope-ai/backend/internal/api/handlers"
	"github.com/mediscope-ai/backend/internal/application/services"
	"github.com/mediscope-ai/backend/internal/domain/entities"
	apperrors "github.com/mediscope-ai/backend/pkg/errors"
)

type fakeDoctorRepo struct {
	byUsername map[string]*entities.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{byUsername: map[string]*entities.Doctor{}}
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *entities.Doctor) error {
	if _, ok := r.byUsername[doctor.Username]; ok {
		return apperrors.NewConflictError("username already taken")
	}
	doctor.ID = uuid.New().String()
	r.byUsername[doctor.Username] = doctor
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id string) (*entities.Doctor, error) {
	for _, d := range r.byUsername {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NewNotFoundError("doctor not found")
}

func (r *fakeDoctorRepo) GetByUsername(_ context.Context, username string) (*entities.Doctor, error) {
	d, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.NewNotFoundError("doctor not found")
	}
	return d, nil
}

func createDoctorRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/doctors", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDoctorHandler_CreateDoctor(t *testing.T) {
	handler := handlers.NewDoctorHandler(services.NewDoctorService(newFakeDoctorRepo()))

	rec := httptest.NewRecorder()
	handler.CreateDoctor(rec, createDoctorRequest(`{"username": "drokafor", "password": "s3cret-pw"}`))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "drokafor", resp["username"])
	assert.NotEmpty(t, resp["id"])
	assert.NotContains(t, rec.Body.String(), "s3cret-pw")
}

func TestDoctorHandler_RejectsMalformedPayload(t *testing.T) {
	handler := handlers.NewDoctorHandler(services.NewDoctorService(newFakeDoctorRepo()))

	rec := httptest.NewRecorder()
	handler.CreateDoctor(rec, createDoctorRequest(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoctorHandler_MissingFieldsAreBadRequest(t *testing.T) {
	handler := handlers.NewDoctorHandler(services.NewDoctorService(newFakeDoctorRepo()))

	rec := httptest.NewRecorder()
	handler.CreateDoctor(rec, createDoctorRequest(`{"username": "drokafor"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoctorHandler_DuplicateUsernameIsConflict(t *testing.T) {
	handler := handlers.NewDoctorHandler(services.NewDoctorService(newFakeDoctorRepo()))

	rec := httptest.NewRecorder()
	handler.CreateDoctor(rec, createDoctorRequest(`{"username": "drokafor", "password": "pw-one"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.CreateDoctor(rec, createDoctorRequest(`{"username": "drokafor", "password": "pw-two"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
