package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	"github.com/mediscope-ai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/mediscope-ai/backend/pkg/errors"
)

// PatientRecordAdapter implements patient record persistence in Postgres.
// It is a plain keyed persistence layer: callers serialize concurrent
// upserts for the same identity key.
type PatientRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientRecordAdapter creates a new patient record adapter.
func NewPatientRecordAdapter(client *postgres.Client) repositories.PatientRecordRepository {
	return &PatientRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var recordColumns = []any{
	"id", "doctor_id", "name", "disease", "age",
	"features", "score", "risk_tier", "created_at", "updated_at",
}

// keyExpr matches the full identity key. A nil age must match stored NULL,
// not be skipped: a NULL-age record is its own identity.
func keyExpr(key repositories.PatientRecordKey) goqu.Ex {
	ex := goqu.Ex{
		"doctor_id": key.DoctorID,
		"name":      key.Name,
		"disease":   string(key.Disease),
	}
	if key.Age != nil {
		ex["age"] = *key.Age
	} else {
		ex["age"] = nil
	}
	return ex
}

// GetByKey retrieves the record for the full identity key.
func (a *PatientRecordAdapter) GetByKey(ctx context.Context, key repositories.PatientRecordKey) (*entities.PatientRecord, error) {
	query, args, err := a.db.Select(recordColumns...).
		From("patient_records").
		Where(keyExpr(key)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build record query", err)
	}

	record, err := scanRecord(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf(
			"no record for patient %q, disease %q", key.Name, string(key.Disease)))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient record", err)
	}
	return record, nil
}

// Upsert writes the record under its identity key, overwriting the feature
// snapshot, score and tier of an existing record or inserting a new one.
func (a *PatientRecordAdapter) Upsert(ctx context.Context, record *entities.PatientRecord) (string, error) {
	key := repositories.PatientRecordKey{
		DoctorID: record.DoctorID,
		Name:     record.Name,
		Disease:  record.Disease,
		Age:      record.Age,
	}

	features, err := json.Marshal(record.Features)
	if err != nil {
		return "", apperrors.NewInternalError("failed to serialize feature vector", err)
	}

	existing, err := a.GetByKey(ctx, key)
	if err == nil {
		now := time.Now().UTC()
		query, args, qerr := a.db.Update("patient_records").
			Set(goqu.Record{
				"features":   string(features),
				"score":      record.Score,
				"risk_tier":  string(record.Tier),
				"updated_at": now,
			}).
			Where(goqu.Ex{"id": existing.ID}).
			ToSQL()
		if qerr != nil {
			return "", apperrors.NewInternalError("failed to build record update", qerr)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return "", apperrors.NewUnavailableError("failed to update patient record", err)
		}
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.UpdatedAt = now
		return existing.ID, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return "", apperrors.NewUnavailableError("failed to look up patient record", err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	row := goqu.Record{
		"id":         record.ID,
		"doctor_id":  record.DoctorID,
		"name":       record.Name,
		"disease":    string(record.Disease),
		"features":   string(features),
		"score":      record.Score,
		"risk_tier":  string(record.Tier),
		"created_at": record.CreatedAt,
		"updated_at": record.UpdatedAt,
	}
	if record.Age != nil {
		row["age"] = *record.Age
	} else {
		row["age"] = nil
	}

	query, args, err := a.db.Insert("patient_records").Rows(row).ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build record insert", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return "", apperrors.NewUnavailableError("failed to create patient record", err)
	}
	return record.ID, nil
}

// ListByPatient returns every record for (doctor, name, disease) regardless
// of age, in creation order. No rows is an empty slice, not an error.
func (a *PatientRecordAdapter) ListByPatient(ctx context.Context, doctorID, name string, disease entities.Disease) ([]*entities.PatientRecord, error) {
	query, args, err := a.db.Select(recordColumns...).
		From("patient_records").
		Where(goqu.Ex{
			"doctor_id": doctorID,
			"name":      name,
			"disease":   string(disease),
		}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build record list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patient records", err)
	}
	defer rows.Close()

	records := []*entities.PatientRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate patient records", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entities.PatientRecord, error) {
	record := &entities.PatientRecord{}
	var (
		age      sql.NullInt64
		disease  string
		tier     string
		features []byte
	)

	err := row.Scan(
		&record.ID,
		&record.DoctorID,
		&record.Name,
		&disease,
		&age,
		&features,
		&record.Score,
		&tier,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Disease = entities.Disease(disease)
	record.Tier = entities.RiskTier(tier)
	if age.Valid {
		v := int(age.Int64)
		record.Age = &v
	}
	if err := json.Unmarshal(features, &record.Features); err != nil {
		return nil, fmt.Errorf("corrupt feature vector: %w", err)
	}
	return record, nil
}
