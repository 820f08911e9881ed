package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/providers"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	"github.com/mediscope-ai/backend/internal/infrastructure/observability"
)

// CachedPatientRecordAdapter wraps a PatientRecordRepository with a
// read-through cache on history queries. Upserts write through to the store
// and invalidate the patient's cached history so a reread never sees a stale
// score or tier.
type CachedPatientRecordAdapter struct {
	adapter repositories.PatientRecordRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedPatientRecordAdapter creates a new cached patient record adapter.
func NewCachedPatientRecordAdapter(
	adapter repositories.PatientRecordRepository,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) repositories.PatientRecordRepository {
	return &CachedPatientRecordAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

const historyTTL = 5 * time.Minute

func historyCacheKey(doctorID, name string, disease entities.Disease) string {
	return fmt.Sprintf("records:%s:%s:%s", doctorID, string(disease), name)
}

// GetByKey delegates straight to the store: key lookups feed upserts and
// must always see current state.
func (a *CachedPatientRecordAdapter) GetByKey(ctx context.Context, key repositories.PatientRecordKey) (*entities.PatientRecord, error) {
	return a.adapter.GetByKey(ctx, key)
}

// Upsert writes through and drops the patient's cached history.
func (a *CachedPatientRecordAdapter) Upsert(ctx context.Context, record *entities.PatientRecord) (string, error) {
	id, err := a.adapter.Upsert(ctx, record)
	if err != nil {
		return "", err
	}

	cacheKey := historyCacheKey(record.DoctorID, record.Name, record.Disease)
	if cerr := a.cache.Delete(ctx, cacheKey); cerr != nil {
		observability.LoggerFromContext(ctx).Warn().Err(cerr).
			Str("cache_key", cacheKey).
			Msg("failed to invalidate record history cache")
	}
	return id, nil
}

// ListByPatient serves history from cache when possible.
func (a *CachedPatientRecordAdapter) ListByPatient(ctx context.Context, doctorID, name string, disease entities.Disease) ([]*entities.PatientRecord, error) {
	cacheKey := historyCacheKey(doctorID, name, disease)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var records []*entities.PatientRecord
		if err := json.Unmarshal(cached, &records); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, "records")
			return records, nil
		}
	}
	observability.RecordCacheMiss(ctx, a.metrics, "records")

	records, err := a.adapter.ListByPatient(ctx, doctorID, name, disease)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if cerr := a.cache.Set(ctx, cacheKey, data, historyTTL); cerr != nil {
			observability.LoggerFromContext(ctx).Warn().Err(cerr).
				Str("cache_key", cacheKey).
				Msg("failed to cache record history")
		}
	}
	return records, nil
}
