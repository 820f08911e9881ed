package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mediscope-ai/backend/internal/domain/entities"
	"github.com/mediscope-ai/backend/internal/domain/providers"
	"github.com/mediscope-ai/backend/internal/domain/repositories"
	"github.com/mediscope-ai/backend/internal/domain/schema"
	"github.com/mediscope-ai/backend/internal/infrastructure/observability"
	"github.com/mediscope-ai/backend/internal/ml"
)

// PredictionInput is the caller-facing request surface of the engine. The
// doctor id comes from the authenticated caller context, never from the
// form payload. An empty PatientName disables persistence for the call.
type PredictionInput struct {
	DoctorID    string
	Disease     entities.Disease
	Model       entities.ModelKind
	PatientName string
	Age         *int
	Features    map[string]string
}

// PredictionService runs the prediction pipeline: encode, scale, infer,
// classify, persist, enrich. Every validation, scaling or inference failure
// is terminal for its request and leaves no partial state.
type PredictionService struct {
	registry    *ml.Registry
	records     repositories.PatientRecordRepository
	recommender providers.RecommendationProvider
	metrics     *observability.Metrics

	// upsertLocks serializes lookup-then-write for upserts that target the
	// same identity key. Striped: a hash collision only over-serializes.
	upsertLocks [64]sync.Mutex
}

// NewPredictionService creates a prediction service. recommender may be nil
// to disable the enrichment step; metrics may be nil in tests.
func NewPredictionService(
	registry *ml.Registry,
	records repositories.PatientRecordRepository,
	recommender providers.RecommendationProvider,
	metrics *observability.Metrics,
) *PredictionService {
	return &PredictionService{
		registry:    registry,
		records:     records,
		recommender: recommender,
		metrics:     metrics,
	}
}

// Predict runs one prediction request end to end.
//
// The score persisted and returned is the raw backend value: exactly 0.0 or
// 1.0 for the six discrete backends, a probability for DL. Recommendations
// are fetched only after persistence succeeds, and their failure never
// fails the request.
func (s *PredictionService) Predict(ctx context.Context, input PredictionInput) (*entities.PredictionResult, error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "prediction.predict")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("prediction.disease", string(input.Disease)),
		attribute.String("prediction.model", string(input.Model)),
	)
	logger := observability.LoggerFromContext(ctx)

	fail := func(outcome string, err error) (*entities.PredictionResult, error) {
		observability.RecordError(span, err)
		observability.RecordPredictionMetric(ctx, s.metrics,
			string(input.Disease), string(input.Model), outcome, time.Since(start))
		return nil, err
	}

	if !input.Model.Valid() {
		return fail("unknown_model", &entities.UnknownModelError{Disease: input.Disease, Model: input.Model})
	}

	vector, err := schema.Encode(input.Disease, input.Features)
	if err != nil {
		return fail("rejected", err)
	}

	scaled, err := s.registry.Scale(input.Disease, vector)
	if err != nil {
		return fail("scaling_failed", err)
	}

	score, err := s.registry.Predict(input.Disease, input.Model, scaled)
	if err != nil {
		return fail("inference_failed", err)
	}

	result := &entities.PredictionResult{
		Disease: input.Disease,
		Model:   input.Model,
		Outcome: entities.PredictionOutcome{
			Score: score,
			Tier:  entities.ClassifyRisk(score),
		},
	}

	if input.PatientName != "" {
		recordID, err := s.persist(ctx, input, vector, result.Outcome)
		if err != nil {
			return fail("persistence_failed", err)
		}
		result.RecordID = recordID
	}

	result.Recommendations = s.recommend(ctx, input.Disease, vector)

	logger.Info().
		Str("disease", string(input.Disease)).
		Str("model", string(input.Model)).
		Float64("score", score).
		Str("risk_tier", string(result.Outcome.Tier)).
		Bool("persisted", result.RecordID != "").
		Msg("prediction completed")
	observability.RecordPredictionMetric(ctx, s.metrics,
		string(input.Disease), string(input.Model), "completed", time.Since(start))
	return result, nil
}

// persist upserts the outcome under the record's identity key, holding the
// key's lock across the lookup-then-write so concurrent predictions for the
// same patient cannot create duplicate records.
func (s *PredictionService) persist(ctx context.Context, input PredictionInput, vector entities.FeatureVector, outcome entities.PredictionOutcome) (string, error) {
	lock := &s.upsertLocks[s.lockIndex(input)]
	lock.Lock()
	defer lock.Unlock()

	return s.records.Upsert(ctx, &entities.PatientRecord{
		DoctorID: input.DoctorID,
		Name:     input.PatientName,
		Disease:  input.Disease,
		Age:      input.Age,
		Features: vector.Clone(),
		Score:    outcome.Score,
		Tier:     outcome.Tier,
	})
}

func (s *PredictionService) lockIndex(input PredictionInput) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", input.DoctorID, input.PatientName, string(input.Disease))
	if input.Age != nil {
		fmt.Fprintf(h, "%d", *input.Age)
	}
	return h.Sum32() % uint32(len(s.upsertLocks))
}

// recommend runs the optional enrichment step. Failures are logged and
// swallowed: no recommendations is a valid success outcome.
func (s *PredictionService) recommend(ctx context.Context, disease entities.Disease, vector entities.FeatureVector) []string {
	if s.recommender == nil {
		return nil
	}

	features, err := schema.FeatureMap(disease, vector)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("skipping recommendations")
		return nil
	}

	recs, err := s.recommender.Recommend(ctx, disease, features)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("disease", string(disease)).
			Msg("recommendation generation failed")
		return nil
	}
	return recs
}
