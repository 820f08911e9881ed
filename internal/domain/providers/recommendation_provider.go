package providers

import (
	"context"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// RecommendationProvider generates lifestyle/follow-up guidance for a scored
// patient. Optional external collaborator: its failure never rolls back or
// blocks a prediction, and absence of recommendations is a valid outcome.
type RecommendationProvider interface {
	// Recommend returns an ordered list of recommendation strings for the
	// disease given the patient's named feature values.
	Recommend(ctx context.Context, disease entities.Disease, features map[string]float64) ([]string, error)
}
