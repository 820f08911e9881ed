package ml

import (
	"fmt"

	"github.com/mediscope-ai/backend/internal/domain/entities"
)

// ScalingError reports a vector whose shape is incompatible with a fitted
// scaler. A validated request never produces one: the encoder already pins
// the vector length to the schema.
type ScalingError struct {
	Disease entities.Disease
	Got     int
	Want    int
}

func (e *ScalingError) Error() string {
	return fmt.Sprintf("scaler for %q expects %d features, got %d",
		string(e.Disease), e.Want, e.Got)
}

// InferenceError wraps any failure raised by a backend during inference.
// Terminal: no partial score is returned and nothing is persisted.
type InferenceError struct {
	Disease entities.Disease
	Model   entities.ModelKind
	Cause   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed for %s/%s: %v",
		string(e.Disease), string(e.Model), e.Cause)
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}
