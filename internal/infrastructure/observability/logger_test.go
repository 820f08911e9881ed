package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_SetsLevelPerEnvironment(t *testing.T) {
	InitLogger("mediscope-backend", "production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	InitLogger("mediscope-backend", "development")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestLoggerFromContext_NoActiveSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.Same(t, GetLogger(), logger, "without a span the global logger is returned")
}
