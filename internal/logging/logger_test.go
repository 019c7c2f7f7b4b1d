package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonlexer/commonlexer/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(test.level)
			require.NotNil(t, logger)
			assert.Equal(t, test.expected, logger.GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("parsed", logging.FieldNodes, 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "parsed")
	assert.Contains(t, buf.String(), "nodes=3")
}

func TestSetLevel(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("falls back to the default logger", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("returns the attached logger", func(t *testing.T) {
		t.Parallel()
		logger := logging.New("debug")
		ctx := logging.WithLogger(context.Background(), logger)
		assert.Same(t, logger, logging.FromContext(ctx))
	})
}
