package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).With("run_id", "run_1")

	logger.WarnContext(context.Background(), "skip shot file", "file", "3888701.json", "error", errors.New("match not found"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "skip shot file", entries[0].Message)
	assert.Equal(t, "run_1", fields["run_id"])
	assert.Equal(t, "3888701.json", fields["file"])
	assert.Equal(t, "match not found", fields["error"])
	assert.Contains(t, fields, "dangling")
}

func TestLogger_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(FormatJSON, LevelWarn, &buf)
	logger.Info("hidden")
	logger.Warn("shown", "count", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"count":3`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	assert.NotPanics(t, func() { logger.Info("x") })
}
