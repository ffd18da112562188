package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashreel/internal/logger"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("debug line")
	log.Info("info line")
	log.Warn("warn line")
	log.Error("error %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "WARN  ")
	assert.Contains(t, out, "warn line")
	assert.Contains(t, out, "error 42")
}

func TestLogger_FieldsSortedAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("review_repo").
		WithFields(map[string]any{"user_id": "u1", "card_id": "c1"})

	log.Info("appended")

	line := buf.String()
	assert.Contains(t, line, "[review_repo]")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(line), "appended card_id=c1 user_id=u1"), line)
}

func TestLogger_DerivedLoggersDoNotShareFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	child := base.WithField("request_id", "abc")

	base.Info("from base")
	assert.NotContains(t, buf.String(), "request_id")

	child.Info("from child")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
	assert.Equal(t, "UNKNOWN", logger.Level(9).String())
}

func TestContextRoundTrip(t *testing.T) {
	l := logger.New(logger.WithPrefix("ctx"))
	ctx := logger.NewContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
