package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"neighborhood/config"
	deliverycontext "neighborhood/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferLogger(&buf), &config.Config{})
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "missing records are not errors")

	l.Trace(ctx, time.Now(), sqlFn, nil)
	assert.Empty(t, buf.String(), "fast queries stay quiet below info")

	l.Trace(ctx, time.Now(), sqlFn, errors.New("deadlock detected"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "deadlock detected")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, request bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true
	l := newGormSlogLogger(newBufferLogger(&base), cfg)

	ctx := deliverycontext.WithLogger(context.Background(), newBufferLogger(&request).With(slog.String("request_id", "req-1")))
	l.Trace(ctx, time.Now(), sqlFn, nil)

	assert.Empty(t, base.String())
	assert.Contains(t, request.String(), "request_id=req-1")
	assert.Contains(t, request.String(), "SELECT 1")
}
