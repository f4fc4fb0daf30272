package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"tracker/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_LevelFollowsDebugFlag(t *testing.T) {
	cfg := &config.Config{}
	l := newGormSlogLogger(nil, cfg).(*gormSlogLogger)
	assert.Equal(t, logger.Warn, l.level)
	assert.Equal(t, defaultGormSlowThreshold, l.slowThreshold)

	cfg.Env.Debug = true
	cfg.Env.Log.SlowQuery = time.Second
	l = newGormSlogLogger(nil, cfg).(*gormSlogLogger)
	assert.Equal(t, logger.Info, l.level)
	assert.Equal(t, time.Second, l.slowThreshold)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), &config.Config{})
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sqlFn("SELECT 1"), nil)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), sqlFn("SELECT missing"), gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), sqlFn("SELECT broken"), errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "syntax error")

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT slow"), nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), sqlFn("SELECT broken"), errors.New("boom"))
	assert.Empty(t, buf.String())
}
