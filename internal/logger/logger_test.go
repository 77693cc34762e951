package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsUsableBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before init")
		Error(errors.New("boom"))
		WarnCtx(context.Background(), "warn")
	})
}

func TestInitialize(t *testing.T) {
	err := Initialize(Config{
		Debug: true,
		Tags:  map[string]string{"service": "logger-test"},
	})
	require.NoError(t, err)
	require.NotNil(t, Default())

	assert.NotPanics(t, func() {
		Info("info", zap.String("k", "v"))
		InfoCtx(context.Background(), "info ctx")
		Debug("debug")
		DebugCtx(context.Background(), "debug ctx")
		ErrorCtx(context.Background(), nil)
		Flush(10 * time.Millisecond)
	})
}

func TestFromContextNil(t *testing.T) {
	//nolint:staticcheck
	assert.Equal(t, Default(), FromContext(nil))
}

func TestGormWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	GormWriter{Level: zapcore.WarnLevel}.Printf("%s\n[%.3fms] %s\n", "store/db.go:10", 250.0, "SELECT 1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "store/db.go:10\n[250.000ms] SELECT 1", entries[0].Message)
	assert.Equal(t, "gorm", entries[0].ContextMap()["component"])
}

func TestGormWriterRespectsLoggerLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	GormWriter{Level: zapcore.DebugLevel}.Printf("SELECT 1")
	assert.Zero(t, logs.Len())
}
