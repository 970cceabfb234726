package logger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoBoard/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = prev })
	return logs
}

func TestInit(t *testing.T) {
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	require.NoError(t, logger.Init(true, "debug"))
	require.NoError(t, logger.Init(false, ""))

	err := logger.Init(false, "loud")
	assert.Error(t, err)
}

func TestGormLogger_SlowQuery(t *testing.T) {
	logs := observe(t)
	l := logger.NewGormLogger(time.Millisecond)

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Repository: Медленный запрос", entry.Message)
	assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
}

func TestGormLogger_ErrorAndSilent(t *testing.T) {
	logs := observe(t)
	l := logger.NewGormLogger(time.Second)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT", 0
	}, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("Repository: Ошибка запроса").Len())

	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT", 0
	}, errors.New("boom"))
	silent.Warn(context.Background(), "ignored %d", 1)
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_FastQueryIsQuietAtWarn(t *testing.T) {
	logs := observe(t)
	l := logger.NewGormLogger(time.Hour)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
	assert.Equal(t, 0, logs.Len())
}
