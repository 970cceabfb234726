package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"todoBoard/internal/logger"
	"todoBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// brokenWriter принимает okWrites записей, потом отказывает
type brokenWriter struct {
	okWrites int
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.okWrites == 0 {
		return 0, errors.New("broken pipe")
	}
	w.okWrites--
	return len(p), nil
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core)
	t.Cleanup(func() { logger.Logger = prev })
	return logs
}

func fixedNow() time.Time {
	return time.Date(2022, 6, 1, 9, 30, 0, 0, time.UTC)
}

func TestOverdueReport_PrintsSnapshot(t *testing.T) {
	logs := observe(t)
	var buf bytes.Buffer

	overdueReport(&buf, fixedNow)([]*task.Task{{ID: 4, Title: "late"}})

	assert.Contains(t, buf.String(), "-- 2022/06/01 09:30:00 --")
	assert.Contains(t, buf.String(), "late")
	assert.Zero(t, logs.FilterLevelExact(zap.ErrorLevel).Len())
}

func TestOverdueReport_LogsWriteFailure(t *testing.T) {
	tests := []struct {
		name     string
		okWrites int
	}{
		{name: "header", okWrites: 0},
		{name: "table", okWrites: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)

			assert.NotPanics(t, func() {
				overdueReport(&brokenWriter{okWrites: tt.okWrites}, fixedNow)([]*task.Task{{ID: 4, Title: "late"}})
			})

			failures := logs.FilterMessage("CLI: Не удалось вывести отчёт о просрочке").All()
			require.Len(t, failures, 1)
			assert.Equal(t, zap.ErrorLevel, failures[0].Level)
			assert.Equal(t, "broken pipe", failures[0].ContextMap()["error"])
		})
	}
}
