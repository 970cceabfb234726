package middleware

import (
	"context"
	"os"
	"time"

	"todoBoard/internal/logger"
	"todoBoard/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type contextKey string

const RunIDKey contextKey = "run_id"

// RunIDEnv позволяет задать id запуска снаружи, например из скрипта
const RunIDEnv = "TODO_RUN_ID"

type RunFunc func(cmd *cobra.Command, args []string) error

type Middleware func(RunFunc) RunFunc

// Chain: первый middleware - внешний
func Chain(run RunFunc, mws ...Middleware) RunFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		run = mws[i](run)
	}
	return run
}

func RunID(next RunFunc) RunFunc {
	return func(cmd *cobra.Command, args []string) error {
		runID := os.Getenv(RunIDEnv)
		if runID == "" {
			runID = uuid.New().String()
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(context.WithValue(ctx, RunIDKey, runID))

		return next(cmd, args)
	}
}

func Logging(next RunFunc) RunFunc {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		runID := GetRunID(cmd.Context())

		logger.Info(
			"CLI_IN: Начало команды",
			zap.String("run_id", runID),
			zap.String("command", cmd.CommandPath()),
			zap.Int("args", len(args)),
		)

		err := next(cmd, args)

		logLevel := zap.InfoLevel
		switch service.CodeOf(err) {
		case "":
			if err != nil {
				logLevel = zap.ErrorLevel
			}
		case service.CodeValidation, service.CodeNotFound:
			logLevel = zap.WarnLevel
		default:
			logLevel = zap.ErrorLevel
		}

		fields := []zap.Field{
			zap.String("run_id", runID),
			zap.String("command", cmd.CommandPath()),
			zap.Duration("ms", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Log(logLevel, "CLI_OUT: Завершение команды", fields...)

		return err
	}
}

func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}
