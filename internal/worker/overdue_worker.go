package worker

import (
	"context"
	"time"

	"todoBoard/internal/logger"
	"todoBoard/internal/models/task"

	"go.uber.org/zap"
)

const DefaultInterval = 5 * time.Minute

type OverdueSource interface {
	Overdue(ctx context.Context, today time.Time) ([]*task.Task, error)
}

// OverdueWorker периодически отдаёт в report просроченные задачи.
// Статусы не меняются: просрочка вычисляется, а не хранится
type OverdueWorker struct {
	source   OverdueSource
	interval time.Duration
	report   func([]*task.Task)
	now      func() time.Time
}

func NewOverdueWorker(source OverdueSource, interval time.Duration, report func([]*task.Task)) *OverdueWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &OverdueWorker{
		source:   source,
		interval: interval,
		report:   report,
		now:      time.Now,
	}
}

// Start делает первую проверку сразу и дальше по тикеру до отмены ctx
func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

// Check возвращает число просроченных задач или -1, если проверка не удалась
func (w *OverdueWorker) Check(ctx context.Context) int {
	start := time.Now()

	late, err := w.source.Overdue(ctx, w.now())
	if err != nil {
		logger.Warn("Worker: Ошибка получения задач", zap.Error(err))
		return -1
	}

	if w.report != nil {
		w.report(late)
	}

	logger.Info(
		"Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("overdue", len(late)),
	)
	return len(late)
}
