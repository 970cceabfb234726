package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"todoBoard/internal/config"
	"todoBoard/internal/logger"
	"todoBoard/internal/repository/task/sqlite"
	"todoBoard/internal/service"

	"go.uber.org/zap"
)

type App struct {
	config       *config.Config
	service      *service.TaskService
	shutdowns    []func() // функции для освобождения ресурсов, вызываются в обратном порядке
	shutdownOnce sync.Once
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if a.config == nil {
		return errors.New("не передана конфигурация")
	}

	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Debug("Завершение работы логгирования...")
		logger.Sync()
	})

	storage, err := sqlite.New(ctx, a.config.Store.Path, a.config.Store.SlowThreshold)
	if err != nil {
		return fmt.Errorf("открытие хранилища: %w", err)
	}

	a.service = service.NewTaskService(storage)
	a.shutdowns = append(a.shutdowns, func() {
		logger.Debug("Закрытие хранилища...", zap.String("path", a.config.Store.Path))
		if err := a.service.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища", err)
		}
	})

	return nil
}

func (a *App) Service() *service.TaskService {
	return a.service
}

func (a *App) Config() *config.Config {
	return a.config
}

// Shutdown идемпотентен: ресурсы освобождаются ровно один раз
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		for i := len(a.shutdowns) - 1; i >= 0; i-- {
			a.shutdowns[i]()
		}
	})
}

// Run открывает хранилище, выполняет fn и освобождает всё даже при ошибке или панике в fn
func Run(ctx context.Context, cfg *config.Config, fn func(context.Context, *service.TaskService) error) error {
	a := New(cfg)
	defer a.Shutdown()

	if err := a.Init(ctx); err != nil {
		return err
	}
	return fn(ctx, a.service)
}
