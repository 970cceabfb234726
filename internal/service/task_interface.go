package service

import (
	"context"

	"todoBoard/internal/models/task"
	"todoBoard/internal/repository"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Insert(context.Context, *task.Task) (int64, error)
	GetByID(context.Context, int64) (*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, int64) error
	DeleteAll(context.Context) (int64, error)
	List(context.Context) ([]*task.Task, error)
	ListSortedBy(context.Context, repository.SortField) ([]*task.Task, error)
	ListDueBefore(context.Context, string) ([]*task.Task, error)
	Close() error
}
