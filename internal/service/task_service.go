package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"todoBoard/internal/logger"
	"todoBoard/internal/models/task"
	"todoBoard/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики;
// хранилище ничего не валидирует

type TaskService struct {
	repo      TaskRepository
	closeOnce sync.Once
	closeErr  error
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return NewPersistenceError("health_check", err)
	}
	return nil
}

// Close освобождает хранилище ровно один раз
func (s *TaskService) Close() error {
	s.closeOnce.Do(func() {
		if err := s.repo.Close(); err != nil {
			logger.Error("Service: Ошибка закрытия хранилища", err)
			s.closeErr = NewPersistenceError("close", err)
		}
	})
	return s.closeErr
}

func validatePatch(p task.Patch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "название не может быть пустым")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return NewValidationError("priority", fmt.Sprintf("ожидается Low, Medium или High, получено %q", *p.Priority))
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("ожидается To Do, In Progress или Done, получено %q", *p.Status))
	}
	if p.DueDate != nil && !task.ValidDueDate(*p.DueDate) {
		return NewValidationError("due_date", fmt.Sprintf("ожидается дата YYYY-MM-DD, получено %q", *p.DueDate))
	}
	return nil
}

// CreateTask: название обязательно, остальные поля через опции.
// Возвращает запись, перечитанную по назначенному id
func (s *TaskService) Create(ctx context.Context, title string, opts ...task.Option) (*task.Task, error) {
	if strings.TrimSpace(title) == "" {
		logger.Info("Service: Пустое название задачи")
		return nil, NewValidationError("title", "название не может быть пустым")
	}

	patch := task.NewPatch(opts...)
	patch.Title = nil
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	toCreate := &task.Task{Title: title}
	patch.Apply(toCreate)

	id, err := s.repo.Insert(ctx, toCreate)
	if err != nil {
		logger.Error("Service: Не удалось создать задачу", err)
		return nil, NewPersistenceError("insert", err)
	}

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("Service: Не удалось перечитать задачу", err, zap.Int64("task_id", id))
		return nil, NewPersistenceError("get", err)
	}

	logger.Info("Service: Задача создана", zap.Int64("task_id", id))
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id int64) (*task.Task, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, NewPersistenceError("get", err)
	}
	return found, nil
}

// Update: читаем запись, накладываем переданные поля и пишем её целиком
func (s *TaskService) Update(ctx context.Context, id int64, opts ...task.Option) (*task.Task, error) {
	patch := task.NewPatch(opts...)
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	if err := s.repo.Update(ctx, current); err != nil {
		logger.Error("Service: Не удалось обновить задачу", err, zap.Int64("task_id", id))
		return nil, NewPersistenceError("update", err)
	}
	return current, nil
}

// Delete: хранилище удаляет идемпотентно, поэтому отсутствие проверяем сами
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error("Service: Не удалось удалить задачу", err, zap.Int64("task_id", id))
		return NewPersistenceError("delete", err)
	}
	logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) DeleteAll(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, NewPersistenceError("delete_all", err)
	}
	logger.Info("Service: Список очищен", zap.Int64("removed", removed))
	return int(removed), nil
}

func (s *TaskService) List(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, NewPersistenceError("list", err)
	}
	return tasks, nil
}

// Search - O(n) по полному списку, без похода в SQL
func (s *TaskService) Search(ctx context.Context, keyword string) ([]*task.Task, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matching := make([]*task.Task, 0, len(all))
	for _, t := range all {
		if t.MatchesKeyword(keyword) {
			matching = append(matching, t)
		}
	}
	return matching, nil
}

func (s *TaskService) SortByDueDate(ctx context.Context) ([]*task.Task, error) {
	return s.sorted(ctx, repository.SortByDueDate)
}

func (s *TaskService) SortByPriority(ctx context.Context) ([]*task.Task, error) {
	return s.sorted(ctx, repository.SortByPriority)
}

func (s *TaskService) sorted(ctx context.Context, field repository.SortField) ([]*task.Task, error) {
	tasks, err := s.repo.ListSortedBy(ctx, field)
	if err != nil {
		return nil, NewPersistenceError("list_sorted_by", err)
	}
	return tasks, nil
}

func (s *TaskService) SetStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	if !status.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("ожидается To Do, In Progress или Done, получено %q", status))
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current.Status = &status
	if err := s.repo.Update(ctx, current); err != nil {
		logger.Error("Service: Не удалось сменить статус", err, zap.Int64("task_id", id))
		return nil, NewPersistenceError("update", err)
	}
	return current, nil
}

// Overdue - незавершённые задачи со сроком раньше today
func (s *TaskService) Overdue(ctx context.Context, today time.Time) ([]*task.Task, error) {
	tasks, err := s.repo.ListDueBefore(ctx, today.Format(task.DateLayout))
	if err != nil {
		return nil, NewPersistenceError("list_due_before", err)
	}
	return tasks, nil
}
