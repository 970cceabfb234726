package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"todoBoard/internal/logger"
	"todoBoard/internal/models/task"
	repo "todoBoard/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryPath - эфемерная база, живёт пока открыто хранилище
const MemoryPath = ":memory:"

const schema = `CREATE TABLE IF NOT EXISTS todo_items(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT,
	priority TEXT,
	status TEXT,
	due_date TEXT
)`

type taskRow struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Title    *string `gorm:"column:title"`
	Priority *string `gorm:"column:priority"`
	Status   *string `gorm:"column:status"`
	DueDate  *string `gorm:"column:due_date"`
}

func (taskRow) TableName() string {
	return "todo_items"
}

type Storage struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	mtx    sync.RWMutex
	closed bool
}

func New(ctx context.Context, path string, slowThreshold time.Duration) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, repo.NewStoreError(repo.ErrConnection, "open", errors.New("не задан путь к базе"))
	}

	if err := ensureDir(path); err != nil {
		logger.Error("Repository: Не удалось создать каталог базы", err, zap.String("path", path))
		return nil, repo.NewStoreError(repo.ErrConnection, "open", err)
	}

	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		logger.Error("Repository: Ошибка открытия базы", err, zap.String("path", path))
		return nil, repo.NewStoreError(repo.ErrConnection, "open", err)
	}

	// одно соединение на хранилище: для ":memory:" это ещё и единственная копия данных
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		logger.Error("Repository: Неудачная проверка ping", err, zap.String("path", path))
		return nil, repo.NewStoreError(repo.ErrConnection, "open", err)
	}

	db, err := gorm.Open(&sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:                 logger.NewGormLogger(slowThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		sqlDB.Close()
		logger.Error("Repository: Ошибка инициализации gorm", err)
		return nil, repo.NewStoreError(repo.ErrConnection, "open", err)
	}

	s := &Storage{db: db, sqlDB: sqlDB}
	if err := s.Initialize(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("Repository: Успешное подключение к SQLite", zap.String("path", path))
	return s, nil
}

// ensureDir создаёт родительский каталог для файла базы
func ensureDir(path string) error {
	if path == MemoryPath || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание каталога %q: %w", dir, err)
	}
	return nil
}

func (s *Storage) conn(op string) (*gorm.DB, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.closed {
		return nil, repo.NewStoreError(repo.ErrClosed, op, nil)
	}
	return s.db, nil
}

// Initialize идемпотентна: схема создаётся только если её нет
func (s *Storage) Initialize(ctx context.Context) error {
	db, err := s.conn("initialize")
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Exec(schema).Error; err != nil {
		logger.Error("Repository: Не удалось создать таблицу", err)
		return classify("initialize", err)
	}
	return nil
}

func (s *Storage) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.sqlDB.Close(); err != nil {
		logger.Error("Repository: Ошибка закрытия соединения", err)
		return classify("close", err)
	}
	logger.Info("Repository: Соединение с SQLite закрыто")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if _, err := s.conn("health_check"); err != nil {
		return err
	}

	if err := s.sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return repo.NewStoreError(repo.ErrConnection, "health_check", err)
	}
	return nil
}

// Insert всегда отдаёт назначение id базе, id на входе игнорируется
func (s *Storage) Insert(ctx context.Context, taskToCreate *task.Task) (int64, error) {
	db, err := s.conn("insert")
	if err != nil {
		return 0, err
	}

	row := toRow(taskToCreate)
	row.ID = 0

	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return 0, classify("insert", err)
	}
	return row.ID, nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	db, err := s.conn("get")
	if err != nil {
		return nil, err
	}

	var row taskRow
	err = db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Int64("task_id", id))
		return nil, classify("get", err)
	}
	return row.toTask(), nil
}

// Update перезаписывает запись целиком; несуществующий id - тихий no-op
func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	db, err := s.conn("update")
	if err != nil {
		return err
	}

	row := toRow(taskToUpdate)
	res := db.WithContext(ctx).Model(&taskRow{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"title":    nullable(row.Title),
		"priority": nullable(row.Priority),
		"status":   nullable(row.Status),
		"due_date": nullable(row.DueDate),
	})
	if res.Error != nil {
		logger.Error("Repository: Не удалось обновить задачу", res.Error, zap.Int64("task_id", row.ID))
		return classify("update", res.Error)
	}
	if res.RowsAffected == 0 {
		logger.Debug("Repository: Обновление без строки", zap.Int64("task_id", row.ID))
	}
	return nil
}

// Delete идемпотентна
func (s *Storage) Delete(ctx context.Context, id int64) error {
	db, err := s.conn("delete")
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Where("id = ?", id).Delete(&taskRow{}).Error; err != nil {
		logger.Error("Repository: Удаление задачи", err, zap.Int64("task_id", id))
		return classify("delete", err)
	}
	return nil
}

func (s *Storage) DeleteAll(ctx context.Context) (int64, error) {
	db, err := s.conn("delete_all")
	if err != nil {
		return 0, err
	}

	res := db.WithContext(ctx).Exec("DELETE FROM todo_items")
	if res.Error != nil {
		logger.Error("Repository: Очистка таблицы", res.Error)
		return 0, classify("delete_all", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	db, err := s.conn("list")
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, classify("list", err)
	}
	return toTasks(rows), nil
}

func (s *Storage) ListSortedBy(ctx context.Context, field repo.SortField) ([]*task.Task, error) {
	db, err := s.conn("list_sorted_by")
	if err != nil {
		return nil, err
	}

	// поле проверяется по белому списку до построения запроса
	order, err := repo.OrderClause(field)
	if err != nil {
		logger.Warn("Repository: Недопустимое поле сортировки", zap.String("field", string(field)))
		return nil, err
	}

	var rows []taskRow
	if err := db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.String("field", string(field)))
		return nil, classify("list_sorted_by", err)
	}
	return toTasks(rows), nil
}

// ListDueBefore - незавершённые задачи со сроком строго раньше date (YYYY-MM-DD)
func (s *Storage) ListDueBefore(ctx context.Context, date string) ([]*task.Task, error) {
	db, err := s.conn("list_due_before")
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	err = db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND (status IS NULL OR status <> ?)", date, string(task.StatusDone)).
		Order("due_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Repository: Не удалось получить просроченные задачи", err)
		return nil, classify("list_due_before", err)
	}
	return toTasks(rows), nil
}

func toRow(t *task.Task) taskRow {
	title := t.Title
	row := taskRow{ID: t.ID, Title: &title}
	if t.Priority != nil {
		p := string(*t.Priority)
		row.Priority = &p
	}
	if t.Status != nil {
		st := string(*t.Status)
		row.Status = &st
	}
	if t.DueDate != nil {
		d := *t.DueDate
		row.DueDate = &d
	}
	return row
}

func (r taskRow) toTask() *task.Task {
	t := &task.Task{ID: r.ID}
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Priority != nil {
		p := task.Priority(*r.Priority)
		t.Priority = &p
	}
	if r.Status != nil {
		st := task.Status(*r.Status)
		t.Status = &st
	}
	if r.DueDate != nil {
		d := *r.DueDate
		t.DueDate = &d
	}
	return t
}

func toTasks(rows []taskRow) []*task.Task {
	tasks := make([]*task.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toTask())
	}
	return tasks
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
