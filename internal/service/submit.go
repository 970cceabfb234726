package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todoBoard/internal/models/task"
)

// EditDateLayout - формат даты в форме редактирования
const EditDateLayout = "2006/01/02"

const (
	MsgDateFormat = "Неверный формат даты: используйте ГГГГ/ММ/ДД"
	MsgDateValues = "Неверная дата: такого месяца или дня не существует"
	MsgSaved      = "Задача сохранена"
)

var editDatePattern = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)

var (
	errDateFormat = errors.New("date format")
	errDateValues = errors.New("date values")
)

type EditResult struct {
	Saved   bool
	Message string
	Task    *task.Task
}

// ParseEditDate переводит ГГГГ/ММ/ДД в канонический YYYY-MM-DD
func ParseEditDate(text string) (string, error) {
	m := editDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", errDateFormat
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 {
		return "", errDateValues
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		return "", errDateValues
	}
	return date.Format(task.DateLayout), nil
}

// SubmitEdit обслуживает форму редактирования: ошибки ввода возвращаются
// сообщением в EditResult, error только для NOT_FOUND и PERSISTENCE_ERROR.
// Пустые после trim поля считаются непереданными
func (s *TaskService) SubmitEdit(ctx context.Context, id int64, title, priority, status, dueDateText string) (EditResult, error) {
	var opts []task.Option

	if strings.TrimSpace(title) != "" {
		opts = append(opts, task.WithTitle(title))
	}
	opts = append(opts,
		task.WithPriority(task.Priority(strings.TrimSpace(priority))),
		task.WithStatus(task.Status(strings.TrimSpace(status))),
	)

	if due := strings.TrimSpace(dueDateText); due != "" {
		iso, err := ParseEditDate(due)
		switch {
		case errors.Is(err, errDateFormat):
			return EditResult{Message: MsgDateFormat}, nil
		case err != nil:
			return EditResult{Message: MsgDateValues}, nil
		}
		opts = append(opts, task.WithDueDate(iso))
	}

	updated, err := s.Update(ctx, id, opts...)
	if err != nil {
		var businessErr *BusinessError
		if errors.As(err, &businessErr) && businessErr.Code == CodeValidation {
			return EditResult{Message: businessErr.Message}, nil
		}
		return EditResult{}, err
	}
	return EditResult{Saved: true, Message: MsgSaved, Task: updated}, nil
}
