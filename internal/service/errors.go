package service

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeNotFound    Code = "NOT_FOUND"
	CodePersistence Code = "PERSISTENCE_ERROR"
)

type BusinessError struct {
	Code    Code
	Message string
	Op      string // операция хранилища, только для PERSISTENCE_ERROR
	Details map[string]any
	Err     error
}

// эталоны для errors.Is: сравнение идёт по коду
var (
	ErrInvalidInput = &BusinessError{Code: CodeValidation}
	ErrNotFound     = &BusinessError{Code: CodeNotFound}
	ErrPersistence  = &BusinessError{Code: CodePersistence}
)

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func (b *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Code == b.Code
}

// CodeOf отдаёт код бизнес-ошибки или "" для всего остального
func CodeOf(err error) Code {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Code
	}
	return ""
}

func NewNotFound(id int64) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("задача %d не найдена", id),
		Details: map[string]any{
			"resource": "task",
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewPersistenceError(op string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("ошибка хранилища при операции %s", op),
		Op:      op,
		Details: map[string]any{
			"op": op,
		},
		Err: err,
	}
}
