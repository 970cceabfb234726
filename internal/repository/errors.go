package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound - не ошибка хранилища, а результат "строки нет"
var ErrNotFound = errors.New("задача не найдена")

// виды отказов хранилища
var (
	ErrConnection   = errors.New("ошибка подключения")
	ErrConstraint   = errors.New("нарушение ограничения")
	ErrQuery        = errors.New("ошибка запроса")
	ErrClosed       = errors.New("хранилище закрыто")
	ErrInvalidField = errors.New("недопустимое поле сортировки")
)

type StoreError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// errors.Is срабатывает и на вид, и на исходную ошибку драйвера
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewStoreError(kind error, op string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Err: err}
}
