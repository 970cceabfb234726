package cli

import (
	"errors"
	"fmt"
	"strconv"

	"todoBoard/internal/service"
)

const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitNotFound = 3
)

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch service.CodeOf(err) {
	case service.CodeValidation:
		return ExitInvalid
	case service.CodeNotFound:
		return ExitNotFound
	default:
		return ExitFailure
	}
}

func errorMessage(err error) string {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		if businessErr.Code == service.CodePersistence && businessErr.Err != nil {
			return fmt.Sprintf("Ошибка [%s]: %s: %v", businessErr.Code, businessErr.Message, businessErr.Err)
		}
		return fmt.Sprintf("Ошибка [%s]: %s", businessErr.Code, businessErr.Message)
	}
	return "Ошибка: " + err.Error()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, service.NewValidationError("id", fmt.Sprintf("ожидается положительное число, получено %q", s))
	}
	return id, nil
}
