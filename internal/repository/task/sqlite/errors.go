package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"errors"

	repo "todoBoard/internal/repository"

	"github.com/mattn/go-sqlite3"
)

// classify раскладывает ошибку драйвера по видам отказа хранилища
func classify(op string, err error) error {
	kind := repo.ErrQuery

	var sqliteErr sqlite3.Error
	switch {
	case errors.As(err, &sqliteErr):
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			kind = repo.ErrConstraint
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr, sqlite3.ErrCorrupt, sqlite3.ErrNotADB,
			sqlite3.ErrFull, sqlite3.ErrPerm, sqlite3.ErrReadonly, sqlite3.ErrBusy, sqlite3.ErrLocked:
			kind = repo.ErrConnection
		}
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		kind = repo.ErrConnection
	}

	return repo.NewStoreError(kind, op, err)
}
