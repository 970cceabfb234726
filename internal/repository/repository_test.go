package repository_test

import (
	"errors"
	"testing"

	"todoBoard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause_AllowList(t *testing.T) {
	for _, field := range []repository.SortField{repository.SortByDueDate, repository.SortByPriority} {
		clause, err := repository.OrderClause(field)
		require.NoError(t, err)
		assert.NotEmpty(t, clause)
	}

	for _, bad := range []string{"", "title", "id; DROP TABLE todo_items", "PRIORITY"} {
		_, err := repository.OrderClause(repository.SortField(bad))
		assert.ErrorIs(t, err, repository.ErrInvalidField, bad)

		_, err = repository.ParseSortField(bad)
		assert.ErrorIs(t, err, repository.ErrInvalidField, bad)
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := repository.NewStoreError(repository.ErrConnection, "insert", cause)

	assert.ErrorIs(t, err, repository.ErrConnection)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, repository.ErrQuery)
	assert.Contains(t, err.Error(), "insert")
	assert.Contains(t, err.Error(), "disk I/O error")

	var storeErr *repository.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "insert", storeErr.Op)

	bare := repository.NewStoreError(repository.ErrClosed, "get", nil)
	assert.ErrorIs(t, bare, repository.ErrClosed)
	assert.Equal(t, "get: хранилище закрыто", bare.Error())
}
