package service_test

import (
	"context"
	"testing"
	"time"

	"todoBoard/internal/models/task"
	"todoBoard/internal/repository/task/sqlite"
	"todoBoard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *service.TaskService {
	t.Helper()

	storage, err := sqlite.New(context.Background(), sqlite.MemoryPath, time.Second)
	require.NoError(t, err)

	svc := service.NewTaskService(storage)
	t.Cleanup(func() {
		assert.NoError(t, svc.Close())
	})
	return svc
}

func titles(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestService_CreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "Write report",
		task.WithPriority(task.PriorityMedium),
		task.WithDueDate("2022-01-10"),
	)
	require.NoError(t, err)
	require.True(t, created.Persisted())
	assert.Nil(t, created.Status)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestService_BlankTitlePersistsNothing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, title := range []string{"", "   "} {
		_, err := svc.Create(ctx, title)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_PartialUpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "Old Title",
		task.WithPriority(task.PriorityLow),
		task.WithStatus(task.StatusToDo),
		task.WithDueDate("2022-01-01"),
	)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, task.WithTitle("New Title"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, task.PriorityLow, *got.Priority)
	assert.Equal(t, task.StatusToDo, *got.Status)
	assert.Equal(t, "2022-01-01", *got.DueDate)
}

func TestService_DeleteTwiceIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "temp")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), service.ErrNotFound)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestService_SortByPriority(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, p := range []task.Priority{task.PriorityLow, task.PriorityHigh, task.PriorityMedium} {
		_, err := svc.Create(ctx, string(p), task.WithPriority(p))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "none")
	require.NoError(t, err)

	sorted, err := svc.SortByPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Medium", "Low", "none"}, titles(sorted))
	assert.Nil(t, sorted[3].Priority)
}

func TestService_SortByDueDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, d := range []string{"2022-03-01", "2022-01-01", "2022-02-01"} {
		_, err := svc.Create(ctx, d, task.WithDueDate(d))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "someday")
	require.NoError(t, err)

	sorted, err := svc.SortByDueDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-01-01", "2022-02-01", "2022-03-01", "someday"}, titles(sorted))
}

func TestService_SearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, title := range []string{"Buy milk", "Walk dog", "Recycle"} {
		_, err := svc.Create(ctx, title)
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "le")
	require.NoError(t, err)
	assert.Equal(t, []string{"Recycle"}, titles(found))

	found, err = svc.Search(ctx, "RECY")
	require.NoError(t, err)
	assert.Equal(t, []string{"Recycle"}, titles(found))

	found, err = svc.Search(ctx, "l")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk", "Walk dog", "Recycle"}, titles(found))

	none, err := svc.Search(ctx, "xyz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_SubmitEditRejectsDatesWithoutWriting(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, "Report", task.WithDueDate("2022-01-01"))
	require.NoError(t, err)

	res, err := svc.SubmitEdit(ctx, created.ID, "Changed", "", "", "2022/13/01")
	require.NoError(t, err)
	assert.Equal(t, service.MsgDateValues, res.Message)

	res, err = svc.SubmitEdit(ctx, created.ID, "Changed", "", "", "13-01-2022")
	require.NoError(t, err)
	assert.Equal(t, service.MsgDateFormat, res.Message)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	res, err = svc.SubmitEdit(ctx, created.ID, "Changed", "High", "Done", "2022/02/28")
	require.NoError(t, err)
	require.True(t, res.Saved)

	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Title)
	assert.Equal(t, task.PriorityHigh, *got.Priority)
	assert.Equal(t, task.StatusDone, *got.Status)
	assert.Equal(t, "2022-02-28", *got.DueDate)
}

func TestService_BoardAndOverdue(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, "unset", task.WithDueDate("2022-01-01"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "finished", task.WithStatus(task.StatusDone), task.WithDueDate("2022-01-01"))
	require.NoError(t, err)
	doing, err := svc.Create(ctx, "doing", task.WithDueDate("2030-01-01"))
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, doing.ID, task.StatusInProgress)
	require.NoError(t, err)

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"unset"}, titles(board.ToDo))
	assert.Equal(t, []string{"doing"}, titles(board.InProgress))
	assert.Equal(t, []string{"finished"}, titles(board.Done))

	late, err := svc.Overdue(ctx, time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"unset"}, titles(late))
}

func TestService_DeleteAll(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	for _, title := range []string{"a", "b"} {
		_, err := svc.Create(ctx, title)
		require.NoError(t, err)
	}

	removed, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
