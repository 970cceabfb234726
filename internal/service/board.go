package service

import (
	"context"

	"todoBoard/internal/models/task"
)

type Column struct {
	Status task.Status
	Tasks  []*task.Task
}

type Board struct {
	ToDo       []*task.Task
	InProgress []*task.Task
	Done       []*task.Task
}

// Columns в порядке отрисовки слева направо
func (b Board) Columns() []Column {
	return []Column{
		{Status: task.StatusToDo, Tasks: b.ToDo},
		{Status: task.StatusInProgress, Tasks: b.InProgress},
		{Status: task.StatusDone, Tasks: b.Done},
	}
}

// Board раскладывает задачи по колонкам; без статуса (и с чужим статусом) - в To Do
func (s *TaskService) Board(ctx context.Context) (Board, error) {
	all, err := s.List(ctx)
	if err != nil {
		return Board{}, err
	}

	var board Board
	for _, t := range all {
		switch t.EffectiveStatus() {
		case task.StatusInProgress:
			board.InProgress = append(board.InProgress, t)
		case task.StatusDone:
			board.Done = append(board.Done, t)
		default:
			board.ToDo = append(board.ToDo, t)
		}
	}
	return board, nil
}
