package task

import (
	"strings"
	"time"
)

// DateLayout - канонический формат хранения due_date
const DateLayout = "2006-01-02"

type Task struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Priority *Priority `json:"priority,omitempty"`
	Status   *Status   `json:"status,omitempty"`
	DueDate  *string   `json:"due_date,omitempty"`
}

type Priority string
type Status string

const PriorityLow Priority = "Low"
const PriorityMedium Priority = "Medium"
const PriorityHigh Priority = "High"

const StatusToDo Status = "To Do"
const StatusInProgress Status = "In Progress"
const StatusDone Status = "Done"

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Persisted - запись уже получила id от хранилища
func (t *Task) Persisted() bool {
	return t.ID != 0
}

// EffectiveStatus: отсутствующий статус показываем как To Do
func (t *Task) EffectiveStatus() Status {
	if t.Status == nil {
		return StatusToDo
	}
	return *t.Status
}

func (t *Task) Clone() *Task {
	c := &Task{ID: t.ID, Title: t.Title}
	if t.Priority != nil {
		p := *t.Priority
		c.Priority = &p
	}
	if t.Status != nil {
		s := *t.Status
		c.Status = &s
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// ValidDueDate проверяет, что строка уже в каноническом виде YYYY-MM-DD
func ValidDueDate(date string) bool {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return parsed.Format(DateLayout) == date
}

// MatchesKeyword - поиск подстроки без учёта регистра
func (t *Task) MatchesKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(keyword))
}
