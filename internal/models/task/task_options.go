package task

// Patch - частичное обновление: nil означает "поле не передано"
type Patch struct {
	Title    *string
	Priority *Priority
	Status   *Status
	DueDate  *string
}

type Option func(*Patch)

// пустое значение даёт nil-опцию, NewPatch такие пропускает
func WithTitle(title string) Option {
	if title == "" {
		return nil
	}
	return func(p *Patch) {
		p.Title = &title
	}
}

func WithPriority(priority Priority) Option {
	if priority == "" {
		return nil
	}
	return func(p *Patch) {
		p.Priority = &priority
	}
}

func WithStatus(status Status) Option {
	if status == "" {
		return nil
	}
	return func(p *Patch) {
		p.Status = &status
	}
}

func WithDueDate(dueDate string) Option {
	if dueDate == "" {
		return nil
	}
	return func(p *Patch) {
		p.DueDate = &dueDate
	}
}

func NewPatch(opts ...Option) Patch {
	var p Patch
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&p)
	}
	return p
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Priority == nil && p.Status == nil && p.DueDate == nil
}

// Apply переносит переданные поля на задачу, остальные не трогает
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		priority := *p.Priority
		t.Priority = &priority
	}
	if p.Status != nil {
		status := *p.Status
		t.Status = &status
	}
	if p.DueDate != nil {
		dueDate := *p.DueDate
		t.DueDate = &dueDate
	}
}
