package repository

type SortField string

const (
	SortByDueDate  SortField = "due_date"
	SortByPriority SortField = "priority"
)

// OrderClause отдаёт заранее собранный ORDER BY; имя поля в SQL никогда не подставляется.
// Пустые даты в конце, равные значения по id
func OrderClause(field SortField) (string, error) {
	switch field {
	case SortByDueDate:
		return "due_date IS NULL, due_date ASC, id ASC", nil
	case SortByPriority:
		return "CASE priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 3 ELSE 4 END ASC, id ASC", nil
	}
	return "", NewStoreError(ErrInvalidField, "list_sorted_by", nil)
}

func ParseSortField(s string) (SortField, error) {
	field := SortField(s)
	if _, err := OrderClause(field); err != nil {
		return "", err
	}
	return field, nil
}
