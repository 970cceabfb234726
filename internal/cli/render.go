package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"todoBoard/internal/models/task"
	"todoBoard/internal/service"
)

const absent = "-"

func value[T ~string](v *T) string {
	if v == nil {
		return absent
	}
	return string(*v)
}

func renderTable(w io.Writer, tasks []*task.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "Задач нет")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, value(t.Priority), value(t.Status), value(t.DueDate))
	}
	return tw.Flush()
}

func renderTask(w io.Writer, t *task.Task) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Priority:\t%s\n", value(t.Priority))
	fmt.Fprintf(tw, "Status:\t%s\n", value(t.Status))
	fmt.Fprintf(tw, "Due:\t%s\n", value(t.DueDate))
	return tw.Flush()
}

// renderBoard печатает колонки сверху вниз в порядке доски
func renderBoard(w io.Writer, board service.Board) error {
	for i, col := range board.Columns() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d) ==\n", col.Status, len(col.Tasks))
		for _, t := range col.Tasks {
			line := fmt.Sprintf("  #%d %s", t.ID, t.Title)
			if t.Priority != nil {
				line += fmt.Sprintf(" [%s]", *t.Priority)
			}
			if t.DueDate != nil {
				line += " до " + *t.DueDate
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
