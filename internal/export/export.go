package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todoBoard/internal/models/task"

	"github.com/jung-kurt/gofpdf"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

var header = []string{"id", "title", "priority", "status", "due_date"}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("неизвестный формат экспорта %q: ожидается json, csv или pdf", s)
}

// Write выгружает список задач; отсутствующие поля пишутся пустыми
func Write(w io.Writer, format Format, tasks []*task.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks)
	}
	return fmt.Errorf("неизвестный формат экспорта %q", format)
}

func writeJSON(w io.Writer, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("экспорт json: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, tasks []*task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("экспорт csv: %w", err)
	}
	for _, t := range tasks {
		if err := cw.Write(record(t)); err != nil {
			return fmt.Errorf("экспорт csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("экспорт csv: %w", err)
	}
	return nil
}

func writePDF(w io.Writer, tasks []*task.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// встроенные шрифты gofpdf знают только cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	widths := []float64{15, 85, 25, 30, 30}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, t := range tasks {
		for i, v := range record(t) {
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("экспорт pdf: %w", err)
	}
	return nil
}

func record(t *task.Task) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Title,
		orEmpty((*string)(t.Priority)),
		orEmpty((*string)(t.Status)),
		orEmpty(t.DueDate),
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
