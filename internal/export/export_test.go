package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"todoBoard/internal/export"
	"todoBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []*task.Task {
	high := task.PriorityHigh
	done := task.StatusDone
	due := "2022-01-05"
	return []*task.Task{
		{ID: 1, Title: "Buy milk", Priority: &high, DueDate: &due},
		{ID: 2, Title: "Recycle, plastic", Status: &done},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{in: "json", want: export.FormatJSON},
		{in: " CSV ", want: export.FormatCSV},
		{in: "Pdf", want: export.FormatPDF},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, sample()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "High", decoded[0]["priority"])
	assert.NotContains(t, decoded[1], "due_date")
}

func TestWrite_JSONEmptyListIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatJSON, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatCSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "title", "priority", "status", "due_date"}, rows[0])
	assert.Equal(t, []string{"1", "Buy milk", "High", "", "2022-01-05"}, rows[1])
	assert.Equal(t, []string{"2", "Recycle, plastic", "", "Done", ""}, rows[2])
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, export.FormatPDF, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, export.Write(&buf, export.Format("xml"), sample()))
	assert.Zero(t, buf.Len())
}
