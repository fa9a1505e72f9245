package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

func exportFixture() []models.LogEntry {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return []models.LogEntry{
		{
			ID:            "1",
			CandidateName: "Sara Ali",
			JobTitle:      "Web Development",
			Timestamp:     ts,
			Responses: []models.Response{
				{Question: "Q1", Answer: "A1", Emotion: "happy"},
				{Question: "Q2", Answer: "A, with comma"},
			},
		},
		{
			ID:            "2",
			CandidateName: "Omar",
			JobTitle:      "Data Science",
			Timestamp:     ts.Add(time.Hour),
			Responses:     []models.Response{{Question: "Q3", Answer: "A3"}},
		},
	}
}

func TestLogExporter_CSV(t *testing.T) {
	export, err := NewLogExporter().ExportLogs(exportFixture(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", export.ContentType)
	assert.Equal(t, "interview_logs.csv", export.Filename)

	records, err := csv.NewReader(bytes.NewReader(export.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"Sara Ali", "Web Development", "2026-03-01T09:30:00Z", "Q1", "A1", "happy"}, records[1])
	assert.Equal(t, "A, with comma", records[2][4])
	assert.Equal(t, "Omar", records[3][0])
}

func TestLogExporter_XLSX(t *testing.T) {
	export, err := NewLogExporter().ExportLogs(exportFixture(), "XLSX")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(logsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Q3", rows[3][3])
}

func TestLogExporter_JSON(t *testing.T) {
	export, err := NewLogExporter().ExportLogs(nil, "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(export.Data))

	export, err = NewLogExporter().ExportLogs(exportFixture(), "json")
	require.NoError(t, err)

	var decoded []models.LogEntry
	require.NoError(t, json.Unmarshal(export.Data, &decoded))
	assert.Equal(t, exportFixture(), decoded)
}

func TestLogExporter_InvalidFormat(t *testing.T) {
	_, err := NewLogExporter().ExportLogs(exportFixture(), "doc")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = NewLogExporter().ExportLogs(exportFixture(), "pdf")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = NewLogExporter().ExportCandidate(CandidateSummary{Entry: exportFixture()[0]}, "doc")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestLogExporter_CandidatePDF(t *testing.T) {
	summary := CandidateSummary{
		Entry: exportFixture()[0],
		Feedback: models.FeedbackResult{
			Recommendation: "Frontend Developer Intern",
			FeedbackPoints: []string{"Great job staying positive and confident."},
		},
	}

	export, err := NewLogExporter().ExportCandidate(summary, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", export.ContentType)
	assert.Equal(t, "Sara_Ali_summary.pdf", export.Filename)
	assert.True(t, bytes.HasPrefix(export.Data, []byte("%PDF-")))

	text, err := extractPDF(export.Data)
	require.NoError(t, err)
	assert.Contains(t, text, "Interview Summary - Sara Ali")
	assert.Contains(t, text, "Q: Q1")
	assert.Contains(t, text, "A: A1")
	assert.Contains(t, text, "Feedback:")
	assert.Contains(t, text, "- Great job staying positive and confident.")
	assert.Contains(t, text, "Recommended Role: Frontend Developer Intern")
}

func TestLogExporter_Candidate(t *testing.T) {
	summary := CandidateSummary{
		Entry: exportFixture()[0],
		Feedback: models.FeedbackResult{
			Recommendation: "Frontend Developer Intern",
			FeedbackPoints: []string{"point one"},
		},
	}

	export, err := NewLogExporter().ExportCandidate(summary, "csv")
	require.NoError(t, err)
	assert.Equal(t, "Sara_Ali_summary.csv", export.Filename)

	r := csv.NewReader(bytes.NewReader(export.Data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Recommended Role", "Frontend Developer Intern"}, records[len(records)-2])
	assert.Equal(t, []string{"Feedback", "point one"}, records[len(records)-1])

	export, err = NewLogExporter().ExportCandidate(summary, "xlsx")
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Frontend Developer Intern", value)

	export, err = NewLogExporter().ExportCandidate(summary, "json")
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(export.Data, &decoded))
	assert.Contains(t, decoded, "log")
	assert.Contains(t, decoded, "result")
}
