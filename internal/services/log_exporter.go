package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportJSON = "json"
	ExportPDF  = "pdf"

	logsSheet    = "Interview Logs"
	summarySheet = "Summary"
)

var exportHeaders = []string{"Candidate", "Job Title", "Date", "Question", "Answer", "Emotion"}

// Export is a rendered download.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// CandidateSummary is one candidate's latest log with its feedback.
type CandidateSummary struct {
	Entry    models.LogEntry       `json:"log"`
	Feedback models.FeedbackResult `json:"result"`
}

type LogExporter interface {
	ExportLogs(entries []models.LogEntry, format string) (*Export, error)
	ExportCandidate(summary CandidateSummary, format string) (*Export, error)
}

type logExporter struct{}

func NewLogExporter() LogExporter {
	return &logExporter{}
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return ExportCSV, nil
	}
	switch format {
	case ExportCSV, ExportXLSX, ExportJSON, ExportPDF:
		return format, nil
	}
	return "", apperr.Validation("invalid export format %q, expected csv, xlsx, json or pdf", format)
}

func contentTypeOf(format string) string {
	switch format {
	case ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportJSON:
		return "application/json"
	case ExportPDF:
		return "application/pdf"
	}
	return "text/csv"
}

// logRows flattens entries into one row per response.
func logRows(entries []models.LogEntry) [][]string {
	var rows [][]string
	for _, entry := range entries {
		date := entry.Timestamp.UTC().Format(time.RFC3339)
		for _, r := range entry.Responses {
			rows = append(rows, []string{entry.CandidateName, entry.JobTitle, date, r.Question, r.Answer, r.Emotion})
		}
	}
	return rows
}

// ExportLogs implements LogExporter.
func (e *logExporter) ExportLogs(entries []models.LogEntry, format string) (*Export, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	if format == ExportPDF {
		return nil, apperr.Validation("pdf export is only available for a single candidate")
	}

	var data []byte
	switch format {
	case ExportJSON:
		if entries == nil {
			entries = []models.LogEntry{}
		}
		data, err = json.MarshalIndent(entries, "", "  ")
	case ExportXLSX:
		data, err = writeXLSX(logRows(entries), nil)
	default:
		data, err = writeCSV(logRows(entries), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export logs: %w", err)
	}

	return &Export{
		Data:        data,
		ContentType: contentTypeOf(format),
		Filename:    "interview_logs." + format,
	}, nil
}

// ExportCandidate implements LogExporter.
func (e *logExporter) ExportCandidate(summary CandidateSummary, format string) (*Export, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}

	extra := [][]string{{"Recommended Role", summary.Feedback.Recommendation}}
	for _, point := range summary.Feedback.FeedbackPoints {
		extra = append(extra, []string{"Feedback", point})
	}
	rows := logRows([]models.LogEntry{summary.Entry})

	var data []byte
	switch format {
	case ExportJSON:
		data, err = json.MarshalIndent(summary, "", "  ")
	case ExportPDF:
		data, err = writePDF(summary)
	case ExportXLSX:
		data, err = writeXLSX(rows, extra)
	default:
		data, err = writeCSV(rows, extra)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export candidate summary: %w", err)
	}

	name := strings.ReplaceAll(strings.TrimSpace(summary.Entry.CandidateName), " ", "_")
	return &Export{
		Data:        data,
		ContentType: contentTypeOf(format),
		Filename:    fmt.Sprintf("%s_summary.%s", name, format),
	}, nil
}

// writeCSV writes the header and rows, then a blank line and the summary
// rows when present.
func writeCSV(rows, summary [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	if len(summary) > 0 {
		if err := w.Write([]string{}); err != nil {
			return nil, err
		}
		if err := w.WriteAll(summary); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeXLSX(rows, summary [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(logsSheet, cell, header)
	}
	f.SetCellStyle(logsSheet, "A1", "F1", headerStyle)
	f.SetColWidth(logsSheet, "A", "C", 20)
	f.SetColWidth(logsSheet, "D", "E", 60)
	f.SetColWidth(logsSheet, "F", "F", 12)

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(logsSheet, cell, value)
		}
	}

	if len(summary) > 0 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		f.SetColWidth(summarySheet, "A", "A", 20)
		f.SetColWidth(summarySheet, "B", "B", 80)
		for i, row := range summary {
			f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+1), row[0])
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+1), row[1])
			f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", i+1), fmt.Sprintf("A%d", i+1), labelStyle)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writePDF renders the summary as Q/A pairs, the feedback list and the
// recommended role. Core fonts only cover cp1252; other runes print as ".".
func writePDF(summary CandidateSummary) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle("Interview Summary - "+summary.Entry.CandidateName, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, tr("Interview Summary - "+summary.Entry.CandidateName), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, tr("Job Title: "+summary.Entry.JobTitle), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, "Date: "+summary.Entry.Timestamp.UTC().Format(time.RFC3339), "", 1, "L", false, 0, "")
	doc.Ln(6)

	for _, r := range summary.Entry.Responses {
		doc.MultiCell(0, 7, tr("Q: "+r.Question), "", "L", false)
		doc.MultiCell(0, 7, tr("A: "+r.Answer), "", "L", false)
		doc.Ln(3)
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, "Feedback:", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	for _, point := range summary.Feedback.FeedbackPoints {
		doc.MultiCell(0, 7, tr("- "+point), "", "L", false)
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, tr("Recommended Role: "+summary.Feedback.Recommendation), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
