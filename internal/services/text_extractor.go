package services

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"alfredoptarigan/interview-coach/internal/apperr"
)

// SupportedResumeExtensions lists the file types TextExtractor can read.
var SupportedResumeExtensions = []string{".pdf", ".docx", ".txt"}

// TextExtractor turns an uploaded résumé into plain text. Failures are
// *apperr.Error of kind unsupported_format or extraction_error.
type TextExtractor interface {
	ExtractFile(filePath string) (string, error)
	Extract(data []byte, filename string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func IsSupportedResume(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedResumeExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ExtractFile implements TextExtractor.
func (e *textExtractor) ExtractFile(filePath string) (string, error) {
	if !IsSupportedResume(filePath) {
		return "", unsupportedFormat(filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, "failed to read uploaded file", err)
	}
	return e.Extract(data, filePath)
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(data []byte, filename string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt":
		text = string(data)
	default:
		return "", unsupportedFormat(filename)
	}
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, "could not read text from the uploaded file", err)
	}

	text = CleanText(text)
	if text == "" {
		return "", apperr.New(apperr.KindExtraction, "No text could be extracted from the uploaded file")
	}
	return text, nil
}

func unsupportedFormat(filename string) error {
	return apperr.New(apperr.KindUnsupportedFormat, fmt.Sprintf(
		"unsupported file type %q, expected one of %s",
		filepath.Ext(filename), strings.Join(SupportedResumeExtensions, ", ")))
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}

		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

var (
	docxBreakPattern = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	raw := doc.Editable().GetContent()
	raw = docxBreakPattern.ReplaceAllStringFunc(raw, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	return html.UnescapeString(xmlTagPattern.ReplaceAllString(raw, "")), nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
