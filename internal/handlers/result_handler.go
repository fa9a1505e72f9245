package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

type LogHandler struct {
	logs     repositories.LogStore
	exporter services.LogExporter
	feedback services.FeedbackEngine
}

func NewLogHandler(
	logs repositories.LogStore,
	exporter services.LogExporter,
	feedback services.FeedbackEngine,
) *LogHandler {
	return &LogHandler{
		logs:     logs,
		exporter: exporter,
		feedback: feedback,
	}
}

func sendExport(c *fiber.Ctx, export *services.Export) error {
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Send(export.Data)
}

// HandleList handles GET /logs
func (h *LogHandler) HandleList(c *fiber.Ctx) error {
	entries, err := h.logs.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"logs":  entries,
		"count": len(entries),
	})
}

// HandleExport handles GET /exports/logs?format=csv|xlsx|json
func (h *LogHandler) HandleExport(c *fiber.Ctx) error {
	entries, err := h.logs.List(c.UserContext())
	if err != nil {
		return err
	}

	export, err := h.exporter.ExportLogs(entries, c.Query("format", services.ExportCSV))
	if err != nil {
		return err
	}
	return sendExport(c, export)
}

// HandleGetCandidate handles GET /logs/:candidate
func (h *LogHandler) HandleGetCandidate(c *fiber.Ctx) error {
	entry, err := h.logs.FindLatest(c.UserContext(), candidateParam(c))
	if err != nil {
		return err
	}
	return c.JSON(entry)
}

// HandleExportCandidate handles GET /logs/:candidate/export
func (h *LogHandler) HandleExportCandidate(c *fiber.Ctx) error {
	entry, err := h.logs.FindLatest(c.UserContext(), candidateParam(c))
	if err != nil {
		return err
	}

	export, err := h.exporter.ExportCandidate(services.CandidateSummary{
		Entry:    *entry,
		Feedback: h.feedback.Evaluate(entry.ResumeText, entry.Responses, entry.EmotionLabels()),
	}, c.Query("format", services.ExportJSON))
	if err != nil {
		return err
	}
	return sendExport(c, export)
}
