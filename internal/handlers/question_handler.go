package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type QuestionHandler struct {
	provider  services.QuestionProvider
	extractor services.TextExtractor
}

func NewQuestionHandler(provider services.QuestionProvider, extractor services.TextExtractor) *QuestionHandler {
	return &QuestionHandler{
		provider:  provider,
		extractor: extractor,
	}
}

// HandleCatalog handles GET /questions?job_title=
func (h *QuestionHandler) HandleCatalog(c *fiber.Ctx) error {
	jobTitle := c.Query("job_title")
	return c.JSON(fiber.Map{
		"job_title": jobTitle,
		"questions": h.provider.CatalogQuestions(jobTitle),
	})
}

// HandleFields handles GET /fields
func (h *QuestionHandler) HandleFields(c *fiber.Ctx) error {
	fields := h.provider.Fields()
	return c.JSON(fiber.Map{
		"fields": fields,
		"count":  len(fields),
	})
}

// HandleGenerate handles POST /questions/generate
func (h *QuestionHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.StandaloneQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return apperr.Validation("job_title is required")
	}

	if strings.EqualFold(strings.TrimSpace(req.Source), services.SourceCatalog) {
		return c.JSON(fiber.Map{"questions": h.provider.CatalogQuestions(req.JobTitle)})
	}

	qr := services.NewQuestionRequest(req.GenerateQuestionsRequest)
	qr.ResumeText = req.ResumeText

	questions, err := h.provider.Generate(c.UserContext(), qr)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"questions": questions})
}

// HandleParseResume handles POST /resume/parse. It accepts either a
// multipart "resume" file or a JSON body with the plain text.
func (h *QuestionHandler) HandleParseResume(c *fiber.Ctx) error {
	var text string

	if file, err := c.FormFile("resume"); err == nil {
		src, err := file.Open()
		if err != nil {
			return apperr.Validation("failed to read uploaded file")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return apperr.Validation("failed to read uploaded file")
		}

		text, err = h.extractor.Extract(data, file.Filename)
		if err != nil {
			return err
		}
	} else {
		var req models.ParseResumeRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload()
		}
		text = strings.TrimSpace(req.Text)
	}

	if text == "" {
		return apperr.Validation("résumé text is required")
	}

	return c.JSON(services.ParseResume(text))
}
