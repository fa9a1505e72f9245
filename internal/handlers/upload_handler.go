package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type UploadHandler struct {
	interview   services.InterviewService
	maxFileSize int64
}

func NewUploadHandler(interview services.InterviewService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		interview:   interview,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /sessions/upload: a multipart form with the
// résumé in "resume" plus candidate_name and job_title.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return apperr.Validation("resume file is required")
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return apperr.Validation("Résumé file too large. Max size: %d bytes", h.maxFileSize)
	}

	session, err := h.interview.StartSessionFromUpload(file, c.FormValue("candidate_name"), c.FormValue("job_title"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(session))
}
