package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Session  *SessionHandler
	Upload   *UploadHandler
	Question *QuestionHandler
	Feedback *FeedbackHandler
	Log      *LogHandler
}

// Register mounts all routes on router, normally the /api/v1 group.
func (h *Handlers) Register(router fiber.Router) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	sessions := router.Group("/sessions")
	sessions.Post("/", h.Session.HandleCreate)
	sessions.Post("/upload", h.Upload.HandleUpload)
	sessions.Get("/:id", h.Session.HandleGet)
	sessions.Post("/:id/questions", h.Session.HandleGenerateQuestions)
	sessions.Get("/:id/question", h.Session.HandleCurrentQuestion)
	sessions.Post("/:id/next", h.Session.HandleNext)
	sessions.Post("/:id/answers", h.Session.HandleSubmitAnswer)
	sessions.Post("/:id/emotions", h.Session.HandleRecordEmotion)
	sessions.Post("/:id/reset", h.Session.HandleReset)
	sessions.Post("/:id/complete", h.Session.HandleComplete)

	router.Get("/fields", h.Question.HandleFields)
	router.Get("/questions", h.Question.HandleCatalog)
	router.Post("/questions/generate", h.Question.HandleGenerate)
	router.Post("/resume/parse", h.Question.HandleParseResume)

	router.Get("/feedback/:candidate", h.Feedback.HandleCandidateFeedback)
	router.Post("/feedback/evaluate", h.Feedback.HandleEvaluate)
	router.Post("/feedback/answer", h.Feedback.HandleAnswerFeedback)
	router.Post("/speech", h.Feedback.HandleSpeech)

	router.Get("/logs", h.Log.HandleList)
	router.Get("/exports/logs", h.Log.HandleExport)
	router.Get("/logs/:candidate", h.Log.HandleGetCandidate)
	router.Get("/logs/:candidate/export", h.Log.HandleExportCandidate)
}
