package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type SessionHandler struct {
	interview services.InterviewService
	sessions  services.SessionStore
	answers   services.AnswerCollector
}

func NewSessionHandler(
	interview services.InterviewService,
	sessions services.SessionStore,
	answers services.AnswerCollector,
) *SessionHandler {
	return &SessionHandler{
		interview: interview,
		sessions:  sessions,
		answers:   answers,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	session, err := h.interview.StartSession(req.CandidateName, req.JobTitle, req.ResumeText)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session":   models.NewSessionResponse(session),
		"questions": session.Questions,
		"responses": session.Responses,
	})
}

// HandleGenerateQuestions handles POST /sessions/:id/questions
func (h *SessionHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidPayload()
		}
	}

	session, err := h.interview.GenerateQuestions(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session":   models.NewSessionResponse(session),
		"questions": session.Questions,
	})
}

func questionResponse(cursor *services.QuestionCursor) models.QuestionResponse {
	if cursor.Completed {
		return models.QuestionResponse{Status: "completed", TotalQuestions: cursor.Total}
	}
	return models.QuestionResponse{
		Status:          "in_progress",
		CurrentQuestion: cursor.Question,
		QuestionNumber:  cursor.Number,
		TotalQuestions:  cursor.Total,
	}
}

// HandleCurrentQuestion handles GET /sessions/:id/question
func (h *SessionHandler) HandleCurrentQuestion(c *fiber.Ctx) error {
	cursor, err := h.answers.CurrentQuestion(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(questionResponse(cursor))
}

// HandleNext handles POST /sessions/:id/next
func (h *SessionHandler) HandleNext(c *fiber.Ctx) error {
	cursor, err := h.answers.Advance(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(questionResponse(cursor))
}

// HandleSubmitAnswer handles POST /sessions/:id/answers
func (h *SessionHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	session, err := h.answers.Submit(c.Params("id"), req.Answer, req.Emotion)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Answer recorded",
		"session": models.NewSessionResponse(session),
	})
}

// HandleRecordEmotion handles POST /sessions/:id/emotions
func (h *SessionHandler) HandleRecordEmotion(c *fiber.Ctx) error {
	var req models.RecordEmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	session, err := h.answers.RecordEmotion(c.Params("id"), req.Emotion)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Emotion recorded",
		"emotions": len(session.Emotions),
	})
}

// HandleReset handles POST /sessions/:id/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	session, err := h.sessions.Reset(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(models.NewSessionResponse(session))
}

// HandleComplete handles POST /sessions/:id/complete
func (h *SessionHandler) HandleComplete(c *fiber.Ctx) error {
	entry, err := h.interview.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Interview saved successfully",
		"log":     entry,
	})
}
