package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type FeedbackHandler struct {
	interview services.InterviewService
	coach     services.CoachService
}

func NewFeedbackHandler(interview services.InterviewService, coach services.CoachService) *FeedbackHandler {
	return &FeedbackHandler{
		interview: interview,
		coach:     coach,
	}
}

func candidateParam(c *fiber.Ctx) string {
	raw := c.Params("candidate")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// HandleCandidateFeedback handles GET /feedback/:candidate
func (h *FeedbackHandler) HandleCandidateFeedback(c *fiber.Ctx) error {
	result, err := h.interview.EvaluateCandidate(c.UserContext(), candidateParam(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleEvaluate handles POST /feedback/evaluate
func (h *FeedbackHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	return c.JSON(h.interview.Evaluate(req))
}

// HandleAnswerFeedback handles POST /feedback/answer
func (h *FeedbackHandler) HandleAnswerFeedback(c *fiber.Ctx) error {
	var req models.AnswerFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	feedback, err := h.coach.AnswerFeedback(c.UserContext(), req.Question, req.Answer, req.Language)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"feedback": feedback})
}

// HandleSpeech handles POST /speech and returns audio/wav.
func (h *FeedbackHandler) HandleSpeech(c *fiber.Ctx) error {
	var req models.SpeechRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	audio, err := h.coach.Speak(c.UserContext(), req.Text)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "audio/wav")
	return c.Send(audio)
}
