package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/interview-coach/internal/models"
)

const (
	DefaultRecommendation = "General Internship"

	FeedbackLowConfidence = "Try to stay more confident during the interview."
	FeedbackConfident     = "Great job staying positive and confident."
	FeedbackCalm          = "You maintained calm and focus throughout."

	minAnswerTokens = 5
	calmRatio       = 0.7
)

type roleRule struct {
	keyword string
	role    string
}

// Checked in order; the first keyword found in the résumé wins.
var roleRules = []roleRule{
	{keyword: "machine learning", role: "ML Intern"},
	{keyword: "data analysis", role: "Data Analyst"},
	{keyword: "web development", role: "Frontend Developer Intern"},
}

// FeedbackEngine turns a finished interview into a recommendation and a
// list of feedback points. Evaluate is pure.
type FeedbackEngine interface {
	Evaluate(resumeText string, responses []models.Response, emotions []string) models.FeedbackResult
}

type feedbackEngine struct{}

func NewFeedbackEngine() FeedbackEngine {
	return &feedbackEngine{}
}

// Evaluate implements FeedbackEngine.
func (f *feedbackEngine) Evaluate(resumeText string, responses []models.Response, emotions []string) models.FeedbackResult {
	feedback := []string{}
	feedback = append(feedback, emotionFeedback(emotions)...)

	for _, r := range responses {
		if len(strings.Fields(r.Answer)) < minAnswerTokens {
			feedback = append(feedback, fmt.Sprintf("Your answer to '%s' was too short. Try elaborating more.", r.Question))
		}
	}

	return models.FeedbackResult{
		Recommendation: RecommendRole(resumeText),
		FeedbackPoints: feedback,
	}
}

// RecommendRole picks exactly one role for the résumé text.
func RecommendRole(resumeText string) string {
	lower := strings.ToLower(resumeText)
	for _, rule := range roleRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.role
		}
	}
	return DefaultRecommendation
}

func emotionFeedback(emotions []string) []string {
	var happy, sad, neutral int
	for _, e := range emotions {
		switch strings.ToLower(strings.TrimSpace(e)) {
		case "happy":
			happy++
		case "sad":
			sad++
		case "neutral":
			neutral++
		}
	}

	var lines []string
	if sad > happy {
		lines = append(lines, FeedbackLowConfidence)
	} else if happy > sad {
		lines = append(lines, FeedbackConfident)
	}

	if len(emotions) > 0 && float64(neutral) > calmRatio*float64(len(emotions)) {
		lines = append(lines, FeedbackCalm)
	}
	return lines
}
