package services

import (
	"context"
	"encoding/json"
	"strings"

	"alfredoptarigan/interview-coach/internal/apperr"
)

type geminiQuestionGenerator struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

// NewGeminiQuestionGenerator asks the language model for questions.
func NewGeminiQuestionGenerator(gemini GeminiService, promptBuilder *PromptBuilder) QuestionGenerator {
	return &geminiQuestionGenerator{gemini: gemini, promptBuilder: promptBuilder}
}

// GenerateQuestions implements QuestionGenerator.
func (g *geminiQuestionGenerator) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]string, error) {
	prompt := g.promptBuilder.BuildQuestionPrompt(req.JobTitle, req.Language, req.ExperienceLevel, req.Count, req.ResumeText)

	text, err := g.gemini.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		return nil, apperr.Upstream("question generator unavailable", err)
	}

	questions := ParseGeneratedQuestions(text)
	if len(questions) == 0 {
		return nil, apperr.Upstream("question generator returned no questions", nil)
	}
	return questions, nil
}

// ParseGeneratedQuestions accepts either a JSON array of strings (possibly
// inside a markdown fence) or free text. For free text it keeps lines
// that look like questions with bullets and numbering stripped, falling
// back to every non-empty line.
func ParseGeneratedQuestions(text string) []string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var list []string
	if strings.HasPrefix(cleaned, "[") && json.Unmarshal([]byte(cleaned), &list) == nil {
		out := make([]string, 0, len(list))
		for _, q := range list {
			if q = strings.TrimSpace(q); q != "" {
				out = append(out, q)
			}
		}
		return out
	}

	var questions, lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, line)
		if strings.ContainsAny(line, "?؟") {
			if q := strings.TrimSpace(strings.Trim(line, "-•*1234567890. ")); q != "" {
				questions = append(questions, q)
			}
		}
	}
	if len(questions) == 0 {
		return lines
	}
	return questions
}
