package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildQuestionPrompt asks for count interview questions for jobTitle.
func (pb *PromptBuilder) BuildQuestionPrompt(jobTitle, language, experienceLevel string, count int, resumeText string) string {
	if language == "ur" {
		prompt := fmt.Sprintf("برائے مہربانی %s کے انٹرویو کے لئے %d سوالات اردو میں فراہم کریں۔", jobTitle, count)
		if resumeText != "" {
			prompt += "\n\nامیدوار کا ریزیومے:\n" + resumeText
		}
		return prompt + "\n\nہر سوال الگ لائن پر لکھیں۔"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced interviewer preparing a %s-level interview for the job title: %s.\n\n", experienceLevel, jobTitle)
	fmt.Fprintf(&b, "Please generate %d interview questions in English.", count)
	if resumeText != "" {
		fmt.Fprintf(&b, " Tailor some of them to the candidate's résumé below.\n\nCANDIDATE RESUME:\n%s", resumeText)
	}
	b.WriteString(`

Return ONLY a JSON array of strings, for example:
["First question?", "Second question?"]`)
	return b.String()
}

// BuildAnswerFeedbackPrompt asks for feedback on a single answer.
func (pb *PromptBuilder) BuildAnswerFeedbackPrompt(question, answer, language string) string {
	if language == "ur" {
		if question != "" {
			return fmt.Sprintf("سوال: %s\n\nمندرجہ ذیل جواب پر اردو میں فیڈبیک فراہم کریں:\n\n%s", question, answer)
		}
		return fmt.Sprintf("مندرجہ ذیل جواب پر اردو میں فیڈبیک فراہم کریں:\n\n%s", answer)
	}

	if question == "" {
		return fmt.Sprintf("Please provide feedback in English on the following answer:\n\n%s", answer)
	}
	return fmt.Sprintf(`You are an interview coach reviewing a candidate's answer.

QUESTION:
%s

ANSWER:
%s

Please provide feedback in English on the answer: what worked, what was missing, and one concrete suggestion. Keep it under 120 words.`,
		question, answer)
}

// BuildBankQuery is the text embedded to search the question bank when
// no résumé is available.
func (pb *PromptBuilder) BuildBankQuery(jobTitle, experienceLevel string) string {
	return fmt.Sprintf("Interview questions for a %s %s candidate", experienceLevel, jobTitle)
}
