package models

// FeedbackResult is derived from a résumé, answers and emotions; it is
// never persisted by the interview core.
type FeedbackResult struct {
	Recommendation string   `json:"recommendation"`
	FeedbackPoints []string `json:"feedback"`
}

type ParsedResume struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	LinkedIn string   `json:"linkedin"`
	GitHub   string   `json:"github"`
	Skills   []string `json:"skills"`
	Projects []string `json:"projects"`
}
