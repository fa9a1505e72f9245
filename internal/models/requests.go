package models

type CreateSessionRequest struct {
	CandidateName string `json:"candidate_name" form:"candidate_name"`
	JobTitle      string `json:"job_title" form:"job_title"`
	ResumeText    string `json:"resume_text" form:"resume_text"`
}

type SessionResponse struct {
	ID              string       `json:"id"`
	CandidateName   string       `json:"candidate_name"`
	JobTitle        string       `json:"job_title"`
	State           SessionState `json:"state"`
	TotalQuestions  int          `json:"total_questions"`
	Answered        int          `json:"answered"`
	CurrentQuestion string       `json:"current_question,omitempty"`
	QuestionNumber  int          `json:"question_number,omitempty"`
	HasResume       bool         `json:"has_resume"`
}

func NewSessionResponse(s *Session) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		CandidateName:  s.CandidateName,
		JobTitle:       s.JobTitle,
		State:          s.State,
		TotalQuestions: len(s.Questions),
		Answered:       len(s.Responses),
		HasResume:      s.ResumeText != "",
	}
	if q, ok := s.CurrentQuestion(); ok {
		resp.CurrentQuestion = q
		resp.QuestionNumber = s.Cursor + 1
	}
	return resp
}

// GenerateQuestionsRequest selects a question source and its options.
// Source is one of "local" (default), "catalog", "gemini" or "bank".
type GenerateQuestionsRequest struct {
	Source            string `json:"source" form:"source"`
	JobTitle          string `json:"job_title" form:"job_title"`
	Language          string `json:"language" form:"language"`
	ExperienceLevel   string `json:"experience_level" form:"experience_level"`
	Count             int    `json:"count" form:"count"`
	IncludeTechnical  *bool  `json:"include_technical" form:"include_technical"`
	IncludeBehavioral *bool  `json:"include_behavioral" form:"include_behavioral"`
	IncludeScenarios  *bool  `json:"include_scenarios" form:"include_scenarios"`
}

type QuestionResponse struct {
	Status          string `json:"status"`
	CurrentQuestion string `json:"current_question,omitempty"`
	QuestionNumber  int    `json:"question_number,omitempty"`
	TotalQuestions  int    `json:"total_questions"`
}

type SubmitAnswerRequest struct {
	Answer  string `json:"answer"`
	Emotion string `json:"emotion"`
}

type RecordEmotionRequest struct {
	Emotion string `json:"emotion"`
}

type EvaluateRequest struct {
	ResumeText string     `json:"resume_text"`
	Responses  []Response `json:"responses"`
	Emotions   []string   `json:"emotions"`
}

type CandidateFeedbackResponse struct {
	Candidate      string   `json:"candidate"`
	JobTitle       string   `json:"job_title"`
	Recommendation string   `json:"recommendation"`
	Feedback       []string `json:"feedback"`
}

type AnswerFeedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Language string `json:"language"`
}

type SpeechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// StandaloneQuestionsRequest generates questions outside of a session.
type StandaloneQuestionsRequest struct {
	GenerateQuestionsRequest
	ResumeText string `json:"resume_text"`
}

type ParseResumeRequest struct {
	Text string `json:"text"`
}
