package models

import (
	"slices"
	"time"
)

type SessionState string

const (
	StateCreated        SessionState = "created"
	StateQuestionsReady SessionState = "questions_ready"
	StateInProgress     SessionState = "in_progress"
	StateCompleted      SessionState = "completed"
)

// Response is one answered question. Question always equals
// Session.Questions at the index the answer was accepted for.
type Response struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Emotion  string `json:"emotion,omitempty"`
}

type EmotionSample struct {
	Emotion   string    `json:"emotion"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one candidate's interview attempt.
// Invariant: Cursor == len(Responses) <= len(Questions).
type Session struct {
	ID            string          `json:"id"`
	CandidateName string          `json:"candidate_name"`
	JobTitle      string          `json:"job_title"`
	ResumeText    string          `json:"resume_text,omitempty"`
	Questions     []string        `json:"questions"`
	Cursor        int             `json:"cursor"`
	Responses     []Response      `json:"responses"`
	Emotions      []EmotionSample `json:"emotions,omitempty"`
	State         SessionState    `json:"state"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Clone returns a deep copy safe to hand out of the session table.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = slices.Clone(s.Questions)
	c.Responses = slices.Clone(s.Responses)
	c.Emotions = slices.Clone(s.Emotions)
	return &c
}

// CurrentQuestion returns the question at the cursor, false when every
// question has been answered or none were generated.
func (s *Session) CurrentQuestion() (string, bool) {
	if s.Cursor >= len(s.Questions) {
		return "", false
	}
	return s.Questions[s.Cursor], true
}

func (s *Session) Remaining() int {
	return len(s.Questions) - s.Cursor
}
