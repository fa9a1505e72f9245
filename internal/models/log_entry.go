package models

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry is the durable record of one completed session. Never mutated
// after it has been written.
type LogEntry struct {
	ID            string          `json:"id"`
	CandidateName string          `json:"candidate_name"`
	JobTitle      string          `json:"job_title"`
	Timestamp     time.Time       `json:"date"`
	Responses     []Response      `json:"responses"`
	ResumeText    string          `json:"resume_text,omitempty"`
	Emotions      []EmotionSample `json:"emotions,omitempty"`
}

// EmotionLabels returns the emotion stream used for feedback: the recorded
// samples, or the per-answer labels when no samples were recorded.
func (e *LogEntry) EmotionLabels() []string {
	var labels []string
	if len(e.Emotions) > 0 {
		for _, sample := range e.Emotions {
			labels = append(labels, sample.Emotion)
		}
		return labels
	}
	for _, r := range e.Responses {
		if r.Emotion != "" {
			labels = append(labels, r.Emotion)
		}
	}
	return labels
}

// InterviewLog is the postgres row for a LogEntry.
type InterviewLog struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CandidateName string          `gorm:"type:text" json:"candidate_name"`
	JobTitle      string          `gorm:"type:text" json:"job_title"`
	Timestamp     time.Time       `gorm:"type:timestamptz" json:"date"`
	Responses     []Response      `gorm:"type:jsonb;serializer:json" json:"responses"`
	ResumeText    string          `gorm:"type:text" json:"resume_text,omitempty"`
	Emotions      []EmotionSample `gorm:"type:jsonb;serializer:json" json:"emotions,omitempty"`
	CreatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InterviewLog) TableName() string {
	return "interview_logs"
}

func NewInterviewLog(entry LogEntry) (*InterviewLog, error) {
	id, err := uuid.Parse(entry.ID)
	if err != nil {
		return nil, err
	}
	return &InterviewLog{
		ID:            id,
		CandidateName: entry.CandidateName,
		JobTitle:      entry.JobTitle,
		Timestamp:     entry.Timestamp.UTC(),
		Responses:     entry.Responses,
		ResumeText:    entry.ResumeText,
		Emotions:      entry.Emotions,
	}, nil
}

func (l *InterviewLog) Entry() LogEntry {
	return LogEntry{
		ID:            l.ID.String(),
		CandidateName: l.CandidateName,
		JobTitle:      l.JobTitle,
		Timestamp:     l.Timestamp.UTC(),
		Responses:     l.Responses,
		ResumeText:    l.ResumeText,
		Emotions:      l.Emotions,
	}
}
