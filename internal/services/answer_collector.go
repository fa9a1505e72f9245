package services

import (
	"strings"
	"time"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

// QuestionCursor describes where a session stands. Completed is set once
// every question has an answer.
type QuestionCursor struct {
	Question  string
	Number    int
	Total     int
	Completed bool
}

// AnswerCollector records answers against the session cursor.
//
// The cursor only moves on Submit, so cursor == len(responses) always
// holds. Advance moves the lifecycle forward and reports the question at
// the cursor; calling it before or after Submit yields the same pairing
// of responses[k] with questions[k].
type AnswerCollector interface {
	CurrentQuestion(sessionID string) (*QuestionCursor, error)
	Advance(sessionID string) (*QuestionCursor, error)
	Submit(sessionID, answer, emotion string) (*models.Session, error)
	RecordEmotion(sessionID, emotion string) (*models.Session, error)
}

type answerCollector struct {
	store SessionStore
}

func NewAnswerCollector(store SessionStore) AnswerCollector {
	return &answerCollector{store: store}
}

func cursorOf(session *models.Session) *QuestionCursor {
	cursor := &QuestionCursor{Total: len(session.Questions)}
	if q, ok := session.CurrentQuestion(); ok {
		cursor.Question = q
		cursor.Number = session.Cursor + 1
	} else {
		cursor.Completed = true
	}
	return cursor
}

func requireQuestions(session *models.Session) error {
	switch {
	case session.State == models.StateCompleted:
		return apperr.SessionComplete(session.ID)
	case len(session.Questions) == 0:
		return apperr.Validation("questions have not been generated for session %s", session.ID)
	}
	return nil
}

// CurrentQuestion implements AnswerCollector. It never mutates the session.
func (a *answerCollector) CurrentQuestion(sessionID string) (*QuestionCursor, error) {
	session, err := a.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireQuestions(session); err != nil {
		return nil, err
	}
	return cursorOf(session), nil
}

// Advance implements AnswerCollector.
func (a *answerCollector) Advance(sessionID string) (*QuestionCursor, error) {
	session, err := a.store.Update(sessionID, func(session *models.Session) error {
		if err := requireQuestions(session); err != nil {
			return err
		}
		if session.State == models.StateQuestionsReady {
			session.State = models.StateInProgress
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cursorOf(session), nil
}

// Submit implements AnswerCollector.
func (a *answerCollector) Submit(sessionID, answer, emotion string) (*models.Session, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, apperr.Validation("answer is required")
	}
	emotion = normalizeEmotion(emotion)

	return a.store.Update(sessionID, func(session *models.Session) error {
		if err := requireQuestions(session); err != nil {
			return err
		}
		if session.Cursor >= len(session.Questions) {
			return apperr.SessionComplete(session.ID)
		}

		session.Responses = append(session.Responses, models.Response{
			Question: session.Questions[session.Cursor],
			Answer:   answer,
			Emotion:  emotion,
		})
		session.Cursor++
		session.State = models.StateInProgress
		return nil
	})
}

// RecordEmotion implements AnswerCollector.
func (a *answerCollector) RecordEmotion(sessionID, emotion string) (*models.Session, error) {
	emotion = normalizeEmotion(emotion)
	if emotion == "" {
		return nil, apperr.Validation("emotion is required")
	}

	return a.store.Update(sessionID, func(session *models.Session) error {
		if session.State == models.StateCompleted {
			return apperr.SessionComplete(session.ID)
		}
		session.Emotions = append(session.Emotions, models.EmotionSample{
			Emotion:   emotion,
			Timestamp: timeNowUTC(),
		})
		return nil
	})
}

func normalizeEmotion(emotion string) string {
	return strings.ToLower(strings.TrimSpace(emotion))
}

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}
