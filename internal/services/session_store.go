package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

// SessionStore owns live interview sessions, one independent entry per id.
// Every mutation of a session happens under that session's own lock; the
// table lock only guards membership.
type SessionStore interface {
	Create(candidateName, jobTitle, resumeText string) (*models.Session, error)
	Get(id string) (*models.Session, error)
	SetQuestions(id string, questions []string) (*models.Session, error)
	Reset(id string) (*models.Session, error)
	Finish(id string) (*models.Session, error)
	Reopen(id string) error
	Remove(id string)
	Update(id string, fn func(s *models.Session) error) (*models.Session, error)
	EvictIdle(cutoff time.Time) int
	Count() int
}

type sessionEntry struct {
	mu         sync.Mutex
	session    *models.Session
	lastActive time.Time
	removed    bool
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func NewSessionStore() SessionStore {
	return &sessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// Create implements SessionStore.
func (s *sessionStore) Create(candidateName, jobTitle, resumeText string) (*models.Session, error) {
	candidateName = strings.TrimSpace(candidateName)
	jobTitle = strings.TrimSpace(jobTitle)

	if candidateName == "" {
		return nil, apperr.Validation("candidate_name is required")
	}
	if jobTitle == "" {
		return nil, apperr.Validation("job_title is required")
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:            uuid.New().String(),
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		ResumeText:    strings.TrimSpace(resumeText),
		Questions:     []string{},
		Responses:     []models.Response{},
		State:         models.StateCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session, lastActive: now}
	s.mu.Unlock()

	return session.Clone(), nil
}

func (s *sessionStore) lookup(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("session %s not found", id)
	}
	return entry, nil
}

// Get implements SessionStore.
func (s *sessionStore) Get(id string) (*models.Session, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return nil, apperr.NotFound("session %s not found", id)
	}
	return entry.session.Clone(), nil
}

// Update runs fn against the live session while holding its lock and
// returns a snapshot taken after fn. fn must validate before mutating:
// when it returns an error the session must be left untouched.
func (s *sessionStore) Update(id string, fn func(session *models.Session) error) (*models.Session, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.removed {
		return nil, apperr.NotFound("session %s not found", id)
	}

	if err := fn(entry.session); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry.session.UpdatedAt = now
	entry.lastActive = now

	return entry.session.Clone(), nil
}

// SetQuestions implements SessionStore. The question list is write-once.
func (s *sessionStore) SetQuestions(id string, questions []string) (*models.Session, error) {
	return s.Update(id, func(session *models.Session) error {
		if session.State == models.StateCompleted {
			return apperr.SessionComplete(session.ID)
		}
		if len(session.Questions) > 0 {
			return apperr.Validation("questions have already been generated for session %s", session.ID)
		}
		if len(questions) == 0 {
			return apperr.Validation("no questions were generated")
		}

		session.Questions = append([]string(nil), questions...)
		session.Cursor = 0
		session.Responses = []models.Response{}
		session.State = models.StateQuestionsReady
		return nil
	})
}

// Reset implements SessionStore. Questions are kept so the candidate can
// retake the same interview.
func (s *sessionStore) Reset(id string) (*models.Session, error) {
	return s.Update(id, func(session *models.Session) error {
		if session.State == models.StateCompleted {
			return apperr.SessionComplete(session.ID)
		}

		session.Cursor = 0
		session.Responses = []models.Response{}
		session.Emotions = nil
		if len(session.Questions) > 0 {
			session.State = models.StateQuestionsReady
		} else {
			session.State = models.StateCreated
		}
		return nil
	})
}

// Finish implements SessionStore. It freezes the session so nothing else
// can be submitted while it is being persisted.
func (s *sessionStore) Finish(id string) (*models.Session, error) {
	return s.Update(id, func(session *models.Session) error {
		if session.State == models.StateCompleted {
			return apperr.SessionComplete(session.ID)
		}
		if len(session.Responses) == 0 {
			return apperr.Validation("no interview data to save")
		}

		session.State = models.StateCompleted
		return nil
	})
}

// Reopen undoes Finish when persisting the session failed.
func (s *sessionStore) Reopen(id string) error {
	_, err := s.Update(id, func(session *models.Session) error {
		if session.State == models.StateCompleted {
			session.State = models.StateInProgress
		}
		return nil
	})
	return err
}

// Remove implements SessionStore.
func (s *sessionStore) Remove(id string) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return
	}

	entry.mu.Lock()
	entry.removed = true
	entry.mu.Unlock()
}

// EvictIdle drops sessions not touched since cutoff.
func (s *sessionStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		entry.mu.Lock()
		if entry.lastActive.Before(cutoff) {
			entry.removed = true
			delete(s.sessions, id)
			evicted++
		}
		entry.mu.Unlock()
	}
	return evicted
}

func (s *sessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
