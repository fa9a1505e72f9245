package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

// LogStore is the durable owner of completed interviews.
type LogStore interface {
	Append(ctx context.Context, entry models.LogEntry) (*models.LogEntry, error)
	List(ctx context.Context) ([]models.LogEntry, error)
	FindLatest(ctx context.Context, candidateName string) (*models.LogEntry, error)
}

// fileLogStore keeps every entry in one JSON array file. Writers are
// serialized by mu and publish a new file with an atomic rename, so a
// reader never observes a partially written collection.
type fileLogStore struct {
	path    string
	mu      sync.RWMutex
	entries []models.LogEntry
}

func NewFileLogStore(path string) (LogStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	entries, err := readLogFile(path)
	if err != nil {
		return nil, err
	}

	return &fileLogStore{
		path:    path,
		entries: entries,
	}, nil
}

func readLogFile(path string) ([]models.LogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.LogEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.LogEntry{}, nil
	}

	var entries []models.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse log file %s: %w", path, err)
	}

	return entries, nil
}

// Append implements LogStore.
func (s *fileLogStore) Append(ctx context.Context, entry models.LogEntry) (*models.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(s.entries[:len(s.entries):len(s.entries)], entry)
	if err := s.writeFile(next); err != nil {
		return nil, apperr.Storage("failed to persist interview log", err)
	}
	s.entries = next

	return &entry, nil
}

func (s *fileLogStore) writeFile(entries []models.LogEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal logs: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".interview_logs-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp log file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp log file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp log file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp log file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to publish log file: %w", err)
	}

	return nil
}

// List implements LogStore.
func (s *fileLogStore) List(ctx context.Context) ([]models.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// FindLatest implements LogStore.
func (s *fileLogStore) FindLatest(ctx context.Context, candidateName string) (*models.LogEntry, error) {
	name := strings.TrimSpace(candidateName)
	if name == "" {
		return nil, apperr.Validation("candidate name is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		if strings.EqualFold(s.entries[i].CandidateName, name) {
			entry := s.entries[i]
			return &entry, nil
		}
	}

	return nil, apperr.NotFound("no interview log found for %s", name)
}
