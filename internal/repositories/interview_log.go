package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

type interviewLogRepository struct {
	db *gorm.DB
}

// NewInterviewLogRepository is the postgres LogStore. Inserts are single
// statements, so concurrent writers are serialized by the database.
func NewInterviewLogRepository(db *gorm.DB) LogStore {
	return &interviewLogRepository{db: db}
}

func (r *interviewLogRepository) Append(ctx context.Context, entry models.LogEntry) (*models.LogEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	row, err := models.NewInterviewLog(entry)
	if err != nil {
		return nil, apperr.Validation("invalid log entry id %q", entry.ID)
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperr.Storage("failed to persist interview log", err)
	}

	saved := row.Entry()
	return &saved, nil
}

func (r *interviewLogRepository) List(ctx context.Context) ([]models.LogEntry, error) {
	var rows []models.InterviewLog
	if err := oldestFirst(r.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, apperr.Storage("failed to list interview logs", err)
	}

	entries := make([]models.LogEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].Entry())
	}
	return entries, nil
}

func (r *interviewLogRepository) FindLatest(ctx context.Context, candidateName string) (*models.LogEntry, error) {
	name := strings.TrimSpace(candidateName)
	if name == "" {
		return nil, apperr.Validation("candidate name is required")
	}

	var row models.InterviewLog
	err := latestFor(r.db.WithContext(ctx), name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no interview log found for %s", name)
		}
		return nil, apperr.Storage("failed to find interview log", err)
	}

	entry := row.Entry()
	return &entry, nil
}

func oldestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at ASC").Order("timestamp ASC")
}

// latestFor matches name case-insensitively, newest entry first. Ties on
// created_at fall back to the interview timestamp, mirroring List.
func latestFor(tx *gorm.DB, name string) *gorm.DB {
	return tx.Where("LOWER(candidate_name) = LOWER(?)", name).
		Order("created_at DESC").
		Order("timestamp DESC")
}
