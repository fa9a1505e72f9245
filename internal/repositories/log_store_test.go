package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

func newTestStore(t *testing.T) (LogStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "interview_logs.json")
	store, err := NewFileLogStore(path)
	require.NoError(t, err)
	return store, path
}

func TestFileLogStore_AppendAndList(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, models.LogEntry{
		CandidateName: "Ali",
		JobTitle:      "Software Engineer",
		Responses:     []models.Response{{Question: "Q1", Answer: "A1"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())

	_, err = store.Append(ctx, models.LogEntry{CandidateName: "Sara", JobTitle: "Data Scientist"})
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ali", entries[0].CandidateName)
	assert.Equal(t, "Sara", entries[1].CandidateName)

	// The file on disk is a single JSON array.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk []models.LogEntry
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Len(t, onDisk, 2)
}

func TestFileLogStore_ReloadsExistingFile(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, models.LogEntry{CandidateName: "Ali", JobTitle: "Software Engineer"})
	require.NoError(t, err)

	reopened, err := NewFileLogStore(path)
	require.NoError(t, err)

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Software Engineer", entries[0].JobTitle)
}

func TestFileLogStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview_logs.json")
	require.NoError(t, os.WriteFile(path, []byte("[{not json"), 0644))

	_, err := NewFileLogStore(path)
	assert.Error(t, err)
}

func TestFileLogStore_FindLatest(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	_, err := store.Append(ctx, models.LogEntry{CandidateName: "Ali", JobTitle: "Software Engineer", Timestamp: base})
	require.NoError(t, err)
	_, err = store.Append(ctx, models.LogEntry{CandidateName: "Sara", JobTitle: "Product Manager", Timestamp: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = store.Append(ctx, models.LogEntry{CandidateName: "Ali", JobTitle: "Data Scientist", Timestamp: base.Add(2 * time.Minute)})
	require.NoError(t, err)

	latest, err := store.FindLatest(ctx, "ali")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", latest.JobTitle)

	_, err = store.FindLatest(ctx, "Nobody")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = store.FindLatest(ctx, "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestFileLogStore_ConcurrentAppend(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, models.LogEntry{
				CandidateName: fmt.Sprintf("candidate-%d", i),
				JobTitle:      "Software Engineer",
				Responses:     []models.Response{{Question: "Q", Answer: fmt.Sprintf("answer %d", i)}},
			})
			assert.NoError(t, err)
		}(i)
	}

	// Readers run alongside writers and must always see a whole collection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			entries, err := store.List(ctx)
			assert.NoError(t, err)
			for _, e := range entries {
				assert.NotEmpty(t, e.ID)
			}
		}
	}()

	wg.Wait()
	<-done

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, writers)

	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.CandidateName], "duplicate entry for %s", e.CandidateName)
		seen[e.CandidateName] = true
	}

	reopened, err := NewFileLogStore(path)
	require.NoError(t, err)
	persisted, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, writers)
}
