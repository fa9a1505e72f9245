package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/apperr"
	"alfredoptarigan/interview-coach/internal/models"
)

func newTestStore(t *testing.T, now *time.Time) *sessionStore {
	t.Helper()
	store := NewSessionStore().(*sessionStore)
	if now != nil {
		store.now = func() time.Time { return *now }
	}
	return store
}

func TestSessionStore_Create(t *testing.T) {
	store := newTestStore(t, nil)

	session, err := store.Create("  Sara  ", " Web Developer ", "")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "Sara", session.CandidateName)
	assert.Equal(t, "Web Developer", session.JobTitle)
	assert.Equal(t, models.StateCreated, session.State)
	assert.Empty(t, session.Questions)
	assert.Empty(t, session.Responses)
	assert.Equal(t, 1, store.Count())

	_, err = store.Create("", "Web Developer", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = store.Create("Sara", "   ", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	store := newTestStore(t, nil)
	created, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)
	_, err = store.SetQuestions(created.ID, []string{"Q1", "Q2"})
	require.NoError(t, err)

	snapshot, err := store.Get(created.ID)
	require.NoError(t, err)
	snapshot.Questions[0] = "mutated"

	again, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1", again.Questions[0])

	_, err = store.Get("missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSessionStore_SetQuestionsIsWriteOnce(t *testing.T) {
	store := newTestStore(t, nil)
	created, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)

	_, err = store.SetQuestions(created.ID, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	session, err := store.SetQuestions(created.ID, []string{"Q1"})
	require.NoError(t, err)
	assert.Equal(t, models.StateQuestionsReady, session.State)

	_, err = store.SetQuestions(created.ID, []string{"Q2"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	session, err = store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1"}, session.Questions)
}

func TestSessionStore_Reset(t *testing.T) {
	store := newTestStore(t, nil)
	collector := NewAnswerCollector(store)

	created, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)

	session, err := store.Reset(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCreated, session.State)

	_, err = store.SetQuestions(created.ID, []string{"Q1", "Q2"})
	require.NoError(t, err)
	_, err = collector.Submit(created.ID, "first answer", "happy")
	require.NoError(t, err)
	_, err = collector.RecordEmotion(created.ID, "neutral")
	require.NoError(t, err)

	session, err = store.Reset(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateQuestionsReady, session.State)
	assert.Equal(t, 0, session.Cursor)
	assert.Empty(t, session.Responses)
	assert.Empty(t, session.Emotions)
	assert.Equal(t, []string{"Q1", "Q2"}, session.Questions)
}

func TestSessionStore_FinishAndReopen(t *testing.T) {
	store := newTestStore(t, nil)
	collector := NewAnswerCollector(store)

	created, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)
	_, err = store.SetQuestions(created.ID, []string{"Q1", "Q2"})
	require.NoError(t, err)

	_, err = store.Finish(created.ID)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "nothing answered yet")

	_, err = collector.Submit(created.ID, "an answer", "")
	require.NoError(t, err)

	session, err := store.Finish(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, session.State)

	_, err = collector.Submit(created.ID, "late answer", "")
	assert.True(t, apperr.Is(err, apperr.KindSessionComplete))
	_, err = store.Finish(created.ID)
	assert.True(t, apperr.Is(err, apperr.KindSessionComplete))

	require.NoError(t, store.Reopen(created.ID))
	session, err = store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateInProgress, session.State)
	assert.Len(t, session.Responses, 1)
}

func TestSessionStore_Remove(t *testing.T) {
	store := newTestStore(t, nil)
	created, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)

	store.Remove(created.ID)
	store.Remove(created.ID)

	_, err = store.Get(created.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 0, store.Count())
}

func TestSessionStore_EvictIdle(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)

	stale, err := store.Create("Old", "Data Analyst", "")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	fresh, err := store.Create("New", "Data Analyst", "")
	require.NoError(t, err)

	evicted := store.EvictIdle(now.Add(-time.Hour))
	assert.Equal(t, 1, evicted)

	_, err = store.Get(stale.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}
