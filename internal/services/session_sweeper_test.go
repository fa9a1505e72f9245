package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	store := NewSessionStore()
	_, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)

	sweeper := NewSessionSweeper(store, time.Hour, time.Minute).(*sessionSweeper)

	assert.Equal(t, 0, sweeper.Sweep())
	assert.Equal(t, 1, store.Count())

	sweeper.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, sweeper.Sweep())
	assert.Equal(t, 0, store.Count())
}

func TestSessionSweeper_StartStop(t *testing.T) {
	store := NewSessionStore()
	sweeper := NewSessionSweeper(store, time.Nanosecond, 5*time.Millisecond)

	_, err := store.Create("Sara", "Data Analyst", "")
	require.NoError(t, err)

	sweeper.Start(context.Background())
	assert.Eventually(t, func() bool { return store.Count() == 0 }, time.Second, 5*time.Millisecond)

	sweeper.Stop()
	sweeper.Stop()
}

func TestSessionSweeper_Disabled(t *testing.T) {
	sweeper := NewSessionSweeper(NewSessionStore(), 0, time.Minute)
	sweeper.Start(context.Background())
	sweeper.Stop()
}
