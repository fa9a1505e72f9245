package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_BACKEND", "")
	t.Setenv("REMOTE_TIMEOUT", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load()

	assert.Equal(t, LogBackendFile, cfg.Logs.Backend)
	assert.Equal(t, 20*time.Second, cfg.Gemini.RemoteTimeout)
	assert.False(t, cfg.Gemini.Enabled())
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_BACKEND", "postgres")
	t.Setenv("REMOTE_TIMEOUT", "5s")
	t.Setenv("GENERIC_FIELD_FALLBACK", "true")
	t.Setenv("DEFAULT_QUESTION_COUNT", "not-a-number")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()

	assert.Equal(t, LogBackendPostgres, cfg.Logs.Backend)
	assert.Equal(t, 5*time.Second, cfg.Gemini.RemoteTimeout)
	assert.True(t, cfg.Questions.GenericFieldFallback)
	assert.Equal(t, 10, cfg.Questions.DefaultCount)
	assert.True(t, cfg.Gemini.Enabled())
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Logs.Backend = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Logs.Backend = LogBackendFile
	cfg.Logs.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Questions.DefaultCount = 0
	assert.Error(t, cfg.Validate())
}
