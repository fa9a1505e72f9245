package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("candidate_name is required"), KindValidation},
		{"wrapped not found", fmt.Errorf("failed to load: %w", NotFound("session %s not found", "abc")), KindNotFound},
		{"upstream", Upstream("question generator unavailable", errors.New("dial tcp: timeout")), KindUpstream},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOfHidesCause(t *testing.T) {
	err := Storage("failed to persist interview log", errors.New("open /var/lib/x: permission denied"))

	assert.Equal(t, "failed to persist interview log", MessageOf(err))
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, "internal server error", MessageOf(errors.New("secret detail")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindExtraction, "could not read resume", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, Is(err, KindExtraction))
	assert.False(t, Is(nil, KindExtraction))
}
