package services

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/apperr"
)

type fakeGemini struct {
	text      string
	pcm       []byte
	embedding []float32
	err       error
	prompts   []string
	deadline  bool
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.prompts = append(f.prompts, text)
	return f.embedding, f.err
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	_, f.deadline = ctx.Deadline()
	return f.text, f.err
}

func (f *fakeGemini) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	f.prompts = append(f.prompts, text)
	_, f.deadline = ctx.Deadline()
	return f.pcm, f.err
}

func TestCoachService_AnswerFeedback(t *testing.T) {
	gemini := &fakeGemini{text: "  Solid answer.  "}
	coach := NewCoachService(gemini, NewPromptBuilder(), time.Second)

	feedback, err := coach.AnswerFeedback(context.Background(), "Why Go?", "Because of goroutines", "en")
	require.NoError(t, err)
	assert.Equal(t, "Solid answer.", feedback)
	assert.True(t, gemini.deadline)
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Why Go?")
	assert.Contains(t, gemini.prompts[0], "Because of goroutines")

	_, err = coach.AnswerFeedback(context.Background(), "Why Go?", " ", "en")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCoachService_Failures(t *testing.T) {
	failing := NewCoachService(&fakeGemini{err: errors.New("quota exceeded")}, NewPromptBuilder(), time.Second)

	_, err := failing.AnswerFeedback(context.Background(), "", "an answer", "ur")
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	assert.NotContains(t, apperr.MessageOf(err), "quota")

	_, err = failing.Speak(context.Background(), "hello")
	assert.True(t, apperr.Is(err, apperr.KindUpstream))

	disabled := NewCoachService(nil, NewPromptBuilder(), time.Second)
	_, err = disabled.AnswerFeedback(context.Background(), "", "an answer", "en")
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
	_, err = disabled.Speak(context.Background(), "hello")
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
}

func TestCoachService_Speak(t *testing.T) {
	pcm := []byte{1, 0, 2, 0, 3, 0}
	coach := NewCoachService(&fakeGemini{pcm: pcm}, NewPromptBuilder(), time.Second)

	_, err := coach.Speak(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	wav, err := coach.Speak(context.Background(), "Tell me about yourself")
	require.NoError(t, err)
	require.Len(t, wav, 44+len(pcm))
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, uint32(SpeechSampleRate), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(SpeechSampleRate*2), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}
