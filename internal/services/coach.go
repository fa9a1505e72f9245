package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"log"
	"strings"
	"time"

	"alfredoptarigan/interview-coach/internal/apperr"
)

// Gemini TTS output format.
const (
	SpeechSampleRate    = 24000
	speechChannels      = 1
	speechBitsPerSample = 16
)

// CoachService gives per-answer feedback and reads text aloud. Both go
// through the remote model with a bounded timeout.
type CoachService interface {
	AnswerFeedback(ctx context.Context, question, answer, language string) (string, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

type coachService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	timeout       time.Duration
}

// NewCoachService accepts a nil gemini; every call then fails with an
// upstream error.
func NewCoachService(gemini GeminiService, promptBuilder *PromptBuilder, timeout time.Duration) CoachService {
	return &coachService{
		gemini:        gemini,
		promptBuilder: promptBuilder,
		timeout:       timeout,
	}
}

func (c *coachService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// AnswerFeedback implements CoachService.
func (c *coachService) AnswerFeedback(ctx context.Context, question, answer, language string) (string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", apperr.Validation("answer is required")
	}
	if c.gemini == nil {
		return "", apperr.Upstream("feedback service is not configured", nil)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	prompt := c.promptBuilder.BuildAnswerFeedbackPrompt(strings.TrimSpace(question), answer, strings.ToLower(language))
	text, err := c.gemini.GenerateText(ctx, prompt, 0.4)
	if err != nil {
		log.Printf("❌ Answer feedback failed: %v\n", err)
		return "", apperr.Upstream("Error generating feedback. Please try again later.", err)
	}
	return strings.TrimSpace(text), nil
}

// Speak implements CoachService and returns a WAV file.
func (c *coachService) Speak(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text is required")
	}
	if c.gemini == nil {
		return nil, apperr.Upstream("speech service is not configured", nil)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	pcm, err := c.gemini.GenerateSpeech(ctx, text)
	if err != nil {
		log.Printf("❌ Speech synthesis failed: %v\n", err)
		return nil, apperr.Upstream("speech synthesis failed", err)
	}
	return EncodeWAV(pcm, SpeechSampleRate, speechChannels, speechBitsPerSample), nil
}

// EncodeWAV wraps little-endian PCM samples in a RIFF/WAVE container.
func EncodeWAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
