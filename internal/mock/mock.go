package mock

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	ChatID           = "mocked-id"
	ChatObject       = "chat.completion"
	ChatReply        = "This is a mocked LLM response."
	FinishReasonStop = "stop"
)

var questionTexts = [...]string{
	"Mock question 1",
	"Mock question 2",
	"Mock question 3",
}

// NewQuestionsResponse returns the canned questions payload. A fresh value is
// built on every call so callers never share slices.
func NewQuestionsResponse() QuestionsResponse {
	qs := make([]Question, 0, len(questionTexts))
	for _, t := range questionTexts {
		qs = append(qs, Question{Text: t})
	}
	return QuestionsResponse{Response: qs}
}

// NewChoice builds a choice with the default finish reason and index.
func NewChoice(message map[string]any) Choice {
	return Choice{
		Message:      message,
		FinishReason: FinishReasonStop,
		Index:        0,
	}
}

// NewChatResponse returns the canned chat completion with model echoed back.
func NewChatResponse(model string) ChatResponse {
	return ChatResponse{
		ID:      ChatID,
		Object:  ChatObject,
		Created: 0,
		Model:   model,
		Usage:   Usage{},
		Choices: []Choice{
			NewChoice(map[string]any{"content": ChatReply}),
		},
	}
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

var rngMu sync.Mutex

func RandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}

// Delay returns base plus a uniform jitter in [0, jitter] milliseconds.
func Delay(baseMs, jitterMs int) time.Duration {
	ms := baseMs
	if ms < 0 {
		ms = 0
	}
	if jitterMs > 0 {
		ms += RandIntn(jitterMs + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

// SleepWithContext blocks for d or until ctx is done, whichever comes first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
