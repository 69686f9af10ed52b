package mock

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// TestQuestionsResponseWire verifies the canned questions payload serializes to the exact wire body.
func TestQuestionsResponseWire(t *testing.T) {
	b, err := json.Marshal(NewQuestionsResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"response":[{"text":"Mock question 1"},{"text":"Mock question 2"},{"text":"Mock question 3"}]}`
	if string(b) != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", b, want)
	}
}

// TestQuestionsResponseFresh verifies callers cannot mutate the payload seen by later calls.
func TestQuestionsResponseFresh(t *testing.T) {
	a := NewQuestionsResponse()
	a.Response[0].Text = "changed"
	b := NewQuestionsResponse()
	if b.Response[0].Text != "Mock question 1" {
		t.Fatalf("canned payload leaked mutation: %q", b.Response[0].Text)
	}
}

// TestChatResponseWire verifies key order, constants and the model echo.
func TestChatResponseWire(t *testing.T) {
	b, err := json.Marshal(NewChatResponse("gpt-4"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"mocked-id","object":"chat.completion","created":0,"model":"gpt-4",` +
		`"usage":{"prompt_tokens":0,"completion_tokens":0,"total_tokens":0},` +
		`"choices":[{"message":{"content":"This is a mocked LLM response."},"finish_reason":"stop","index":0}]}`
	if string(b) != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", b, want)
	}
}

func TestNewChoiceDefaults(t *testing.T) {
	c := NewChoice(map[string]any{"role": "assistant"})
	if c.FinishReason != "stop" || c.Index != 0 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Message["role"] != "assistant" {
		t.Fatalf("message not kept: %+v", c.Message)
	}
}

func TestDelayBounds(t *testing.T) {
	if d := Delay(0, 0); d != 0 {
		t.Fatalf("expected zero delay, got %v", d)
	}
	if d := Delay(-5, 0); d != 0 {
		t.Fatalf("negative base should clamp to zero, got %v", d)
	}
	for i := 0; i < 100; i++ {
		d := Delay(10, 5)
		if d < 10*time.Millisecond || d > 15*time.Millisecond {
			t.Fatalf("delay out of range: %v", d)
		}
	}
}

// TestSleepWithContextCanceled verifies a canceled context cuts the sleep short.
func TestSleepWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := SleepWithContext(ctx, time.Minute)
	if err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("sleep did not return promptly")
	}
}

func TestSleepWithContextZero(t *testing.T) {
	if err := SleepWithContext(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
