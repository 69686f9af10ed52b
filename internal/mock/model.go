package mock

import "encoding/json"

// PromptRequest is the questions-mock request body.
// Prompt is a pointer so an absent field can be told apart from "".
type PromptRequest struct {
	Prompt *string `json:"prompt" binding:"required"`
}

type Question struct {
	Text string `json:"text"`
}

type QuestionsResponse struct {
	Response []Question `json:"response"`
}

// ChatRequest is the chat-mock request body. Messages are accepted as raw JSON
// and never decoded further.
type ChatRequest struct {
	Model    *string           `json:"model" binding:"required"`
	Messages []json.RawMessage `json:"messages" binding:"required"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is a single completion candidate.
type Choice struct {
	Message      map[string]any `json:"message"`
	FinishReason string         `json:"finish_reason"`
	Index        int            `json:"index"`
}

type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Usage   Usage    `json:"usage"`
	Choices []Choice `json:"choices"`
}
