// Package chat serves an OpenAI-style chat completion with a fixed reply.
package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungtweek/llm-mockserver/internal/httpapi"
	"github.com/yungtweek/llm-mockserver/internal/logger"
	"github.com/yungtweek/llm-mockserver/internal/mock"
)

const Path = "/v1/chat/completions"

func Register(r gin.IRoutes) {
	r.POST(Path, Completions)
}

// Completions echoes the requested model and always returns the same single
// choice. Messages are accepted but never read.
func Completions(c *gin.Context) {
	var req mock.ChatRequest
	if !httpapi.Bind(c, &req) {
		return
	}
	logger.Log.Debugw("[chat] completion", "model", *req.Model, "messages", len(req.Messages))
	httpapi.Write(c, http.StatusOK, mock.NewChatResponse(*req.Model))
}
