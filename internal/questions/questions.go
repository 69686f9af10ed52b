// Package questions serves the canned question list that stands in for a
// Gemini-backed question generator.
package questions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungtweek/llm-mockserver/internal/httpapi"
	"github.com/yungtweek/llm-mockserver/internal/mock"
)

const Path = "/gemini/ask"

func Register(r gin.IRoutes) {
	r.POST(Path, Ask)
}

// Ask answers every well-formed prompt with the same three questions.
func Ask(c *gin.Context) {
	var req mock.PromptRequest
	if !httpapi.Bind(c, &req) {
		return
	}
	httpapi.Write(c, http.StatusOK, mock.NewQuestionsResponse())
}
