// Command chat-mock stands in for an OpenAI-compatible chat completion API:
// every POST /v1/chat/completions gets the same reply with the model echoed.
package main

import (
	"github.com/yungtweek/llm-mockserver/internal/app"
	"github.com/yungtweek/llm-mockserver/internal/chat"
	"github.com/yungtweek/llm-mockserver/internal/config"
)

func main() {
	app.Main(config.Defaults{
		Service: "chat-mock",
		Host:    "0.0.0.0",
		Port:    8080,
	}, chat.Register)
}
