// Command questions-mock stands in for the Gemini question generator: every
// POST /gemini/ask gets the same three questions back.
package main

import (
	"github.com/yungtweek/llm-mockserver/internal/app"
	"github.com/yungtweek/llm-mockserver/internal/config"
	"github.com/yungtweek/llm-mockserver/internal/questions"
)

func main() {
	app.Main(config.Defaults{
		Service: "questions-mock",
		Host:    "localhost",
		Port:    8000,
	}, questions.Register)
}
