package main

import (
	"log"

	"github.com/advisor-agents/server/internal/app"
	"github.com/advisor-agents/server/internal/domain/yoga"
)

func main() {
	if err := app.Run(yoga.NewProfile); err != nil {
		log.Fatalf("yoga-agent: %v", err)
	}
}
