package main

import (
	"log"

	"github.com/advisor-agents/server/internal/app"
	"github.com/advisor-agents/server/internal/domain/membership"
)

func main() {
	if err := app.Run(membership.NewProfile); err != nil {
		log.Fatalf("membership-agent: %v", err)
	}
}
