package main

import (
	"log"

	"github.com/youlearn/youlearn/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ youlearn failed to start: %v", err)
	}
}
