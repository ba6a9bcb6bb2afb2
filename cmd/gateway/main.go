package main

import (
	"log"

	"github.com/abuRizq/vegetable-shop/internal/gateway/app"
)

func main() {
	cfg := app.LoadConfig()

	application := app.New(cfg)
	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
