package main

import (
	"context"
	"log"

	"github.com/medesi/portal/internal/server"
	"github.com/medesi/portal/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
