package main

import (
	"context"
	"log"

	"github.com/azarubkin/classnotes/internal/server"
	"github.com/azarubkin/classnotes/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {

	// optional .env for local development; absence is fine
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
