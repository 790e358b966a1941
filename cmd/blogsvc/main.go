package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/you/blogsvc/internal/app"
	"github.com/you/blogsvc/internal/config"
	"github.com/you/blogsvc/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if err := app.Run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}
