package main

import (
	"context"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/db"
)

// migrateConfig es el subconjunto de Config que necesita el migrador.
type migrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	var mc migrateConfig
	if err := env.Parse(&mc); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, &config.Config{DatabaseURL: mc.DatabaseURL})
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	applied, err := db.Migrate(ctx, pool)
	if err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}
	logger.Info("migrations applied", zap.Strings("files", applied))
}
