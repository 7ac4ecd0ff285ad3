package main

import (
	"context"
	"log"

	"github.com/freela-market/freela-backend/config"
	"github.com/freela-market/freela-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.DSN()})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// The skills cache is an optimization, not a dependency.
		log.Printf("Redis unavailable, running without cache: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	r, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "freela-backend",
		Version:     cfg.App.Version,
		JWTSecret:   cfg.Auth.JWTSecret,
		TokenTTL:    cfg.Auth.TokenTTL,
		DB:          db,
		Redis:       rdb,
	})
	if err != nil {
		log.Fatal("Failed to build router:", err)
	}

	log.Printf("Server starting on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
