package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/devconnector/devconnector/internal/config"
	"github.com/devconnector/devconnector/internal/database"
	"github.com/devconnector/devconnector/internal/handler"
	"github.com/devconnector/devconnector/internal/middleware"
	"github.com/devconnector/devconnector/internal/queue"
	"github.com/devconnector/devconnector/internal/repository"
	"github.com/devconnector/devconnector/internal/router"
	publisher "github.com/devconnector/devconnector/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	posts := repository.NewPostRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	go queue.StartActivityConsumer()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Profile: handler.NewProfileHandler(profiles, users),
		Post:    handler.NewPostHandler(posts, users, publisher.PublishActivity),
		Github:  handler.NewGithubHandler(cfg),
	}, cfg.JWTSecret, limiter, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
