package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/serenitymassage/clinic-scheduler/internal/ai"
	"github.com/serenitymassage/clinic-scheduler/internal/config"
	dbpkg "github.com/serenitymassage/clinic-scheduler/internal/db"
	"github.com/serenitymassage/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	dbpkg.SeedAdmin(db, cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable at %s: %v (realtime and session revocation degraded)", cfg.RedisAddr, err)
	}

	summarizer, err := ai.NewSummarizer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to init summarizer: %v", err)
	}
	defer summarizer.Close()
	if !summarizer.Configured() {
		log.Printf("no Gemini credential configured, summaries fall back to fixed text")
	}
	if !cfg.TwilioEnabled() {
		log.Printf("Twilio not configured, WhatsApp notifications disabled")
	}

	r := gin.Default()

	routes.RegisterRoutes(r, db, rdb, cfg, summarizer)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
