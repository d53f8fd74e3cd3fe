package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jmvaldes/setlist-helper/internal/config"
	"github.com/jmvaldes/setlist-helper/internal/database"
	"github.com/jmvaldes/setlist-helper/internal/handler"
	"github.com/jmvaldes/setlist-helper/internal/middleware"
	"github.com/jmvaldes/setlist-helper/internal/queue"
	"github.com/jmvaldes/setlist-helper/internal/repository"
	"github.com/jmvaldes/setlist-helper/internal/router"
)

func main() {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	songs := repository.NewSongRepo(db)
	setlists := repository.NewSetlistRepo(db)

	if cfg.SeedAccounts {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := users.SeedDefaults(ctx, cfg.BcryptCost); err != nil {
			log.Fatalf("seed default accounts: %v", err)
		}
		cancel()
		if cfg.Env != "dev" {
			log.Printf("WARNING: default accounts are enabled outside dev; set SEED_DEFAULT_ACCOUNTS=false")
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	songHandler := handler.NewSongHandler(songs)
	setlistHandler := handler.NewSetlistHandler(cfg, setlists)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	// The catalog is shared by all users, so its GET responses are safe
	// to cache on route+query alone. Setlist listings are owner-scoped
	// and stay uncached.
	router.RegisterSongs(e, songHandler, cfg.JWTSecret, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterSetlists(e, setlistHandler, cfg.JWTSecret)

	go queue.StartSetlistConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s, setlist_scope=%s)", addr, cfg.Env, cfg.DBPath, cfg.SetlistScope)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
