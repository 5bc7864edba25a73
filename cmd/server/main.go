package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"stronghold-server/internal/alliance"
	"stronghold-server/internal/leaderboard"
	"stronghold-server/internal/middleware"
	"stronghold-server/internal/player"
	"stronghold-server/internal/server"
	"stronghold-server/internal/shared/config"
	"stronghold-server/internal/shared/database"
	"stronghold-server/internal/shared/logger"
	"stronghold-server/internal/shared/redis"
	"stronghold-server/internal/telemetry"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	cfg := config.GlobalConfig

	logger.Init(cfg.Logging)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	cacheClient, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer cacheClient.Close()

	baseLogger := slog.Default()

	playerRepo := player.NewRepository(db, baseLogger)
	allianceRepo := alliance.NewRepository(db, baseLogger)
	playerCache := player.NewCache()

	telemetryRepo := telemetry.NewRepository(db, baseLogger)
	telemetryService := telemetry.NewService(telemetryRepo, playerRepo, allianceRepo, cfg.Game.Maintenance, baseLogger)

	leaderboardService := leaderboard.NewService(playerRepo, allianceRepo, cacheClient, cfg.Game.LeaderboardTTL, baseLogger)

	go recordSnapshots(telemetryService, playerCache, cfg.Game.SnapshotInterval)

	routes := server.NewRoutes(db, playerCache, playerRepo, allianceRepo, leaderboardService, telemetryService, cfg.Auth.AdminSecret)
	mux := routes.Setup()

	corsMiddleware := middleware.NewCORS(cfg.Server.FrontendURL, cfg.Server.Environment != "production")
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 10,
		BurstSize:         20,
	})

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("Stronghold server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
	log.Fatal(srv.ListenAndServe())
}

// recordSnapshots appends one telemetry snapshot per interval until the
// process exits.
func recordSnapshots(service *telemetry.Service, cache *player.Cache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		service.Record(ctx, cache.Size())
		cancel()
	}
}
