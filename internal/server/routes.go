package server

import (
	"log/slog"
	"net/http"

	"stronghold-server/internal/alliance"
	"stronghold-server/internal/leaderboard"
	"stronghold-server/internal/middleware"
	"stronghold-server/internal/player"
	serverHandlers "stronghold-server/internal/server/handlers"
	"stronghold-server/internal/shared/database"
	"stronghold-server/internal/telemetry"
)

type Routes struct {
	db           *database.DB
	cache        *player.Cache
	players      *player.Repository
	alliances    *alliance.Repository
	leaderboards *leaderboard.Service
	telemetry    *telemetry.Service
	adminSecret  string
}

func NewRoutes(
	db *database.DB,
	cache *player.Cache,
	players *player.Repository,
	alliances *alliance.Repository,
	leaderboards *leaderboard.Service,
	telemetryService *telemetry.Service,
	adminSecret string,
) *Routes {
	return &Routes{
		db:           db,
		cache:        cache,
		players:      players,
		alliances:    alliances,
		leaderboards: leaderboards,
		telemetry:    telemetryService,
		adminSecret:  adminSecret,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	statusHandler := serverHandlers.NewStatusHandler(r.cache, r.players, r.alliances, r.telemetry)
	leaderboardHandler := serverHandlers.NewLeaderboardHandler(r.leaderboards)
	suggestedAlliancesHandler := serverHandlers.NewSuggestedAlliancesHandler(r.alliances)
	adminHandler := serverHandlers.NewAdminHandler(r.telemetry, r.cache)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.Handle("/api/server/status", statusHandler)
	mux.HandleFunc("/api/leaderboard/players", leaderboardHandler.Players)
	mux.HandleFunc("/api/leaderboard/alliances", leaderboardHandler.Alliances)
	mux.Handle("/api/alliances/suggested", suggestedAlliancesHandler)

	// Admin-only endpoints (bearer token)
	mux.Handle("/api/admin/snapshot", middleware.RequireAdmin(r.adminSecret, http.HandlerFunc(adminHandler.Snapshot)))
	mux.Handle("/api/admin/maintenance", middleware.RequireAdmin(r.adminSecret, http.HandlerFunc(adminHandler.Maintenance)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/server/status", "/api/leaderboard/players", "/api/leaderboard/alliances", "/api/alliances/suggested"},
		"admin_endpoints", []string{"/api/admin/snapshot", "/api/admin/maintenance"},
	)

	return mux
}
