package handlers

import (
	"net/http"

	"stronghold-server/internal/alliance"
	"stronghold-server/internal/player"
	"stronghold-server/internal/telemetry"
)

type StatusResponse struct {
	Status        string `json:"status"`
	Online        int    `json:"online"`
	PlayersInDB   int64  `json:"players_in_db"`
	AlliancesInDB int64  `json:"alliances_in_db"`
}

// StatusHandler reports the live view the telemetry snapshots are built from.
type StatusHandler struct {
	cache     *player.Cache
	players   *player.Repository
	alliances *alliance.Repository
	telemetry *telemetry.Service
}

func NewStatusHandler(cache *player.Cache, players *player.Repository, alliances *alliance.Repository, telemetry *telemetry.Service) *StatusHandler {
	return &StatusHandler{
		cache:     cache,
		players:   players,
		alliances: alliances,
		telemetry: telemetry,
	}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "Online"
	if h.telemetry.Maintenance() {
		status = "Maintenance"
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Status:        status,
		Online:        h.cache.Size(),
		PlayersInDB:   h.players.Count(r.Context()),
		AlliancesInDB: h.alliances.Count(r.Context()),
	})
}
