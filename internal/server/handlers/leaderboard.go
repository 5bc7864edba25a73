package handlers

import (
	"net/http"

	"stronghold-server/internal/leaderboard"
)

type LeaderboardHandler struct {
	service *leaderboard.Service
}

func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Players serves the global ranking, or the per-language one when the
// language query parameter is set.
func (h *LeaderboardHandler) Players(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	writeJSON(w, http.StatusOK, h.service.PlayerRanking(r.Context(), language))
}

func (h *LeaderboardHandler) Alliances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.AllianceRanking(r.Context()))
}
