package handlers

import (
	"net/http"
	"strconv"

	"stronghold-server/internal/alliance"
)

const defaultSuggestedAlliances = 20

type AllianceSuggestion struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Badge int    `json:"badge"`
	Score int    `json:"score"`
}

// SuggestedAlliancesHandler serves a random sample of alliances for the
// join-alliance screen.
type SuggestedAlliancesHandler struct {
	alliances *alliance.Repository
}

func NewSuggestedAlliancesHandler(alliances *alliance.Repository) *SuggestedAlliancesHandler {
	return &SuggestedAlliancesHandler{alliances: alliances}
}

func (h *SuggestedAlliancesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultSuggestedAlliances
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	sampled := h.alliances.RandomSample(r.Context(), limit)

	suggestions := make([]AllianceSuggestion, 0, len(sampled))
	for _, a := range sampled {
		suggestions = append(suggestions, AllianceSuggestion{
			ID:    a.ID,
			Name:  a.Name,
			Badge: a.Badge,
			Score: a.Score,
		})
	}

	writeJSON(w, http.StatusOK, suggestions)
}
