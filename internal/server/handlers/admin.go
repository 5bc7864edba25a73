package handlers

import (
	"net/http"

	"stronghold-server/internal/player"
	"stronghold-server/internal/telemetry"
)

// AdminHandler exposes the operational controls behind the admin bearer
// token.
type AdminHandler struct {
	telemetry *telemetry.Service
	cache     *player.Cache
}

func NewAdminHandler(telemetry *telemetry.Service, cache *player.Cache) *AdminHandler {
	return &AdminHandler{telemetry: telemetry, cache: cache}
}

// Snapshot forces one telemetry snapshot outside the regular interval.
func (h *AdminHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.telemetry.Record(r.Context(), h.cache.Size())
	w.WriteHeader(http.StatusAccepted)
}

type maintenanceRequest struct {
	Maintenance bool `json:"maintenance"`
}

// Maintenance toggles the maintenance flag surfaced in status and snapshots.
func (h *AdminHandler) Maintenance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.telemetry.SetMaintenance(req.Maintenance)
	writeJSON(w, http.StatusOK, map[string]bool{"maintenance": h.telemetry.Maintenance()})
}
