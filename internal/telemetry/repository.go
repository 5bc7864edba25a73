package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"

	"stronghold-server/internal/shared/database"
)

// Repository appends snapshots to the api_log table. Write-only; same
// absorb-and-sentinel contract as the other stores.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With("component", "telemetry_repository"),
	}
}

// NextID returns max+1 over the snapshot log; zero when the read failed.
func (r *Repository) NextID(ctx context.Context) int64 {
	logger := r.logger.With("operation", "next_id")

	var maxID int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM api_log").Scan(&maxID)
	if err != nil {
		logger.Error("Failed to read max snapshot id", "error", err)
		return 0
	}
	return maxID + 1
}

func (r *Repository) Insert(ctx context.Context, snap Snapshot) {
	logger := r.logger.With("operation", "insert", "snapshot_id", snap.ID)

	info, err := json.Marshal(snap)
	if err != nil {
		logger.Error("Failed to encode snapshot", "error", err)
		return
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO api_log (id, info) VALUES ($1, $2)`, snap.ID, string(info))
	if err != nil {
		logger.Error("Failed to insert snapshot", "error", err)
		return
	}

	logger.Debug("Snapshot recorded", "online", snap.Online, "status", snap.Status)
}
