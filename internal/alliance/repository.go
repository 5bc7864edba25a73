package alliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"stronghold-server/internal/shared/database"
)

const rankingLimit = 200

// Repository is the durable store for alliances. Same contract as the player
// repository: failures are absorbed and logged, callers get sentinels.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With("component", "alliance_repository"),
	}
}

// NextID returns max+1 over stored alliance IDs, without exclusivity; see the
// player repository for the collision semantics. Zero means the read failed.
func (r *Repository) NextID(ctx context.Context) int64 {
	logger := r.logger.With("operation", "next_id")

	var maxID int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(alliance_id), 0) FROM alliances").Scan(&maxID)
	if err != nil {
		logger.Error("Failed to read max alliance id", "error", err)
		return 0
	}
	return maxID + 1
}

func (r *Repository) Create(ctx context.Context) *Alliance {
	logger := r.logger.With("operation", "create")

	id := r.NextID(ctx)
	if id == 0 {
		return nil
	}

	a := New(id)

	data, err := json.Marshal(a)
	if err != nil {
		logger.Error("Failed to encode alliance", "error", err)
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO alliances (alliance_id, name, score, data) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Name, a.Score, string(data))
	if err != nil {
		logger.Error("Failed to insert alliance", "alliance_id", a.ID, "error", err)
		return nil
	}

	logger.Info("Alliance created", "alliance_id", a.ID)
	return a
}

func (r *Repository) Get(ctx context.Context, id int64) *Alliance {
	logger := r.logger.With("operation", "get", "alliance_id", id)

	row := r.db.QueryRowContext(ctx,
		`SELECT name, score, data FROM alliances WHERE alliance_id = $1`, id)

	a, err := scanAlliance(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Alliance not found")
		} else {
			logger.Error("Failed to load alliance", "error", err)
		}
		return nil
	}
	return a
}

func (r *Repository) Save(ctx context.Context, a *Alliance) {
	if a == nil {
		return
	}
	logger := r.logger.With("operation", "save", "alliance_id", a.ID)

	data, err := json.Marshal(a)
	if err != nil {
		logger.Error("Failed to encode alliance", "error", err)
		return
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE alliances SET name = $1, score = $2, data = $3 WHERE alliance_id = $4`,
		a.Name, a.Score, string(data), a.ID)
	if err != nil {
		logger.Error("Failed to save alliance", "error", err)
		return
	}

	logger.Debug("Alliance saved")
}

// GlobalRanking returns up to 200 alliances by descending score; empty on
// error, malformed rows skipped.
func (r *Repository) GlobalRanking(ctx context.Context) []*Alliance {
	return r.list(ctx,
		`SELECT name, score, data FROM alliances ORDER BY score DESC LIMIT $1`, rankingLimit)
}

// RandomSample returns up to limit uniformly sampled alliances, used to seed
// the join-alliance discovery screen.
func (r *Repository) RandomSample(ctx context.Context, limit int) []*Alliance {
	return r.list(ctx,
		`SELECT name, score, data FROM alliances ORDER BY RANDOM() LIMIT $1`, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) []*Alliance {
	logger := r.logger.With("operation", "list")

	alliances := []*Alliance{}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query alliances", "error", err)
		return alliances
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAlliance(rows.Scan)
		if err != nil {
			logger.Error("Skipping malformed alliance row", "error", err)
			continue
		}
		alliances = append(alliances, a)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating alliance rows", "error", err)
	}

	return alliances
}

// Count returns the total number of stored alliances; zero on error.
func (r *Repository) Count(ctx context.Context) int64 {
	logger := r.logger.With("operation", "count")

	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM alliances").Scan(&count)
	if err != nil {
		logger.Error("Failed to count alliances", "error", err)
		return 0
	}
	return count
}

func scanAlliance(scan func(...any) error) (*Alliance, error) {
	var (
		name  string
		score int
		data  string
	)
	if err := scan(&name, &score, &data); err != nil {
		return nil, err
	}
	return decodeAlliance(data, name, score)
}

func decodeAlliance(data, name string, score int) (*Alliance, error) {
	var a Alliance
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to decode alliance blob: %w", err)
	}
	a.overlayColumns(name, score)
	return &a, nil
}
