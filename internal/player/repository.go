package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"stronghold-server/internal/shared/database"
	"stronghold-server/internal/village"

	"github.com/google/uuid"
)

const rankingLimit = 200

// Repository is the durable store for players. No operation returns an error:
// failures are logged and absorbed, and the caller receives a sentinel (nil,
// empty slice or zero) meaning "unknown or unavailable". Each statement uses a
// pooled connection for its own duration only; there is no cross-statement
// transaction.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With("component", "player_repository"),
	}
}

// NextID reads the current maximum account ID and returns max+1, or 1 for an
// empty table. The read and the later insert are not one atomic step: two
// concurrent creates can observe the same maximum, and the loser surfaces as
// an absorbed primary-key violation on insert. Zero means the read failed.
func (r *Repository) NextID(ctx context.Context) int64 {
	logger := r.logger.With("operation", "next_id")

	var maxID int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(account_id), 0) FROM players").Scan(&maxID)
	if err != nil {
		logger.Error("Failed to read max account id", "error", err)
		return 0
	}
	return maxID + 1
}

// Create allocates the next account ID, builds a player at default state with
// a fresh token and an empty village, and inserts it. Returns nil on any
// failure.
func (r *Repository) Create(ctx context.Context) *Player {
	logger := r.logger.With("operation", "create")

	id := r.NextID(ctx)
	if id == 0 {
		return nil
	}

	p := New(id, uuid.NewString(), r.logger)

	avatar, err := json.Marshal(p)
	if err != nil {
		logger.Error("Failed to encode player", "error", err)
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO players (account_id, score, language, avatar, game_objects)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.AccountID, p.Score, p.Language, string(avatar), p.Village.Serialize())
	if err != nil {
		logger.Error("Failed to insert player", "account_id", p.AccountID, "error", err)
		return nil
	}

	logger.Info("Player created", "account_id", p.AccountID)
	return p
}

// Get returns the player with the given account ID, or nil when absent or on
// any failure. The avatar blob is decoded first, then the score and language
// columns are overlaid as the authoritative values.
func (r *Repository) Get(ctx context.Context, accountID int64) *Player {
	logger := r.logger.With("operation", "get", "account_id", accountID)

	row := r.db.QueryRowContext(ctx,
		`SELECT score, language, avatar, game_objects FROM players WHERE account_id = $1`,
		accountID)

	p, err := scanPlayer(row.Scan, r.logger)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Player not found")
		} else {
			logger.Error("Failed to load player", "error", err)
		}
		return nil
	}
	return p
}

// Save overwrites the player's row: blob, village and mirrored scalar columns.
// There is no version check; the last save wins. Failures are absorbed.
func (r *Repository) Save(ctx context.Context, p *Player) {
	if p == nil {
		return
	}
	logger := r.logger.With("operation", "save", "account_id", p.AccountID)

	avatar, err := json.Marshal(p)
	if err != nil {
		logger.Error("Failed to encode player", "error", err)
		return
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE players SET score = $1, language = $2, avatar = $3, game_objects = $4
		 WHERE account_id = $5`,
		p.Score, p.Language, string(avatar), p.Village.Serialize(), p.AccountID)
	if err != nil {
		logger.Error("Failed to save player", "error", err)
		return
	}

	logger.Debug("Player saved")
}

// GlobalRanking returns up to 200 players ordered by descending score. Empty
// on error; malformed rows are skipped and the rest of the batch is kept.
func (r *Repository) GlobalRanking(ctx context.Context) []*Player {
	return r.ranking(ctx,
		`SELECT score, language, avatar, game_objects FROM players
		 ORDER BY score DESC LIMIT $1`, rankingLimit)
}

// LocalRanking is GlobalRanking filtered to one language.
func (r *Repository) LocalRanking(ctx context.Context, language string) []*Player {
	return r.ranking(ctx,
		`SELECT score, language, avatar, game_objects FROM players
		 WHERE language = $1 ORDER BY score DESC LIMIT $2`, language, rankingLimit)
}

// RandomSample returns up to limit uniformly sampled players.
func (r *Repository) RandomSample(ctx context.Context, limit int) []*Player {
	return r.ranking(ctx,
		`SELECT score, language, avatar, game_objects FROM players
		 ORDER BY RANDOM() LIMIT $1`, limit)
}

func (r *Repository) ranking(ctx context.Context, query string, args ...any) []*Player {
	logger := r.logger.With("operation", "ranking")

	players := []*Player{}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query players", "error", err)
		return players
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlayer(rows.Scan, r.logger)
		if err != nil {
			logger.Error("Skipping malformed player row", "error", err)
			continue
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error iterating player rows", "error", err)
	}

	return players
}

// Count returns the total number of stored players; zero on error.
func (r *Repository) Count(ctx context.Context) int64 {
	logger := r.logger.With("operation", "count")

	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	if err != nil {
		logger.Error("Failed to count players", "error", err)
		return 0
	}
	return count
}

// scanPlayer reads one row (score, language, avatar, game_objects) and
// reconstructs the player: decode the blob, rebuild the village, then overlay
// the column values.
func scanPlayer(scan func(...any) error, logger *slog.Logger) (*Player, error) {
	var (
		score              int
		language           string
		avatar, gameObject string
	)
	if err := scan(&score, &language, &avatar, &gameObject); err != nil {
		return nil, err
	}
	return decodePlayer(avatar, gameObject, score, language, logger)
}

func decodePlayer(avatar, gameObjects string, score int, language string, logger *slog.Logger) (*Player, error) {
	var p Player
	if err := json.Unmarshal([]byte(avatar), &p); err != nil {
		return nil, fmt.Errorf("failed to decode avatar blob: %w", err)
	}

	p.Village = village.NewManager(logger)
	p.Village.Load(gameObjects)
	p.overlayColumns(score, language)

	return &p, nil
}
