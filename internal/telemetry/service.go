package telemetry

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"stronghold-server/internal/alliance"
	"stronghold-server/internal/player"
)

const (
	statusOnline      = "Online"
	statusMaintenance = "Maintenance"
)

// Snapshot is one append-only record of server state. It is written for the
// public API consumer and never read back by the engine.
type Snapshot struct {
	ID            int64  `json:"id"`
	Online        int    `json:"online"`
	PlayersInDB   int64  `json:"players_in_db"`
	AlliancesInDB int64  `json:"alliances_in_db"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

// Service assembles snapshots from the live player count and the store-wide
// counters, and owns the runtime maintenance flag.
type Service struct {
	repo        *Repository
	players     *player.Repository
	alliances   *alliance.Repository
	maintenance atomic.Bool
	logger      *slog.Logger
}

func NewService(repo *Repository, players *player.Repository, alliances *alliance.Repository, maintenance bool, logger *slog.Logger) *Service {
	s := &Service{
		repo:      repo,
		players:   players,
		alliances: alliances,
		logger:    logger.With("component", "telemetry"),
	}
	s.maintenance.Store(maintenance)
	return s
}

func (s *Service) Maintenance() bool {
	return s.maintenance.Load()
}

func (s *Service) SetMaintenance(on bool) {
	s.maintenance.Store(on)
	s.logger.Info("Maintenance flag changed", "maintenance", on)
}

// Record writes one snapshot for the current moment. online is the resident
// player count supplied by the caller. Failures are absorbed.
func (s *Service) Record(ctx context.Context, online int) {
	id := s.repo.NextID(ctx)
	if id == 0 {
		return
	}

	snap := newSnapshot(
		id,
		online,
		s.players.Count(ctx),
		s.alliances.Count(ctx),
		s.Maintenance(),
		time.Now().UTC(),
	)

	s.repo.Insert(ctx, snap)
}

func newSnapshot(id int64, online int, playersInDB, alliancesInDB int64, maintenance bool, now time.Time) Snapshot {
	status := statusOnline
	if maintenance {
		status = statusMaintenance
	}

	return Snapshot{
		ID:            id,
		Online:        online,
		PlayersInDB:   playersInDB,
		AlliancesInDB: alliancesInDB,
		Status:        status,
		Timestamp:     now.Format(time.RFC3339),
	}
}
