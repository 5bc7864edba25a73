package leaderboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"stronghold-server/internal/alliance"
	"stronghold-server/internal/player"
	"stronghold-server/internal/shared/redis"
)

// Entry is one leaderboard row as served to clients.
type Entry struct {
	Rank  int    `json:"rank"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Service serves ranking queries, with an optional Redis snapshot cache in
// front of the store. A nil cache client disables caching entirely; cache
// failures degrade to the store and are never surfaced to the caller.
type Service struct {
	players   *player.Repository
	alliances *alliance.Repository
	cache     *redis.Client
	ttl       time.Duration
	logger    *slog.Logger
}

func NewService(players *player.Repository, alliances *alliance.Repository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		players:   players,
		alliances: alliances,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With("component", "leaderboard"),
	}
}

// PlayerRanking returns the global player leaderboard, or the per-language
// one when language is non-empty.
func (s *Service) PlayerRanking(ctx context.Context, language string) []Entry {
	key := "leaderboard:players:global"
	if language != "" {
		key = "leaderboard:players:" + language
	}

	if entries, ok := s.fromCache(ctx, key); ok {
		return entries
	}

	var ranked []*player.Player
	if language == "" {
		ranked = s.players.GlobalRanking(ctx)
	} else {
		ranked = s.players.LocalRanking(ctx, language)
	}

	entries := playerEntries(ranked)
	s.store(ctx, key, entries)
	return entries
}

// AllianceRanking returns the global alliance leaderboard.
func (s *Service) AllianceRanking(ctx context.Context) []Entry {
	key := "leaderboard:alliances:global"

	if entries, ok := s.fromCache(ctx, key); ok {
		return entries
	}

	entries := allianceEntries(s.alliances.GlobalRanking(ctx))
	s.store(ctx, key, entries)
	return entries
}

func (s *Service) fromCache(ctx context.Context, key string) ([]Entry, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		s.logger.Debug("Leaderboard cache miss", "key", key, "error", err)
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Debug("Discarding malformed leaderboard cache entry", "key", key, "error", err)
		return nil, false
	}
	return entries, true
}

func (s *Service) store(ctx context.Context, key string, entries []Entry) {
	if s.cache == nil || len(entries) == 0 {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		s.logger.Debug("Failed to encode leaderboard for cache", "key", key, "error", err)
		return
	}

	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("Failed to cache leaderboard", "key", key, "error", err)
	}
}

func playerEntries(players []*player.Player) []Entry {
	entries := make([]Entry, 0, len(players))
	for i, p := range players {
		entries = append(entries, Entry{
			Rank:  i + 1,
			ID:    p.AccountID,
			Name:  p.Name,
			Score: p.Score,
		})
	}
	return entries
}

func allianceEntries(alliances []*alliance.Alliance) []Entry {
	entries := make([]Entry, 0, len(alliances))
	for i, a := range alliances {
		entries = append(entries, Entry{
			Rank:  i + 1,
			ID:    a.ID,
			Name:  a.Name,
			Score: a.Score,
		})
	}
	return entries
}
