package player

import (
	"log/slog"
	"time"

	"stronghold-server/internal/village"
)

// Player is the in-memory account of one game client. Score and Language are
// mirrored into relational columns on save and are column-authoritative on
// load; the rest of the struct round-trips through the avatar blob. The
// village is persisted in its own column and excluded from the blob.
type Player struct {
	AccountID int64  `json:"account_id,omitempty"`
	Token     string `json:"token,omitempty"`
	Name      string `json:"name,omitempty"`
	Score     int    `json:"score,omitempty"`
	Language  string `json:"language,omitempty"`
	Shield    Shield `json:"shield"`

	Village *village.Manager `json:"-"`
}

// Shield is read by the battle layer when the player is served as a
// matchmaking opponent.
type Shield struct {
	Active bool  `json:"active,omitempty"`
	Expiry int64 `json:"expiry,omitempty"`
}

func (s Shield) IsActive() bool {
	return s.Active && s.Expiry > time.Now().Unix()
}

func New(accountID int64, token string, logger *slog.Logger) *Player {
	return &Player{
		AccountID: accountID,
		Token:     token,
		Name:      "Chief",
		Language:  "EN",
		Village:   village.NewManager(logger),
	}
}

// overlayColumns applies the column-authoritative scalar fields on top of a
// freshly decoded blob. Every load path runs through this reconciliation.
func (p *Player) overlayColumns(score int, language string) {
	p.Score = score
	p.Language = language
}
