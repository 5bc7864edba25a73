package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"stronghold-server/internal/shared/database"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePlayerOverlaysColumns(t *testing.T) {
	p := New(7, "token-7", slog.Default())
	p.Name = "Ragnar"
	p.Score = 100
	p.Language = "DE"
	p.Village.AddBuilding(1000001, 5, 5)

	avatar, err := json.Marshal(p)
	require.NoError(t, err)

	// columns have moved ahead of the blob's copy
	restored, err := decodePlayer(string(avatar), p.Village.Serialize(), 250, "FR", slog.Default())
	require.NoError(t, err)

	assert.Equal(t, int64(7), restored.AccountID)
	assert.Equal(t, "token-7", restored.Token)
	assert.Equal(t, "Ragnar", restored.Name)
	assert.Equal(t, 250, restored.Score, "score column is authoritative")
	assert.Equal(t, "FR", restored.Language, "language column is authoritative")

	require.Len(t, restored.Village.Buildings, 1)
	assert.Equal(t, 500000000, restored.Village.Buildings[0].ID)
}

func TestDecodePlayerMalformedBlob(t *testing.T) {
	_, err := decodePlayer(`{"account_id":`, "{}", 0, "EN", slog.Default())
	assert.Error(t, err)
}

func TestDecodePlayerMalformedVillageKeepsPlayer(t *testing.T) {
	p := New(3, "token-3", slog.Default())
	avatar, err := json.Marshal(p)
	require.NoError(t, err)

	restored, err := decodePlayer(string(avatar), `not json`, 5, "EN", slog.Default())
	require.NoError(t, err)
	require.NotNil(t, restored.Village)
	assert.Empty(t, restored.Village.Buildings, "corrupt village yields an empty manager, not a crash")
}

func TestShieldIsActive(t *testing.T) {
	assert.False(t, Shield{}.IsActive())
	assert.False(t, Shield{Active: true, Expiry: time.Now().Unix() - 10}.IsActive())
	assert.True(t, Shield{Active: true, Expiry: time.Now().Unix() + 3600}.IsActive())
}

// unreachableDB returns a handle whose every statement fails: the DSN points
// at a closed port, and database/sql defers dialing until first use.
func unreachableDB(t *testing.T) *database.DB {
	t.Helper()
	sqlDB, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=none dbname=none sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return &database.DB{DB: sqlDB}
}

func TestRepositoryReturnsSentinelsWhenStoreUnreachable(t *testing.T) {
	repo := NewRepository(unreachableDB(t), slog.Default())
	ctx := context.Background()

	assert.Zero(t, repo.NextID(ctx))
	assert.Nil(t, repo.Create(ctx))
	assert.Nil(t, repo.Get(ctx, 1))
	assert.Empty(t, repo.GlobalRanking(ctx))
	assert.Empty(t, repo.LocalRanking(ctx, "EN"))
	assert.Empty(t, repo.RandomSample(ctx, 10))
	assert.Zero(t, repo.Count(ctx))

	p := New(1, "token", slog.Default())
	repo.Save(ctx, p) // must absorb, not panic
}
