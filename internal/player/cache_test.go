package player

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetPutRemove(t *testing.T) {
	c := NewCache()

	assert.Nil(t, c.Get(1))
	assert.Equal(t, 0, c.Size())

	p := New(1, "token-1", slog.Default())
	c.Put(p)

	assert.Same(t, p, c.Get(1))
	assert.Equal(t, 1, c.Size())

	c.Remove(1)
	assert.Nil(t, c.Get(1))
	assert.Equal(t, 0, c.Size())
}

func TestCachePutNilIsNoop(t *testing.T) {
	c := NewCache()
	c.Put(nil)
	assert.Equal(t, 0, c.Size())
}

func TestCacheRandom(t *testing.T) {
	c := NewCache()
	assert.Nil(t, c.Random(), "empty cache has no opponent")

	ids := map[int64]bool{1: false, 2: false, 3: false}
	for id := range ids {
		c.Put(New(id, "t", slog.Default()))
	}

	for range 100 {
		p := c.Random()
		require.NotNil(t, p)
		_, resident := ids[p.AccountID]
		require.True(t, resident)
		ids[p.AccountID] = true
	}

	for id, seen := range ids {
		assert.True(t, seen, "player %d never sampled in 100 draws", id)
	}
}
