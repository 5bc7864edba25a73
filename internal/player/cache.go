package player

import (
	"math/rand/v2"
	"sync"
)

// Cache is the process-wide registry of resident players. Residency is
// managed by the session layer; the cache itself only stores, evicts and
// samples. At most one session mutates a given player at a time, so the lock
// guards the map, not the players.
type Cache struct {
	mu      sync.RWMutex
	players map[int64]*Player
}

func NewCache() *Cache {
	return &Cache{players: make(map[int64]*Player)}
}

func (c *Cache) Get(accountID int64) *Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.players[accountID]
}

func (c *Cache) Put(p *Player) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players[p.AccountID] = p
}

func (c *Cache) Remove(accountID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.players, accountID)
}

// Random returns a uniformly chosen resident player, or nil when the cache is
// empty. Used to pick a matchmaking opponent.
func (c *Cache) Random() *Player {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.players) == 0 {
		return nil
	}

	n := rand.IntN(len(c.players))
	for _, p := range c.players {
		if n == 0 {
			return p
		}
		n--
	}
	return nil
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.players)
}
