package village

import (
	"encoding/json"
	"log/slog"
)

// Manager owns the placed objects of a single player's village. Object IDs are
// partitioned by kind (see Classify); the next ID for a kind is the maximum
// existing ID in that collection plus one, or the kind's floor when empty.
// All operations are pure in-memory mutations; the caller is responsible for
// flushing the manager back to storage.
type Manager struct {
	Buildings   []Building   `json:"buildings"`
	Traps       []Trap       `json:"traps"`
	Decorations []Decoration `json:"decos"`
	Obstacles   []Obstacle   `json:"obstacles"`

	LastLeagueRank    int `json:"last_league_rank,omitempty"`
	LastLeagueShuffle int `json:"last_league_shuffle,omitempty"`
	LastNewsSeen      int `json:"last_news_seen,omitempty"`

	logger *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		Buildings:   []Building{},
		Traps:       []Trap{},
		Decorations: []Decoration{},
		Obstacles:   []Obstacle{},
		logger:      logger.With("component", "village"),
	}
}

type ider interface {
	entityID() int
}

// nextID returns max(existing)+1, or floor for an empty collection. It
// returns 0 when the allocation would reach the next kind's floor; the ranges
// are part of the persisted format and must not bleed into each other.
func nextID[E ider](items []E, floor, ceiling int) int {
	next := floor
	for _, item := range items {
		if id := item.entityID(); id >= next {
			next = id + 1
		}
	}
	if next >= ceiling {
		return 0
	}
	return next
}

// Load replaces all collections from a serialized village. Records carrying a
// non-positive ID are assigned the next ID in their kind, computed against the
// collection as it is being rebuilt, so IDs backfilled within one load stay
// unique and increasing. A parse failure is logged and leaves the previous
// state untouched.
func (m *Manager) Load(raw string) {
	var loaded Manager
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		m.logger.Error("Failed to parse village state", "error", err)
		return
	}

	buildings := make([]Building, 0, len(loaded.Buildings))
	for _, b := range loaded.Buildings {
		if b.ID <= 0 {
			b.ID = nextID(buildings, BuildingFloor, TrapFloor)
		}
		buildings = append(buildings, b)
	}

	traps := make([]Trap, 0, len(loaded.Traps))
	for _, t := range loaded.Traps {
		if t.ID <= 0 {
			t.ID = nextID(traps, TrapFloor, DecorationFloor)
		}
		traps = append(traps, t)
	}

	decorations := make([]Decoration, 0, len(loaded.Decorations))
	for _, d := range loaded.Decorations {
		if d.ID <= 0 {
			d.ID = nextID(decorations, DecorationFloor, ObstacleFloor)
		}
		decorations = append(decorations, d)
	}

	obstacles := make([]Obstacle, 0, len(loaded.Obstacles))
	for _, o := range loaded.Obstacles {
		if o.ID <= 0 {
			o.ID = nextID(obstacles, ObstacleFloor, obstacleCeiling)
		}
		obstacles = append(obstacles, o)
	}

	m.Buildings = buildings
	m.Traps = traps
	m.Decorations = decorations
	m.Obstacles = obstacles
	m.LastLeagueRank = loaded.LastLeagueRank
	m.LastLeagueShuffle = loaded.LastLeagueShuffle
	m.LastNewsSeen = loaded.LastNewsSeen
}

// Serialize encodes the village as compact JSON with default-valued fields
// omitted. Load(Serialize()) reproduces the same object set.
func (m *Manager) Serialize() string {
	data, err := json.Marshal(m)
	if err != nil {
		m.logger.Error("Failed to serialize village state", "error", err)
		return "{}"
	}
	return string(data)
}

func (m *Manager) AddBuilding(templateID, x, y int) {
	id := nextID(m.Buildings, BuildingFloor, TrapFloor)
	if id == 0 {
		m.logger.Error("Building ID range exhausted", "count", len(m.Buildings))
		return
	}
	if m.findBuilding(id) != nil {
		return
	}
	m.Buildings = append(m.Buildings, Building{
		ID:   id,
		Data: templateID,
		X:    x,
		Y:    y,
	})
}

func (m *Manager) AddTrap(templateID, x, y int) {
	id := nextID(m.Traps, TrapFloor, DecorationFloor)
	if id == 0 {
		m.logger.Error("Trap ID range exhausted", "count", len(m.Traps))
		return
	}
	if m.findTrap(id) != nil {
		return
	}
	m.Traps = append(m.Traps, Trap{
		ID:   id,
		Data: templateID,
		X:    x,
		Y:    y,
	})
}

func (m *Manager) AddDecoration(templateID, x, y int) {
	id := nextID(m.Decorations, DecorationFloor, ObstacleFloor)
	if id == 0 {
		m.logger.Error("Decoration ID range exhausted", "count", len(m.Decorations))
		return
	}
	if m.findDecoration(id) != nil {
		return
	}
	m.Decorations = append(m.Decorations, Decoration{
		ID:   id,
		Data: templateID,
		X:    x,
		Y:    y,
	})
}

// Upgrade increments the level of the building or trap with the given ID.
// Level caps are game-rule territory and not checked here.
func (m *Manager) Upgrade(id int) {
	switch Classify(id) {
	case KindBuilding:
		if b := m.findBuilding(id); b != nil {
			b.Level++
		}
	case KindTrap:
		if t := m.findTrap(id); t != nil {
			t.Level++
		}
	}
}

// Move repositions a building, trap or decoration. Obstacles are fixed; an
// obstacle-range or out-of-range ID is a no-op.
func (m *Manager) Move(id, x, y int) {
	switch Classify(id) {
	case KindBuilding:
		if b := m.findBuilding(id); b != nil {
			b.X = x
			b.Y = y
		}
	case KindTrap:
		if t := m.findTrap(id); t != nil {
			t.X = x
			t.Y = y
		}
	case KindDecoration:
		if d := m.findDecoration(id); d != nil {
			d.X = x
			d.Y = y
		}
	}
}

func (m *Manager) RemoveDecoration(id int) {
	for i := range m.Decorations {
		if m.Decorations[i].ID == id {
			m.Decorations = append(m.Decorations[:i], m.Decorations[i+1:]...)
			return
		}
	}
}

func (m *Manager) RemoveObstacle(id int) {
	for i := range m.Obstacles {
		if m.Obstacles[i].ID == id {
			m.Obstacles = append(m.Obstacles[:i], m.Obstacles[i+1:]...)
			return
		}
	}
}

// SwitchAttackMode toggles the attack mode flag of a building. Only
// building-range IDs qualify.
func (m *Manager) SwitchAttackMode(id int) {
	if Classify(id) != KindBuilding {
		return
	}
	if b := m.findBuilding(id); b != nil {
		b.AttackMode = !b.AttackMode
	}
}

func (m *Manager) findBuilding(id int) *Building {
	for i := range m.Buildings {
		if m.Buildings[i].ID == id {
			return &m.Buildings[i]
		}
	}
	return nil
}

func (m *Manager) findTrap(id int) *Trap {
	for i := range m.Traps {
		if m.Traps[i].ID == id {
			return &m.Traps[i]
		}
	}
	return nil
}

func (m *Manager) findDecoration(id int) *Decoration {
	for i := range m.Decorations {
		if m.Decorations[i].ID == id {
			return &m.Decorations[i]
		}
	}
	return nil
}
