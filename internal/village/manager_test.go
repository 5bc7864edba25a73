package village

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		id   int
		want Kind
	}{
		{"below building floor", 499999999, KindInvalid},
		{"zero", 0, KindInvalid},
		{"negative", -1, KindInvalid},
		{"building floor", 500000000, KindBuilding},
		{"building range", 500000001, KindBuilding},
		{"last building", 503999999, KindBuilding},
		{"trap floor", 504000000, KindTrap},
		{"last trap", 505999999, KindTrap},
		{"decoration floor", 506000000, KindDecoration},
		{"last decoration", 507999999, KindDecoration},
		{"obstacle floor", 508000000, KindObstacle},
		{"past obstacle ceiling", 510000000, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.id))
		})
	}
}

func TestAddBuildingOnEmptyManager(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 5, 5)

	require.Len(t, m.Buildings, 1)
	b := m.Buildings[0]
	assert.Equal(t, 500000000, b.ID)
	assert.Equal(t, 1000001, b.Data)
	assert.Equal(t, 0, b.Level)
	assert.Equal(t, 5, b.X)
	assert.Equal(t, 5, b.Y)
	assert.False(t, b.Locked)
	assert.False(t, b.AttackMode)
}

func TestAddAllocatesIncreasingIDsPerKind(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 0, 0)
	m.AddBuilding(1000002, 1, 1)
	m.AddTrap(12000001, 2, 2)
	m.AddDecoration(18000001, 3, 3)

	require.Len(t, m.Buildings, 2)
	assert.Equal(t, 500000000, m.Buildings[0].ID)
	assert.Equal(t, 500000001, m.Buildings[1].ID)
	require.Len(t, m.Traps, 1)
	assert.Equal(t, 504000000, m.Traps[0].ID)
	require.Len(t, m.Decorations, 1)
	assert.Equal(t, 506000000, m.Decorations[0].ID)
}

func TestNextIDAllocatesAfterMaxNotAfterLast(t *testing.T) {
	m := NewManager(nil)
	m.Buildings = []Building{
		{ID: 500000005},
		{ID: 500000002},
	}
	m.AddBuilding(1000001, 0, 0)

	require.Len(t, m.Buildings, 3)
	assert.Equal(t, 500000006, m.Buildings[2].ID)
}

func TestNextIDRefusesCeiling(t *testing.T) {
	m := NewManager(nil)
	m.Buildings = []Building{{ID: TrapFloor - 1}}
	m.AddBuilding(1000001, 0, 0)

	assert.Len(t, m.Buildings, 1, "allocation past the trap floor must be refused")
}

func TestLoadBackfillsNonPositiveIDs(t *testing.T) {
	m := NewManager(nil)
	m.Load(`{
		"buildings": [
			{"data": 1000001, "lvl": 2, "x": 1, "y": 1},
			{"id": -5, "data": 1000002, "lvl": 0, "x": 2, "y": 2},
			{"id": 500000009, "data": 1000003, "lvl": 1, "x": 3, "y": 3},
			{"data": 1000004, "lvl": 3, "x": 4, "y": 4}
		],
		"traps": [{"data": 12000001, "x": 9, "y": 9}],
		"decos": [],
		"obstacles": [{"id": 508000002, "data": 8000001, "x": 7, "y": 7}]
	}`)

	require.Len(t, m.Buildings, 4)
	assert.Equal(t, 500000000, m.Buildings[0].ID)
	assert.Equal(t, 500000001, m.Buildings[1].ID)
	assert.Equal(t, 500000009, m.Buildings[2].ID)
	assert.Equal(t, 500000010, m.Buildings[3].ID, "backfill computes against the collection as built")

	require.Len(t, m.Traps, 1)
	assert.Equal(t, 504000000, m.Traps[0].ID)

	assert.Empty(t, m.Decorations)

	require.Len(t, m.Obstacles, 1)
	assert.Equal(t, 508000002, m.Obstacles[0].ID)
}

func TestLoadKeepsStateOnParseFailure(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 5, 5)
	m.AddTrap(12000001, 6, 6)

	m.Load(`{"buildings": [`)

	require.Len(t, m.Buildings, 1)
	assert.Equal(t, 500000000, m.Buildings[0].ID)
	require.Len(t, m.Traps, 1)
}

func TestSerializeLoadRoundTrip(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 5, 5)
	m.AddBuilding(1000002, 10, 10)
	m.Upgrade(500000001)
	m.SwitchAttackMode(500000000)
	m.AddTrap(12000001, 3, 3)
	m.Upgrade(504000000)
	m.AddDecoration(18000001, 8, 8)
	m.Obstacles = append(m.Obstacles, Obstacle{ID: 508000000, Data: 8000001, X: 20, Y: 20})
	m.Buildings[1].UnitProd = &UnitProd{Unit: 4000001, Count: 5, Timestamp: 1700000000}
	m.LastLeagueRank = 3
	m.LastNewsSeen = 12

	encoded := m.Serialize()

	restored := NewManager(nil)
	restored.Load(encoded)

	assert.Equal(t, m.Buildings, restored.Buildings)
	assert.Equal(t, m.Traps, restored.Traps)
	assert.Equal(t, m.Decorations, restored.Decorations)
	assert.Equal(t, m.Obstacles, restored.Obstacles)
	assert.Equal(t, m.LastLeagueRank, restored.LastLeagueRank)
	assert.Equal(t, m.LastLeagueShuffle, restored.LastLeagueShuffle)
	assert.Equal(t, m.LastNewsSeen, restored.LastNewsSeen)
}

func TestSerializeOmitsDefaults(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 0, 0)

	encoded := m.Serialize()

	assert.NotContains(t, encoded, "attack_mode")
	assert.NotContains(t, encoded, "locked")
	assert.NotContains(t, encoded, "unit_prod")
	assert.NotContains(t, encoded, "last_league_rank")
	assert.Contains(t, encoded, `"lvl":0`, "building level is always emitted")
	assert.NotContains(t, encoded, " ", "encoding is compact")
}

func TestUpgradeUnknownIDLeavesCollectionsUnchanged(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 5, 5)
	m.AddTrap(12000001, 6, 6)

	m.Upgrade(500000099)
	m.Upgrade(504000099)
	m.Upgrade(42)

	assert.Equal(t, 0, m.Buildings[0].Level)
	assert.Equal(t, 0, m.Traps[0].Level)
}

func TestUpgradeByRange(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 5, 5)
	m.AddTrap(12000001, 6, 6)

	m.Upgrade(500000000)
	m.Upgrade(504000000)
	m.Upgrade(504000000)

	assert.Equal(t, 1, m.Buildings[0].Level)
	assert.Equal(t, 2, m.Traps[0].Level)
}

func TestMoveDecorationDoesNotTouchOtherKinds(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 1, 1)
	m.AddTrap(12000001, 2, 2)
	m.AddDecoration(18000001, 3, 3)

	m.Move(506000000, 40, 41)

	assert.Equal(t, 40, m.Decorations[0].X)
	assert.Equal(t, 41, m.Decorations[0].Y)
	assert.Equal(t, 1, m.Buildings[0].X)
	assert.Equal(t, 2, m.Traps[0].X)
}

func TestMoveIgnoresObstacleAndInvalidRanges(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 1, 1)
	m.Obstacles = append(m.Obstacles, Obstacle{ID: 508000000, X: 9, Y: 9})

	m.Move(508000000, 50, 50)
	m.Move(7, 50, 50)

	assert.Equal(t, 9, m.Obstacles[0].X)
	assert.Equal(t, 1, m.Buildings[0].X)
}

func TestRemoveDecorationAndObstacle(t *testing.T) {
	m := NewManager(nil)
	m.AddDecoration(18000001, 3, 3)
	m.AddDecoration(18000002, 4, 4)
	m.Obstacles = append(m.Obstacles, Obstacle{ID: 508000000})

	m.RemoveDecoration(506000000)
	m.RemoveDecoration(506000099)
	m.RemoveObstacle(508000000)
	m.RemoveObstacle(508000000)

	require.Len(t, m.Decorations, 1)
	assert.Equal(t, 506000001, m.Decorations[0].ID)
	assert.Empty(t, m.Obstacles)
}

func TestSwitchAttackMode(t *testing.T) {
	m := NewManager(nil)
	m.AddBuilding(1000001, 1, 1)
	m.AddTrap(12000001, 2, 2)

	m.SwitchAttackMode(500000000)
	assert.True(t, m.Buildings[0].AttackMode)

	m.SwitchAttackMode(500000000)
	assert.False(t, m.Buildings[0].AttackMode)

	// trap-range and unknown IDs are no-ops
	m.SwitchAttackMode(504000000)
	m.SwitchAttackMode(500000099)
	assert.False(t, m.Buildings[0].AttackMode)
}
