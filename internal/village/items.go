package village

// Kind is the category of a placed object, derived from the numeric ID range.
type Kind int

const (
	KindInvalid Kind = iota
	KindBuilding
	KindTrap
	KindDecoration
	KindObstacle
)

// Every object ID is drawn from a contiguous range keyed to its kind. The
// floors are part of the persisted format and must never be renumbered.
const (
	BuildingFloor   = 500000000
	TrapFloor       = 504000000
	DecorationFloor = 506000000
	ObstacleFloor   = 508000000

	obstacleCeiling = 510000000
)

// Classify maps an object ID onto its kind by walking the floor table in
// ascending order. IDs below the building floor or at or above the obstacle
// ceiling are outside the keyspace and classify as KindInvalid.
func Classify(id int) Kind {
	switch {
	case id < BuildingFloor:
		return KindInvalid
	case id < TrapFloor:
		return KindBuilding
	case id < DecorationFloor:
		return KindTrap
	case id < ObstacleFloor:
		return KindDecoration
	case id < obstacleCeiling:
		return KindObstacle
	default:
		return KindInvalid
	}
}

func (k Kind) String() string {
	switch k {
	case KindBuilding:
		return "building"
	case KindTrap:
		return "trap"
	case KindDecoration:
		return "decoration"
	case KindObstacle:
		return "obstacle"
	default:
		return "invalid"
	}
}

// UnitProd is the production sub-state of a troop-producing building. It is
// carried through load/save untouched.
type UnitProd struct {
	Unit      int `json:"unit,omitempty"`
	Count     int `json:"count,omitempty"`
	Timestamp int `json:"t,omitempty"`
}

type Building struct {
	ID          int       `json:"id,omitempty"`
	Data        int       `json:"data,omitempty"`
	Level       int       `json:"lvl"`
	Locked      bool      `json:"locked,omitempty"`
	AttackMode  bool      `json:"attack_mode,omitempty"`
	ResetTime   int       `json:"res_time,omitempty"`
	X           int       `json:"x,omitempty"`
	Y           int       `json:"y,omitempty"`
	UnitProd    *UnitProd `json:"unit_prod,omitempty"`
	StorageType int       `json:"storage_type,omitempty"`
}

type Trap struct {
	ID    int `json:"id,omitempty"`
	Data  int `json:"data,omitempty"`
	Level int `json:"lvl,omitempty"`
	X     int `json:"x,omitempty"`
	Y     int `json:"y,omitempty"`
}

type Decoration struct {
	ID   int `json:"id,omitempty"`
	Data int `json:"data,omitempty"`
	X    int `json:"x,omitempty"`
	Y    int `json:"y,omitempty"`
}

type Obstacle struct {
	ID   int `json:"id,omitempty"`
	Data int `json:"data,omitempty"`
	X    int `json:"x,omitempty"`
	Y    int `json:"y,omitempty"`
}

func (b Building) entityID() int   { return b.ID }
func (t Trap) entityID() int       { return t.ID }
func (d Decoration) entityID() int { return d.ID }
func (o Obstacle) entityID() int   { return o.ID }
