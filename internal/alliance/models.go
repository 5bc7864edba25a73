package alliance

// Alliance is a player-founded clan. Name and Score are mirrored into
// relational columns and are column-authoritative on load; Description and
// Badge live only in the data blob.
type Alliance struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Badge       int    `json:"badge,omitempty"`
	Score       int    `json:"score,omitempty"`
}

func New(id int64) *Alliance {
	return &Alliance{
		ID:   id,
		Name: "Alliance",
	}
}

func (a *Alliance) overlayColumns(name string, score int) {
	a.Name = name
	a.Score = score
}
