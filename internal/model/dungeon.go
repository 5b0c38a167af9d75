package model

// Gem is a collectible tied to exactly one statement, return or loop header.
type Gem struct {
	ID          int      `json:"id"`
	X           int      `json:"x"`
	Y           int      `json:"y"`
	StatementID string   `json:"statementId"`
	Location    Location `json:"location"`
	Summary     string   `json:"summary,omitempty"`
}

// Dungeon is the generated map for one level.
type Dungeon struct {
	Grid     [][]TileKind   `json:"grid"`
	TileData [][]*TileData  `json:"tileData"`
	Entry    Point          `json:"entry"`
	Exit     Point          `json:"exit"`
	Branches []BranchRecord `json:"branches"`
	Gems     []Gem          `json:"gems"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
}

// At returns the tile at (x, y), or TileEmpty when out of bounds.
func (d *Dungeon) At(x, y int) TileKind {
	if y < 0 || y >= len(d.Grid) || x < 0 || x >= len(d.Grid[y]) {
		return TileEmpty
	}

	return d.Grid[y][x]
}

// Count returns how many cells hold the given kind.
func (d *Dungeon) Count(kind TileKind) int {
	n := 0

	for _, row := range d.Grid {
		for _, k := range row {
			if k == kind {
				n++
			}
		}
	}

	return n
}

// Gem returns the gem with the given id.
func (d *Dungeon) Gem(id int) (Gem, bool) {
	for _, g := range d.Gems {
		if g.ID == id {
			return g, true
		}
	}

	return Gem{}, false
}
