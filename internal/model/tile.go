package model

import "fmt"

// TileKind is the kind of a single map cell.
type TileKind int

// Tile kinds. Empty cells lie outside the playable area.
const (
	TileEmpty TileKind = iota
	TileFloor
	TileWall
	TileBranch
	TileMerge
	TileExit
	TileEntry
	TileCorridorH
	TileCorridorV
	TileDoorLeft
	TileDoorRight
	TileLoopBack
	TileCatchEntry
)

var tileNames = [...]string{
	TileEmpty:      "empty",
	TileFloor:      "floor",
	TileWall:       "wall",
	TileBranch:     "branch",
	TileMerge:      "merge",
	TileExit:       "exit",
	TileEntry:      "entry",
	TileCorridorH:  "corridor_h",
	TileCorridorV:  "corridor_v",
	TileDoorLeft:   "door_left",
	TileDoorRight:  "door_right",
	TileLoopBack:   "loop_back",
	TileCatchEntry: "catch_entry",
}

func (k TileKind) String() string {
	if k < 0 || int(k) >= len(tileNames) {
		return fmt.Sprintf("tile(%d)", int(k))
	}

	return tileNames[k]
}

// MarshalText encodes the kind by name so JSON maps stay readable.
func (k TileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *TileKind) UnmarshalText(text []byte) error {
	for i, name := range tileNames {
		if name == string(text) {
			*k = TileKind(i)
			return nil
		}
	}

	return fmt.Errorf("unknown tile kind %q", string(text))
}

// Walkable reports whether a player can stand on the tile.
func (k TileKind) Walkable() bool {
	return k != TileEmpty && k != TileWall
}

// Corridor reports whether the tile only connects other tiles.
func (k TileKind) Corridor() bool {
	return k == TileCorridorH || k == TileCorridorV
}

// TileData is the optional metadata attached to a cell.
type TileData struct {
	StatementID string `json:"statementId,omitempty"`
	GemID       int    `json:"gemId,omitempty"`
	BranchID    int    `json:"branchId,omitempty"`
	Summary     string `json:"summary,omitempty"`
	LoopEntry   bool   `json:"loopEntry,omitempty"`
}

// Point is a grid coordinate; X is the column and Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
