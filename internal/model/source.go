// Package model defines the data structures shared by the dungeon pipeline.
package model

// Path represents a file system path.
type Path string

// Position is a point in source text. Line is 1-based, Column is 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a half-open source range.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Level identifies one playable function inside a source file.
type Level struct {
	Origin   Path   `json:"origin"`
	Hash     string `json:"hash"`
	Function string `json:"function"`
	Source   []byte `json:"-"`
}

// Key returns the identifier used to group run history for the level.
func (l Level) Key() string {
	return l.Hash + ":" + l.Function
}
