package controller

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// Map glyphs.
const (
	glyphCollected = '*'
	glyphGem       = 'o'
)

var glyphs = map[m.TileKind]rune{
	m.TileEmpty:      ' ',
	m.TileFloor:      '.',
	m.TileWall:       '#',
	m.TileBranch:     '?',
	m.TileMerge:      '+',
	m.TileExit:       'X',
	m.TileEntry:      'E',
	m.TileCorridorH:  '-',
	m.TileCorridorV:  '|',
	m.TileDoorLeft:   '[',
	m.TileDoorRight:  ']',
	m.TileLoopBack:   '@',
	m.TileCatchEntry: '!',
}

// Glyph returns the character drawn for a cell. Gems show as o until
// collected and * afterwards; a return keeps its X until collected.
func Glyph(kind m.TileKind, data *m.TileData, collected map[int]bool) rune {
	if data != nil && data.GemID != 0 {
		if collected[data.GemID] {
			return glyphCollected
		}

		if kind == m.TileFloor {
			return glyphGem
		}
	}

	if g, ok := glyphs[kind]; ok {
		return g
	}

	return ' '
}

// RenderDungeon draws the grid as text, one line per row, trailing blanks
// trimmed.
func RenderDungeon(d *m.Dungeon, collected map[int]bool) string {
	if d == nil {
		return ""
	}

	var b strings.Builder

	for y, row := range d.Grid {
		line := make([]rune, len(row))
		for x, kind := range row {
			line[x] = Glyph(kind, d.TileData[y][x], collected)
		}

		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}

	return b.String()
}

// Collected turns a gem id list into a lookup set.
func Collected(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}

// playOption is one selectable way through a fork.
type playOption struct {
	branch int
	kind   m.BranchKind
	label  string
	stubs  map[string]any
}

func (o playOption) FilterValue() string {
	return o.label
}

func (o playOption) title() string {
	return fmt.Sprintf("#%d %s: %s", o.branch, o.kind, o.label)
}

// playOptions flattens every fork's options in branch order, merging
// defaults under each option's stubs.
func playOptions(d *m.Dungeon, defaults map[string]any) []playOption {
	var out []playOption

	if d == nil {
		return out
	}

	branches := make([]m.BranchRecord, len(d.Branches))
	copy(branches, d.Branches)
	sort.Slice(branches, func(i, j int) bool { return branches[i].ID < branches[j].ID })

	for _, b := range branches {
		for _, opt := range b.Analysis.Options {
			out = append(out, playOption{
				branch: b.ID,
				kind:   b.Kind,
				label:  opt.Label,
				stubs:  m.MergeStubs(defaults, opt.Stubs),
			})
		}
	}

	return out
}

func percent(stat m.CoverageStat) string {
	return fmt.Sprintf("%.1f%% (%d/%d)", stat.Percent, stat.Covered, stat.Total)
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}

	return strings.Join(parts, ",")
}

func formatResult(report m.RunReport) string {
	if report.Error != "" {
		return "error: " + report.Error
	}

	out, err := json.Marshal(report.Result)
	if err != nil {
		return fmt.Sprintf("%v", report.Result)
	}

	return string(out)
}
