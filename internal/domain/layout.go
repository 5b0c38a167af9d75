package domain

import (
	"fmt"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// minWidth is the width of any node that occupies a single column.
const minWidth = 3

// Fallback dungeon dimensions.
const (
	fallbackWidth  = 5
	fallbackHeight = 10
)

// Layout is a placed dungeon together with the graph nodes behind each of
// its forks, in branch id order.
type Layout struct {
	Dungeon *m.Dungeon
	Forks   []Fork
}

// Fork links a BranchRecord to the Branch, Switch or Try it was placed for.
type Fork struct {
	Node   Node
	Branch int
}

// LayoutEngine places a control-flow graph on a tile grid.
type LayoutEngine interface {
	Layout(root *Root) *Layout
}

type gridLayout struct{}

// NewLayoutEngine constructs the grid LayoutEngine. Every call to Layout
// owns its own gem and branch counters.
func NewLayoutEngine() LayoutEngine {
	return &gridLayout{}
}

func (g *gridLayout) Layout(root *Root) *Layout {
	s := newLayoutSession()

	s.set(0, 0, m.TileEntry, nil)

	next := s.place(root, 0, 1)
	if s.exits == 0 {
		s.set(0, next, m.TileExit, nil)
	}

	return &Layout{Dungeon: s.finalize(), Forks: s.forks}
}

// width is the number of columns a node may occupy, centered on its column.
// It is always odd.
func width(n Node) int {
	switch n := n.(type) {
	case *Root:
		w := minWidth
		if n == nil {
			return w
		}

		for _, child := range n.Children {
			w = max(w, width(child))
		}

		return w
	case *Branch:
		return width(n.Consequent) + width(n.Alternate) + 1
	case *Switch:
		if len(n.Cases) == 0 {
			return minWidth
		}

		w := len(n.Cases) - 1
		for _, c := range n.Cases {
			w += width(c.Body)
		}

		return w
	case *Loop:
		return width(n.Body) + 2
	case *Try:
		return max(width(n.TryBody)+width(catchBody(n))+1, width(n.FinallyBody))
	default:
		return minWidth
	}
}

func catchBody(t *Try) *Root {
	if t.CatchBody == nil {
		return &Root{}
	}

	return t.CatchBody
}

type cell struct {
	kind m.TileKind
	data *m.TileData
}

type layoutSession struct {
	cells      map[m.Point]cell
	order      []m.Point
	gems       []m.Gem
	branches   []m.BranchRecord
	forks      []Fork
	nextGem    int
	nextBranch int
	exits      int
}

func newLayoutSession() *layoutSession {
	return &layoutSession{cells: map[m.Point]cell{}}
}

// set claims a cell. Occupied cells are never overwritten.
func (s *layoutSession) set(x, y int, kind m.TileKind, data *m.TileData) bool {
	p := m.Point{X: x, Y: y}
	if _, taken := s.cells[p]; taken {
		return false
	}

	s.cells[p] = cell{kind: kind, data: data}
	s.order = append(s.order, p)

	if kind == m.TileExit {
		s.exits++
	}

	return true
}

func (s *layoutSession) hline(y, x1, x2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}

	for x := x1; x <= x2; x++ {
		s.set(x, y, m.TileCorridorH, nil)
	}
}

func (s *layoutSession) vline(x, y1, y2 int) {
	for y := y1; y <= y2; y++ {
		s.set(x, y, m.TileCorridorV, nil)
	}
}

func (s *layoutSession) gem(x, y int, kind m.TileKind, loc m.Location, summary string, loopEntry bool) {
	id := s.nextGem + 1
	statementID := fmt.Sprintf("stmt-%d", id)

	data := &m.TileData{StatementID: statementID, GemID: id, Summary: summary, LoopEntry: loopEntry}
	if !s.set(x, y, kind, data) {
		return
	}

	s.nextGem = id
	s.gems = append(s.gems, m.Gem{ID: id, X: x, Y: y, StatementID: statementID, Location: loc, Summary: summary})
}

// openBranch reserves the next branch id and record slot so records stay in
// document order even though nested forks finish first.
func (s *layoutSession) openBranch(n Node) (int, int) {
	s.nextBranch++
	idx := len(s.branches)
	s.branches = append(s.branches, m.BranchRecord{ID: s.nextBranch})
	s.forks = append(s.forks, Fork{Node: n, Branch: idx})

	return s.nextBranch, idx
}

// place lays n out with its top at (col, row) and returns the first free
// row below it. Whatever n places includes (col, row) and, when anything is
// placed, (col, next-1), so consecutive nodes connect vertically.
func (s *layoutSession) place(n Node, col, row int) int {
	switch n := n.(type) {
	case *Root:
		if n == nil {
			return row
		}

		for _, child := range n.Children {
			row = s.place(child, col, row)
		}

		return row
	case *Block:
		for _, stmt := range n.Statements {
			s.gem(col, row, m.TileFloor, stmt.Location, stmt.Summary, false)
			row++
		}

		return row
	case *Return:
		s.gem(col, row, m.TileExit, n.Location, n.Summary, false)
		return row + 1
	case *Branch:
		return s.placeBranch(n, col, row)
	case *Switch:
		return s.placeSwitch(n, col, row)
	case *Loop:
		return s.placeLoop(n, col, row)
	case *Try:
		return s.placeTry(n, col, row)
	default:
		return row
	}
}

type arm struct {
	label string
	body  *Root
	door  m.TileKind
}

// fork lays arms side by side, centered on col, below a fork tile at
// (col, row) and joins them again at a merge tile. It returns the arm
// geometry and the merge row.
func (s *layoutSession) fork(col, row, branchID int, arms []arm) ([]m.BranchPath, int) {
	widths := make([]int, len(arms))
	total := len(arms) - 1

	for i, a := range arms {
		widths[i] = width(a.body)
		total += widths[i]
	}

	x := col - total/2
	centers := make([]int, len(arms))

	for i, w := range widths {
		centers[i] = x + w/2
		x += w + 1
	}

	paths := make([]m.BranchPath, len(arms))
	ends := make([]int, len(arms))
	mergeRow := row + 2

	for i, a := range arms {
		c := centers[i]
		s.hline(row, c, col)

		door := a.door
		if door == m.TileEmpty {
			door = doorFor(c, col)
		}

		s.set(c, row+1, door, nil)

		mark := len(s.order)
		ends[i] = s.place(a.body, c, row+2)
		mergeRow = max(mergeRow, ends[i])

		minX, maxX := c, c
		for _, p := range s.order[mark:] {
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
		}

		paths[i] = m.BranchPath{
			Label:     a.label,
			Column:    c,
			StartRow:  row + 2,
			EndRow:    ends[i] - 1,
			MinColumn: minX,
			MaxColumn: maxX,
		}
	}

	for i, c := range centers {
		s.vline(c, ends[i], mergeRow-1)

		if c != col {
			s.hline(mergeRow, c, col+sign(c-col))
		}
	}

	s.set(col, mergeRow, m.TileMerge, &m.TileData{BranchID: branchID})

	return paths, mergeRow
}

func doorFor(center, col int) m.TileKind {
	switch {
	case center < col:
		return m.TileDoorLeft
	case center > col:
		return m.TileDoorRight
	default:
		return m.TileCorridorV
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func (s *layoutSession) placeBranch(n *Branch, col, row int) int {
	id, idx := s.openBranch(n)
	s.set(col, row, m.TileBranch, &m.TileData{BranchID: id, Summary: n.ConditionText})

	paths, mergeRow := s.fork(col, row, id, []arm{
		{label: "true", body: n.Consequent},
		{label: "false", body: n.Alternate},
	})

	s.branches[idx] = m.BranchRecord{
		ID:        id,
		X:         col,
		Y:         row,
		Kind:      m.BranchIf,
		Condition: n.ConditionText,
		Location:  n.Location,
		Paths:     paths,
		MergeRow:  mergeRow,
	}

	return mergeRow + 1
}

func (s *layoutSession) placeSwitch(n *Switch, col, row int) int {
	id, idx := s.openBranch(n)
	s.set(col, row, m.TileBranch, &m.TileData{BranchID: id, Summary: n.DiscriminantText})

	arms := make([]arm, len(n.Cases))
	cases := make([]m.CaseInfo, len(n.Cases))

	for i, c := range n.Cases {
		label := "default"
		if c.Test != nil {
			label = "case " + c.TestText
		}

		arms[i] = arm{label: label, body: c.Body}
		cases[i] = m.CaseInfo{Test: c.TestText, IsDefault: c.Test == nil}
	}

	var (
		paths    []m.BranchPath
		mergeRow = row + 1
	)

	if len(arms) > 0 {
		paths, mergeRow = s.fork(col, row, id, arms)
	} else {
		s.set(col, mergeRow, m.TileMerge, &m.TileData{BranchID: id})
	}

	s.branches[idx] = m.BranchRecord{
		ID:        id,
		X:         col,
		Y:         row,
		Kind:      m.BranchSwitch,
		Condition: n.DiscriminantText,
		Location:  n.Location,
		Paths:     paths,
		MergeRow:  mergeRow,
		IsSwitch:  true,
		Cases:     cases,
	}

	return mergeRow + 1
}

// placeLoop puts the header gem at (col, row), the body below it and a
// loop-back lane to the right of the body's columns.
func (s *layoutSession) placeLoop(n *Loop, col, row int) int {
	s.gem(col, row, m.TileFloor, n.Location, n.Summary, true)

	end := s.place(n.Body, col, row+1)
	last := end - 1
	lane := col + width(n.Body)/2 + 1

	s.hline(last, col+1, lane-1)
	s.set(lane, last, m.TileLoopBack, nil)
	s.vline(lane, row, last-1)
	s.hline(row, col+1, lane-1)

	return end
}

func (s *layoutSession) placeTry(n *Try, col, row int) int {
	id, idx := s.openBranch(n)
	s.set(col, row, m.TileBranch, &m.TileData{BranchID: id, Summary: "try"})

	paths, mergeRow := s.fork(col, row, id, []arm{
		{label: "try", body: n.TryBody},
		{label: "catch", body: catchBody(n), door: m.TileCatchEntry},
	})

	next := mergeRow + 1
	if n.FinallyBody != nil {
		next = s.place(n.FinallyBody, col, next)
	}

	s.branches[idx] = m.BranchRecord{
		ID:         id,
		X:          col,
		Y:          row,
		Kind:       m.BranchTryCatch,
		Condition:  "try",
		Location:   n.Location,
		Paths:      paths,
		MergeRow:   mergeRow,
		IsTryCatch: true,
	}

	return next
}

// finalize moves the canvas into a padded grid anchored at (0, 0) and
// surrounds the walkable area with walls.
func (s *layoutSession) finalize() *m.Dungeon {
	minX, maxX, minY, maxY := 0, 0, 0, 0
	for p := range s.cells {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	dx, dy := 1-minX, 1-minY
	w, h := maxX-minX+3, maxY-minY+3

	d := newDungeon(w, h)

	for p, c := range s.cells {
		d.Grid[p.Y+dy][p.X+dx] = c.kind
		d.TileData[p.Y+dy][p.X+dx] = c.data
	}

	d.Entry = m.Point{X: dx, Y: dy}
	d.Exit = deepestExit(d)

	for _, g := range s.gems {
		g.X += dx
		g.Y += dy
		d.Gems = append(d.Gems, g)
	}

	for _, b := range s.branches {
		b.X += dx
		b.Y += dy
		b.MergeRow += dy

		paths := make([]m.BranchPath, len(b.Paths))
		for i, p := range b.Paths {
			p.Column += dx
			p.MinColumn += dx
			p.MaxColumn += dx
			p.StartRow += dy
			p.EndRow += dy
			paths[i] = p
		}

		b.Paths = paths
		d.Branches = append(d.Branches, b)
	}

	fillWalls(d)

	return d
}

func newDungeon(w, h int) *m.Dungeon {
	d := &m.Dungeon{
		Grid:     make([][]m.TileKind, h),
		TileData: make([][]*m.TileData, h),
		Width:    w,
		Height:   h,
		Gems:     []m.Gem{},
		Branches: []m.BranchRecord{},
	}

	for y := range h {
		d.Grid[y] = make([]m.TileKind, w)
		d.TileData[y] = make([]*m.TileData, w)
	}

	return d
}

// deepestExit picks the lowest Exit tile, leftmost on ties.
func deepestExit(d *m.Dungeon) m.Point {
	for y := d.Height - 1; y >= 0; y-- {
		for x := 0; x < d.Width; x++ {
			if d.Grid[y][x] == m.TileExit {
				return m.Point{X: x, Y: y}
			}
		}
	}

	return d.Entry
}

// fillWalls turns every empty cell 8-adjacent to a walkable cell into wall.
func fillWalls(d *m.Dungeon) {
	var walls []m.Point

	for y := range d.Height {
		for x := range d.Width {
			if d.Grid[y][x] != m.TileEmpty {
				continue
			}

			if touchesWalkable(d, x, y) {
				walls = append(walls, m.Point{X: x, Y: y})
			}
		}
	}

	for _, p := range walls {
		d.Grid[p.Y][p.X] = m.TileWall
	}
}

func touchesWalkable(d *m.Dungeon, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && d.At(x+dx, y+dy).Walkable() {
				return true
			}
		}
	}

	return false
}

// FallbackDungeon is the map used when a level cannot be parsed: a single
// corridor from Entry to Exit with no gems and no forks.
func FallbackDungeon() *m.Dungeon {
	d := newDungeon(fallbackWidth, fallbackHeight)
	mid := fallbackWidth / 2

	for y := range fallbackHeight {
		d.Grid[y][mid] = m.TileCorridorV
	}

	d.Grid[0][mid] = m.TileEntry
	d.Grid[fallbackHeight-1][mid] = m.TileExit
	d.Entry = m.Point{X: mid, Y: 0}
	d.Exit = m.Point{X: mid, Y: fallbackHeight - 1}

	fillWalls(d)

	return d
}
