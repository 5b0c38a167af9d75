package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

var layoutSources = map[string]string{
	"if else": checkValueSource,
	"nested if": `function f(a, b) {
  if (a) {
    if (b) {
      one();
    } else {
      two();
    }
  }
  return 0;
}`,
	"switch": `function grade(score) {
  switch (true) {
    case score >= 90: return 'A';
    case score >= 80: return 'B';
    case score >= 70: return 'C';
    case score >= 60: return 'D';
    default: return 'F';
  }
}`,
	"loop": `function sum(items) {
  let total = 0;
  for (const i of items) {
    if (i > 0) {
      total += i;
    }
  }
  while (total > 100) {
    total -= 100;
  }
  return total;
}`,
	"try": `function load(api) {
  try {
    const x = api.fetch();
    return x;
  } catch (e) {
    log(e);
  } finally {
    done();
  }
  return null;
}`,
	"no return": "function f() { a(); b(); }",
	"empty":     "function f() {}",
}

func layout(t *testing.T, src, fn string) *Layout {
	t.Helper()

	return NewLayoutEngine().Layout(NewGraphBuilder().Build(parse(t, src), fn))
}

// reachable flood-fills walkable tiles 4-directionally from the entry.
func reachable(d *m.Dungeon) map[m.Point]bool {
	seen := map[m.Point]bool{d.Entry: true}
	queue := []m.Point{d.Entry}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, step := range []m.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			next := m.Point{X: p.X + step.X, Y: p.Y + step.Y}
			if seen[next] || !d.At(next.X, next.Y).Walkable() {
				continue
			}

			seen[next] = true
			queue = append(queue, next)
		}
	}

	return seen
}

func TestLayout_Structure(t *testing.T) {
	for name, src := range layoutSources {
		t.Run(name, func(t *testing.T) {
			d := layout(t, src, "").Dungeon

			require.Len(t, d.Grid, d.Height)

			for _, row := range d.Grid {
				require.Len(t, row, d.Width)
			}

			assert.Equal(t, 1, d.Count(m.TileEntry))
			assert.GreaterOrEqual(t, d.Count(m.TileExit), 1)
			assert.Equal(t, m.TileEntry, d.At(d.Entry.X, d.Entry.Y))
			assert.Equal(t, m.TileExit, d.At(d.Exit.X, d.Exit.Y))

			seen := reachable(d)

			for y := range d.Height {
				for x := range d.Width {
					if d.Grid[y][x].Walkable() {
						assert.True(t, seen[m.Point{X: x, Y: y}], "tile %s at (%d,%d) is unreachable", d.Grid[y][x], x, y)
					}
				}
			}

			for i, g := range d.Gems {
				assert.Equal(t, i+1, g.ID)

				data := d.TileData[g.Y][g.X]
				require.NotNil(t, data)
				assert.Equal(t, g.ID, data.GemID)
				assert.Equal(t, g.StatementID, data.StatementID)
			}

			for i, b := range d.Branches {
				assert.Equal(t, i+1, b.ID)
				assert.Equal(t, m.TileBranch, d.At(b.X, b.Y))
				assert.Equal(t, m.TileMerge, d.At(b.X, b.MergeRow))

				for j := 1; j < len(b.Paths); j++ {
					assert.Less(t, b.Paths[j-1].MaxColumn, b.Paths[j].MinColumn, "arms %d and %d of branch %d overlap", j-1, j, b.ID)
				}
			}
		})
	}
}

func TestLayout_CheckValue(t *testing.T) {
	l := layout(t, checkValueSource, "checkValue")
	d := l.Dungeon

	require.Len(t, d.Gems, 7)
	require.Len(t, d.Branches, 1)
	require.Len(t, l.Forks, 1)

	b := d.Branches[0]
	assert.Equal(t, m.BranchIf, b.Kind)
	assert.Equal(t, "x>10", b.Condition)
	require.Len(t, b.Paths, 2)
	assert.Equal(t, "true", b.Paths[0].Label)
	assert.Equal(t, "false", b.Paths[1].Label)
	assert.Equal(t, b.X, (b.Paths[0].Column+b.Paths[1].Column)/2)

	assert.Equal(t, []string{"const r=[];", "r.push('start');", "r.push('big');", "r.push('very big');", "r.push('small');", "r.push('end');", "return r;"},
		gemSummaries(d))

	exit, ok := d.Gem(7)
	require.True(t, ok)
	assert.Equal(t, d.Exit, m.Point{X: exit.X, Y: exit.Y})
	assert.Equal(t, 1, d.Count(m.TileExit))
}

func TestLayout_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		assert func(t *testing.T, l *Layout)
	}{
		{
			name: "switch has one arm per case",
			src:  layoutSources["switch"],
			assert: func(t *testing.T, l *Layout) {
				require.Len(t, l.Dungeon.Branches, 1)
				b := l.Dungeon.Branches[0]
				assert.True(t, b.IsSwitch)
				assert.Len(t, b.Paths, 5)
				assert.Len(t, b.Cases, 5)
				assert.True(t, b.Cases[4].IsDefault)
				assert.Equal(t, 5, l.Dungeon.Count(m.TileExit))
			},
		},
		{
			name: "loops get a loop-back lane",
			src:  layoutSources["loop"],
			assert: func(t *testing.T, l *Layout) {
				assert.Equal(t, 2, l.Dungeon.Count(m.TileLoopBack))

				entries := 0

				for _, row := range l.Dungeon.TileData {
					for _, data := range row {
						if data != nil && data.LoopEntry {
							entries++
						}
					}
				}

				assert.Equal(t, 2, entries)
			},
		},
		{
			name: "try places a catch entry and a finally tail",
			src:  layoutSources["try"],
			assert: func(t *testing.T, l *Layout) {
				require.Len(t, l.Dungeon.Branches, 1)
				b := l.Dungeon.Branches[0]
				assert.True(t, b.IsTryCatch)
				assert.Equal(t, []string{"try", "catch"}, []string{b.Paths[0].Label, b.Paths[1].Label})
				assert.Equal(t, 1, l.Dungeon.Count(m.TileCatchEntry))
				assert.Contains(t, gemSummaries(l.Dungeon), "done();")
			},
		},
		{
			name: "nested forks are numbered in document order",
			src:  layoutSources["nested if"],
			assert: func(t *testing.T, l *Layout) {
				require.Len(t, l.Dungeon.Branches, 2)
				assert.Equal(t, "a", l.Dungeon.Branches[0].Condition)
				assert.Equal(t, "b", l.Dungeon.Branches[1].Condition)
				require.Len(t, l.Forks, 2)
				assert.Equal(t, 0, l.Forks[0].Branch)
				assert.Equal(t, 1, l.Forks[1].Branch)
			},
		},
		{
			name: "a body without return ends at an added exit",
			src:  layoutSources["no return"],
			assert: func(t *testing.T, l *Layout) {
				assert.Len(t, l.Dungeon.Gems, 2)
				assert.Equal(t, 1, l.Dungeon.Count(m.TileExit))
				assert.Nil(t, l.Dungeon.TileData[l.Dungeon.Exit.Y][l.Dungeon.Exit.X])
			},
		},
		{
			name: "an empty function still connects entry and exit",
			src:  layoutSources["empty"],
			assert: func(t *testing.T, l *Layout) {
				assert.Empty(t, l.Dungeon.Gems)
				assert.Equal(t, l.Dungeon.Entry.Y+1, l.Dungeon.Exit.Y)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, layout(t, tt.src, ""))
		})
	}
}

func TestFallbackDungeon(t *testing.T) {
	d := FallbackDungeon()

	assert.Equal(t, fallbackWidth, d.Width)
	assert.Equal(t, fallbackHeight, d.Height)
	assert.Empty(t, d.Gems)
	assert.Empty(t, d.Branches)
	assert.Equal(t, m.TileEntry, d.At(d.Entry.X, d.Entry.Y))
	assert.Equal(t, m.TileExit, d.At(d.Exit.X, d.Exit.Y))
	assert.True(t, reachable(d)[d.Exit])
	assert.Equal(t, m.TileWall, d.At(d.Entry.X-1, d.Entry.Y))
}

func gemSummaries(d *m.Dungeon) []string {
	out := make([]string, 0, len(d.Gems))
	for _, g := range d.Gems {
		out = append(out, g.Summary)
	}

	return out
}
