package domain

import (
	"log/slog"
	"sort"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// CoverageMapper reconciles instrumentation statement ids with gems by
// source location.
type CoverageMapper interface {
	// BuildMapping replaces the current mapping with one derived from the
	// record's statement map and the given gems.
	BuildMapping(record *m.CoverageRecord, gems []m.Gem) m.StatementMapping
	// CoveredGemIDs returns mapped gems whose statement ran, ascending.
	CoveredGemIDs(record *m.CoverageRecord) []int
	// UncoveredGemIDs returns mapped gems whose statement did not run,
	// ascending. Gems without a statement are in neither list.
	UncoveredGemIDs(record *m.CoverageRecord) []int
	Mapping() m.StatementMapping
}

type coverageMapper struct {
	logger  *slog.Logger
	mapping m.StatementMapping
}

// NewCoverageMapper constructs a CoverageMapper that reports misses on
// logger at debug level.
func NewCoverageMapper(logger *slog.Logger) CoverageMapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &coverageMapper{logger: logger, mapping: m.NewStatementMapping()}
}

func (c *coverageMapper) Mapping() m.StatementMapping {
	return c.mapping
}

// BuildMapping matches exact (line, column) positions first, then gives each
// remaining statement the nearest-column gem on its line that nothing has
// claimed yet.
func (c *coverageMapper) BuildMapping(record *m.CoverageRecord, gems []m.Gem) m.StatementMapping {
	mapping := m.NewStatementMapping()
	c.mapping = mapping

	if record == nil {
		return mapping
	}

	ids := make([]int, 0, len(record.StatementMap))
	for id := range record.StatementMap {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	ordered := make([]m.Gem, len(gems))
	copy(ordered, gems)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	claim := func(stmt, gem int) {
		mapping.StatementToGem[stmt] = gem
		mapping.GemToStatement[gem] = stmt
	}

	var pending []int

	for _, id := range ids {
		start := record.StatementMap[id].Start
		matched := false

		for _, g := range ordered {
			if _, taken := mapping.GemToStatement[g.ID]; taken {
				continue
			}

			if g.Location.Start == start {
				claim(id, g.ID)
				matched = true

				break
			}
		}

		if !matched {
			pending = append(pending, id)
		}
	}

	for _, id := range pending {
		start := record.StatementMap[id].Start
		best, bestDist := -1, 0

		for _, g := range ordered {
			if _, taken := mapping.GemToStatement[g.ID]; taken || g.Location.Start.Line != start.Line {
				continue
			}

			dist := abs(g.Location.Start.Column - start.Column)
			if best < 0 || dist < bestDist {
				best, bestDist = g.ID, dist
			}
		}

		if best < 0 {
			c.logger.Debug("statement has no gem",
				slog.Int("statement", id),
				slog.Int("line", start.Line),
				slog.Int("column", start.Column))

			continue
		}

		claim(id, best)
	}

	for _, g := range ordered {
		if _, ok := mapping.GemToStatement[g.ID]; !ok {
			c.logger.Debug("gem has no statement",
				slog.Int("gem", g.ID),
				slog.Int("line", g.Location.Start.Line),
				slog.String("summary", g.Summary))
		}
	}

	return mapping
}

func (c *coverageMapper) CoveredGemIDs(record *m.CoverageRecord) []int {
	return c.project(record, true)
}

func (c *coverageMapper) UncoveredGemIDs(record *m.CoverageRecord) []int {
	return c.project(record, false)
}

func (c *coverageMapper) project(record *m.CoverageRecord, covered bool) []int {
	out := []int{}

	if record == nil {
		return out
	}

	for gem, stmt := range c.mapping.GemToStatement {
		if (record.S[stmt] > 0) == covered {
			out = append(out, gem)
		}
	}

	sort.Ints(out)

	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
