package model

// BranchMeta describes one instrumented branch point.
type BranchMeta struct {
	Type      string     `json:"type"`
	Location  Location   `json:"loc"`
	Locations []Location `json:"locations"`
}

// FunctionMeta describes one instrumented function.
type FunctionMeta struct {
	Name     string   `json:"name"`
	Location Location `json:"loc"`
}

// CoverageRecord is the hit-count snapshot of one run, keyed by
// instrumentation id.
type CoverageRecord struct {
	StatementMap map[int]Location     `json:"statementMap"`
	BranchMap    map[int]BranchMeta   `json:"branchMap"`
	FnMap        map[int]FunctionMeta `json:"fnMap"`
	S            map[int]int          `json:"s"`
	B            map[int][]int        `json:"b"`
	F            map[int]int          `json:"f"`
}

// NewCoverageRecord returns a record with every map allocated.
func NewCoverageRecord() *CoverageRecord {
	return &CoverageRecord{
		StatementMap: map[int]Location{},
		BranchMap:    map[int]BranchMeta{},
		FnMap:        map[int]FunctionMeta{},
		S:            map[int]int{},
		B:            map[int][]int{},
		F:            map[int]int{},
	}
}

// Clone returns a deep copy of the record.
func (c *CoverageRecord) Clone() *CoverageRecord {
	if c == nil {
		return nil
	}

	out := NewCoverageRecord()

	for id, loc := range c.StatementMap {
		out.StatementMap[id] = loc
	}

	for id, meta := range c.BranchMap {
		locs := make([]Location, len(meta.Locations))
		copy(locs, meta.Locations)
		meta.Locations = locs
		out.BranchMap[id] = meta
	}

	for id, meta := range c.FnMap {
		out.FnMap[id] = meta
	}

	for id, n := range c.S {
		out.S[id] = n
	}

	for id, arms := range c.B {
		cp := make([]int, len(arms))
		copy(cp, arms)
		out.B[id] = cp
	}

	for id, n := range c.F {
		out.F[id] = n
	}

	return out
}

// CoverageStat is a covered/total ratio.
type CoverageStat struct {
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// NewCoverageStat computes the percentage; a zero total yields 0%.
func NewCoverageStat(covered, total int) CoverageStat {
	stat := CoverageStat{Covered: covered, Total: total}
	if total > 0 {
		stat.Percent = float64(covered) / float64(total) * 100
	}

	return stat
}

// StatementMapping links instrumentation statement ids to gem ids in both
// directions.
type StatementMapping struct {
	StatementToGem map[int]int `json:"statementToGem"`
	GemToStatement map[int]int `json:"gemToStatement"`
}

// NewStatementMapping returns an empty mapping.
func NewStatementMapping() StatementMapping {
	return StatementMapping{StatementToGem: map[int]int{}, GemToStatement: map[int]int{}}
}
