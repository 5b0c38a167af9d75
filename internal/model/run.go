package model

import "time"

// ScriptStub is a stub given as JavaScript source, typically a function
// expression such as `async (id) => ({ id })`.
type ScriptStub string

// FuncStub is a dependency stub that returns a fixed value when called.
type FuncStub struct {
	Returns any `json:"returns"`
}

// ThrowStub is a dependency that throws an Error with Message when called.
type ThrowStub struct {
	Message string `json:"message"`
}

// UndefinedValue marks a stub that should reach JavaScript as `undefined`.
type UndefinedValue struct{}

// Undefined is the single UndefinedValue.
var Undefined = UndefinedValue{}

// MarshalJSON renders undefined as null, the closest JSON value.
func (UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MergeStubs layers overrides on top of base without touching either.
// Nested objects are merged key by key so sibling stubs survive.
func MergeStubs(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range overrides {
		inner, isMap := v.(map[string]any)
		prev, prevIsMap := out[k].(map[string]any)

		if isMap && prevIsMap {
			out[k] = MergeStubs(prev, inner)

			continue
		}

		out[k] = v
	}

	return out
}

// RunResult is the outcome of executing a level once.
type RunResult struct {
	Result   any             `json:"result"`
	Coverage *CoverageRecord `json:"coverageData"`
	Err      error           `json:"-"`
}

// RunReport is a run as seen by the player: the raw result plus the gems it
// collected and the aggregate progress after merging it.
type RunReport struct {
	Level           Level          `json:"level"`
	Stubs           map[string]any `json:"stubs"`
	Result          any            `json:"result"`
	Error           string         `json:"error,omitempty"`
	CoveredGems     []int          `json:"coveredGems"`
	UncoveredGems   []int          `json:"uncoveredGems"`
	CollectedGems   []int          `json:"collectedGems"`
	Statements      CoverageStat   `json:"statements"`
	Branches        CoverageStat   `json:"branches"`
	Functions       CoverageStat   `json:"functions"`
	FullCoverage    bool           `json:"fullCoverage"`
	RunsInAggregate int            `json:"runsInAggregate"`
}

// RunEntry is a persisted run.
type RunEntry struct {
	ID        string          `json:"id"`
	LevelKey  string          `json:"levelKey"`
	Function  string          `json:"function"`
	Stubs     map[string]any  `json:"stubs"`
	Error     string          `json:"error,omitempty"`
	Coverage  *CoverageRecord `json:"coverage"`
	CreatedAt time.Time       `json:"createdAt"`
}

// LevelSummary is the shape of one generated level, as listed in batch.
type LevelSummary struct {
	Level    Level `json:"level"`
	Gems     int   `json:"gems"`
	Branches int   `json:"branches"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
}
