package model

// BranchKind distinguishes the constructs that fork the map.
type BranchKind string

const (
	// BranchIf is an if/else conditional.
	BranchIf BranchKind = "if"
	// BranchSwitch is an N-ary switch.
	BranchSwitch BranchKind = "switch"
	// BranchTryCatch is a try/catch pair.
	BranchTryCatch BranchKind = "try"
)

// BranchPath is the geometry of one arm of a fork.
type BranchPath struct {
	Label     string `json:"label"`
	Column    int    `json:"column"`
	StartRow  int    `json:"startRow"`
	EndRow    int    `json:"endRow"`
	MinColumn int    `json:"minColumn"`
	MaxColumn int    `json:"maxColumn"`
}

// CaseInfo describes one switch case as written in source.
type CaseInfo struct {
	Test      string `json:"test,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty"`
}

// BranchOption is one selectable way through a fork.
type BranchOption struct {
	Label       string         `json:"label"`
	Stubs       map[string]any `json:"stubs"`
	ChoiceValue string         `json:"choiceValue"`
}

// BranchAnalysis is the decision layer attached to a fork after layout.
type BranchAnalysis struct {
	ConditionText string         `json:"conditionText"`
	Options       []BranchOption `json:"options"`
}

// BranchRecord is layout plus analysis metadata for one fork.
type BranchRecord struct {
	ID         int            `json:"id"`
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Kind       BranchKind     `json:"kind"`
	Condition  string         `json:"condition"`
	Location   Location       `json:"location"`
	Paths      []BranchPath   `json:"paths"`
	MergeRow   int            `json:"mergeRow"`
	IsSwitch   bool           `json:"isSwitch"`
	IsTryCatch bool           `json:"isTryCatch"`
	Cases      []CaseInfo     `json:"cases,omitempty"`
	Analysis   BranchAnalysis `json:"analysis"`
}
