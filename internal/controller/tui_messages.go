package controller

import m "github.com/mouse-blink/covdungeon/internal/model"

// Message types.
type levelsMsg struct {
	levels []m.LevelSummary
	err    error
}

type runResultMsg struct {
	report m.RunReport
	err    error
}

// List item types.
type levelItem struct {
	path     string
	gems     int
	branches int
	size     string
}

func (l levelItem) FilterValue() string {
	return l.path
}
