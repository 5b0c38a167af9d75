package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

var glyphStyles = map[rune]lipgloss.Style{
	'#':            lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	'?':            lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	'+':            lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	'E':            lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	'X':            lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	'@':            lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	'!':            lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	glyphGem:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	glyphCollected: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
}

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	input   io.Reader
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
	mode    StartMode
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, input io.Reader) *TUI {
	return &TUI{output: output, input: input}
}

// Start initializes the UI. List mode opens a browsable level list fed by
// DisplayLevels.
func (t *TUI) Start(options ...StartOption) error {
	config := &StartConfig{mode: ModeReport}
	for _, opt := range options {
		opt(config)
	}

	t.mode = config.mode

	if t.mode == ModeList {
		return t.startWithModel(newLevelsModel())
	}

	return nil
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model,
		tea.WithOutput(t.output),
		tea.WithInput(t.input),
		tea.WithAltScreen())
	t.done = make(chan struct{})
	t.started = true

	go func(p *tea.Program, done chan struct{}) {
		defer close(done)

		_, _ = p.Run()
	}(t.program, t.done)

	return nil
}

func (t *TUI) ensureStarted() {
	if t.started {
		return
	}

	_ = t.startWithModel(newLevelsModel())
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// Close stops a running program and waits for it to exit.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user closes a running program.
func (t *TUI) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done != nil {
		<-done
	}
}

// DisplayDungeon prints the styled map and every fork's options.
func (t *TUI) DisplayDungeon(level m.Level, dungeon *m.Dungeon) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dungeon " + levelName(level)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%dx%d  gems %d  forks %d", dungeon.Width, dungeon.Height, len(dungeon.Gems), len(dungeon.Branches))))
	b.WriteString("\n\n")
	b.WriteString(styledDungeon(dungeon, nil))
	b.WriteString("\n")

	for _, br := range dungeon.Branches {
		b.WriteString(accentStyle.Render(fmt.Sprintf("#%d %s", br.ID, br.Kind)))
		b.WriteString(" " + br.Condition + "\n")

		for _, opt := range br.Analysis.Options {
			b.WriteString("   • " + opt.Label + "\n")
		}
	}

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// DisplayJSON writes v as indented JSON.
func (t *TUI) DisplayJSON(v any) error {
	enc := json.NewEncoder(t.output)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

// DisplayRun prints the run outcome over the styled map.
func (t *TUI) DisplayRun(dungeon *m.Dungeon, report m.RunReport) error {
	_, err := fmt.Fprint(t.output, runView(dungeon, report))

	return err
}

// DisplayLevels feeds the list program in list mode and prints a summary
// otherwise.
func (t *TUI) DisplayLevels(levels []m.LevelSummary, err error) error {
	if t.mode == ModeList {
		t.ensureStarted()
		t.send(levelsMsg{levels: levels, err: err})

		return err
	}

	if err != nil {
		_, _ = fmt.Fprintf(t.output, "%s\n", errorStyle.Render("list error: "+err.Error()))

		return err
	}

	var b strings.Builder

	for _, level := range levels {
		fmt.Fprintf(&b, "%s  %s\n",
			accentStyle.Render(fmt.Sprintf("%4d gems %3d forks", level.Gems, level.Branches)),
			levelName(level.Level))
	}

	_, err = fmt.Fprint(t.output, b.String())

	return err
}

// DisplayHistory prints stored runs oldest first and the aggregate.
func (t *TUI) DisplayHistory(level m.Level, entries []m.RunEntry, progress m.RunReport) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("History %s (%d runs)", levelName(level), len(entries))))
	b.WriteString("\n\n")

	for _, entry := range entries {
		stubs, _ := json.Marshal(entry.Stubs)
		line := fmt.Sprintf("%s  %s", mutedStyle.Render(entry.CreatedAt.Local().Format("2006-01-02 15:04:05")), string(stubs))

		if entry.Error != "" {
			line += "  " + errorStyle.Render(entry.Error)
		}

		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + coverageLine(progress) + "\n")

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

// Play runs the interactive map until the user quits.
func (t *TUI) Play(state PlayState, run RunFunc) error {
	program := tea.NewProgram(newPlayModel(state, run),
		tea.WithOutput(t.output),
		tea.WithInput(t.input),
		tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run play session: %w", err)
	}

	if pm, ok := final.(playModel); ok && pm.err != nil {
		return pm.err
	}

	return nil
}

func styledDungeon(d *m.Dungeon, collected map[int]bool) string {
	if d == nil {
		return ""
	}

	var b strings.Builder

	for y, row := range d.Grid {
		for x, kind := range row {
			g := Glyph(kind, d.TileData[y][x], collected)
			if style, ok := glyphStyles[g]; ok {
				b.WriteString(style.Render(string(g)))
			} else {
				b.WriteRune(g)
			}
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func coverageLine(report m.RunReport) string {
	line := fmt.Sprintf("statements %s  branches %s  functions %s",
		accentStyle.Render(percent(report.Statements)),
		accentStyle.Render(percent(report.Branches)),
		accentStyle.Render(percent(report.Functions)))

	if report.FullCoverage {
		line += "  " + successStyle.Render("full coverage")
	}

	return line
}

func runView(dungeon *m.Dungeon, report m.RunReport) string {
	var b strings.Builder

	if report.Error != "" {
		b.WriteString(errorStyle.Render(formatResult(report)))
	} else {
		b.WriteString("result " + accentStyle.Render(formatResult(report)))
	}

	b.WriteString("\n\n")
	b.WriteString(styledDungeon(dungeon, Collected(report.CollectedGems)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("covered " + joinIDs(report.CoveredGems) + "  uncovered " + joinIDs(report.UncoveredGems)))
	b.WriteString("\n")
	b.WriteString(coverageLine(report))
	b.WriteString("\n")

	return b.String()
}
