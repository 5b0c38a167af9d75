package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// optionDelegate renders fork options.
type optionDelegate struct{}

func (d optionDelegate) Height() int  { return 1 }
func (d optionDelegate) Spacing() int { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d optionDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	opt, ok := item.(playOption)
	if !ok {
		return
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	if index == lm.Index() {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	_, _ = fmt.Fprint(w, style.Render(truncateToWidth(opt.title(), lm.Width())))
}

// playModel shows the map and lets the player pick fork options to run.
type playModel struct {
	state   PlayState
	run     RunFunc
	options list.Model
	report  m.RunReport
	running bool
	last    string
	err     error
	width   int
	height  int
}

func newPlayModel(state PlayState, run RunFunc) playModel {
	opts := playOptions(state.Dungeon, state.Defaults)

	items := make([]list.Item, len(opts))
	for i, o := range opts {
		items[i] = o
	}

	options := list.New(items, optionDelegate{}, 60, 8)
	options.SetShowPagination(true)
	options.SetShowFilter(false)
	options.SetFilteringEnabled(false)
	options.SetShowHelp(false)
	options.SetShowTitle(false)
	options.SetShowStatusBar(false)

	return playModel{state: state, run: run, options: options, report: state.Progress}
}

func (p playModel) Init() tea.Cmd {
	return nil
}

func (p playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.options.SetWidth(max(msg.Width-4, 20))

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case "enter":
			if opt, ok := p.options.SelectedItem().(playOption); ok {
				return p.start(opt.stubs)
			}

			return p, nil
		case "r":
			return p.start(p.state.Defaults)
		}

		var cmd tea.Cmd
		p.options, cmd = p.options.Update(msg)

		return p, cmd

	case runResultMsg:
		p.running = false

		if msg.err != nil {
			p.err = msg.err
			return p, tea.Quit
		}

		p.report = msg.report
		p.last = formatResult(msg.report)
	}

	return p, nil
}

// start launches a run unless one is in flight.
func (p playModel) start(stubs map[string]any) (tea.Model, tea.Cmd) {
	if p.running || p.run == nil {
		return p, nil
	}

	p.running = true
	run := p.run

	return p, func() tea.Msg {
		report, err := run(stubs)
		return runResultMsg{report: report, err: err}
	}
}

func (p playModel) View() string {
	header := titleStyle.Render("covdungeon " + levelName(p.state.Level))

	status := mutedStyle.Render("pick an option and press enter")

	switch {
	case p.running:
		status = accentStyle.Render("running…")
	case p.report.Error != "":
		status = errorStyle.Render(p.last)
	case p.last != "":
		status = "result " + accentStyle.Render(p.last)
	}

	board := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(styledDungeon(p.state.Dungeon, Collected(p.report.CollectedGems)))

	footer := mutedStyle.Render("↑/↓ choose • enter run option • r run defaults • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		board,
		coverageLine(p.report),
		status,
		"",
		p.options.View(),
		footer,
	)
}
