package controller

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// levelDelegate renders one level per line.
type levelDelegate struct{}

func (d levelDelegate) Height() int  { return 1 }
func (d levelDelegate) Spacing() int { return 0 }
func (d levelDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d levelDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	level, ok := item.(levelItem)
	if !ok {
		return
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(14).Align(lipgloss.Right)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	if index == m.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		countStyle = selected.Width(14).Align(lipgloss.Right)
		pathStyle = selected
	}

	width := m.Width() - 24

	line := fmt.Sprintf("%s  %-7s %s",
		countStyle.Render(fmt.Sprintf("%d gems %d forks", level.gems, level.branches)),
		level.size,
		pathStyle.Render(truncateToWidth(level.path, width)),
	)
	_, _ = fmt.Fprint(w, line)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + ellipsis
}

// levelsModel browses the levels found by list.
type levelsModel struct {
	width    int
	height   int
	levels   list.Model
	total    int
	gems     int
	err      error
	rendered bool
}

func newLevelsModel() levelsModel {
	levels := list.New([]list.Item{}, levelDelegate{}, 80, 20)
	levels.SetShowPagination(false)
	levels.SetShowFilter(true)
	levels.SetShowHelp(false)
	levels.SetShowTitle(false)
	levels.SetShowStatusBar(false)
	levels.FilterInput.Placeholder = "Filter by path…"

	return levelsModel{levels: levels}
}

func (m levelsModel) Init() tea.Cmd {
	return nil
}

func (m levelsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.levels.SetWidth(max(m.width-6, 20))
		m.levels.SetHeight(max(m.height-7, 5))

	case tea.KeyMsg:
		if m.levels.FilterState() != list.Filtering && (msg.String() == "q" || msg.String() == "ctrl+c") {
			return m, tea.Quit
		}

		m.levels, cmd = m.levels.Update(msg)

	case levelsMsg:
		m = m.handleLevelsMsg(msg)
	}

	return m, cmd
}

func (m levelsModel) handleLevelsMsg(msg levelsMsg) levelsModel {
	m.rendered = true
	m.err = msg.err

	summaries := make([]levelItem, 0, len(msg.levels))
	m.gems = 0

	for _, level := range msg.levels {
		summaries = append(summaries, levelItem{
			path:     levelName(level.Level),
			gems:     level.Gems,
			branches: level.Branches,
			size:     fmt.Sprintf("%dx%d", level.Width, level.Height),
		})
		m.gems += level.Gems
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].path < summaries[j].path })

	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = s
	}

	m.levels.SetItems(items)
	m.total = len(items)

	return m
}

func (m levelsModel) View() string {
	if !m.rendered {
		return "Generating levels…\n"
	}

	if m.err != nil {
		return errorStyle.Render("list error: "+m.err.Error()) + "\n"
	}

	title := titleStyle.Padding(1, 0, 0, 2).Render("Levels")
	summary := lipgloss.NewStyle().Padding(0, 0, 1, 2).Render(fmt.Sprintf(
		"Levels: %s   Gems: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.total)),
		accentStyle.Render(fmt.Sprintf("%d", m.gems)),
	))

	table := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Render(m.levels.View())

	footer := mutedStyle.Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, table, footer)
}
