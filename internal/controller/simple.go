package controller

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	m "github.com/mouse-blink/covdungeon/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(_ ...StartOption) error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
}

// Wait returns immediately; everything is printed synchronously.
func (s *SimpleUI) Wait() {
}

// DisplayDungeon prints the map followed by every fork and its options.
func (s *SimpleUI) DisplayDungeon(level m.Level, dungeon *m.Dungeon) error {
	s.printf("%s  %dx%d  gems: %d  forks: %d\n\n",
		levelName(level), dungeon.Width, dungeon.Height, len(dungeon.Gems), len(dungeon.Branches))
	s.printf("%s\n", RenderDungeon(dungeon, nil))

	for _, b := range dungeon.Branches {
		s.printf("#%d %s %s\n", b.ID, b.Kind, b.Condition)

		for _, opt := range b.Analysis.Options {
			s.printf("    %-10s %s\n", opt.ChoiceValue, opt.Label)
		}
	}

	return nil
}

// DisplayJSON writes v as indented JSON.
func (s *SimpleUI) DisplayJSON(v any) error {
	enc := json.NewEncoder(s.cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}

// DisplayRun prints the run outcome, the map with collected gems and the
// aggregate coverage.
func (s *SimpleUI) DisplayRun(dungeon *m.Dungeon, report m.RunReport) error {
	s.printf("result: %s\n\n", formatResult(report))
	s.printf("%s\n", RenderDungeon(dungeon, Collected(report.CollectedGems)))
	s.printf("covered gems:   %s\n", joinIDs(report.CoveredGems))
	s.printf("uncovered gems: %s\n", joinIDs(report.UncoveredGems))
	s.printf("\n%s", coverageTable(report))

	if report.FullCoverage {
		s.printf("\nevery gem collected in %d run(s)\n", report.RunsInAggregate)
	}

	return nil
}

// DisplayLevels prints one row per generated level.
func (s *SimpleUI) DisplayLevels(levels []m.LevelSummary, err error) error {
	if err != nil {
		s.printf("list error: %v\n", err)
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Gems", "Forks", "Size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	gems := 0

	for _, level := range levels {
		table.Append([]string{
			levelName(level.Level),
			strconv.Itoa(level.Gems),
			strconv.Itoa(level.Branches),
			fmt.Sprintf("%dx%d", level.Width, level.Height),
		})

		gems += level.Gems
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Levels %d", len(levels)),
		strconv.Itoa(gems),
		"",
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayHistory prints the stored runs and the aggregate they add up to.
func (s *SimpleUI) DisplayHistory(level m.Level, entries []m.RunEntry, progress m.RunReport) error {
	s.printf("%s: %d run(s)\n\n", levelName(level), len(entries))

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"When", "Stubs", "Statements", "Error"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, entry := range entries {
		stubs, _ := json.Marshal(entry.Stubs)

		statements := "-"
		if entry.Coverage != nil {
			covered := 0

			for _, hits := range entry.Coverage.S {
				if hits > 0 {
					covered++
				}
			}

			statements = percent(m.NewCoverageStat(covered, len(entry.Coverage.S)))
		}

		table.Append([]string{
			entry.CreatedAt.Local().Format(time.DateTime),
			string(stubs),
			statements,
			entry.Error,
		})
	}

	table.Render()
	s.printf("%s\n%s", tableBuffer.String(), coverageTable(progress))

	return nil
}

// Play reads option numbers from the command's input until "q" or EOF and
// runs the level with each chosen option.
func (s *SimpleUI) Play(state PlayState, run RunFunc) error {
	options := playOptions(state.Dungeon, state.Defaults)
	report := state.Progress
	scanner := bufio.NewScanner(s.cmd.InOrStdin())

	for {
		s.printf("%s\n", RenderDungeon(state.Dungeon, Collected(report.CollectedGems)))
		s.printf("%s\n", coverageTable(report))

		for i, opt := range options {
			s.printf("%3d) %s\n", i+1, opt.title())
		}

		s.printf("  0) run with defaults\n  q) quit\n> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		choice := strings.TrimSpace(scanner.Text())
		if choice == "q" || choice == "quit" {
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 0 || n > len(options) {
			s.printf("unknown choice %q\n", choice)
			continue
		}

		stubs := state.Defaults
		if n > 0 {
			stubs = options[n-1].stubs
		}

		next, err := run(stubs)
		if err != nil {
			return err
		}

		report = next
		s.printf("result: %s\n", formatResult(report))
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func coverageTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Coverage", "Percent"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Append([]string{"Statements", percent(report.Statements)})
	table.Append([]string{"Branches", percent(report.Branches)})
	table.Append([]string{"Functions", percent(report.Functions)})
	table.Render()

	return tableBuffer.String()
}

func levelName(level m.Level) string {
	name := string(level.Origin)
	if level.Function != "" {
		name += ":" + level.Function
	}

	return name
}
