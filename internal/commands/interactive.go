package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajithraghavan/qmd/diff"
	"github.com/ajithraghavan/qmd/internal/batch"
	"github.com/ajithraghavan/qmd/internal/config"
	"github.com/ajithraghavan/qmd/internal/state"
	"github.com/ajithraghavan/qmd/internal/styles"
	"github.com/ajithraghavan/qmd/internal/tui"
)

// Batch converts every file under a directory with a progress display
func Batch(args []string) {
	titleStyle := styles.TitleStyle
	dimStyle := styles.DimStyle

	dryRun := hasFlag(args, "--dry-run")
	force := hasFlag(args, "--force")
	reverse := hasFlag(args, "--reverse")

	dir := "."
	if pos := positional(args); len(pos) > 0 {
		dir = pos[0]
	}

	cfg, conv := loadConverter()

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		fail("Error loading state", err)
	}

	runner := batch.New(cfg, st, conv)
	runner.DryRun = dryRun
	runner.Force = force
	runner.Reverse = reverse

	log, cleanup := setupLogger(cfg)
	defer cleanup()
	runner.SetLogger(log)

	if dryRun {
		fmt.Println(titleStyle.Render("qmd batch (DRY RUN)"))
	} else {
		fmt.Println(titleStyle.Render("qmd batch"))
	}
	fmt.Println(dimStyle.Render(fmt.Sprintf("%s  %s", dir, runner.Direction())))
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := tui.InitBatchModel(dir, runner.Direction())
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := runner.Run(ctx, dir)

		var tuiResult *tui.BatchResult
		if result != nil {
			tuiResult = &tui.BatchResult{
				FilesProcessed: result.FilesProcessed,
				Skipped:        result.Skipped,
				Conflicts:      result.Conflicts,
				Errors:         result.Errors,
				Duration:       result.EndTime.Sub(result.StartTime),
				DryRun:         dryRun,
			}
		}

		p.Send(tui.BatchMsg{
			Result: tuiResult,
			Err:    err,
		})
	}()

	_, err = p.Run()

	// Quitting the display early cancels the remaining files
	cancel()
	<-done

	if err != nil {
		fail("Error", err)
	}

	if dryRun {
		return
	}

	if err := st.Save(cfg.StateFile); err != nil {
		fail("Error saving state", err)
	}
}

// Check round-trips a markdown file and reports what did not survive
func Check(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fail("Invalid arguments", fmt.Errorf("check requires a markdown file"))
	}
	path := pos[0]

	cfg, conv := loadConverter()

	content, err := readInput(path)
	if err != nil {
		fail("Error reading input", err)
	}

	report, err := diff.RoundTrip(path, content, conv)
	if err != nil {
		fail("Round trip failed", err)
	}

	fmt.Print(report.Stats())
	if report.Identical() {
		fmt.Println(styles.SuccessStyle.Render("✓ Round trip is exact"))
		return
	}

	fmt.Println(styles.WarningStyle.Render("⚠ Round trip changed the document"))
	fmt.Println()
	fmt.Print(report.Render(cfg.RenderDiff && !hasFlag(args, "--plain")))
}

// Preview opens an interactive viewer for a markdown or OMD file
func Preview(args []string) {
	pos := positional(args)
	if len(pos) == 0 {
		fail("Invalid arguments", fmt.Errorf("preview requires a file"))
	}
	path := pos[0]

	cfg, conv := loadConverter()

	content, err := readInput(path)
	if err != nil {
		fail("Error reading input", err)
	}

	// OMD input is previewed through its markdown expansion
	markdown := content
	if strings.EqualFold(filepath.Ext(path), cfg.OMDExt) {
		markdown, err = conv.OMDToMarkdown(content)
		if err != nil {
			fail("Conversion failed", err)
		}
	}

	report, err := diff.RoundTrip(path, markdown, conv)
	if err != nil {
		fail("Round trip failed", err)
	}

	m := tui.InitPreviewModel(&tui.PreviewData{
		Name:     filepath.Base(path),
		Markdown: markdown,
		OMD:      report.OMD,
		Diff:     report.Stats() + "\n" + report.Render(cfg.RenderDiff),
		Exact:    report.Identical(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail("Error", err)
	}
}

// Status summarises the most recent batch run from the log file
func Status() {
	labelStyle := styles.LabelStyle
	valueStyle := styles.ValueStyle

	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}

	st, err := state.Load(cfg.StateFile)
	if err != nil {
		fail("Error loading state", err)
	}

	fmt.Println(styles.TitleStyle.Render("qmd status"))
	fmt.Println()

	row := func(label, value string) {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), valueStyle.Render(value))
	}

	row("Config", config.ConfigPath())
	row("State", cfg.StateFile)
	row("Log", cfg.LogFile)
	row("Tracked files", fmt.Sprintf("%d", len(st.Files)))
	row("Unchecked task", cfg.UncheckedTaskMarker)

	lines, lastBatch, filesConverted := ParseLogFile(cfg.LogFile, 50)
	if lastBatch.IsZero() {
		row("Last batch", "never")
	} else {
		row("Last batch", fmt.Sprintf("%s (%s ago)", lastBatch.Format(time.DateTime), time.Since(lastBatch).Round(time.Second)))
		row("Files converted", tui.Highlight(fmt.Sprintf("%d", filesConverted)))
	}

	fmt.Println()
	fmt.Println(styles.HeaderStyle.Render("Recent log"))
	start := 0
	if len(lines) > 10 {
		start = len(lines) - 10
	}
	for _, line := range lines[start:] {
		fmt.Println(styles.DimStyle.Render("  " + line))
	}
}
