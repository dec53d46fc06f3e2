package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajithraghavan/qmd/internal/styles"
)

var (
	spinnerStyle   = styles.SpinnerStyle
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	errorStyle     = styles.ErrorStyle
	warningStyle   = styles.WarningStyle
	highlightStyle = styles.HighlightStyle
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.LabelStyle
)

// BatchResult holds the result of a batch run
type BatchResult struct {
	FilesProcessed int
	Skipped        int
	Conflicts      []string // sources left alone because their destination exists
	Errors         []error
	Duration       time.Duration
	DryRun         bool
}

// batchModel is the Bubble Tea model for the batch progress display
type batchModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *BatchResult
	err      error
}

// BatchMsg is sent when the batch run completes
type BatchMsg struct {
	Result *BatchResult
	Err    error
}

// InitBatchModel creates a new batch progress model
func InitBatchModel(dir, direction string) batchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return batchModel{
		spinner: s,
		status:  fmt.Sprintf("Converting %s (%s)...", dir, direction),
	}
}

func (m batchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BatchMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m batchModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return errorStyle.Render("✗ Batch failed: "+m.err.Error()) + "\n"
	}
	if m.result == nil {
		return ""
	}

	took := helpStyle.Render(fmt.Sprintf("Completed in %v", m.result.Duration.Round(time.Millisecond))) + "\n"

	if m.result.FilesProcessed == 0 && len(m.result.Errors) == 0 && len(m.result.Conflicts) == 0 {
		return successStyle.Render(fmt.Sprintf("✓ Nothing to convert (%d unchanged)", m.result.Skipped)) + "\n" + took
	}

	verb := "Converted"
	if m.result.DryRun {
		verb = "Would convert"
	}
	msg := successStyle.Render(fmt.Sprintf("✓ %s %d file(s)", verb, m.result.FilesProcessed))
	if m.result.Skipped > 0 {
		msg += ", " + helpStyle.Render(fmt.Sprintf("%d unchanged", m.result.Skipped))
	}
	if len(m.result.Conflicts) > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d kept (destination exists, use --force)", len(m.result.Conflicts)))
		for _, src := range m.result.Conflicts {
			msg += "\n  " + warningStyle.Render("⚠ "+src)
		}
	}
	if len(m.result.Errors) > 0 {
		msg += ", " + errorStyle.Render(fmt.Sprintf("%d error(s)", len(m.result.Errors)))
		for _, err := range m.result.Errors {
			msg += "\n  " + errorStyle.Render("✗ "+err.Error())
		}
	}

	return msg + "\n" + took
}
