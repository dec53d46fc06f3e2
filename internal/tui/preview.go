package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ajithraghavan/qmd/internal/styles"
)

// PreviewData holds the three views of a document
type PreviewData struct {
	Name     string
	Markdown string
	OMD      string
	Diff     string // stats and rendered round-trip diff
	Exact    bool
}

type tab int

const (
	tabMarkdown tab = iota
	tabOMD
	tabDiff
	tabCount
)

var tabNames = [tabCount]string{"Markdown", "OMD", "Round trip"}

type previewModel struct {
	viewport viewport.Model
	data     *PreviewData
	tab      tab
	width    int
	height   int
}

// InitPreviewModel creates a new preview model showing the markdown tab
func InitPreviewModel(data *PreviewData) previewModel {
	vp := viewport.New(100, 20)

	m := previewModel{
		viewport: vp,
		data:     data,
	}
	m.viewport.SetContent(m.content())
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			return m.show((m.tab + 1) % tabCount), nil
		case "shift+tab", "left", "h":
			return m.show((m.tab + tabCount - 1) % tabCount), nil
		case "1":
			return m.show(tabMarkdown), nil
		case "2":
			return m.show(tabOMD), nil
		case "3":
			return m.show(tabDiff), nil
		default:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m previewModel) show(t tab) previewModel {
	m.tab = t
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
	return m
}

func (m previewModel) content() string {
	if m.data == nil {
		return ""
	}
	switch m.tab {
	case tabOMD:
		return m.data.OMD
	case tabDiff:
		return m.data.Diff
	default:
		return m.data.Markdown
	}
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("qmd preview"))
	if m.data != nil {
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(m.data.Name))
		if m.data.Exact {
			b.WriteString(" " + successStyle.Render("✓ exact round trip"))
		} else {
			b.WriteString(" " + warningStyle.Render("⚠ lossy round trip"))
		}
	}
	b.WriteString("\n\n")

	tabs := make([]string, 0, tabCount)
	for _, name := range tabNames {
		if name == m.ActiveTab() {
			tabs = append(tabs, styles.ActiveTabStyle.Render(name))
		} else {
			tabs = append(tabs, styles.TabStyle.Render(name))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	b.WriteString(styles.PaneStyle.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/→ next • shift+tab/← prev • 1-3 jump • ↑/↓ scroll • q quit"))
	b.WriteString("\n")

	return b.String()
}

// ActiveTab returns the name of the tab being shown
func (m previewModel) ActiveTab() string {
	return tabNames[m.tab]
}

// Highlight renders s the way the preview marks important values
func Highlight(s string) string {
	return highlightStyle.Render(s)
}
