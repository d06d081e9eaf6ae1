// Package app is the interactive dashboard: three views over one loaded
// dataset, with filtered CSV export.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"querybench/internal/config"
	"querybench/internal/perf"
	"querybench/internal/tui/styles"
	"querybench/internal/tui/views"
)

type ClearStatusMsg struct{}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// View Enum
type ViewID int

const (
	ViewOverview ViewID = iota
	ViewBreakdown
	ViewData
)

type Model struct {
	Cfg      config.Config
	Records  []perf.Record
	DataFile string

	// Layout
	Width  int
	Height int

	CurrentView ViewID
	MenuItems   []string

	Overview  views.OverviewView
	Breakdown views.BreakdownView
	Data      views.DataView

	// Feedback
	StatusMsg string
}

func NewModel(cfg config.Config, records []perf.Record, dataFile string) Model {
	return Model{
		Cfg:         cfg,
		Records:     records,
		DataFile:    dataFile,
		CurrentView: ViewOverview,
		MenuItems:   []string{"[1] Overview", "[2] Breakdown", "[3] Data"},
		Overview:    views.NewOverviewView(cfg, records),
		Breakdown:   views.NewBreakdownView(records),
		Data:        views.NewDataView(records),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "ctrl+q":
			return m, tea.Quit

		case "1":
			m.CurrentView = ViewOverview
			return m, nil
		case "2":
			m.CurrentView = ViewBreakdown
			return m, nil
		case "3":
			m.CurrentView = ViewData
			return m, nil

		case "ctrl+right":
			m.CurrentView++
			if m.CurrentView > ViewData {
				m.CurrentView = ViewOverview
			}
			return m, nil
		case "ctrl+left":
			m.CurrentView--
			if m.CurrentView < ViewOverview {
				m.CurrentView = ViewData
			}
			return m, nil

		case "ctrl+p":
			subset := m.Records
			label := "full"
			if m.CurrentView == ViewData {
				subset = m.Data.Filtered()
				label = "filtered"
			}
			if len(subset) == 0 {
				m.StatusMsg = "Nothing to export."
				return m, clearStatusCmd()
			}
			path := fmt.Sprintf("querybench_export_%s.csv", time.Now().Format("20060102-150405"))
			if err := ExportCSV(subset, path); err != nil {
				m.StatusMsg = fmt.Sprintf("Export failed: %v", err)
			} else {
				m.StatusMsg = fmt.Sprintf("Exported %s subset (%d records) to %s", label, len(subset), path)
			}
			return m, clearStatusCmd()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		contentHeight := m.Height - 6

		sized := tea.WindowSizeMsg{Width: m.Width, Height: contentHeight}
		m.Overview, _ = m.Overview.Update(sized)
		m.Breakdown, _ = m.Breakdown.Update(sized)
		m.Data, _ = m.Data.Update(sized)
		return m, nil
	}

	// Forward everything else to the active view.
	var cmd tea.Cmd
	switch m.CurrentView {
	case ViewOverview:
		m.Overview, cmd = m.Overview.Update(msg)
	case ViewBreakdown:
		m.Breakdown, cmd = m.Breakdown.Update(msg)
	case ViewData:
		m.Data, cmd = m.Data.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	nav := strings.Builder{}
	for i, item := range m.MenuItems {
		if ViewID(i) == m.CurrentView {
			nav.WriteString(styles.TabActive.Render(item))
		} else {
			nav.WriteString(styles.TabBase.Render(item))
		}
	}
	source := styles.Subtle.Render("  source: " + m.DataFile)
	navBar := styles.FooterBase.Width(m.Width).Render(nav.String() + source)

	contentStr := ""
	switch m.CurrentView {
	case ViewOverview:
		contentStr = m.Overview.View()
	case ViewBreakdown:
		contentStr = m.Breakdown.View()
	case ViewData:
		contentStr = m.Data.View()
	}

	content := styles.Panel.Width(m.Width - 2).Height(m.Height - 5).Render(contentStr)

	keys := []string{
		styles.RenderKey("1/2/3", "View"),
		styles.RenderKey("Ctrl+<->", "Cycle"),
		styles.RenderKey("Ctrl+P", "Export"),
		styles.RenderKey("Q", "Quit"),
	}
	footer := styles.FooterBase.Width(m.Width).Render(strings.Join(keys, "   "))

	if m.StatusMsg != "" {
		status := styles.Box.BorderForeground(styles.ColorHighlight).Render(m.StatusMsg)
		return lipgloss.JoinVertical(lipgloss.Left, navBar, content, status, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, navBar, content, footer)
}
