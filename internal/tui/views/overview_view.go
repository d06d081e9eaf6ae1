package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"querybench/internal/analyze"
	"querybench/internal/config"
	"querybench/internal/perf"
	"querybench/internal/tui/components"
	"querybench/internal/tui/styles"
)

// OverviewView shows the headline metrics and the per-database ranking.
type OverviewView struct {
	Cfg     config.Config
	Records []perf.Record

	Width  int
	Height int
}

func NewOverviewView(cfg config.Config, records []perf.Record) OverviewView {
	return OverviewView{Cfg: cfg, Records: records}
}

func (v OverviewView) Update(msg tea.Msg) (OverviewView, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		v.Width = size.Width
		v.Height = size.Height
	}
	return v, nil
}

func (v OverviewView) View() string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render("📊 Overview"))
	s.WriteString("\n\n")

	if len(v.Records) == 0 {
		s.WriteString(styles.Subtle.Render("No dataset loaded.\nRun `querybench generate` to create one."))
		return s.String()
	}

	types := map[perf.QueryType]bool{}
	dbs := map[perf.Database]bool{}
	sum := 0.0
	for _, r := range v.Records {
		types[r.QueryType] = true
		dbs[r.Database] = true
		sum += r.ExecutionTimeMs
	}
	avg := sum / float64(len(v.Records))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Measurements", fmt.Sprintf("%d", len(v.Records))),
		metricCard("Query Types", fmt.Sprintf("%d", len(types))),
		metricCard("Databases", fmt.Sprintf("%d", len(dbs))),
		metricCard("Avg Time", fmt.Sprintf("%.2f ms", avg)),
	)
	s.WriteString(cards)
	s.WriteString("\n\n")

	s.WriteString(styles.Text.Render("Average execution time per database (fastest first)"))
	s.WriteString("\n\n")

	chart := components.NewBarChart(v.Width-8, " ms")
	var bars []components.Bar
	for _, e := range analyze.Rank(v.Records, true, 0) {
		bars = append(bars, components.Bar{
			Label: e.Database.Display(),
			Value: e.MeanMs,
			Color: lipgloss.Color(v.Cfg.Color(e.Database)),
		})
	}
	chart.Set(bars)
	s.WriteString(chart.View())

	s.WriteString("\n\n")
	s.WriteString(styles.Text.Render("Return-time share per database"))
	s.WriteString("\n\n")

	ratioChart := components.NewBarChart(v.Width-8, " %")
	var ratioBars []components.Bar
	ratios := analyze.ReturnRatioMeanByDatabase(v.Records)
	for _, db := range perf.Databases() {
		if ratio, ok := ratios[db]; ok {
			ratioBars = append(ratioBars, components.Bar{
				Label: db.Display(),
				Value: ratio,
				Color: lipgloss.Color(v.Cfg.Color(db)),
			})
		}
	}
	ratioChart.Set(ratioBars)
	s.WriteString(ratioChart.View())

	return s.String()
}

func metricCard(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.Subtle.Render(label),
		styles.Value.Render(value),
	)
	return styles.Box.Render(content)
}
