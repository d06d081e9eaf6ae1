package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"querybench/internal/analyze"
	"querybench/internal/perf"
	"querybench/internal/tui/styles"
)

// BreakdownView shows the query x database pivot for one query type at a
// time; tab cycles through the types.
type BreakdownView struct {
	Records []perf.Record
	Table   table.Model

	typeIdx int

	Width  int
	Height int
}

func NewBreakdownView(records []perf.Record) BreakdownView {
	v := BreakdownView{Records: records}
	v.rebuild()
	return v
}

func (v *BreakdownView) CurrentType() perf.QueryType {
	return perf.QueryTypes()[v.typeIdx]
}

func (v *BreakdownView) rebuild() {
	qt := v.CurrentType()
	pivot := analyze.Pivot(analyze.FilterType(v.Records, qt), analyze.ExecTime)

	colWidth := 14
	columns := make([]table.Column, 0, len(pivot.Cols)+1)
	columns = append(columns, table.Column{Title: "Query", Width: 8})
	for _, db := range pivot.Cols {
		columns = append(columns, table.Column{Title: db.Display(), Width: colWidth})
	}

	rows := make([]table.Row, len(pivot.Rows))
	for i, q := range pivot.Rows {
		row := make(table.Row, 0, len(pivot.Cols)+1)
		row = append(row, q)
		for j := range pivot.Cols {
			row = append(row, fmt.Sprintf("%.2f", pivot.Values[i][j]))
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(len(rows)+1, 4)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.ColorPrimary)
	s.Selected = s.Selected.
		Foreground(styles.ColorBg).
		Background(styles.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	v.Table = t
}

func (v BreakdownView) Update(msg tea.Msg) (BreakdownView, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.Width = msg.Width
		v.Height = msg.Height
		v.Table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		if msg.String() == "tab" {
			v.typeIdx = (v.typeIdx + 1) % len(perf.QueryTypes())
			v.rebuild()
			return v, nil
		}
	}

	v.Table, cmd = v.Table.Update(msg)
	return v, cmd
}

func (v BreakdownView) View() string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render("🔍 Breakdown"))
	s.WriteString("\n\n")

	tabs := strings.Builder{}
	for i, qt := range perf.QueryTypes() {
		label := string(qt)
		if i == v.typeIdx {
			tabs.WriteString(styles.TabActive.Render(label))
		} else {
			tabs.WriteString(styles.TabBase.Render(label))
		}
	}
	s.WriteString(tabs.String())
	s.WriteString("\n\n")

	if len(v.Table.Rows()) == 0 {
		s.WriteString(styles.Subtle.Render(fmt.Sprintf("No %s records in this dataset.", v.CurrentType())))
	} else {
		s.WriteString(styles.Box.Render(v.Table.View()))
		s.WriteString("\n")
		s.WriteString(styles.Subtle.Render("Mean execution time (ms); missing pairs shown as 0.00"))
	}

	s.WriteString("\n\n")
	s.WriteString(styles.Subtle.Render("[Tab] Next query type"))
	return s.String()
}
