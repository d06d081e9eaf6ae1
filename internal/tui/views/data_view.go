package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"querybench/internal/analyze"
	"querybench/internal/perf"
	"querybench/internal/tui/styles"
)

// DataView is the raw record table with a cycling database filter. The
// currently filtered subset is what an export captures.
type DataView struct {
	Records []perf.Record
	Table   table.Model

	// filterIdx 0 means all databases; 1..n selects one backend.
	filterIdx int

	Width  int
	Height int
}

func NewDataView(records []perf.Record) DataView {
	v := DataView{Records: records}
	v.rebuild()
	return v
}

// Filter returns the active database filter, or nil for all.
func (v *DataView) Filter() []perf.Database {
	if v.filterIdx == 0 {
		return nil
	}
	return []perf.Database{perf.Databases()[v.filterIdx-1]}
}

// Filtered returns the records the table currently shows.
func (v *DataView) Filtered() []perf.Record {
	if f := v.Filter(); f != nil {
		return analyze.FilterDatabases(v.Records, f)
	}
	return v.Records
}

func (v *DataView) rebuild() {
	columns := []table.Column{
		{Title: "Query", Width: 7},
		{Title: "Database", Width: 20},
		{Title: "Exec (ms)", Width: 10},
		{Title: "Query (ms)", Width: 11},
		{Title: "Return (ms)", Width: 12},
		{Title: "Ratio (%)", Width: 10},
		{Title: "Rows", Width: 8},
		{Title: "Type", Width: 8},
	}

	records := v.Filtered()
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.QueryName,
			string(r.Database),
			fmt.Sprintf("%.2f", r.ExecutionTimeMs),
			fmt.Sprintf("%.2f", r.QueryTimeMs),
			fmt.Sprintf("%.2f", r.ReturnTimeMs),
			fmt.Sprintf("%.2f", r.ReturnRatio()),
			strconv.Itoa(r.RowsReturned),
			string(r.QueryType),
		}
	}

	height := v.Height - 8
	if height < 5 {
		height = 10
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
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

func (v DataView) Update(msg tea.Msg) (DataView, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.Width = msg.Width
		v.Height = msg.Height
		v.rebuild()
		v.Table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		if msg.String() == "f" {
			v.filterIdx = (v.filterIdx + 1) % (len(perf.Databases()) + 1)
			v.rebuild()
			return v, nil
		}
	}

	v.Table, cmd = v.Table.Update(msg)
	return v, cmd
}

func (v DataView) View() string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render("🗂  Data"))
	s.WriteString("\n\n")

	filterLabel := "all databases"
	if f := v.Filter(); f != nil {
		filterLabel = f[0].Display()
	}
	s.WriteString(styles.Subtle.Render("Filter: "))
	s.WriteString(styles.Value.Render(filterLabel))
	s.WriteString(styles.Subtle.Render(fmt.Sprintf("  (%d records)", len(v.Filtered()))))
	s.WriteString("\n\n")

	if len(v.Table.Rows()) == 0 {
		s.WriteString(styles.Subtle.Render("No records match the current filter."))
	} else {
		s.WriteString(v.Table.View())
	}

	s.WriteString("\n\n")
	s.WriteString(styles.Subtle.Render("[f] Cycle database filter  [Ctrl+P] Export filtered CSV"))
	return s.String()
}
