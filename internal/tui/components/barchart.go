package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// BarChart renders labeled horizontal bars scaled to the widest value.
type BarChart struct {
	Bars  []Bar
	Width int
	Unit  string
}

func NewBarChart(width int, unit string) BarChart {
	return BarChart{Width: width, Unit: unit}
}

func (b *BarChart) Set(bars []Bar) {
	b.Bars = bars
}

func (b BarChart) View() string {
	if len(b.Bars) == 0 {
		return ""
	}

	labelWidth := 0
	maxVal := 0.0
	for _, bar := range b.Bars {
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
		if bar.Value > maxVal {
			maxVal = bar.Value
		}
	}

	// Reserve room for label, value and padding.
	barWidth := b.Width - labelWidth - 14
	if barWidth < 5 {
		barWidth = 5
	}

	out := strings.Builder{}
	for i, bar := range b.Bars {
		filled := 0
		if maxVal > 0 {
			filled = int(bar.Value / maxVal * float64(barWidth))
		}
		if filled < 1 && bar.Value > 0 {
			filled = 1
		}

		style := lipgloss.NewStyle().Foreground(bar.Color)
		out.WriteString(fmt.Sprintf("%-*s ", labelWidth, bar.Label))
		out.WriteString(style.Render(strings.Repeat("█", filled)))
		out.WriteString(fmt.Sprintf(" %.2f%s", bar.Value, b.Unit))
		if i < len(b.Bars)-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}
