// Package charts renders the static chart set into the output directory,
// one HTML artifact per chart. The chart list mirrors the summary report:
// per-category comparisons, return-time ratio, heatmap and database ranking.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"querybench/internal/analyze"
	"querybench/internal/config"
	"querybench/internal/perf"
)

// renderable is the slice of the go-echarts chart API the renderer needs.
type renderable interface {
	Render(w io.Writer) error
}

// Renderer writes chart artifacts for one dataset.
type Renderer struct {
	cfg  config.Config
	logf func(format string, args ...any)
}

func NewRenderer(cfg config.Config, logf func(format string, args ...any)) *Renderer {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Renderer{cfg: cfg, logf: logf}
}

// RenderAll produces every chart. A missing category is skipped with a
// notice; a write failure aborts, matching the fatal output-error policy.
func (r *Renderer) RenderAll(records []perf.Record) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	steps := []struct {
		name string
		fn   func([]perf.Record) (renderable, error)
	}{
		{"simple_query_performance", r.simpleQueries},
		{"complex_query_performance", r.complexQueries},
		{"crud_performance", r.crudOperations},
		{"return_time_ratio", r.returnTimeRatio},
		{"performance_heatmap", r.heatmap},
		{"database_comparison", r.databaseComparison},
	}

	for _, step := range steps {
		chart, err := step.fn(records)
		if err != nil {
			r.logf("skipping %s: %v", step.name, err)
			continue
		}
		path := filepath.Join(r.cfg.OutputDir, step.name+".html")
		if err := renderTo(chart, path); err != nil {
			return err
		}
		r.logf("saved %s", path)
	}
	return nil
}

func renderTo(chart renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := chart.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// simpleQueries is the grouped bar over simple queries on a log axis; the
// latency spread between backends spans an order of magnitude.
func (r *Renderer) simpleQueries(records []perf.Record) (renderable, error) {
	data := analyze.FilterType(records, perf.QuerySimple)
	if len(data) == 0 {
		return nil, fmt.Errorf("no simple-query records")
	}
	return r.pivotBar(
		analyze.Pivot(data, analyze.ExecTime),
		"Simple Query Performance Comparison (Log Scale)",
		"Execution Time (ms)",
		true,
	), nil
}

func (r *Renderer) complexQueries(records []perf.Record) (renderable, error) {
	data := analyze.FilterType(records, perf.QueryComplex)
	if len(data) == 0 {
		return nil, fmt.Errorf("no complex-query records")
	}
	return r.pivotBar(
		analyze.Pivot(data, analyze.ExecTime),
		"Complex Query Performance Comparison",
		"Execution Time (ms)",
		false,
	), nil
}

func (r *Renderer) crudOperations(records []perf.Record) (renderable, error) {
	data := analyze.FilterType(records, perf.QueryCRUD)
	if len(data) == 0 {
		return nil, fmt.Errorf("no crud records")
	}
	return r.pivotBar(
		analyze.Pivot(data, analyze.ExecTime),
		"CRUD Operations Performance Comparison",
		"Execution Time (ms)",
		false,
	), nil
}

// returnTimeRatio plots the derived return share for simple queries, where
// the transfer cost differences show most clearly.
func (r *Renderer) returnTimeRatio(records []perf.Record) (renderable, error) {
	data := analyze.FilterType(records, perf.QuerySimple)
	if len(data) == 0 {
		return nil, fmt.Errorf("no simple-query records")
	}
	return r.pivotBar(
		analyze.Pivot(data, analyze.ReturnRatio),
		"Data Return Time Ratio in Total Execution Time",
		"Return Time Ratio (%)",
		false,
	), nil
}

func (r *Renderer) heatmap(records []perf.Record) (renderable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records")
	}
	table := analyze.Pivot(records, analyze.ExecTime)

	cols := make([]string, len(table.Cols))
	maxVal := 0.0
	for j, db := range table.Cols {
		cols[j] = db.Display()
	}

	var cells []opts.HeatMapData
	for i := range table.Rows {
		for j := range table.Cols {
			v := perf.Round2(table.Values[i][j])
			if v > maxVal {
				maxVal = v
			}
			cells = append(cells, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Execution Time Across Queries and Databases"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols, Name: "Database"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: table.Rows, Name: "Query"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(maxVal),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#FFFFE0", "#F39C12", "#C0392B"},
			},
		}),
	)
	hm.AddSeries("execution_time_ms", cells)
	return hm, nil
}

// databaseComparison groups mean execution time by query type per database.
func (r *Renderer) databaseComparison(records []perf.Record) (renderable, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records")
	}

	ranked := analyze.Rank(records, true, 0)
	axis := make([]string, len(ranked))
	for i, e := range ranked {
		axis[i] = e.Database.Display()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Database Performance Comparison by Query Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Execution Time (ms)"}),
	)
	bar.SetXAxis(axis)

	for _, qt := range perf.QueryTypes() {
		byType := analyze.FilterType(records, qt)
		if len(byType) == 0 {
			continue
		}
		means := analyze.GroupMeanByDatabase(byType)
		series := make([]opts.BarData, len(ranked))
		for i, e := range ranked {
			series[i] = opts.BarData{Value: perf.Round2(means[e.Database])}
		}
		bar.AddSeries(string(qt), series)
	}
	return bar, nil
}

// pivotBar renders a query x database pivot as a grouped bar chart with the
// configured database palette.
func (r *Renderer) pivotBar(table analyze.Table, title, yName string, logScale bool) renderable {
	bar := charts.NewBar()

	yAxis := opts.YAxis{Name: yName}
	if logScale {
		yAxis.Type = "log"
	}
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(yAxis),
	)
	bar.SetXAxis(table.Rows)

	for j, db := range table.Cols {
		series := make([]opts.BarData, len(table.Rows))
		for i := range table.Rows {
			series[i] = opts.BarData{Value: perf.Round2(table.Values[i][j])}
		}
		bar.AddSeries(db.Display(), series,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: r.cfg.Color(db)}))
	}
	return bar
}
