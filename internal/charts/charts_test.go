package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querybench/internal/config"
	"querybench/internal/generate"
	"querybench/internal/perf"
)

func testRenderer(t *testing.T) (*Renderer, string, *[]string) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()

	var logged []string
	r := NewRenderer(cfg, func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})
	return r, cfg.OutputDir, &logged
}

func TestRenderAllProducesEveryChart(t *testing.T) {
	r, dir, _ := testRenderer(t)
	records := generate.New(42).Records()

	require.NoError(t, r.RenderAll(records))

	want := []string{
		"simple_query_performance.html",
		"complex_query_performance.html",
		"crud_performance.html",
		"return_time_ratio.html",
		"performance_heatmap.html",
		"database_comparison.html",
	}
	for _, name := range want {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), "%s must not be empty", name)
	}
}

func TestRenderAllSkipsMissingCategories(t *testing.T) {
	r, dir, logged := testRenderer(t)

	// Simple-only dataset: the complex and crud charts have nothing to plot.
	records := []perf.Record{
		{QueryName: "Q1", Database: perf.DuckDB, ExecutionTimeMs: 40, QueryTimeMs: 30, ReturnTimeMs: 10, RowsReturned: 5, QueryType: perf.QuerySimple},
	}

	require.NoError(t, r.RenderAll(records))

	_, err := os.Stat(filepath.Join(dir, "simple_query_performance.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "complex_query_performance.html"))
	assert.True(t, os.IsNotExist(err), "empty category must be skipped, not written")

	var sawSkip bool
	for _, line := range *logged {
		if line == "skipping complex_query_performance: no complex-query records" {
			sawSkip = true
		}
	}
	assert.True(t, sawSkip, "skip must be reported")
}

func TestRenderAllCreatesOutputDir(t *testing.T) {
	r, _, _ := testRenderer(t)
	r.cfg.OutputDir = filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, r.RenderAll(generate.New(1).Records()))

	entries, err := os.ReadDir(r.cfg.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}
