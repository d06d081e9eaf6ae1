package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querybench/internal/perf"
)

func rec(name string, db perf.Database, exec, ret float64, qt perf.QueryType) perf.Record {
	return perf.Record{
		QueryName:       name,
		Database:        db,
		ExecutionTimeMs: exec,
		QueryTimeMs:     exec - ret,
		ReturnTimeMs:    ret,
		RowsReturned:    100,
		QueryType:       qt,
	}
}

func TestGroupMeanByDatabase(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.DuckDB, 10, 2, perf.QuerySimple),
		rec("Q2", perf.DuckDB, 30, 6, perf.QuerySimple),
		rec("Q1", perf.PostgreSQL, 100, 25, perf.QuerySimple),
	}

	means := GroupMeanByDatabase(records)
	assert.InDelta(t, 20.0, means[perf.DuckDB], 1e-9)
	assert.InDelta(t, 100.0, means[perf.PostgreSQL], 1e-9)
	assert.NotContains(t, means, perf.InfluxDB)
}

func TestGroupMeansEmptyInput(t *testing.T) {
	assert.Empty(t, GroupMeanByDatabase(nil))
	assert.Empty(t, GroupMeanByType(nil))
	assert.Empty(t, ReturnRatioMeanByDatabase(nil))
	assert.Empty(t, StatsByDatabase(nil))
}

func TestReturnRatioMeanByDatabase(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.InfluxDB, 100, 45, perf.QuerySimple),
		rec("Q2", perf.InfluxDB, 200, 90, perf.QuerySimple),
	}
	means := ReturnRatioMeanByDatabase(records)
	assert.InDelta(t, 45.0, means[perf.InfluxDB], 1e-9)
}

func TestPivotSingleCell(t *testing.T) {
	tbl := Pivot([]perf.Record{rec("Q1", perf.DuckDB, 12.5, 3, perf.QuerySimple)}, ExecTime)

	require.Equal(t, []string{"Q1"}, tbl.Rows)
	require.Equal(t, []perf.Database{perf.DuckDB}, tbl.Cols)
	assert.InDelta(t, 12.5, tbl.Cell("Q1", perf.DuckDB), 1e-9)
}

func TestPivotZeroFillsHoles(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.PostgreSQL, 100, 25, perf.QuerySimple),
		rec("Q2", perf.DuckDB, 40, 10, perf.QuerySimple),
	}
	tbl := Pivot(records, ExecTime)

	require.Equal(t, []string{"Q1", "Q2"}, tbl.Rows)
	require.Equal(t, []perf.Database{perf.PostgreSQL, perf.DuckDB}, tbl.Cols,
		"columns follow canonical backend order")
	assert.Equal(t, 0.0, tbl.Cell("Q1", perf.DuckDB))
	assert.Equal(t, 0.0, tbl.Cell("Q2", perf.PostgreSQL))
	assert.InDelta(t, 100.0, tbl.Cell("Q1", perf.PostgreSQL), 1e-9)
}

func TestPivotAveragesDuplicates(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.DuckDB, 10, 2, perf.QuerySimple),
		rec("Q1", perf.DuckDB, 30, 6, perf.QuerySimple),
	}
	tbl := Pivot(records, ExecTime)
	assert.InDelta(t, 20.0, tbl.Cell("Q1", perf.DuckDB), 1e-9)
}

func TestPivotReturnRatioAggregate(t *testing.T) {
	tbl := Pivot([]perf.Record{rec("Q1", perf.InfluxDB, 200, 90, perf.QuerySimple)}, ReturnRatio)
	assert.InDelta(t, 45.0, tbl.Cell("Q1", perf.InfluxDB), 1e-9)
}

func TestPivotEmpty(t *testing.T) {
	tbl := Pivot(nil, ExecTime)
	assert.Empty(t, tbl.Rows)
	assert.Empty(t, tbl.Cols)
	assert.Equal(t, 0.0, tbl.Cell("Q1", perf.DuckDB))
}

func TestRankAscending(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.PostgreSQL, 100, 25, perf.QuerySimple),
		rec("Q1", perf.DuckDB, 40, 10, perf.QuerySimple),
		rec("Q1", perf.InfluxDB, 300, 140, perf.QuerySimple),
	}

	ranked := Rank(records, true, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, perf.DuckDB, ranked[0].Database)
	assert.Equal(t, perf.InfluxDB, ranked[2].Database)

	top2 := Rank(records, false, 2)
	require.Len(t, top2, 2)
	assert.Equal(t, perf.InfluxDB, top2[0].Database)
}

func TestRankTieBreaksByName(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.PostgreSQL, 50, 10, perf.QuerySimple),
		rec("Q1", perf.DuckDB, 50, 10, perf.QuerySimple),
	}
	ranked := Rank(records, true, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, perf.DuckDB, ranked[0].Database, "equal means order by name")
}

func TestStatsByDatabase(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.DuckDB, 10, 2, perf.QuerySimple),
		rec("Q2", perf.DuckDB, 20, 4, perf.QuerySimple),
		rec("Q3", perf.DuckDB, 30, 6, perf.QuerySimple),
		rec("Q1", perf.PostgreSQL, 77, 20, perf.QuerySimple),
	}

	stats := StatsByDatabase(records)

	duck := stats[perf.DuckDB]
	assert.Equal(t, 3, duck.Count)
	assert.InDelta(t, 20.0, duck.Mean, 1e-9)
	assert.Equal(t, 10.0, duck.Min)
	assert.Equal(t, 30.0, duck.Max)
	assert.InDelta(t, 10.0, duck.Std, 1e-9)

	pg := stats[perf.PostgreSQL]
	assert.Equal(t, 1, pg.Count)
	assert.Equal(t, 0.0, pg.Std, "singleton sample deviation is zero")
}

func TestExtremes(t *testing.T) {
	fastest, slowest := Extremes(nil)
	assert.Nil(t, fastest)
	assert.Nil(t, slowest)

	records := []perf.Record{
		rec("Q1", perf.PostgreSQL, 100, 25, perf.QuerySimple),
		rec("Q2", perf.DuckDB, 5, 1, perf.QueryCRUD),
		rec("Q3", perf.InfluxDB, 900, 400, perf.QueryComplex),
	}
	fastest, slowest = Extremes(records)
	require.NotNil(t, fastest)
	require.NotNil(t, slowest)
	assert.Equal(t, "Q2", fastest.QueryName)
	assert.Equal(t, "Q3", slowest.QueryName)
}

func TestFilters(t *testing.T) {
	records := []perf.Record{
		rec("Q1", perf.PostgreSQL, 100, 25, perf.QuerySimple),
		rec("Q1", perf.DuckDB, 40, 10, perf.QueryComplex),
		rec("I1", perf.InfluxDB, 20, 2, perf.QueryCRUD),
	}

	simple := FilterType(records, perf.QuerySimple)
	require.Len(t, simple, 1)
	assert.Equal(t, perf.PostgreSQL, simple[0].Database)

	ducks := FilterDatabases(records, []perf.Database{perf.DuckDB, perf.InfluxDB})
	assert.Len(t, ducks, 2)

	assert.Empty(t, FilterDatabases(records, nil))
}
