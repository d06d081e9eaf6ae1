// Package analyze holds the pure aggregation functions every presentation
// surface (charts, report, dashboard) consumes. Empty input always yields an
// empty result, never an error.
package analyze

import (
	"math"
	"sort"

	"querybench/internal/perf"
)

// GroupMeanByDatabase returns the mean execution time per database.
func GroupMeanByDatabase(records []perf.Record) map[perf.Database]float64 {
	sums := make(map[perf.Database]float64)
	counts := make(map[perf.Database]int)
	for _, r := range records {
		sums[r.Database] += r.ExecutionTimeMs
		counts[r.Database]++
	}

	means := make(map[perf.Database]float64, len(sums))
	for db, sum := range sums {
		means[db] = sum / float64(counts[db])
	}
	return means
}

// GroupMeanByType returns the mean execution time per query type.
func GroupMeanByType(records []perf.Record) map[perf.QueryType]float64 {
	sums := make(map[perf.QueryType]float64)
	counts := make(map[perf.QueryType]int)
	for _, r := range records {
		sums[r.QueryType] += r.ExecutionTimeMs
		counts[r.QueryType]++
	}

	means := make(map[perf.QueryType]float64, len(sums))
	for qt, sum := range sums {
		means[qt] = sum / float64(counts[qt])
	}
	return means
}

// ReturnRatioMeanByDatabase returns the mean return-time share per database,
// in percent.
func ReturnRatioMeanByDatabase(records []perf.Record) map[perf.Database]float64 {
	sums := make(map[perf.Database]float64)
	counts := make(map[perf.Database]int)
	for _, r := range records {
		sums[r.Database] += r.ReturnRatio()
		counts[r.Database]++
	}

	means := make(map[perf.Database]float64, len(sums))
	for db, sum := range sums {
		means[db] = sum / float64(counts[db])
	}
	return means
}

// Table is a query x database cross-tabulation. Missing (query, database)
// combinations are zero-filled; that single policy serves charts, the report
// and the dashboard alike (holes would need a value for plotting anyway).
type Table struct {
	Rows   []string        // query names, ascending
	Cols   []perf.Database // canonical database order, present ones only
	Values [][]float64     // Values[i][j] = cell for Rows[i] x Cols[j]
}

// Cell returns the value at (query, database), or 0 when absent.
func (t Table) Cell(query string, db perf.Database) float64 {
	for i, q := range t.Rows {
		if q != query {
			continue
		}
		for j, c := range t.Cols {
			if c == db {
				return t.Values[i][j]
			}
		}
	}
	return 0
}

// Agg selects the pivot cell aggregate.
type Agg func(r perf.Record) float64

// ExecTime aggregates mean execution time; ReturnRatio aggregates the mean
// derived return share.
var (
	ExecTime    Agg = func(r perf.Record) float64 { return r.ExecutionTimeMs }
	ReturnRatio Agg = func(r perf.Record) float64 { return r.ReturnRatio() }
)

// Pivot cross-tabulates records into a query x database table of per-cell
// means of the chosen aggregate.
func Pivot(records []perf.Record, agg Agg) Table {
	type cell struct{ sum, n float64 }
	cells := make(map[string]map[perf.Database]*cell)
	present := make(map[perf.Database]bool)

	for _, r := range records {
		byDB, ok := cells[r.QueryName]
		if !ok {
			byDB = make(map[perf.Database]*cell)
			cells[r.QueryName] = byDB
		}
		c, ok := byDB[r.Database]
		if !ok {
			c = &cell{}
			byDB[r.Database] = c
		}
		c.sum += agg(r)
		c.n++
		present[r.Database] = true
	}

	rows := make([]string, 0, len(cells))
	for q := range cells {
		rows = append(rows, q)
	}
	sort.Strings(rows)

	var cols []perf.Database
	for _, db := range perf.Databases() {
		if present[db] {
			cols = append(cols, db)
		}
	}

	values := make([][]float64, len(rows))
	for i, q := range rows {
		values[i] = make([]float64, len(cols))
		for j, db := range cols {
			if c, ok := cells[q][db]; ok {
				values[i][j] = c.sum / c.n
			}
		}
	}

	return Table{Rows: rows, Cols: cols, Values: values}
}

// RankEntry is one database with its mean execution time.
type RankEntry struct {
	Database perf.Database
	MeanMs   float64
}

// Rank sorts per-database means and returns the first topN entries
// (all of them when topN <= 0). Ties break by ascending database name,
// giving a deterministic total order.
func Rank(records []perf.Record, ascending bool, topN int) []RankEntry {
	means := GroupMeanByDatabase(records)

	entries := make([]RankEntry, 0, len(means))
	for db, mean := range means {
		entries = append(entries, RankEntry{Database: db, MeanMs: mean})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MeanMs != entries[j].MeanMs {
			if ascending {
				return entries[i].MeanMs < entries[j].MeanMs
			}
			return entries[i].MeanMs > entries[j].MeanMs
		}
		return entries[i].Database < entries[j].Database
	})

	if topN > 0 && topN < len(entries) {
		entries = entries[:topN]
	}
	return entries
}

// GroupStats are the per-group summary aggregates shown in tables.
type GroupStats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	Std   float64
}

// StatsByDatabase computes count/mean/min/max/std of execution time per
// database. Std is the sample standard deviation, zero for singletons.
func StatsByDatabase(records []perf.Record) map[perf.Database]GroupStats {
	groups := make(map[perf.Database][]float64)
	for _, r := range records {
		groups[r.Database] = append(groups[r.Database], r.ExecutionTimeMs)
	}

	out := make(map[perf.Database]GroupStats, len(groups))
	for db, vals := range groups {
		out[db] = summarize(vals)
	}
	return out
}

func summarize(vals []float64) GroupStats {
	s := GroupStats{Count: len(vals), Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, v := range vals {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(s.Count)

	if s.Count > 1 {
		ss := 0.0
		for _, v := range vals {
			d := v - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(s.Count-1))
	}
	return s
}

// Extremes returns the fastest and slowest records, or nil for empty input.
func Extremes(records []perf.Record) (fastest, slowest *perf.Record) {
	for i := range records {
		r := &records[i]
		if fastest == nil || r.ExecutionTimeMs < fastest.ExecutionTimeMs {
			fastest = r
		}
		if slowest == nil || r.ExecutionTimeMs > slowest.ExecutionTimeMs {
			slowest = r
		}
	}
	return fastest, slowest
}

// FilterType keeps records of one query type.
func FilterType(records []perf.Record, qt perf.QueryType) []perf.Record {
	var out []perf.Record
	for _, r := range records {
		if r.QueryType == qt {
			out = append(out, r)
		}
	}
	return out
}

// FilterDatabases keeps records belonging to the given backends.
func FilterDatabases(records []perf.Record, dbs []perf.Database) []perf.Record {
	want := make(map[perf.Database]bool, len(dbs))
	for _, db := range dbs {
		want[db] = true
	}
	var out []perf.Record
	for _, r := range records {
		if want[r.Database] {
			out = append(out, r)
		}
	}
	return out
}
