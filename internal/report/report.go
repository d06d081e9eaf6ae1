// Package report prints the console summary over a result set: totals,
// per-database ranking, extremes and return-time shares.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"querybench/internal/analyze"
	"querybench/internal/perf"
)

// Write renders the summary report for records to w.
func Write(w io.Writer, records []perf.Record) error {
	fmt.Fprintln(w, "PERFORMANCE SUMMARY")
	fmt.Fprintln(w, "======================================================================")

	types := map[perf.QueryType]bool{}
	dbs := map[perf.Database]bool{}
	for _, r := range records {
		types[r.QueryType] = true
		dbs[r.Database] = true
	}
	fmt.Fprintf(w, "Measurements : %d\n", len(records))
	fmt.Fprintf(w, "Query types  : %d\n", len(types))
	fmt.Fprintf(w, "Databases    : %d\n", len(dbs))

	if len(records) == 0 {
		fmt.Fprintln(w, "\nNo records to summarize.")
		return nil
	}

	fmt.Fprintln(w, "\nAverage execution time per database (fastest first)")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range analyze.Rank(records, true, 0) {
		fmt.Fprintf(tw, "  %s\t%.2f ms\n", e.Database, e.MeanMs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fastest, slowest := analyze.Extremes(records)
	fmt.Fprintln(w, "\nExtremes")
	fmt.Fprintf(w, "  fastest: %s on %s - %.2f ms\n", fastest.QueryName, fastest.Database, fastest.ExecutionTimeMs)
	fmt.Fprintf(w, "  slowest: %s on %s - %.2f ms\n", slowest.QueryName, slowest.Database, slowest.ExecutionTimeMs)

	fmt.Fprintln(w, "\nReturn-time share per database")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	// Highest share first: the interesting finding is who is slow at
	// returning data, not who is fast.
	ratios := analyze.ReturnRatioMeanByDatabase(records)
	for _, e := range rankRatios(ratios) {
		fmt.Fprintf(tw, "  %s\t%.2f %%\n", e.Database, e.MeanMs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "======================================================================")
	return nil
}

func rankRatios(ratios map[perf.Database]float64) []analyze.RankEntry {
	var out []analyze.RankEntry
	for _, db := range perf.Databases() {
		if v, ok := ratios[db]; ok {
			out = append(out, analyze.RankEntry{Database: db, MeanMs: v})
		}
	}
	// stable selection sort over <= 5 entries, descending share
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].MeanMs > out[i].MeanMs {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
