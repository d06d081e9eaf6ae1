package app

import (
	"querybench/internal/perf"
)

// ExportCSV writes a record subset in the canonical schema. The dashboard
// uses it for the filtered-view download.
func ExportCSV(records []perf.Record, filename string) error {
	return perf.WriteFile(filename, records)
}
