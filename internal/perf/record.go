// Package perf defines the canonical benchmark record schema shared by every
// data producer (generator, estimator, live runner) and every consumer
// (charts, report, dashboard).
package perf

import (
	"fmt"
	"math"
)

// Database identifies one of the benchmarked backends.
type Database string

const (
	PostgreSQL        Database = "PostgreSQL"
	PostgreSQLIndexed Database = "PostgreSQL_indexed"
	DuckDB            Database = "DuckDB"
	DuckDBIndexed     Database = "DuckDB_indexed"
	InfluxDB          Database = "InfluxDB"
)

// Databases returns all backends in canonical order. Consumers rely on this
// order for deterministic column layouts.
func Databases() []Database {
	return []Database{PostgreSQL, PostgreSQLIndexed, DuckDB, DuckDBIndexed, InfluxDB}
}

// Display returns the database name with underscores spaced out for labels.
func (d Database) Display() string {
	switch d {
	case PostgreSQLIndexed:
		return "PostgreSQL indexed"
	case DuckDBIndexed:
		return "DuckDB indexed"
	default:
		return string(d)
	}
}

// QueryType is the benchmark category a record belongs to.
type QueryType string

const (
	QuerySimple  QueryType = "simple"
	QueryComplex QueryType = "complex"
	QueryCRUD    QueryType = "crud"
)

// QueryTypes returns all categories in canonical order.
func QueryTypes() []QueryType {
	return []QueryType{QuerySimple, QueryComplex, QueryCRUD}
}

// Record is one benchmark observation. Records are created in bulk, written
// once to a CSV file and treated as immutable afterwards.
type Record struct {
	QueryName       string
	Database        Database
	ExecutionTimeMs float64
	QueryTimeMs     float64
	ReturnTimeMs    float64
	RowsReturned    int
	QueryType       QueryType
}

// ReturnRatio is the share of the execution spent returning data, in percent.
// It is derived on demand and never persisted.
func (r Record) ReturnRatio() float64 {
	if r.ExecutionTimeMs == 0 {
		return 0
	}
	return r.ReturnTimeMs / r.ExecutionTimeMs * 100
}

// Validate checks the record invariants: non-negative timings and row count,
// and query + return time summing to the execution time within rounding.
func (r Record) Validate() error {
	if r.QueryName == "" {
		return fmt.Errorf("record: empty query name")
	}
	if r.ExecutionTimeMs < 0 || r.QueryTimeMs < 0 || r.ReturnTimeMs < 0 {
		return fmt.Errorf("record %s/%s: negative timing", r.QueryName, r.Database)
	}
	if r.RowsReturned < 0 {
		return fmt.Errorf("record %s/%s: negative row count", r.QueryName, r.Database)
	}
	if math.Abs((r.QueryTimeMs+r.ReturnTimeMs)-r.ExecutionTimeMs) >= 0.011 {
		return fmt.Errorf("record %s/%s: timing split %.2f+%.2f does not match total %.2f",
			r.QueryName, r.Database, r.QueryTimeMs, r.ReturnTimeMs, r.ExecutionTimeMs)
	}
	return nil
}

// Round2 rounds to two decimal places, the persisted timing precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Split rounds a total latency to the persisted precision and divides it into
// query and return portions using the given query-time ratio. The return
// portion is defined as the rounded remainder, so the three values always
// satisfy queryMs + returnMs == execMs exactly.
func Split(totalMs, queryRatio float64) (execMs, queryMs, returnMs float64) {
	execMs = Round2(totalMs)
	queryMs = Round2(totalMs * queryRatio)
	returnMs = Round2(execMs - queryMs)
	return execMs, queryMs, returnMs
}
