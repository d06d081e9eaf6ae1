// Package bench drives real databases through a sequential
// warm-up/measure loop and emits records in the shared schema. Connectors
// are pluggable; the loop is agnostic to which backend it talks to.
package bench

import (
	"context"
	"time"

	"querybench/internal/perf"
)

// Statement is one benchmark query or mutation. Flux is the InfluxDB form;
// backends without a form for a statement are skipped.
type Statement struct {
	Name string
	Type perf.QueryType
	SQL  string
	Flux string
}

// Timing is the measured split of a single execution: the server-side query
// phase, the result transfer/materialization phase, and the row count.
type Timing struct {
	Query  time.Duration
	Return time.Duration
	Rows   int
}

func (t Timing) Total() time.Duration {
	return t.Query + t.Return
}

// Connector is the boundary to one database backend. Execute blocks until
// all rows are materialized.
type Connector interface {
	Name() perf.Database
	Execute(ctx context.Context, stmt Statement) (Timing, error)
	Close() error
}

// supports reports whether a connector can run a statement at all.
func supports(db perf.Database, stmt Statement) bool {
	if db == perf.InfluxDB {
		return stmt.Flux != ""
	}
	return stmt.SQL != ""
}
