// Package generate produces synthetic benchmark records from a seeded,
// scenario-parameterized timing model. No database is touched; the model
// encodes a relative performance ordering between the backends.
package generate

import (
	"math/rand"

	"querybench/internal/perf"
)

// latencyRange is a half-open uniform interval in milliseconds.
type latencyRange struct {
	lo, hi float64
}

// Base latencies per backend. Indexed variants draw from lower ranges than
// their plain counterparts; InfluxDB is modeled as slow at returning large
// result sets.
var (
	simpleBase = map[perf.Database]latencyRange{
		perf.PostgreSQL:        {100, 500},
		perf.PostgreSQLIndexed: {50, 200},
		perf.DuckDB:            {40, 150},
		perf.DuckDBIndexed:     {35, 140},
		perf.InfluxDB:          {150, 600},
	}
	complexBase = map[perf.Database]latencyRange{
		perf.PostgreSQL:        {500, 2000},
		perf.PostgreSQLIndexed: {300, 1500},
		perf.DuckDB:            {200, 1000},
		perf.DuckDBIndexed:     {180, 950},
		perf.InfluxDB:          {800, 3000},
	}
	crudBase = map[perf.Database]latencyRange{
		perf.PostgreSQL:        {10, 50},
		perf.PostgreSQLIndexed: {10, 50},
		perf.DuckDB:            {8, 40},
		perf.DuckDBIndexed:     {8, 40},
		perf.InfluxDB:          {15, 60},
	}
)

// Query-time share of the total, per category. CRUD operations barely return
// data, so query time dominates there.
var queryRatio = map[perf.QueryType]latencyRange{
	perf.QuerySimple:  {0.6, 0.8},
	perf.QueryComplex: {0.7, 0.85},
	perf.QueryCRUD:    {0.85, 0.95},
}

// SimpleQueries, ComplexQueries and CRUDOperations name the generated
// workload. CRUD skips InfluxDB deletes/updates, which it does not support.
var (
	SimpleQueries  = []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6", "Q7", "Q8"}
	ComplexQueries = []string{"Q1", "Q2", "Q3", "Q4", "Q5"}
	CRUDOperations = []string{"I1", "D1", "U1"}
)

// Generator produces a full synthetic dataset. The same seed yields a
// byte-identical dataset on every run.
type Generator struct {
	seed int64
}

func New(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Records generates one record per valid (query, database) pair across the
// three category batches, in a fixed iteration order.
func (g *Generator) Records() []perf.Record {
	rng := rand.New(rand.NewSource(g.seed))

	var out []perf.Record
	for _, q := range SimpleQueries {
		for _, db := range perf.Databases() {
			out = append(out, genRecord(rng, q, db, perf.QuerySimple))
		}
	}
	for _, q := range ComplexQueries {
		for _, db := range perf.Databases() {
			out = append(out, genRecord(rng, q, db, perf.QueryComplex))
		}
	}
	for _, op := range CRUDOperations {
		for _, db := range perf.Databases() {
			if !Supported(db, op) {
				continue
			}
			out = append(out, genRecord(rng, op, db, perf.QueryCRUD))
		}
	}
	return out
}

// Supported reports whether an operation is valid against a backend.
// InfluxDB has no mutation support for deletes and updates.
func Supported(db perf.Database, op string) bool {
	if db == perf.InfluxDB && (op == "D1" || op == "U1") {
		return false
	}
	return true
}

func genRecord(rng *rand.Rand, name string, db perf.Database, qt perf.QueryType) perf.Record {
	base := uniform(rng, baseRange(qt, db))
	total := base * uniform(rng, latencyRange{0.9, 1.1})
	ratio := uniform(rng, queryRatio[qt])
	exec, query, ret := perf.Split(total, ratio)

	return perf.Record{
		QueryName:       name,
		Database:        db,
		ExecutionTimeMs: exec,
		QueryTimeMs:     query,
		ReturnTimeMs:    ret,
		RowsReturned:    rowCount(rng, name, qt),
		QueryType:       qt,
	}
}

func baseRange(qt perf.QueryType, db perf.Database) latencyRange {
	switch qt {
	case perf.QuerySimple:
		return simpleBase[db]
	case perf.QueryComplex:
		return complexBase[db]
	default:
		return crudBase[db]
	}
}

func rowCount(rng *rand.Rand, name string, qt perf.QueryType) int {
	switch qt {
	case perf.QuerySimple:
		return int(uniform(rng, latencyRange{100, 10000}))
	case perf.QueryComplex:
		return int(uniform(rng, latencyRange{1000, 50000}))
	default:
		// Mutations touch one row; inserts report a small batch.
		if name == "I1" {
			return int(uniform(rng, latencyRange{1, 100}))
		}
		return 1
	}
}

func uniform(rng *rand.Rand, r latencyRange) float64 {
	return r.lo + rng.Float64()*(r.hi-r.lo)
}
