// Package estimate projects plausible benchmark timings from the row counts
// of real source tables, using a logarithmic scaling law per backend. The
// jitter and query/return split mirror the synthetic generator's model.
package estimate

import (
	"math"
	"math/rand"

	"querybench/internal/perf"
)

// Scenario parameterizes one estimated measurement. Scenarios exist only at
// generation time and are never persisted.
type Scenario struct {
	Name        string
	Description string
	Type        perf.QueryType
	BaseRows    float64
}

// Per-database scaling coefficients: base_time = log10(rows+1) * coef.
// Complex queries scale roughly 2.5-3x harder than simple ones.
var (
	simpleCoef = map[perf.Database]float64{
		perf.PostgreSQL:        80,
		perf.PostgreSQLIndexed: 40,
		perf.DuckDB:            30,
		perf.DuckDBIndexed:     28,
		perf.InfluxDB:          100,
	}
	complexCoef = map[perf.Database]float64{
		perf.PostgreSQL:        200,
		perf.PostgreSQLIndexed: 150,
		perf.DuckDB:            100,
		perf.DuckDBIndexed:     95,
		perf.InfluxDB:          300,
	}
)

// CRUD timings ignore row-count scaling entirely.
var crudRange = map[perf.Database][2]float64{
	perf.PostgreSQL:        {5, 25},
	perf.PostgreSQLIndexed: {5, 25},
	perf.DuckDB:            {4, 20},
	perf.DuckDBIndexed:     {4, 20},
	perf.InfluxDB:          {8, 30},
}

// Scenarios builds the fixed scenario list from the loaded table counts.
// A table that failed to load contributes zero rows, which still yields a
// defined log10(1) = 0 base time.
func Scenarios(tables TableCounts) []Scenario {
	orders := float64(tables.Rows("orders"))
	orderItems := float64(tables.Rows("order_items"))

	return []Scenario{
		{"Q1", "orders in a date range", perf.QuerySimple, orders * 0.3},
		{"Q2", "order count per state", perf.QuerySimple, 27},
		{"Q3", "orders by payment method", perf.QuerySimple, orders * 0.6},
		{"Q4", "sales total per seller", perf.QuerySimple, 3000},
		{"Q5", "high-value orders", perf.QuerySimple, orders * 0.1},
		{"Q6", "monthly order trend", perf.QuerySimple, 24},
		{"Q7", "late deliveries", perf.QuerySimple, orders * 0.05},
		{"Q8", "orders grouped by city", perf.QuerySimple, 4000},

		{"Q1", "customer order detail join", perf.QueryComplex, orderItems},
		{"Q2", "seller ranking with ratings", perf.QueryComplex, 3000},
		{"Q3", "delivery lead-time analysis", perf.QueryComplex, orders * 0.8},
		{"Q4", "frequent-buyer detection", perf.QueryComplex, 5000},
		{"Q5", "payment method vs order value", perf.QueryComplex, orders},

		{"I1", "insert new order", perf.QueryCRUD, 1},
		{"D1", "delete order", perf.QueryCRUD, 1},
		{"U1", "update order status", perf.QueryCRUD, 1},
	}
}

// BaseTime computes the pre-jitter latency for a scenario against a backend.
func BaseTime(s Scenario, db perf.Database) float64 {
	switch s.Type {
	case perf.QuerySimple:
		return math.Log10(s.BaseRows+1) * simpleCoef[db]
	case perf.QueryComplex:
		return math.Log10(s.BaseRows+1) * complexCoef[db]
	default:
		return 0 // CRUD draws from a fixed range instead
	}
}

// Estimator turns scenarios into records. Seeded so reruns over the same
// source tables reproduce the same dataset.
type Estimator struct {
	seed int64
}

func New(seed int64) *Estimator {
	return &Estimator{seed: seed}
}

// Records estimates one record per valid (scenario, database) pair.
func (e *Estimator) Records(scenarios []Scenario) []perf.Record {
	rng := rand.New(rand.NewSource(e.seed))

	var out []perf.Record
	for _, s := range scenarios {
		for _, db := range perf.Databases() {
			if s.Type == perf.QueryCRUD && db == perf.InfluxDB && s.Name != "I1" {
				continue // InfluxDB has no delete/update
			}

			base := BaseTime(s, db)
			if s.Type == perf.QueryCRUD {
				r := crudRange[db]
				base = r[0] + rng.Float64()*(r[1]-r[0])
			}

			total := base * (0.85 + rng.Float64()*0.30)
			exec, query, ret := perf.Split(total, splitRatio(s.Type, db))

			out = append(out, perf.Record{
				QueryName:       s.Name,
				Database:        db,
				ExecutionTimeMs: exec,
				QueryTimeMs:     query,
				ReturnTimeMs:    ret,
				RowsReturned:    int(s.BaseRows),
				QueryType:       s.Type,
			})
		}
	}
	return out
}

// splitRatio is the query-time share of the total. InfluxDB is slower at
// materializing results, so less of its time counts as query time.
func splitRatio(qt perf.QueryType, db perf.Database) float64 {
	if qt == perf.QueryCRUD {
		return 0.9
	}
	if db == perf.InfluxDB {
		return 0.55
	}
	return 0.75
}
