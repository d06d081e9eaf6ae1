package bench

import (
	"context"
	"fmt"

	"querybench/internal/config"
	"querybench/internal/perf"
)

// State tracks one (statement, database) pair through the measurement loop.
type State int

const (
	StatePending State = iota
	StateWarmed
	StateMeasured
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateWarmed:
		return "warmed"
	case StateMeasured:
		return "measured"
	default:
		return "failed"
	}
}

// Pair is the unit of work and its terminal outcome. Failed pairs carry the
// error that stopped them and are omitted from the result set; the run
// continues with the remaining pairs.
type Pair struct {
	Statement Statement
	Database  perf.Database
	State     State
	Err       error
}

// Runner executes every supported (statement, connector) pair sequentially:
// one discarded warm-up, then a fixed number of measured repeats whose
// timings are averaged into a single record.
type Runner struct {
	cfg        config.Bench
	connectors []Connector
	logf       func(format string, args ...any)
}

func NewRunner(cfg config.Bench, connectors []Connector, logf func(format string, args ...any)) *Runner {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Runner{cfg: cfg, connectors: connectors, logf: logf}
}

// Run measures all pairs and returns the records plus the per-pair outcomes.
// The context bounds the whole run; cancellation aborts between executions.
func (r *Runner) Run(ctx context.Context, statements []Statement) ([]perf.Record, []Pair, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	var records []perf.Record
	var pairs []Pair

	for _, stmt := range statements {
		for _, conn := range r.connectors {
			if !supports(conn.Name(), stmt) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return records, pairs, err
			}

			pair := Pair{Statement: stmt, Database: conn.Name()}
			rec, err := r.measure(ctx, conn, stmt, &pair)
			if err != nil {
				pair.State = StateFailed
				pair.Err = err
				r.logf("%s on %s failed: %v", stmt.Name, conn.Name(), err)
			} else {
				pair.State = StateMeasured
				records = append(records, rec)
				r.logf("%s on %s: %.2f ms (%d rows)", stmt.Name, conn.Name(), rec.ExecutionTimeMs, rec.RowsReturned)
			}
			pairs = append(pairs, pair)
		}
	}

	return records, pairs, nil
}

// measure runs the warm-up and the measured repeats for one pair. A warm-up
// failure is tolerated (cold caches can behave oddly); a failure during a
// measured repeat fails the pair.
func (r *Runner) measure(ctx context.Context, conn Connector, stmt Statement, pair *Pair) (perf.Record, error) {
	if r.cfg.Warmup {
		if _, err := conn.Execute(ctx, stmt); err != nil {
			r.logf("%s on %s warm-up: %v", stmt.Name, conn.Name(), err)
		}
	}
	pair.State = StateWarmed

	repeats := r.cfg.Repeats
	if repeats < 1 {
		repeats = 1
	}

	total := newTimingHist()
	query := newTimingHist()
	ret := newTimingHist()
	rows := 0

	for i := 0; i < repeats; i++ {
		if err := ctx.Err(); err != nil {
			return perf.Record{}, err
		}
		t, err := conn.Execute(ctx, stmt)
		if err != nil {
			return perf.Record{}, fmt.Errorf("repeat %d: %w", i+1, err)
		}
		total.Record(t.Total())
		query.Record(t.Query)
		ret.Record(t.Return)
		rows = t.Rows
	}

	execMs := perf.Round2(total.MeanMs())
	queryMs := perf.Round2(query.MeanMs())
	// The split must stay exact after rounding; the return portion is the
	// rounded remainder rather than its own mean.
	returnMs := perf.Round2(execMs - queryMs)
	if returnMs < 0 {
		returnMs = 0
		queryMs = execMs
	}

	return perf.Record{
		QueryName:       stmt.Name,
		Database:        conn.Name(),
		ExecutionTimeMs: execMs,
		QueryTimeMs:     queryMs,
		ReturnTimeMs:    returnMs,
		RowsReturned:    rows,
		QueryType:       stmt.Type,
	}, nil
}

// Connect opens every configured connector, reporting and skipping the ones
// that are unavailable. An empty result means no backend could be reached.
func Connect(cfg config.Config, logf func(format string, args ...any)) []Connector {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	type attempt struct {
		name string
		open func() (Connector, error)
	}
	attempts := []attempt{
		{"PostgreSQL", func() (Connector, error) { return NewPostgres(cfg.Postgres, false) }},
		{"PostgreSQL_indexed", func() (Connector, error) { return NewPostgres(cfg.Postgres, true) }},
		{"DuckDB", func() (Connector, error) { return NewDuckDB(cfg.DuckDB, false) }},
		{"DuckDB_indexed", func() (Connector, error) { return NewDuckDB(cfg.DuckDB, true) }},
		{"InfluxDB", func() (Connector, error) { return NewInflux(cfg.Influx) }},
	}

	var out []Connector
	for _, a := range attempts {
		conn, err := a.open()
		if err != nil {
			logf("skipping %s: %v", a.name, err)
			continue
		}
		logf("connected to %s", a.name)
		out = append(out, conn)
	}
	return out
}
