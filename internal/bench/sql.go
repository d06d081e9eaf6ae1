package bench

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	// Drivers register themselves; no direct use.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb"

	"querybench/internal/config"
	"querybench/internal/perf"
)

// SQLConnector wraps a sqlx connection to a relational backend. The same
// type serves the plain and indexed variants; the variant only changes the
// reported database name.
type SQLConnector struct {
	db   *sqlx.DB
	name perf.Database
}

// NewPostgres connects to PostgreSQL. With indexed=true the connection is
// reported as the indexed variant (the schema-side indexes are assumed to be
// in place).
func NewPostgres(cfg config.Postgres, indexed bool) (*SQLConnector, error) {
	db, err := sqlx.Connect("pgx", postgresURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	name := perf.PostgreSQL
	if indexed {
		name = perf.PostgreSQLIndexed
	}
	return &SQLConnector{db: db, name: name}, nil
}

// NewDuckDB opens the DuckDB database file.
func NewDuckDB(cfg config.DuckDBCfg, indexed bool) (*SQLConnector, error) {
	db, err := sqlx.Connect("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("duckdb: %w", err)
	}
	name := perf.DuckDB
	if indexed {
		name = perf.DuckDBIndexed
	}
	return &SQLConnector{db: db, name: name}, nil
}

// newSQLConnector wires an existing handle; used by tests with sqlmock.
func newSQLConnector(db *sqlx.DB, name perf.Database) *SQLConnector {
	return &SQLConnector{db: db, name: name}
}

func (c *SQLConnector) Name() perf.Database {
	return c.name
}

// Execute runs the statement and splits the elapsed time into the query
// phase (until the first result is available) and the return phase (fetching
// and materializing all rows).
func (c *SQLConnector) Execute(ctx context.Context, stmt Statement) (Timing, error) {
	start := time.Now()

	if stmt.Type == perf.QueryCRUD {
		res, err := c.db.ExecContext(ctx, stmt.SQL)
		if err != nil {
			return Timing{}, err
		}
		elapsed := time.Since(start)
		affected, _ := res.RowsAffected()
		return Timing{Query: elapsed, Rows: int(affected)}, nil
	}

	rows, err := c.db.QueryxContext(ctx, stmt.SQL)
	if err != nil {
		return Timing{}, err
	}
	queryDone := time.Now()

	count := 0
	for rows.Next() {
		if _, err := rows.SliceScan(); err != nil {
			rows.Close()
			return Timing{}, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Timing{}, err
	}
	rows.Close()

	end := time.Now()
	return Timing{
		Query:  queryDone.Sub(start),
		Return: end.Sub(queryDone),
		Rows:   count,
	}, nil
}

func (c *SQLConnector) Close() error {
	return c.db.Close()
}

func postgresURL(cfg config.Postgres) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   cfg.Database,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}
