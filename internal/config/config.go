// Package config turns the process-wide settings (connection parameters,
// color palette, file paths, benchmark knobs) into one immutable value that
// is loaded once and passed into each component at construction.
package config

import (
	"time"

	"github.com/spf13/viper"

	"querybench/internal/perf"
)

type Config struct {
	DataDir   string
	OutputDir string

	// Candidate result files, tried in order; the first one that exists is
	// loaded by the dashboard, charts and report commands.
	ResultFiles []string

	// Seed drives both the synthetic generator and the estimator's jitter.
	Seed int64

	Bench    Bench
	Postgres Postgres
	DuckDB   DuckDBCfg
	Influx   Influx

	// Colors maps each database to its chart color.
	Colors map[perf.Database]string
}

type Bench struct {
	Repeats int
	Warmup  bool
	Timeout time.Duration
}

type Postgres struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

type DuckDBCfg struct {
	Path string
}

type Influx struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Default returns the built-in configuration, mirroring the documented
// defaults before any file or environment override.
func Default() Config {
	return Config{
		DataDir:   "data",
		OutputDir: "visualizations",
		ResultFiles: []string{
			"data/real_performance_results.csv",
			"data/performance_results.csv",
			"data/sample_performance.csv",
		},
		Seed: 42,
		Bench: Bench{
			Repeats: 3,
			Warmup:  true,
			Timeout: 5 * time.Minute,
		},
		Postgres: Postgres{
			Host:     "localhost",
			Port:     5432,
			Database: "ecommerce_db",
			User:     "postgres",
		},
		DuckDB: DuckDBCfg{Path: "data/ecommerce.duckdb"},
		Influx: Influx{
			URL:    "http://localhost:8086",
			Org:    "ecommerce",
			Bucket: "ecommerce",
		},
		Colors: map[perf.Database]string{
			perf.PostgreSQL:        "#E74C3C",
			perf.PostgreSQLIndexed: "#C0392B",
			perf.DuckDB:            "#3498DB",
			perf.DuckDBIndexed:     "#2874A6",
			perf.InfluxDB:          "#F39C12",
		},
	}
}

// Color returns the chart color for a database, with a neutral fallback.
func (c Config) Color(db perf.Database) string {
	if col, ok := c.Colors[db]; ok {
		return col
	}
	return "#7F8C8D"
}

// FirstResultFile returns the first existing candidate result file, or ""
// when none exists.
func (c Config) FirstResultFile(exists func(string) bool) string {
	for _, path := range c.ResultFiles {
		if exists(path) {
			return path
		}
	}
	return ""
}

// Load builds a Config from viper state layered over the defaults. Callers
// run viper's file/env setup first (see cmd.initConfig).
func Load(v *viper.Viper) Config {
	cfg := Default()

	if v.IsSet("data_dir") {
		cfg.DataDir = v.GetString("data_dir")
	}
	if v.IsSet("output_dir") {
		cfg.OutputDir = v.GetString("output_dir")
	}
	if v.IsSet("result_files") {
		cfg.ResultFiles = v.GetStringSlice("result_files")
	}
	if v.IsSet("seed") {
		cfg.Seed = v.GetInt64("seed")
	}

	if v.IsSet("bench.repeats") {
		cfg.Bench.Repeats = v.GetInt("bench.repeats")
	}
	if v.IsSet("bench.warmup") {
		cfg.Bench.Warmup = v.GetBool("bench.warmup")
	}
	if v.IsSet("bench.timeout") {
		cfg.Bench.Timeout = v.GetDuration("bench.timeout")
	}

	if v.IsSet("postgres.host") {
		cfg.Postgres.Host = v.GetString("postgres.host")
	}
	if v.IsSet("postgres.port") {
		cfg.Postgres.Port = v.GetInt("postgres.port")
	}
	if v.IsSet("postgres.database") {
		cfg.Postgres.Database = v.GetString("postgres.database")
	}
	if v.IsSet("postgres.user") {
		cfg.Postgres.User = v.GetString("postgres.user")
	}
	if v.IsSet("postgres.password") {
		cfg.Postgres.Password = v.GetString("postgres.password")
	}

	if v.IsSet("duckdb.path") {
		cfg.DuckDB.Path = v.GetString("duckdb.path")
	}

	if v.IsSet("influx.url") {
		cfg.Influx.URL = v.GetString("influx.url")
	}
	if v.IsSet("influx.token") {
		cfg.Influx.Token = v.GetString("influx.token")
	}
	if v.IsSet("influx.org") {
		cfg.Influx.Org = v.GetString("influx.org")
	}
	if v.IsSet("influx.bucket") {
		cfg.Influx.Bucket = v.GetString("influx.bucket")
	}

	return cfg
}
