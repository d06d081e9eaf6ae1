package bench

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"querybench/internal/config"
	"querybench/internal/perf"
)

// InfluxConnector runs Flux queries against InfluxDB. Statements without a
// Flux form are filtered out before the connector ever sees them.
type InfluxConnector struct {
	client influxdb2.Client
	query  api.QueryAPI
}

func NewInflux(cfg config.Influx) (*InfluxConnector, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	// The client connects lazily; ping now so an unreachable server is
	// reported as connector-unavailable instead of failing every statement.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if ok, err := client.Ping(ctx); err != nil || !ok {
		client.Close()
		if err == nil {
			err = fmt.Errorf("ping not ready")
		}
		return nil, fmt.Errorf("influxdb: %w", err)
	}

	return &InfluxConnector{
		client: client,
		query:  client.QueryAPI(cfg.Org),
	}, nil
}

func (c *InfluxConnector) Name() perf.Database {
	return perf.InfluxDB
}

func (c *InfluxConnector) Execute(ctx context.Context, stmt Statement) (Timing, error) {
	start := time.Now()

	result, err := c.query.Query(ctx, stmt.Flux)
	if err != nil {
		return Timing{}, err
	}
	queryDone := time.Now()

	count := 0
	for result.Next() {
		count++
	}
	if err := result.Err(); err != nil {
		return Timing{}, err
	}

	end := time.Now()
	return Timing{
		Query:  queryDone.Sub(start),
		Return: end.Sub(queryDone),
		Rows:   count,
	}, nil
}

func (c *InfluxConnector) Close() error {
	c.client.Close()
	return nil
}
