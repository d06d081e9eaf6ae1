package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"querybench/internal/bench"
	"querybench/internal/perf"
)

var benchOut string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure real databases with the configured connectors",
	Long: `Bench connects to every configured backend, skipping the ones that
are unreachable, and runs the workload sequentially: one discarded warm-up
per (statement, database) pair, then the configured number of measured
repeats averaged into a single record. Failed pairs are reported and
omitted; the run continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		logf := func(format string, a ...any) {
			fmt.Printf("   "+format+"\n", a...)
		}

		fmt.Println("🔌 Connecting...")
		connectors := bench.Connect(cfg, logf)
		if len(connectors) == 0 {
			return fmt.Errorf("no database backends reachable")
		}
		defer func() {
			for _, c := range connectors {
				if err := c.Close(); err != nil {
					fmt.Printf("⚠️  close %s: %v\n", c.Name(), err)
				}
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Println("⏱  Measuring...")
		runner := bench.NewRunner(cfg.Bench, connectors, logf)
		records, pairs, err := runner.Run(ctx, bench.DefaultStatements())
		if err != nil {
			fmt.Printf("⚠️  run stopped early: %v\n", err)
		}

		failed := 0
		for _, p := range pairs {
			if p.State == bench.StateFailed {
				failed++
			}
		}
		fmt.Printf("✅ Measured %d pairs (%d failed)\n", len(records), failed)

		if len(records) == 0 {
			return fmt.Errorf("no measurements to save")
		}

		out := benchOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, "performance_results.csv")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := perf.WriteFile(out, records); err != nil {
			return err
		}
		fmt.Printf("📁 Saved to %s\n", out)

		saveHistory("bench", out, records)
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVarP(&benchOut, "out", "o", "", "output CSV path (default <data_dir>/performance_results.csv)")
}
