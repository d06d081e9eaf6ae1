package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"querybench/internal/estimate"
	"querybench/internal/perf"
)

var estimateOut string

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate benchmark timings from real source-table sizes",
	Long: `Estimate loads the e-commerce source tables from the data directory
(trying GBK, UTF-8, GB18030 and Latin-1 in turn), derives base timings from
their row counts with a log10 scaling law, and writes a results file in the
same schema the generator uses. Missing tables are skipped with a warning
and contribute zero rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		warnf := func(format string, args ...any) {
			fmt.Printf("⚠️  "+format+"\n", args...)
		}
		tables := estimate.LoadTables(cfg.DataDir, warnf)
		fmt.Printf("✅ Loaded %d source tables\n", tables.Loaded())
		fmt.Printf("   orders: %d rows, order_items: %d rows\n",
			tables.Rows("orders"), tables.Rows("order_items"))

		scenarios := estimate.Scenarios(tables)
		records := estimate.New(cfg.Seed).Records(scenarios)

		out := estimateOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, "real_performance_results.csv")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := perf.WriteFile(out, records); err != nil {
			return err
		}

		fmt.Printf("✅ Estimated %d records across %d scenarios\n", len(records), len(scenarios))
		fmt.Printf("📁 Saved to %s\n", out)

		saveHistory("estimate", out, records)
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateOut, "out", "o", "", "output CSV path (default <data_dir>/real_performance_results.csv)")
}
