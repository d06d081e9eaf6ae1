package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"querybench/internal/generate"
	"querybench/internal/perf"
	"querybench/internal/storage"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic benchmark dataset",
	Long: `Generate produces one record per (query, database) pair across the
simple, complex and CRUD batches using the seeded timing model. The same
seed always yields a byte-identical file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		out := generateOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, "sample_performance.csv")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}

		records := generate.New(cfg.Seed).Records()
		if err := perf.WriteFile(out, records); err != nil {
			return err
		}

		fmt.Printf("✅ Generated %d records (seed %d)\n", len(records), cfg.Seed)
		fmt.Printf("📁 Saved to %s\n", out)

		saveHistory("generate", out, records)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output CSV path (default <data_dir>/sample_performance.csv)")
}

// saveHistory records the run; history is best-effort and never fails a run.
func saveHistory(source, dataFile string, records []perf.Record) {
	store, err := storage.Open("")
	if err != nil {
		fmt.Printf("⚠️  history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Save(storage.NewHistoryItem(source, dataFile, records)); err != nil {
		fmt.Printf("⚠️  history not saved: %v\n", err)
	}
}
