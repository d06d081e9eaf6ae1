package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"querybench/internal/charts"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the static chart set from the active results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		records, path, err := loadDataset(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("📖 Using %s (%d records)\n", path, len(records))

		logf := func(format string, a ...any) {
			fmt.Printf("   "+format+"\n", a...)
		}
		if err := charts.NewRenderer(cfg, logf).RenderAll(records); err != nil {
			return err
		}

		fmt.Printf("✅ Charts written to %s\n", cfg.OutputDir)
		return nil
	},
}
