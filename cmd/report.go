package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"querybench/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the summary report for the active results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		records, path, err := loadDataset(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("📖 Using %s\n\n", path)
		return report.Write(os.Stdout, records)
	},
}
