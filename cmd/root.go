package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"querybench/internal/config"
	"querybench/internal/perf"
	"querybench/internal/tui/app"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "querybench",
	Short: "querybench - database benchmark data toolkit",
	Long: `
querybench generates, estimates or measures database benchmark data
(PostgreSQL, DuckDB, InfluxDB) and renders it as charts, a summary
report and an interactive terminal dashboard.

Running without a subcommand opens the dashboard over the first
available results file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.querybench.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".querybench")
		}
	}
	viper.SetEnvPrefix("querybench")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

// loadConfig snapshots viper into the immutable config value components take.
func loadConfig() config.Config {
	return config.Load(viper.GetViper())
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadDataset finds and reads the active results file.
func loadDataset(cfg config.Config) ([]perf.Record, string, error) {
	path := cfg.FirstResultFile(fileExists)
	if path == "" {
		return nil, "", fmt.Errorf("no results file found (tried %v); run `querybench generate` first", cfg.ResultFiles)
	}
	records, err := perf.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", path, err)
	}
	return records, path, nil
}

func runDashboard() error {
	cfg := loadConfig()
	records, path, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	m := app.NewModel(cfg, records, path)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
