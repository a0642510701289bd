// Package cmd implements the finbuddy CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	config.LoadEnvFile()
	fileCfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg := config.Effective(fileCfg)

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  API key source: %s\n", config.KeySource(fileCfg))
	fmt.Println()

	rows := make([][]string, 0, 10)
	for _, kv := range config.Describe(cfg) {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: []string{"Setting", "Value"}, Rows: rows}))
	fmt.Println()
	fmt.Println("  Run `finbuddy setup` to reconfigure.")
	return nil
}
