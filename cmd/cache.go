package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/config"
	"github.com/theirongolddev/finbuddy/internal/store"

	"github.com/spf13/cobra"
)

var flagCacheOlderThan time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the advice cache",
	RunE:  runCacheStats,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached answer counts",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached answers",
	RunE:  runCacheClear,
}

func init() {
	cacheClearCmd.Flags().DurationVar(&flagCacheOlderThan, "older-than", 0, "Only delete entries older than this (e.g. 720h)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheDB() (*store.Cache, string, error) {
	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	path := config.Effective(cfg).Cache.DBPath()
	c, err := store.Open(path)
	if err != nil {
		return nil, path, fmt.Errorf("opening cache %s: %w", path, err)
	}
	return c, path, nil
}

func runCacheStats(_ *cobra.Command, _ []string) error {
	c, path, err := openCacheDB()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	st, err := c.Stats()
	if err != nil {
		return err
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Advice cache",
		Rows: [][]string{
			{"Path", path},
			{"Entries", cli.FormatNumber(int64(st.Entries))},
			{"Hits", cli.FormatNumber(st.Hits)},
		},
	}))
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	c, _, err := openCacheDB()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	n, err := c.Purge(flagCacheOlderThan)
	if err != nil {
		return err
	}
	fmt.Printf("  Removed %d cached answers\n", n)
	return nil
}
