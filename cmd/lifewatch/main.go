package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/lifewatch/internal/config"
	"github.com/nvandessel/lifewatch/internal/pathutil"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifewatch",
		Short: "Conway's Life on a bounded grid that stops when it gets boring",
		Long: `lifewatch runs Conway's Game of Life on a fixed-size grid with no
wraparound, drawing each generation to the terminal.

The run ends on its own when every cell dies or when the board settles into
a short repeating cycle, then prints a summary of the run.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.lifewatch/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newConfigCmd(),
		newPatternsCmd(),
	)
	return rootCmd
}

// loadConfig resolves configuration from --config, or the default location
// when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.LifewatchConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Load()
	}
	path, err := pathutil.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("invalid --config path: %w", err)
	}
	return config.LoadPath(path)
}
