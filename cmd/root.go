// Package cmd implements the streamscout command line.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"streamscout/config"
)

var (
	flagConfig  string
	flagEnvFile string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "streamscout",
	Short: "Resolve where a title can be watched and how to open it",
	Long: `streamscout aggregates streaming offers for a title in a region and
plans how a device should open the chosen provider (native app first,
web page as fallback).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "streamscout.toml", "Path to a TOML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to a KEY=value env file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings loads and validates configuration: defaults < config file <
// env file < environment < --debug.
func loadSettings() (config.Settings, error) {
	s, err := config.NewManager(flagConfig, flagEnvFile).Load()
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading config: %w", err)
	}
	if flagDebug {
		s.Debug = true
	}
	return s, nil
}

// loadOfflineSettings is loadSettings for commands that never call upstream,
// so a missing API key is not an error.
func loadOfflineSettings() (config.Settings, error) {
	s, err := config.NewManager(flagConfig, flagEnvFile).LoadOffline()
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading config: %w", err)
	}
	if flagDebug {
		s.Debug = true
	}
	return s, nil
}

// debugf logs only when debug logging is on.
func debugf(s config.Settings, format string, args ...any) {
	if s.Debug {
		log.Printf(format, args...)
	}
}
