package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the on-disk response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached autocomplete and availability entry",
	Args:  cobra.NoArgs,
	RunE:  cacheClearRun,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func cacheClearRun(cmd *cobra.Command, _ []string) error {
	s, err := loadOfflineSettings()
	if err != nil {
		return err
	}
	a, err := newApp(s, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, c := range a.caches {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", s.CacheDir)
	return nil
}
