package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"streamscout/config"
	"streamscout/services/availability"
)

var (
	flagType     string
	flagRegion   string
	flagFallback string
)

var availabilityCmd = &cobra.Command{
	Use:   "availability <title-id>",
	Short: "Print where a title can be watched in a region",
	Args:  cobra.ExactArgs(1),
	RunE:  availabilityRun,
}

func init() {
	availabilityCmd.Flags().StringVarP(&flagType, "type", "t", "movie", "Content type: movie | tv")
	availabilityCmd.Flags().StringVarP(&flagRegion, "region", "r", "US", "ISO 3166 region code")
	availabilityCmd.Flags().StringVar(&flagFallback, "fallback", "", "Override fallback policy: empty | stale | demo")
}

func availabilityRun(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if flagFallback != "" {
		s.FallbackPolicy = config.FallbackPolicy(flagFallback)
		if err := s.Validate(); err != nil {
			return err
		}
	}
	defer setupLogging(s).Close()

	query, err := availability.ParseQuery(args[0], flagRegion, flagType)
	if err != nil {
		return err
	}

	a, err := newApp(s, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.availability.Lookup(cmd.Context(), query)
	if err != nil {
		if !errors.Is(err, availability.ErrUpstreamUnavailable) {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v (showing %s fallback)\n", err, s.FallbackPolicy)
	}
	debugf(s, "[availability] %s -> %d offers", query, result.Len())

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
