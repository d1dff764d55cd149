package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"streamscout/models"
	"streamscout/services/launch"
	"streamscout/services/platforms"
)

var (
	flagPlatform   string
	flagUserAgent  string
	flagContentURL string
	flagContentID  string
)

// plan needs no upstream credentials, so the API key is optional.
var planCmd = &cobra.Command{
	Use:   "plan <provider name>",
	Short: "Show how a device would open a provider",
	Args:  cobra.MinimumNArgs(1),
	RunE:  planRun,
}

func init() {
	planCmd.Flags().StringVarP(&flagPlatform, "platform", "p", "", "Device platform: desktop | ios | android")
	planCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "Detect the platform from a User-Agent string instead")
	planCmd.Flags().StringVar(&flagContentURL, "content-url", "", "Provider web URL of the title")
	planCmd.Flags().StringVar(&flagContentID, "content-id", "", "Provider content id of the title")
}

func planRun(cmd *cobra.Command, args []string) error {
	s, err := loadOfflineSettings()
	if err != nil {
		return err
	}

	platform := launch.DetectPlatform(flagUserAgent)
	if flagPlatform != "" {
		p, err := models.ParseDevicePlatform(flagPlatform)
		if err != nil {
			return err
		}
		platform = p
	}

	registry, err := platforms.NewRegistry(platforms.DefaultRows, platforms.DefaultColors, s.GenericWebURL)
	if err != nil {
		return err
	}
	resolver := launch.NewResolver(registry.WithDebug(s.Debug), launch.Options{
		Timings: launch.Timings{Scheme: s.SchemeFallback(), Intent: s.IntentFallback()},
		Debug:   s.Debug,
	})

	plan := resolver.Plan(platform, models.LaunchRequest{
		Provider:   strings.Join(args, " "),
		ContentURL: flagContentURL,
		ContentID:  flagContentID,
	})
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
