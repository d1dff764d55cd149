package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"streamscout/models"
	"streamscout/services/launch"
)

var (
	flagOpenURL   string
	flagOpenTitle string
	flagOpenKind  string
)

// newBrowser is swapped in tests so nothing reaches the host browser.
var newBrowser = func() launch.Environment { return &launch.Browser{} }

var openCmd = &cobra.Command{
	Use:   "open <provider name>",
	Short: "Open a provider in the default browser and record the launch",
	Args:  cobra.MinimumNArgs(1),
	RunE:  openRun,
}

func init() {
	openCmd.Flags().StringVar(&flagOpenURL, "content-url", "", "Provider web URL of the title")
	openCmd.Flags().StringVar(&flagOpenTitle, "title", "", "Title name for launch analytics")
	openCmd.Flags().StringVar(&flagOpenKind, "kind", string(models.OfferKindStream), "Offer kind for launch analytics: stream | rent | buy | free")
}

func openRun(cmd *cobra.Command, args []string) error {
	kind := models.OfferKind(strings.ToLower(strings.TrimSpace(flagOpenKind)))
	if !slices.Contains(models.OfferKinds, kind) {
		return fmt.Errorf("unsupported kind %q (valid: %v)", flagOpenKind, models.OfferKinds)
	}
	s, err := loadOfflineSettings()
	if err != nil {
		return err
	}
	defer setupLogging(s).Close()

	a, err := newApp(s, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.resolver.Launch(cmd.Context(), newBrowser(), models.LaunchRequest{
		Provider:     strings.Join(args, " "),
		ContentURL:   flagOpenURL,
		ContentTitle: flagOpenTitle,
		Kind:         kind,
	})
	if err != nil {
		return err
	}
	debugf(s, "[launch] opened %s in %s", res.OpenedURL, res.Elapsed)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
