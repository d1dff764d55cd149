package launch

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrNoAppSurface is returned by environments that cannot attempt app launches.
var ErrNoAppSurface = errors.New("environment has no app launch surface")

// desktopUserAgent makes the host browser plan like a desktop client.
const desktopUserAgent = "Mozilla/5.0 (X11; Linux x86_64) streamscout"

// Browser is an Environment that hands URLs to the host's default browser.
// It presents as a desktop, so plans always target the web.
type Browser struct {
	// Open replaces the system opener when set.
	Open func(url string) error
}

var _ Environment = (*Browser)(nil)

func (b *Browser) UserAgent() string { return desktopUserAgent }

func (b *Browser) OpenWindow(url string) error {
	if b.Open != nil {
		return b.Open(url)
	}
	return openSystemBrowser(url)
}

func (b *Browser) Navigate(string) error { return ErrNoAppSurface }

func (b *Browser) MountFrame(string) (Frame, error) { return nil, ErrNoAppSurface }

// WatchForeground never signals; a nil channel blocks forever in select.
func (b *Browser) WatchForeground() (<-chan struct{}, func()) { return nil, func() {} }

func openSystemBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting browser: %w", err)
	}
	// The opener exits as soon as the browser has the URL.
	go cmd.Wait()
	return nil
}
