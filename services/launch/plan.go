// Package launch turns an "open this provider" click into a destination:
// the native app on mobile (with a timed web fallback) or the web on desktop.
package launch

import (
	"regexp"
	"strings"
	"time"

	"streamscout/models"
	"streamscout/services/platforms"
)

const (
	DefaultSchemeFallback = 1500 * time.Millisecond
	DefaultIntentFallback = 2500 * time.Millisecond
)

// Timings are the fallback timer durations per launch mechanism.
type Timings struct {
	Scheme time.Duration
	Intent time.Duration
}

func (t Timings) withDefaults() Timings {
	if t.Scheme <= 0 {
		t.Scheme = DefaultSchemeFallback
	}
	if t.Intent <= 0 {
		t.Intent = DefaultIntentFallback
	}
	return t
}

var (
	iosAgent     = regexp.MustCompile(`iPad|iPhone|iPod`)
	androidAgent = regexp.MustCompile(`(?i)Android`)
)

// DetectPlatform classifies a user agent. Other mobile operating systems
// have no app launch support and are treated as desktop.
func DetectPlatform(userAgent string) models.DevicePlatform {
	switch {
	case iosAgent.MatchString(userAgent):
		return models.PlatformIOS
	case androidAgent.MatchString(userAgent):
		return models.PlatformAndroid
	default:
		return models.PlatformDesktop
	}
}

// Plan decides the first target for a provider on a device. It is pure:
// no side effects, same inputs give the same plan.
func Plan(d platforms.Descriptor, platform models.DevicePlatform, contentURL, contentID string, timings Timings) models.LaunchPlan {
	timings = timings.withDefaults()
	plan := models.LaunchPlan{
		Provider: d.Name(),
		Platform: platform,
		Target:   models.TargetWeb,
		WebURL:   d.WebURL(contentURL),
		Generic:  d.Generic(),
		Color:    d.Color(),
	}

	var (
		appURL string
		ok     bool
	)
	switch platform {
	case models.PlatformIOS:
		appURL, ok = d.IOSScheme(contentID)
	case models.PlatformAndroid:
		appURL, ok = d.AndroidTarget(contentURL, contentID)
	}
	if !ok || appURL == "" {
		return plan
	}

	plan.Target = models.TargetApp
	plan.AppURL = appURL
	if strings.HasPrefix(strings.ToLower(appURL), "intent://") {
		plan.Mechanism = models.MechanismIntent
		plan.FallbackAfter = timings.Intent
	} else {
		plan.Mechanism = models.MechanismScheme
		plan.FallbackAfter = timings.Scheme
	}
	plan.FallbackMs = plan.FallbackAfter.Milliseconds()
	return plan
}
