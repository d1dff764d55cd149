package models

import (
	"fmt"
	"strings"
	"time"
)

// DevicePlatform is the device class that decides which launch mechanism is tried.
type DevicePlatform string

const (
	PlatformDesktop DevicePlatform = "desktop"
	PlatformIOS     DevicePlatform = "ios"
	PlatformAndroid DevicePlatform = "android"
)

// ParseDevicePlatform parses an explicit platform override.
func ParseDevicePlatform(raw string) (DevicePlatform, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desktop", "web":
		return PlatformDesktop, nil
	case "ios", "iphone", "ipad":
		return PlatformIOS, nil
	case "android":
		return PlatformAndroid, nil
	default:
		return "", fmt.Errorf("unsupported platform %q (valid: desktop, ios, android)", raw)
	}
}

// IsMobile reports whether the platform has an app-attempt phase at all.
func (p DevicePlatform) IsMobile() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// DeviceClass is the coarse desktop/mobile split reported to analytics.
func (p DevicePlatform) DeviceClass() string {
	if p.IsMobile() {
		return "mobile"
	}
	return "desktop"
}

// LaunchTarget is where the resolver sends the user first.
type LaunchTarget string

const (
	TargetApp LaunchTarget = "app"
	TargetWeb LaunchTarget = "web"
)

// LaunchMechanism is how an app target is attempted.
type LaunchMechanism string

const (
	MechanismScheme LaunchMechanism = "scheme" // hidden frame, page stays put
	MechanismIntent LaunchMechanism = "intent" // top-level navigation
)

// LaunchOutcome is the terminal result of one attempt.
type LaunchOutcome string

const (
	OutcomeAppOpened     LaunchOutcome = "app_opened"
	OutcomeFallbackToWeb LaunchOutcome = "fallback_to_web"
	OutcomeWebDirect     LaunchOutcome = "web_direct"
	OutcomeAbandoned     LaunchOutcome = "abandoned"
	OutcomeFailed        LaunchOutcome = "failed"
)

// OpenMethod is the analytics name for how the destination was reached.
func (o LaunchOutcome) OpenMethod() string {
	switch o {
	case OutcomeAppOpened:
		return "app"
	case OutcomeFallbackToWeb:
		return "fallback"
	default:
		return "web"
	}
}

// LaunchPlan is the resolved set of destinations for one provider click.
type LaunchPlan struct {
	Provider      string          `json:"provider"`
	Platform      DevicePlatform  `json:"platform"`
	Target        LaunchTarget    `json:"target"`
	Mechanism     LaunchMechanism `json:"mechanism,omitempty"`
	AppURL        string          `json:"appUrl,omitempty"`
	WebURL        string          `json:"webUrl"`
	FallbackAfter time.Duration   `json:"-"`
	FallbackMs    int64           `json:"fallbackMs,omitempty"`
	Generic       bool            `json:"generic"`
	Color         string          `json:"color,omitempty"`
}

// LaunchRequest is the user's "open this provider" intent.
type LaunchRequest struct {
	Provider     string    `json:"provider"`
	ContentURL   string    `json:"contentUrl,omitempty"`
	ContentID    string    `json:"contentId,omitempty"`
	ContentTitle string    `json:"contentTitle,omitempty"`
	Kind         OfferKind `json:"kind,omitempty"`
}

// LaunchResult describes a finished attempt.
type LaunchResult struct {
	AttemptID string          `json:"attemptId"`
	Platform  DevicePlatform  `json:"platform"`
	Target    LaunchTarget    `json:"target"`
	Mechanism LaunchMechanism `json:"mechanism,omitempty"`
	Outcome   LaunchOutcome   `json:"outcome"`
	OpenedURL string          `json:"openedUrl,omitempty"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// LaunchEvent is the best-effort analytics record emitted on a terminal transition.
type LaunchEvent struct {
	AttemptID    string    `json:"attemptId"`
	Platform     string    `json:"platform"`
	ContentTitle string    `json:"contentTitle"`
	ContentID    string    `json:"contentId"`
	ActionType   OfferKind `json:"actionType"`
	DeviceType   string    `json:"deviceType"`
	DeviceOS     string    `json:"deviceOs,omitempty"`
	OpenMethod   string    `json:"openMethod"`
	OccurredAt   time.Time `json:"occurredAt"`
}
