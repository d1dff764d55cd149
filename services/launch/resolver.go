package launch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"streamscout/models"
	"streamscout/services/analytics"
	"streamscout/services/platforms"
)

// ErrTargetUnreachable is returned when the web destination itself could not
// be opened (for example a blocked popup). It is not retried.
var ErrTargetUnreachable = errors.New("launch target unreachable")

// Frame is an invisible, short-lived navigation surface used for scheme launches.
type Frame interface {
	Remove()
}

// Environment is the client runtime a launch runs against.
//
// WatchForeground subscribes to "the OS switched away from this page" signals.
// The signal is a heuristic: it fires when a user switches apps by hand and can
// miss an app that opened slowly. stop releases the subscription.
type Environment interface {
	UserAgent() string
	OpenWindow(url string) error
	Navigate(url string) error
	MountFrame(url string) (Frame, error)
	WatchForeground() (signal <-chan struct{}, stop func())
}

// Options configures a Resolver.
type Options struct {
	Timings  Timings
	Recorder analytics.Recorder
	Debug    bool
}

// Resolver executes launch plans. It holds no per-attempt state, so
// concurrent Launch calls never interfere.
type Resolver struct {
	registry *platforms.Registry
	timings  Timings
	recorder analytics.Recorder
	debug    bool
	now      func() time.Time
	traced   func(path []state)
}

// NewResolver builds a Resolver over an immutable registry.
func NewResolver(registry *platforms.Registry, opts Options) *Resolver {
	return &Resolver{
		registry: registry,
		timings:  opts.Timings.withDefaults(),
		recorder: analytics.Guard(opts.Recorder),
		debug:    opts.Debug,
		now:      time.Now,
	}
}

// Timings returns the fallback durations in effect.
func (r *Resolver) Timings() Timings {
	return r.timings
}

// Plan resolves the plan for a request on the given device platform.
func (r *Resolver) Plan(platform models.DevicePlatform, req models.LaunchRequest) models.LaunchPlan {
	return Plan(r.registry.Resolve(req.Provider), platform, req.ContentURL, req.ContentID, r.timings)
}

type state string

const (
	stateIdle             state = "idle"
	stateResolving        state = "resolving"
	stateAppAttempted     state = "app_attempted"
	stateAppConfirmedOpen state = "app_confirmed_open"
	stateFallbackFired    state = "fallback_fired"
	stateWebDirect        state = "web_direct"
	stateTerminal         state = "terminal"
)

var transitions = map[state][]state{
	stateIdle:             {stateResolving, stateWebDirect, stateTerminal},
	stateResolving:        {stateAppAttempted, stateWebDirect, stateTerminal},
	stateAppAttempted:     {stateAppConfirmedOpen, stateFallbackFired, stateTerminal},
	stateAppConfirmedOpen: {stateTerminal},
	stateFallbackFired:    {stateTerminal},
	stateWebDirect:        {stateTerminal},
}

// attempt is the ephemeral state of one launch. It owns its surface and timer.
type attempt struct {
	id      string
	current state
	path    []state
	debug   bool

	cleanupOnce sync.Once
	cleanups    []func()
}

func newAttempt(debug bool) *attempt {
	return &attempt{id: uuid.NewString(), current: stateIdle, path: []state{stateIdle}, debug: debug}
}

func (a *attempt) to(next state) {
	allowed := false
	for _, s := range transitions[a.current] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		log.Printf("[launch] attempt=%s illegal transition %s -> %s", a.id, a.current, next)
	}
	if a.debug {
		log.Printf("[launch] debug: attempt=%s %s -> %s", a.id, a.current, next)
	}
	a.current = next
	a.path = append(a.path, next)
}

func (a *attempt) onCleanup(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

// release runs cleanups once, newest first.
func (a *attempt) release() {
	a.cleanupOnce.Do(func() {
		for i := len(a.cleanups) - 1; i >= 0; i-- {
			a.cleanups[i]()
		}
	})
}

// Launch runs one attempt to a terminal state and returns how it ended. It
// blocks for at most the fallback duration. Cancelling ctx tears the attempt
// down: the surface is removed, the timer stopped and no analytics recorded.
func (r *Resolver) Launch(ctx context.Context, env Environment, req models.LaunchRequest) (models.LaunchResult, error) {
	started := r.now()
	a := newAttempt(r.debug)
	defer func() {
		a.release()
		if r.traced != nil {
			r.traced(a.path)
		}
	}()

	platform := DetectPlatform(env.UserAgent())
	desc := r.registry.Resolve(req.Provider)
	plan := Plan(desc, platform, req.ContentURL, req.ContentID, r.timings)

	result := models.LaunchResult{
		AttemptID: a.id,
		Platform:  platform,
		Target:    plan.Target,
		Mechanism: plan.Mechanism,
	}
	finish := func(outcome models.LaunchOutcome, opened string) models.LaunchResult {
		result.Outcome = outcome
		result.OpenedURL = opened
		result.Elapsed = r.now().Sub(started)
		return result
	}

	if err := ctx.Err(); err != nil {
		a.to(stateTerminal)
		return finish(models.OutcomeAbandoned, ""), err
	}

	if platform.IsMobile() {
		a.to(stateResolving)
	}
	if plan.Target == models.TargetWeb {
		a.to(stateWebDirect)
		a.to(stateTerminal)
		return r.openWeb(ctx, a, env, req, plan, models.OutcomeWebDirect, finish)
	}

	foreground, stop := env.WatchForeground()
	if stop != nil {
		a.onCleanup(stop)
	}

	a.to(stateAppAttempted)
	var launchErr error
	switch plan.Mechanism {
	case models.MechanismIntent:
		launchErr = env.Navigate(plan.AppURL)
	default:
		var frame Frame
		frame, launchErr = env.MountFrame(plan.AppURL)
		// A surface handed back alongside an error is still ours to remove.
		if frame != nil {
			a.onCleanup(frame.Remove)
		}
	}

	if launchErr != nil {
		if r.debug {
			log.Printf("[launch] debug: attempt=%s app launch failed, falling back now: %v", a.id, launchErr)
		}
		return r.fallback(ctx, a, env, req, plan, finish)
	}

	timer := time.NewTimer(plan.FallbackAfter)
	a.onCleanup(func() { timer.Stop() })

	select {
	case <-foreground:
		a.to(stateAppConfirmedOpen)
		a.to(stateTerminal)
		a.release()
		res := finish(models.OutcomeAppOpened, plan.AppURL)
		r.record(a.id, req, plan, res.Outcome)
		return res, nil
	case <-timer.C:
		return r.fallback(ctx, a, env, req, plan, finish)
	case <-ctx.Done():
		a.to(stateTerminal)
		a.release()
		return finish(models.OutcomeAbandoned, ""), ctx.Err()
	}
}

// fallback tears down the app attempt and opens the web destination.
func (r *Resolver) fallback(ctx context.Context, a *attempt, env Environment, req models.LaunchRequest, plan models.LaunchPlan, finish func(models.LaunchOutcome, string) models.LaunchResult) (models.LaunchResult, error) {
	a.to(stateFallbackFired)
	a.to(stateTerminal)
	a.release()
	return r.openWeb(ctx, a, env, req, plan, models.OutcomeFallbackToWeb, finish)
}

// openWeb opens the web destination once. An attempt whose context ended
// while the window was opening is reported as abandoned and not recorded.
func (r *Resolver) openWeb(ctx context.Context, a *attempt, env Environment, req models.LaunchRequest, plan models.LaunchPlan, outcome models.LaunchOutcome, finish func(models.LaunchOutcome, string) models.LaunchResult) (models.LaunchResult, error) {
	if err := env.OpenWindow(plan.WebURL); err != nil {
		return finish(models.OutcomeFailed, ""), fmt.Errorf("%w: %s: %v", ErrTargetUnreachable, plan.WebURL, err)
	}
	if err := ctx.Err(); err != nil {
		return finish(models.OutcomeAbandoned, plan.WebURL), err
	}
	res := finish(outcome, plan.WebURL)
	r.record(a.id, req, plan, res.Outcome)
	return res, nil
}

func (r *Resolver) record(attemptID string, req models.LaunchRequest, plan models.LaunchPlan, outcome models.LaunchOutcome) {
	kind := req.Kind
	if kind == "" {
		kind = models.OfferKindStream
	}
	r.recorder.Record(models.LaunchEvent{
		AttemptID:    attemptID,
		Platform:     plan.Provider,
		ContentTitle: orUnknown(req.ContentTitle),
		ContentID:    orUnknown(req.ContentID),
		ActionType:   kind,
		DeviceType:   plan.Platform.DeviceClass(),
		DeviceOS:     string(plan.Platform),
		OpenMethod:   outcome.OpenMethod(),
		OccurredAt:   r.now().UTC(),
	})
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Unknown"
	}
	return s
}
