// Package analytics is the fire-and-forget side channel for launch events.
// Recorders never return errors and never block the caller for long.
package analytics

import (
	"log"

	"github.com/sourcegraph/conc/panics"

	"streamscout/internal/metrics"
	"streamscout/models"
)

// Recorder receives launch events. Implementations must swallow their own failures.
type Recorder interface {
	Record(event models.LaunchEvent)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(event models.LaunchEvent)

func (f RecorderFunc) Record(event models.LaunchEvent) { f(event) }

// Nop discards events.
type Nop struct{}

func (Nop) Record(models.LaunchEvent) {}

// LogRecorder writes one log line per event.
type LogRecorder struct{}

func (LogRecorder) Record(e models.LaunchEvent) {
	log.Printf("[analytics] launch attempt=%s platform=%q content=%q id=%s action=%s device=%s os=%s method=%s",
		e.AttemptID, e.Platform, e.ContentTitle, e.ContentID, e.ActionType, e.DeviceType, e.DeviceOS, e.OpenMethod)
}

// MetricsRecorder counts events by device OS and open method.
type MetricsRecorder struct {
	Metrics *metrics.Metrics
}

func (r MetricsRecorder) Record(e models.LaunchEvent) {
	deviceOS := e.DeviceOS
	if deviceOS == "" {
		deviceOS = e.DeviceType
	}
	r.Metrics.ObserveLaunch(deviceOS, e.OpenMethod)
}

// Multi fans an event out to every recorder in order. Each recorder is guarded
// so one failing sink does not starve the rest.
type Multi []Recorder

func (m Multi) Record(e models.LaunchEvent) {
	for _, r := range m {
		Guard(r).Record(e)
	}
}

type guarded struct {
	next Recorder
}

// Guard wraps r so that a panic inside it is recovered and logged.
func Guard(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	if g, ok := r.(guarded); ok {
		return g
	}
	return guarded{next: r}
}

func (g guarded) Record(e models.LaunchEvent) {
	var pc panics.Catcher
	pc.Try(func() { g.next.Record(e) })
	if recovered := pc.Recovered(); recovered != nil {
		log.Printf("[analytics] recorder panicked for attempt %s: %v", e.AttemptID, recovered.Value)
	}
}
