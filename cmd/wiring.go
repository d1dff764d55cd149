package cmd

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"streamscout/config"
	"streamscout/internal/filecache"
	"streamscout/internal/metrics"
	"streamscout/services/analytics"
	"streamscout/services/availability"
	"streamscout/services/launch"
	"streamscout/services/metadata"
	"streamscout/services/platforms"
)

const cacheJitter = 5 * time.Minute

// setupLogging tees the standard logger to a rotated file when log_file is set.
// The returned closer flushes the file.
func setupLogging(s config.Settings) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if s.LogFile == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	rotator := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    s.LogMaxSizeMB,
		MaxBackups: s.LogMaxBackups,
		MaxAge:     s.LogMaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator
}

// app is the wired service graph shared by the commands.
type app struct {
	settings     config.Settings
	metrics      *metrics.Metrics
	metadata     *metadata.Service
	availability *availability.Service
	registry     *platforms.Registry
	resolver     *launch.Resolver
	recorder     analytics.Recorder
	forwarder    *analytics.HTTPRecorder
	caches       []*filecache.Cache
}

func newApp(s config.Settings, m *metrics.Metrics) (*app, error) {
	registry, err := platforms.NewRegistry(platforms.DefaultRows, platforms.DefaultColors, s.GenericWebURL)
	if err != nil {
		return nil, err
	}
	registry = registry.WithDebug(s.Debug)

	client := metadata.NewClient(metadata.ClientConfig{
		APIKey:     s.TMDBAPIKey,
		BaseURL:    s.TMDBBaseURL,
		Language:   s.TMDBLanguage,
		HTTPClient: &http.Client{Timeout: s.HTTPTimeout()},
		Attempts:   uint(s.RetryAttempts),
		RPS:        s.UpstreamRPS,
		Metrics:    m,
	})

	autocompleteCache := filecache.New(filepath.Join(s.CacheDir, "autocomplete"), s.AutocompleteTTL()).WithJitter(cacheJitter)
	availabilityCache := filecache.New(filepath.Join(s.CacheDir, "availability"), s.AvailabilityTTL()).WithJitter(cacheJitter)

	a := &app{
		settings: s,
		metrics:  m,
		metadata: metadata.NewService(client, autocompleteCache),
		availability: availability.NewService(client, availability.Options{
			Cache:          availabilityCache,
			FallbackPolicy: s.FallbackPolicy,
			DedupePolicy:   s.DedupePolicy,
			Metrics:        m,
			Debug:          s.Debug,
		}),
		registry: registry,
		caches:   []*filecache.Cache{autocompleteCache, availabilityCache},
	}

	recorders := analytics.Multi{analytics.LogRecorder{}, analytics.MetricsRecorder{Metrics: m}}
	if s.AnalyticsEndpoint != "" {
		a.forwarder = analytics.NewHTTPRecorder(s.AnalyticsEndpoint, &http.Client{Timeout: s.HTTPTimeout()}, s.AnalyticsWorkers)
		recorders = append(recorders, a.forwarder)
	}
	a.recorder = recorders

	a.resolver = launch.NewResolver(registry, launch.Options{
		Timings:  launch.Timings{Scheme: s.SchemeFallback(), Intent: s.IntentFallback()},
		Recorder: a.recorder,
		Debug:    s.Debug,
	})
	return a, nil
}

// Close flushes the analytics forwarder.
func (a *app) Close() {
	if a.forwarder != nil {
		a.forwarder.Close()
	}
}
