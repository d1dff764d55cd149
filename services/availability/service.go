package availability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/text/language"

	"streamscout/config"
	"streamscout/internal/filecache"
	"streamscout/internal/metrics"
	"streamscout/models"
	"streamscout/services/metadata"
)

var (
	// ErrUpstreamUnavailable marks a lookup answered with fallback data because
	// the watch-provider fetch failed (transport, non-2xx or malformed body).
	ErrUpstreamUnavailable = errors.New("upstream availability unavailable")
	// ErrInvalidQuery is returned for a missing id, bad type or bad region.
	ErrInvalidQuery = errors.New("invalid availability query")
)

// WatchProviderFetcher is the slice of the metadata client the aggregator needs.
type WatchProviderFetcher interface {
	FetchWatchProviders(ctx context.Context, id, region string, contentType models.ContentType) (*metadata.WatchProvidersResponse, error)
}

// Options configures a Service.
type Options struct {
	Cache          *filecache.Cache
	FallbackPolicy config.FallbackPolicy
	DedupePolicy   config.DedupePolicy
	Metrics        *metrics.Metrics
	Debug          bool
}

// Service is the availability aggregator.
type Service struct {
	fetcher    WatchProviderFetcher
	normalizer *Normalizer
	cache      *filecache.Cache
	policy     config.FallbackPolicy
	metrics    *metrics.Metrics
}

// NewService builds an aggregator around fetcher.
func NewService(fetcher WatchProviderFetcher, opts Options) *Service {
	policy := opts.FallbackPolicy
	switch policy {
	case config.FallbackStale, config.FallbackDemo:
	default:
		policy = config.FallbackEmpty
	}
	return &Service{
		fetcher:    fetcher,
		normalizer: NewNormalizer(opts.DedupePolicy, opts.Metrics, opts.Debug),
		cache:      opts.Cache,
		policy:     policy,
		metrics:    opts.Metrics,
	}
}

// ParseQuery validates raw request parameters. The region must be an ISO 3166
// country code and is returned upper-cased.
func ParseQuery(titleID, region, contentType string) (models.AvailabilityQuery, error) {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: missing title id", ErrInvalidQuery)
	}
	if strings.ContainsAny(titleID, "/?# \t") {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: malformed title id %q", ErrInvalidQuery, titleID)
	}
	if strings.TrimSpace(contentType) == "" {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: missing content type", ErrInvalidQuery)
	}
	ct, err := models.ParseContentType(contentType)
	if err != nil {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: missing region", ErrInvalidQuery)
	}
	r, err := language.ParseRegion(region)
	if err != nil || len(region) != 2 || !r.IsCountry() {
		return models.AvailabilityQuery{}, fmt.Errorf("%w: unknown region %q", ErrInvalidQuery, region)
	}
	return models.AvailabilityQuery{TitleID: titleID, Region: strings.ToUpper(region), ContentType: ct}, nil
}

func cacheKey(q models.AvailabilityQuery) string {
	return filecache.Key("availability", string(q.ContentType), q.TitleID, q.Region)
}

// GetAvailability never fails: upstream problems yield the fallback result.
func (s *Service) GetAvailability(ctx context.Context, q models.AvailabilityQuery) models.AvailabilityResult {
	result, _ := s.Lookup(ctx, q)
	return result
}

// Lookup returns the availability for q. When the upstream fetch fails the
// returned result is the fallback chosen by policy and the error wraps
// ErrUpstreamUnavailable. The result is always safe to render.
func (s *Service) Lookup(ctx context.Context, q models.AvailabilityQuery) (models.AvailabilityResult, error) {
	if s.cache != nil {
		var cached models.AvailabilityResult
		if ok, _ := s.cache.Get(cacheKey(q), &cached); ok {
			s.metrics.ObserveAvailability("cache_hit")
			return cached, nil
		}
	}

	resp, err := s.fetcher.FetchWatchProviders(ctx, q.TitleID, q.Region, q.ContentType)
	if err != nil {
		return s.fallback(q, err)
	}

	raw, ok := resp.Region(q.Region)
	if !ok {
		log.Printf("[availability] no provider data for %s", q)
		result := models.EmptyAvailability()
		s.store(q, result)
		s.metrics.ObserveAvailability("ok")
		return result, nil
	}

	groups, link, err := SplitRegion(raw)
	if err != nil {
		return s.fallback(q, fmt.Errorf("malformed region payload: %w", err))
	}
	result := models.NewAvailabilityResult(s.normalizer.Normalize(groups), cleanLink(link))
	s.store(q, result)
	s.metrics.ObserveAvailability("ok")
	return result, nil
}

func (s *Service) store(q models.AvailabilityQuery, result models.AvailabilityResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(cacheKey(q), result); err != nil {
		log.Printf("[availability] cache write failed for %s: %v", q, err)
	}
}

func (s *Service) fallback(q models.AvailabilityQuery, cause error) (models.AvailabilityResult, error) {
	err := fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, q, cause)
	s.metrics.ObserveAvailability("upstream_unavailable")

	switch s.policy {
	case config.FallbackStale:
		if s.cache != nil {
			var stale models.AvailabilityResult
			if ok, _ := s.cache.GetStale(cacheKey(q), &stale); ok {
				log.Printf("[availability] serving stale result for %s: %v", q, cause)
				return stale, err
			}
		}
	case config.FallbackDemo:
		log.Printf("[availability] serving demo offers for %s: %v", q, cause)
		return demoAvailability(), err
	}
	log.Printf("[availability] serving empty result for %s: %v", q, cause)
	return models.EmptyAvailability(), err
}
