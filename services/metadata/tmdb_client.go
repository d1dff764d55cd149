package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"streamscout/internal/metrics"
	"streamscout/models"
)

const (
	tmdbImageBaseURL  = "https://image.tmdb.org/t/p"
	tmdbPosterSize    = "w92"
	tmdbLogoSize      = "w92"
	maxTMDBBodyBytes  = 4 << 20
	defaultTMDBBase   = "https://api.themoviedb.org/3"
	defaultRetryDelay = 250 * time.Millisecond
)

// ClientConfig configures the TMDB client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	Language   string
	HTTPClient *http.Client
	Attempts   uint
	RPS        int
	RetryDelay time.Duration
	Metrics    *metrics.Metrics
}

// Client talks to the TMDB v3 REST API. Transport failures, 429 and 5xx are
// retried here; callers never retry.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpc      *http.Client
	limiter    *rate.Limiter
	attempts   uint
	retryDelay time.Duration
	metrics    *metrics.Metrics
}

// NewClient constructs a Client.
func NewClient(cfg ClientConfig) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultTMDBBase
	}
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}
	limit := rate.Inf
	burst := 1
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
		burst = cfg.RPS
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    base,
		language:   normalizeLanguage(cfg.Language),
		httpc:      httpc,
		limiter:    rate.NewLimiter(limit, burst),
		attempts:   attempts,
		retryDelay: delay,
		metrics:    cfg.Metrics,
	}
}

// normalizeLanguage converts "en", "en_US" and "pt-br" into TMDB's "xx-YY" form.
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return "en-US"
	}
	parts := strings.SplitN(lang, "-", 2)
	primary := strings.ToLower(parts[0])
	if len(parts) == 2 && parts[1] != "" {
		return primary + "-" + strings.ToUpper(parts[1])
	}
	if primary == "en" {
		return "en-US"
	}
	return primary + "-" + strings.ToUpper(primary)
}

// WatchProvidersResponse is the raw /watch/providers payload: region code to
// a region object holding per-kind arrays. Region objects stay raw so the
// normalizer can tolerate schema drift.
type WatchProvidersResponse struct {
	ID      json.RawMessage            `json:"id"`
	Results map[string]json.RawMessage `json:"results"`
}

// Region returns the raw region object for code, matching case-insensitively.
func (r *WatchProvidersResponse) Region(code string) (json.RawMessage, bool) {
	if r == nil || r.Results == nil {
		return nil, false
	}
	if raw, ok := r.Results[code]; ok {
		return raw, true
	}
	for k, raw := range r.Results {
		if strings.EqualFold(k, code) {
			return raw, true
		}
	}
	return nil, false
}

// FetchWatchProviders calls GET /{type}/{id}/watch/providers. TMDB returns all
// regions at once; region is only used for logging.
func (c *Client) FetchWatchProviders(ctx context.Context, id, region string, contentType models.ContentType) (*WatchProvidersResponse, error) {
	path := fmt.Sprintf("/%s/%s/watch/providers", contentType, url.PathEscape(id))
	var resp WatchProvidersResponse
	if err := c.getJSON(ctx, "watch_providers", path, nil, &resp); err != nil {
		log.Printf("[tmdb] watch providers fetch failed type=%s id=%s region=%s err=%v", contentType, id, region, err)
		return nil, err
	}
	return &resp, nil
}

type tmdbSearchItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	Popularity   float64 `json:"popularity"`
}

type tmdbSearchResponse struct {
	Page    int              `json:"page"`
	Results []tmdbSearchItem `json:"results"`
}

// Search calls GET /search/{type}.
func (c *Client) Search(ctx context.Context, query string, contentType models.ContentType, region string) ([]tmdbSearchItem, error) {
	params := url.Values{}
	params.Set("query", query)
	if region != "" {
		params.Set("region", region)
	}
	var resp tmdbSearchResponse
	if err := c.getJSON(ctx, "search", "/search/"+string(contentType), params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Details calls GET /{type}/{id} with credits, videos and images appended and
// returns the body untouched.
func (c *Client) Details(ctx context.Context, id string, contentType models.ContentType) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos,images")
	var raw json.RawMessage
	if err := c.getJSON(ctx, "details", fmt.Sprintf("/%s/%s", contentType, url.PathEscape(id)), params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// isBearerToken reports whether the key is a v4 read access token (a JWT)
// rather than a v3 api_key.
func isBearerToken(key string) bool {
	return strings.HasPrefix(key, "eyJ") && strings.Count(key, ".") == 2
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}
	if !isBearerToken(c.apiKey) {
		params.Set("api_key", c.apiKey)
	}
	target := c.baseURL + path + "?" + params.Encode()

	started := time.Now()
	defer c.metrics.ObserveUpstream(endpoint, started)

	return retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")
			if isBearerToken(c.apiKey) {
				req.Header.Set("Authorization", "Bearer "+c.apiKey)
			}

			resp, err := c.httpc.Do(req)
			if err != nil {
				return fmt.Errorf("tmdb %s: %w", endpoint, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTMDBBodyBytes))
				statusErr := &HTTPStatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
				if statusErr.Temporary() {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			body, err := io.ReadAll(io.LimitReader(resp.Body, maxTMDBBodyBytes))
			if err != nil {
				return fmt.Errorf("tmdb %s: read body: %w", endpoint, err)
			}
			if err := json.Unmarshal(body, v); err != nil {
				return retry.Unrecoverable(fmt.Errorf("tmdb %s: decode body: %w", endpoint, err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func buildImageURL(path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return tmdbImageBaseURL + "/" + size + path
}

// LogoURL builds the small provider logo URL for a TMDB logo_path.
func LogoURL(path string) string {
	return buildImageURL(path, tmdbLogoSize)
}

// parseYear returns the first four-digit year, or "" when neither date has one.
func parseYear(primary, secondary string) string {
	for _, candidate := range []string{primary, secondary} {
		if len(candidate) >= 4 {
			if _, err := strconv.Atoi(candidate[:4]); err == nil {
				return candidate[:4]
			}
		}
	}
	return ""
}
