package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"streamscout/internal/filecache"
	"streamscout/models"
)

const autocompleteLimit = 10

// ErrEmptyQuery is returned when an autocomplete query is blank.
var ErrEmptyQuery = errors.New("missing query parameter")

// Service wraps the TMDB client with caching and result shaping.
type Service struct {
	tmdb  *Client
	cache *filecache.Cache
}

// NewService builds a Service. cache may be nil to disable caching.
func NewService(client *Client, cache *filecache.Cache) *Service {
	return &Service{tmdb: client, cache: cache}
}

// Autocomplete searches movies and TV shows concurrently and returns at most
// ten poster-bearing results, exact title matches first, then by popularity.
func (s *Service) Autocomplete(ctx context.Context, query, region string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	region = strings.ToUpper(strings.TrimSpace(region))

	regionKey := region
	if regionKey == "" {
		regionKey = "all"
	}
	cacheKey := filecache.Key("autocomplete", regionKey, strings.ToLower(query))
	if s.cache != nil {
		var cached []models.SearchResult
		if ok, _ := s.cache.Get(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	var movies, shows []tmdbSearchItem
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.tmdb.Search(ctx, query, models.ContentTypeMovie, region)
		movies = items
		return err
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.tmdb.Search(ctx, query, models.ContentTypeTV, region)
		shows = items
		return err
	})
	if err := p.Wait(); err != nil {
		log.Printf("[metadata] autocomplete failed query=%q region=%s err=%v", query, regionKey, err)
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	results := rankSearchResults(query, movies, shows)
	if s.cache != nil {
		if err := s.cache.Set(cacheKey, results); err != nil {
			log.Printf("[metadata] autocomplete cache write failed: %v", err)
		}
	}
	return results, nil
}

func rankSearchResults(query string, movies, shows []tmdbSearchItem) []models.SearchResult {
	combined := make([]models.SearchResult, 0, len(movies)+len(shows))
	for _, item := range movies {
		combined = append(combined, models.SearchResult{
			ID:         item.ID,
			Title:      item.Title,
			Year:       parseYear(item.ReleaseDate, ""),
			Type:       models.ContentTypeMovie,
			Poster:     buildImageURL(item.PosterPath, tmdbPosterSize),
			Popularity: item.Popularity,
		})
	}
	for _, item := range shows {
		combined = append(combined, models.SearchResult{
			ID:         item.ID,
			Title:      item.Name,
			Year:       parseYear(item.FirstAirDate, ""),
			Type:       models.ContentTypeTV,
			Poster:     buildImageURL(item.PosterPath, tmdbPosterSize),
			Popularity: item.Popularity,
		})
	}

	lowerQ := strings.ToLower(strings.TrimSpace(query))
	exact := func(r models.SearchResult) bool {
		return strings.ToLower(strings.TrimSpace(r.Title)) == lowerQ
	}
	sort.SliceStable(combined, func(i, j int) bool {
		ei, ej := exact(combined[i]), exact(combined[j])
		if ei != ej {
			return ei
		}
		return combined[i].Popularity > combined[j].Popularity
	})

	results := make([]models.SearchResult, 0, autocompleteLimit)
	for _, r := range combined {
		if r.Poster == "" {
			continue
		}
		results = append(results, r)
		if len(results) == autocompleteLimit {
			break
		}
	}
	return results
}

// Details returns the raw TMDB details document for a title.
func (s *Service) Details(ctx context.Context, id string, contentType models.ContentType) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("missing title id")
	}
	raw, err := s.tmdb.Details(ctx, id, contentType)
	if err != nil {
		log.Printf("[metadata] details fetch failed type=%s id=%s err=%v", contentType, id, err)
		return nil, err
	}
	return raw, nil
}
