package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType distinguishes movies from TV series when querying upstream.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeTV    ContentType = "tv"
)

// ParseContentType accepts the handful of spellings clients send.
func ParseContentType(raw string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie", "movies", "film":
		return ContentTypeMovie, nil
	case "tv", "series", "show", "shows":
		return ContentTypeTV, nil
	default:
		return "", fmt.Errorf("unsupported content type %q (valid: movie, tv)", raw)
	}
}

// OfferKind is the monetization bucket of an offer.
type OfferKind string

const (
	OfferKindStream  OfferKind = "stream"
	OfferKindRent    OfferKind = "rent"
	OfferKindBuy     OfferKind = "buy"
	OfferKindFree    OfferKind = "free"
	OfferKindUnknown OfferKind = "unknown"
)

// OfferKinds lists the known kinds in display order.
var OfferKinds = []OfferKind{OfferKindStream, OfferKindRent, OfferKindBuy, OfferKindFree}

// Offer is one way to watch a title in a region through a specific provider.
type Offer struct {
	ProviderKey         string    `json:"providerKey"`
	ProviderDisplayName string    `json:"providerDisplayName"`
	Kind                OfferKind `json:"kind"`
	Price               string    `json:"price,omitempty"`       // empty means "check on the provider's site"
	DeepLinkURL         string    `json:"deepLinkUrl,omitempty"` // absolute URL into the provider's web catalog
	LogoURL             string    `json:"logoUrl,omitempty"`
}

// AvailabilityQuery identifies one availability lookup.
type AvailabilityQuery struct {
	TitleID     string      `json:"titleId"`
	Region      string      `json:"region"`
	ContentType ContentType `json:"contentType"`
}

func (q AvailabilityQuery) String() string {
	return fmt.Sprintf("%s/%s@%s", q.ContentType, q.TitleID, q.Region)
}

// AvailabilityResult is the immutable aggregate for one (title, region, type).
// The per-kind flags are always computed from the offers.
type AvailabilityResult struct {
	offers       []Offer
	watchPageURL string
}

// NewAvailabilityResult copies offers so later changes by the caller are not observed.
func NewAvailabilityResult(offers []Offer, watchPageURL string) AvailabilityResult {
	cloned := make([]Offer, len(offers))
	copy(cloned, offers)
	return AvailabilityResult{offers: cloned, watchPageURL: watchPageURL}
}

// EmptyAvailability is the safe "no known availability" result.
func EmptyAvailability() AvailabilityResult {
	return AvailabilityResult{offers: []Offer{}}
}

// Offers returns a copy of the offers in upstream order.
func (r AvailabilityResult) Offers() []Offer {
	cloned := make([]Offer, len(r.offers))
	copy(cloned, r.offers)
	return cloned
}

func (r AvailabilityResult) Len() int { return len(r.offers) }

func (r AvailabilityResult) WatchPageURL() string { return r.watchPageURL }

// Has reports whether at least one offer of the given kind exists.
func (r AvailabilityResult) Has(kind OfferKind) bool {
	for _, o := range r.offers {
		if o.Kind == kind {
			return true
		}
	}
	return false
}

func (r AvailabilityResult) HasStreaming() bool { return r.Has(OfferKindStream) }
func (r AvailabilityResult) HasRent() bool      { return r.Has(OfferKindRent) }
func (r AvailabilityResult) HasBuy() bool       { return r.Has(OfferKindBuy) }
func (r AvailabilityResult) HasFree() bool      { return r.Has(OfferKindFree) }

// Group returns the offers of one kind, preserving relative order.
func (r AvailabilityResult) Group(kind OfferKind) []Offer {
	var out []Offer
	for _, o := range r.offers {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

type availabilityJSON struct {
	Offers       []Offer `json:"offers"`
	HasStreaming bool    `json:"hasStreaming"`
	HasRent      bool    `json:"hasRent"`
	HasBuy       bool    `json:"hasBuy"`
	HasFree      bool    `json:"hasFree"`
	WatchPageURL string  `json:"watchPageUrl,omitempty"`
}

func (r AvailabilityResult) MarshalJSON() ([]byte, error) {
	offers := r.offers
	if offers == nil {
		offers = []Offer{}
	}
	return json.Marshal(availabilityJSON{
		Offers:       offers,
		HasStreaming: r.HasStreaming(),
		HasRent:      r.HasRent(),
		HasBuy:       r.HasBuy(),
		HasFree:      r.HasFree(),
		WatchPageURL: r.watchPageURL,
	})
}

// UnmarshalJSON ignores the serialized flags and recomputes them from offers.
func (r *AvailabilityResult) UnmarshalJSON(data []byte) error {
	var raw availabilityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = NewAvailabilityResult(raw.Offers, raw.WatchPageURL)
	return nil
}
