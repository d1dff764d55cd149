package availability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/cases"

	"streamscout/config"
	"streamscout/internal/metrics"
	"streamscout/models"
	"streamscout/services/metadata"
	"streamscout/utils"
)

// watchPageField is the per-region link to the aggregate watch page, not an offer bucket.
const watchPageField = "link"

var bucketKinds = map[string]models.OfferKind{
	"flatrate": models.OfferKindStream,
	"stream":   models.OfferKindStream,
	"rent":     models.OfferKindRent,
	"buy":      models.OfferKindBuy,
	"free":     models.OfferKindFree,
	"ads":      models.OfferKindFree,
}

// RawGroup is one upstream array of provider records tagged with its bucket name.
type RawGroup struct {
	Bucket  string
	Records json.RawMessage
}

// Normalizer turns upstream provider groups into a deduplicated offer list.
type Normalizer struct {
	policy  config.DedupePolicy
	metrics *metrics.Metrics
	debug   bool
}

// NewNormalizer builds a Normalizer. An unknown policy falls back to merge-first.
func NewNormalizer(policy config.DedupePolicy, m *metrics.Metrics, debug bool) *Normalizer {
	if policy != config.DedupeMergeLast {
		policy = config.DedupeMergeFirst
	}
	return &Normalizer{policy: policy, metrics: m, debug: debug}
}

// SplitRegion breaks a region object into its bucket arrays in document order
// and returns the region's watch-page link. Non-array members other than the
// link are ignored.
func SplitRegion(raw json.RawMessage) ([]RawGroup, string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, "", fmt.Errorf("region object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, "", errors.New("region object: not a JSON object")
	}

	var (
		groups []RawGroup
		link   string
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, "", fmt.Errorf("region object: %w", err)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, "", fmt.Errorf("region object %q: %w", key, err)
		}
		value = bytes.TrimSpace(value)
		switch {
		case key == watchPageField:
			_ = json.Unmarshal(value, &link)
		case len(value) > 0 && value[0] == '[':
			groups = append(groups, RawGroup{Bucket: key, Records: value})
		}
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("region object: %w", err)
	}
	return groups, link, nil
}

type dedupeKey struct {
	provider string
	kind     models.OfferKind
}

// Normalize maps every record to an Offer in input order and collapses
// duplicate (provider, kind) pairs according to the dedupe policy. It never
// fails: malformed groups and records are skipped with a logged reason.
func (n *Normalizer) Normalize(groups []RawGroup) []models.Offer {
	offers := make([]models.Offer, 0)
	seen := make(map[dedupeKey]int)

	for _, group := range groups {
		kind, known := bucketKinds[strings.ToLower(group.Bucket)]
		if !known {
			kind = models.OfferKindUnknown
		}

		var records []json.RawMessage
		if err := json.Unmarshal(group.Records, &records); err != nil {
			log.Printf("[availability] skipping bucket %q: not an array of records: %v", group.Bucket, err)
			continue
		}
		if !known && len(records) > 0 {
			log.Printf("[availability] bucket %q has no known offer kind; %d record(s) kept as %s", group.Bucket, len(records), kind)
			n.metrics.ObserveUnknownKind(group.Bucket)
		}

		for i, raw := range records {
			offer, err := n.parseRecord(raw, kind)
			if err != nil {
				log.Printf("[availability] skipping record %d in bucket %q: %v", i, group.Bucket, err)
				continue
			}
			k := dedupeKey{provider: offer.ProviderKey, kind: offer.Kind}
			if idx, dup := seen[k]; dup {
				offers[idx] = n.merge(offers[idx], offer)
				continue
			}
			seen[k] = len(offers)
			offers = append(offers, offer)
		}
	}
	return offers
}

// merge keeps the existing offer's position. Under merge-first each field
// keeps the first non-empty value; under merge-last later non-empty values win.
func (n *Normalizer) merge(existing, incoming models.Offer) models.Offer {
	pick := func(a, b string) string {
		if n.policy == config.DedupeMergeLast {
			if b != "" {
				return b
			}
			return a
		}
		if a != "" {
			return a
		}
		return b
	}
	existing.ProviderDisplayName = pick(existing.ProviderDisplayName, incoming.ProviderDisplayName)
	existing.Price = pick(existing.Price, incoming.Price)
	existing.DeepLinkURL = pick(existing.DeepLinkURL, incoming.DeepLinkURL)
	existing.LogoURL = pick(existing.LogoURL, incoming.LogoURL)
	return existing
}

func (n *Normalizer) parseRecord(raw json.RawMessage, kind models.OfferKind) (models.Offer, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return models.Offer{}, fmt.Errorf("not an object: %w", err)
	}

	key := scalarField(fields, "provider_id", "id", "platform")
	name := scalarField(fields, "provider_name", "name", "platformName")
	if key == "" && name == "" {
		return models.Offer{}, errors.New("record has neither provider id nor name")
	}
	display := name
	if key == "" {
		// Synthesized keys only dedupe; they never pick a canonical name.
		key = cases.Fold().String(name)
	} else {
		if name == "" {
			name = key
		}
		display = displayNameFor(key, name)
	}

	offer := models.Offer{
		ProviderKey:         key,
		ProviderDisplayName: display,
		Kind:                kind,
		Price:               scalarField(fields, "price", "retail_price"),
	}
	if link := scalarField(fields, "link", "url", "deep_link", "deeplink"); link != "" {
		cleaned, err := utils.NormalizeWebURL(link)
		if err != nil {
			if n.debug {
				log.Printf("[availability] debug: dropping deep link for %s: %v", key, err)
			}
		} else {
			offer.DeepLinkURL = cleaned
		}
	}
	if logo := scalarField(fields, "logo_path"); logo != "" {
		offer.LogoURL = metadata.LogoURL(logo)
	}
	return offer, nil
}

// scalarField returns the first of keys holding a non-empty string or number.
func scalarField(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		var num json.Number
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&num); err == nil && num.String() != "" {
			return num.String()
		}
	}
	return ""
}

func cleanLink(link string) string {
	if link == "" {
		return ""
	}
	cleaned, err := utils.NormalizeWebURL(link)
	if err != nil {
		return ""
	}
	return cleaned
}
