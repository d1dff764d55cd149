package availability

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"streamscout/config"
	"streamscout/internal/metrics"
	"streamscout/models"
)

func normalizeRegion(t *testing.T, n *Normalizer, raw string) ([]models.Offer, string) {
	t.Helper()
	groups, link, err := SplitRegion(json.RawMessage(raw))
	require.NoError(t, err)
	return n.Normalize(groups), link
}

func TestNormalizeCountsEveryDistinctRecord(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{
		"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}, {"provider_id": 337, "provider_name": "Disney Plus"}],
		"rent": [{"provider_id": 2, "provider_name": "Apple TV"}, {"provider_id": 3, "provider_name": "Google Play Movies"}],
		"buy": [{"provider_id": 2, "provider_name": "Apple TV"}],
		"free": [{"provider_id": 73, "provider_name": "Tubi TV"}]
	}`)

	require.Len(t, offers, 6)
	require.Equal(t, models.OfferKindStream, offers[0].Kind)
	require.Equal(t, "Netflix", offers[0].ProviderDisplayName)
	require.Equal(t, "Disney+", offers[1].ProviderDisplayName)
	require.Equal(t, models.OfferKindRent, offers[2].Kind)
	require.Equal(t, models.OfferKindBuy, offers[4].Kind)
	require.Equal(t, "Tubi", offers[5].ProviderDisplayName)
}

func TestNormalizeKeepsUpstreamBucketOrder(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, link := normalizeRegion(t, n, `{
		"link": "https://www.themoviedb.org/movie/550-fight-club/watch?locale=US",
		"buy": [{"provider_id": 10, "provider_name": "Amazon Video"}],
		"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}]
	}`)

	require.Len(t, offers, 2)
	require.Equal(t, models.OfferKindBuy, offers[0].Kind)
	require.Equal(t, models.OfferKindStream, offers[1].Kind)
	require.Equal(t, "https://www.themoviedb.org/movie/550-fight-club/watch?locale=US", link)
}

func TestDuplicatePreservesPrice(t *testing.T) {
	raw := `{"rent": [
		{"id": "itu", "name": "iTunes"},
		{"id": "itu", "name": "iTunes", "price": "$3.99", "url": "https://tv.apple.com/movie/123"}
	]}`

	for _, policy := range []config.DedupePolicy{config.DedupeMergeFirst, config.DedupeMergeLast} {
		t.Run(string(policy), func(t *testing.T) {
			offers, _ := normalizeRegion(t, NewNormalizer(policy, nil, false), raw)
			require.Len(t, offers, 1)
			require.Equal(t, "$3.99", offers[0].Price)
			require.Equal(t, "https://tv.apple.com/movie/123", offers[0].DeepLinkURL)
		})
	}
}

func TestDedupePolicyPrecedence(t *testing.T) {
	raw := `{"buy": [
		{"id": "vdu", "name": "Vudu", "price": "$9.99"},
		{"id": "vdu", "name": "Vudu", "price": 12.5}
	]}`

	first, _ := normalizeRegion(t, NewNormalizer(config.DedupeMergeFirst, nil, false), raw)
	require.Len(t, first, 1)
	require.Equal(t, "$9.99", first[0].Price)

	last, _ := normalizeRegion(t, NewNormalizer(config.DedupeMergeLast, nil, false), raw)
	require.Len(t, last, 1)
	require.Equal(t, "12.5", last[0].Price)
}

func TestSameProviderDifferentKindsAreDistinct(t *testing.T) {
	n := NewNormalizer("", nil, false)
	offers, _ := normalizeRegion(t, n, `{
		"rent": [{"provider_id": 2, "provider_name": "Apple TV"}],
		"buy": [{"provider_id": 2, "provider_name": "Apple TV"}]
	}`)
	require.Len(t, offers, 2)
}

func TestSharedDisplayNameWithDifferentKeys(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [
		{"provider_id": 9, "provider_name": "Amazon Prime Video"},
		{"provider_id": 119, "provider_name": "Amazon Prime Video"}
	]}`)
	require.Len(t, offers, 2)
	require.Equal(t, offers[0].ProviderDisplayName, offers[1].ProviderDisplayName)
}

func TestUnknownKeysPassNameThrough(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [{"provider_id": 99999, "provider_name": "Kanopy"}]}`)
	require.Len(t, offers, 1)
	require.Equal(t, "99999", offers[0].ProviderKey)
	require.Equal(t, "Kanopy", offers[0].ProviderDisplayName)
}

func TestRecordsWithoutKeyOrNameAreSkipped(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [
		{"logo_path": "/x.png"},
		"not-an-object",
		{"name": "Kanopy"}
	]}`)
	require.Len(t, offers, 1)
	require.Equal(t, "kanopy", offers[0].ProviderKey)
	require.Equal(t, "Kanopy", offers[0].ProviderDisplayName)
}

func TestNameOnlyRecordsKeepUpstreamNames(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [
		{"name": "App"},
		{"name": "Fun"},
		{"provider_name": "HBO"}
	]}`)
	require.Len(t, offers, 3)
	require.Equal(t, "App", offers[0].ProviderDisplayName)
	require.Equal(t, "Fun", offers[1].ProviderDisplayName)
	require.Equal(t, "HBO", offers[2].ProviderDisplayName)
	require.Equal(t, "hbo", offers[2].ProviderKey)

	keyed, _ := normalizeRegion(t, n, `{"flatrate": [{"platform": "hbo", "name": "HBO"}]}`)
	require.Len(t, keyed, 1)
	require.Equal(t, "HBO Max", keyed[0].ProviderDisplayName)
}

func TestUnknownBucketsAreKeptAndCounted(t *testing.T) {
	m := metrics.New()
	n := NewNormalizer(config.DedupeMergeFirst, m, false)
	offers, _ := normalizeRegion(t, n, `{
		"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}],
		"cinema": [{"provider_id": 500, "provider_name": "Local Cinema"}],
		"ads": [{"provider_id": 300, "provider_name": "Pluto TV"}]
	}`)

	require.Len(t, offers, 3)
	require.Equal(t, models.OfferKindUnknown, offers[1].Kind)
	require.Equal(t, models.OfferKindFree, offers[2].Kind)
	require.Equal(t, 1.0, testutil.ToFloat64(m.UnknownOfferKinds.WithLabelValues("cinema")))
}

func TestDeepLinksAreCleaned(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, true)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [
		{"provider_id": 8, "provider_name": "Netflix", "link": "https://www.netflix.com/search?q=fight club"},
		{"provider_id": 15, "provider_name": "Hulu", "link": "/relative/path"}
	]}`)
	require.Len(t, offers, 2)
	require.Equal(t, "https://www.netflix.com/search?q=fight%20club", offers[0].DeepLinkURL)
	require.Empty(t, offers[1].DeepLinkURL)
}

func TestLogoPathBecomesImageURL(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers, _ := normalizeRegion(t, n, `{"flatrate": [{"provider_id": 8, "provider_name": "Netflix", "logo_path": "/netflix.jpg"}]}`)
	require.Equal(t, "https://image.tmdb.org/t/p/w92/netflix.jpg", offers[0].LogoURL)
}

func TestMalformedGroupsYieldNoOffers(t *testing.T) {
	n := NewNormalizer(config.DedupeMergeFirst, nil, false)
	offers := n.Normalize([]RawGroup{{Bucket: "flatrate", Records: json.RawMessage(`{"oops": true}`)}})
	require.NotNil(t, offers)
	require.Empty(t, offers)
}

func TestSplitRegionRejectsNonObjects(t *testing.T) {
	_, _, err := SplitRegion(json.RawMessage(`["flatrate"]`))
	require.Error(t, err)
	_, _, err = SplitRegion(json.RawMessage(`{"flatrate": [`))
	require.Error(t, err)
}
