package availability

import "streamscout/models"

// demoOffers back the "demo" fallback policy so a UI can be exercised
// without a working upstream.
var demoOffers = []models.Offer{
	{
		ProviderKey:         "8",
		ProviderDisplayName: "Netflix",
		Kind:                models.OfferKindStream,
		LogoURL:             "https://image.tmdb.org/t/p/w92/pbpMk2JmcoNnQwx5JGpXngfoWtp.jpg",
	},
	{
		ProviderKey:         "73",
		ProviderDisplayName: "Tubi",
		Kind:                models.OfferKindFree,
	},
	{
		ProviderKey:         "2",
		ProviderDisplayName: "Apple TV",
		Kind:                models.OfferKindRent,
		Price:               "$3.99",
	},
	{
		ProviderKey:         "10",
		ProviderDisplayName: "Amazon Video",
		Kind:                models.OfferKindBuy,
		Price:               "$14.99",
	},
}

func demoAvailability() models.AvailabilityResult {
	return models.NewAvailabilityResult(demoOffers, "")
}
