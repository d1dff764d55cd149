package platforms

// Row describes how to reach one provider. Templates use {id} for the
// escaped content id.
type Row struct {
	Name     string
	Aliases  []string
	Priority int
	HomeURL  string

	IOSScheme     string // bare launch, e.g. "nflx://"
	IOSDeepLink   string // optional richer form, e.g. "nflx://www.netflix.com/title/{id}"
	AndroidTarget string // intent:// URL or plain URL; empty when there is no Android app
	// AndroidPrefersContentURL launches the content URL itself on Android
	// (app links) and falls back to AndroidTarget.
	AndroidPrefersContentURL bool
}

// DefaultRows are the providers with real app deep-link support.
var DefaultRows = []Row{
	{
		Name:                     "Netflix",
		Priority:                 1,
		HomeURL:                  "https://www.netflix.com",
		IOSScheme:                "nflx://",
		IOSDeepLink:              "nflx://www.netflix.com/title/{id}",
		AndroidTarget:            "https://www.netflix.com",
		AndroidPrefersContentURL: true,
	},
	{
		Name:          "Prime Video",
		Aliases:       []string{"Amazon Prime", "Amazon Prime Video"},
		Priority:      2,
		HomeURL:       "https://www.amazon.com/Prime-Video",
		IOSScheme:     "aiv://",
		IOSDeepLink:   "aiv://aiv/play?asin={id}",
		AndroidTarget: "intent://www.amazon.com/Prime-Video#Intent;package=com.amazon.avod.thirdpartyclient;end;",
	},
	{
		Name:          "Disney+",
		Aliases:       []string{"Disney Plus"},
		Priority:      3,
		HomeURL:       "https://www.disneyplus.com",
		IOSScheme:     "disneyplus://",
		IOSDeepLink:   "disneyplus://play/{id}",
		AndroidTarget: "intent://www.disneyplus.com#Intent;package=com.disney.disneyplus;end;",
	},
	{
		Name:          "HBO Max",
		Aliases:       []string{"Max"},
		Priority:      4,
		HomeURL:       "https://www.max.com",
		IOSScheme:     "hbomax://",
		IOSDeepLink:   "hbomax://feature/{id}",
		AndroidTarget: "intent://www.max.com#Intent;package=com.hbo.hbonow;end;",
	},
	{
		Name:          "Hulu",
		Priority:      5,
		HomeURL:       "https://www.hulu.com",
		IOSScheme:     "hulu://",
		IOSDeepLink:   "hulu://play/{id}",
		AndroidTarget: "intent://www.hulu.com#Intent;package=com.hulu.plus;end;",
	},
	{
		Name:        "Apple TV+",
		Aliases:     []string{"Apple TV Plus"},
		Priority:    6,
		HomeURL:     "https://tv.apple.com",
		IOSScheme:   "com.apple.tv://",
		IOSDeepLink: "com.apple.tv://play/{id}",
	},
	{
		Name:          "Paramount+",
		Aliases:       []string{"Paramount Plus"},
		Priority:      7,
		HomeURL:       "https://www.paramountplus.com",
		IOSScheme:     "cbsaa://",
		IOSDeepLink:   "cbsaa://play/{id}",
		AndroidTarget: "intent://www.paramountplus.com#Intent;package=com.cbs.app;end;",
	},
	{
		Name:          "Peacock",
		Priority:      8,
		HomeURL:       "https://www.peacocktv.com",
		IOSScheme:     "peacocktv://",
		IOSDeepLink:   "peacocktv://play/{id}",
		AndroidTarget: "intent://www.peacocktv.com#Intent;package=com.peacocktv.peacockandroid;end;",
	},
	{
		Name:          "YouTube",
		Priority:      9,
		HomeURL:       "https://www.youtube.com",
		IOSScheme:     "youtube://",
		IOSDeepLink:   "youtube://watch?v={id}",
		AndroidTarget: "intent://www.youtube.com#Intent;package=com.google.android.youtube;end;",
	},
	{
		Name:          "Crunchyroll",
		Priority:      10,
		HomeURL:       "https://www.crunchyroll.com",
		IOSScheme:     "crunchyroll://",
		IOSDeepLink:   "crunchyroll://watch/{id}",
		AndroidTarget: "intent://www.crunchyroll.com#Intent;package=com.crunchyroll.crunchyroid;end;",
	},
	{
		Name:          "Tubi",
		Aliases:       []string{"Tubi TV"},
		Priority:      11,
		HomeURL:       "https://tubitv.com",
		IOSScheme:     "tubitv://",
		AndroidTarget: "intent://tubitv.com#Intent;package=com.tubitv;end;",
	},
	{
		Name:          "Pluto TV",
		Priority:      12,
		HomeURL:       "https://pluto.tv",
		IOSScheme:     "plutotv://",
		AndroidTarget: "intent://pluto.tv#Intent;package=tv.pluto.android;end;",
	},
	{
		Name:          "Vudu",
		Aliases:       []string{"Fandango at Home"},
		Priority:      13,
		HomeURL:       "https://www.vudu.com",
		IOSScheme:     "vudu://",
		AndroidTarget: "intent://www.vudu.com#Intent;package=air.com.vudu.air.DownloaderTablet;end;",
	},
	{
		Name:          "MUBI",
		Priority:      14,
		HomeURL:       "https://mubi.com",
		IOSScheme:     "mubi://",
		AndroidTarget: "intent://mubi.com#Intent;package=com.mubi;end;",
	},
}

// DefaultColors is the branding token per provider display name. It covers
// far more providers than DefaultRows: branding does not imply app support.
var DefaultColors = map[string]string{
	"Netflix":            "red-600",
	"Prime Video":        "blue-600",
	"Hulu":               "green-600",
	"HBO Max":            "purple-600",
	"Max":                "purple-600",
	"Disney+":            "blue-500",
	"Apple TV+":          "gray-800",
	"Paramount+":         "blue-700",
	"Peacock":            "blue-400",
	"Crunchyroll":        "orange-500",
	"Funimation":         "purple-500",
	"Showtime":           "red-700",
	"Starz":              "purple-700",
	"Amazon Prime":       "blue-600",
	"Amazon Video":       "blue-600",
	"iTunes":             "gray-700",
	"Apple TV":           "gray-700",
	"Google Play":        "green-500",
	"Google Play Movies": "green-500",
	"Vudu":               "blue-500",
	"Microsoft Store":    "green-600",
	"YouTube":            "red-500",
	"HIDIVE":             "purple-600",
	"VRV":                "orange-600",
	"MUBI":               "red-600",
	"Shudder":            "red-800",
	"Acorn TV":           "green-700",
	"BritBox":            "blue-800",
	"Discovery+":         "yellow-600",
	"Criterion Channel":  "gray-600",
	"IndieFlix":          "purple-500",
	"Tubi":               "blue-500",
	"Pluto TV":           "purple-600",
	"Roku Channel":       "purple-700",
	"Xumo":               "blue-600",
	"CW Seed":            "purple-500",
	"CW TV":              "purple-600",
	"ABC":                "blue-600",
	"NBC":                "blue-700",
	"CBS":                "blue-800",
	"FOX":                "red-600",
	"PBS":                "blue-600",
	"TBS":                "orange-500",
	"TNT":                "blue-600",
	"USA Network":        "blue-700",
	"Syfy":               "blue-600",
	"AMC":                "red-600",
	"FX":                 "purple-600",
	"FXX":                "purple-700",
	"FXM":                "purple-800",
	"TLC":                "pink-500",
	"HGTV":               "green-600",
	"Food Network":       "orange-500",
	"Travel Channel":     "blue-500",
	"History":            "gray-600",
	"A&E":                "red-600",
	"Lifetime":           "pink-500",
	"HLN":                "red-600",
	"CNN":                "red-600",
	"MSNBC":              "blue-600",
	"Fox News":           "red-600",
	"CNBC":               "blue-600",
	"Bloomberg":          "orange-500",
	"ESPN":               "red-600",
	"ESPN2":              "red-700",
	"ESPN+":              "red-800",
	"FS1":                "blue-600",
	"FS2":                "blue-700",
	"NBC Sports":         "blue-600",
	"CBS Sports":         "blue-600",
	"Golf Channel":       "green-600",
	"Tennis Channel":     "green-500",
	"NHL Network":        "gray-600",
	"MLB Network":        "blue-600",
	"NBA TV":             "blue-600",
	"NFL Network":        "red-600",
	"NFL RedZone":        "red-700",
	"NCAA Network":       "blue-600",
	"SEC Network":        "blue-600",
	"Big Ten Network":    "blue-600",
	"Pac-12 Network":     "blue-600",
	"ACC Network":        "blue-600",
	"Longhorn Network":   "orange-600",
}
