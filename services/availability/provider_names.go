package availability

import "strings"

// providerNames maps upstream provider identifiers to canonical display names.
// Short codes come from the JustWatch-style feed; numeric keys are TMDB
// provider ids for the services the platform registry knows how to launch.
var providerNames = map[string]string{
	"nfx":  "Netflix",
	"prv":  "Prime Video",
	"hst":  "Hulu",
	"hbo":  "HBO Max",
	"dsn":  "Disney+",
	"app":  "Apple TV+",
	"pep":  "Paramount+",
	"pct":  "Peacock",
	"crk":  "Crunchyroll",
	"fun":  "Funimation",
	"shw":  "Showtime",
	"stz":  "Starz",
	"amz":  "Amazon Prime",
	"itu":  "iTunes",
	"ply":  "Google Play",
	"vdu":  "Vudu",
	"msf":  "Microsoft Store",
	"yot":  "YouTube",
	"hid":  "HIDIVE",
	"vrp":  "VRV",
	"mcr":  "MUBI",
	"shd":  "Shudder",
	"acr":  "Acorn TV",
	"bri":  "BritBox",
	"dcp":  "Discovery+",
	"crt":  "Criterion Channel",
	"ind":  "IndieFlix",
	"tub":  "Tubi",
	"plx":  "Pluto TV",
	"rok":  "Roku Channel",
	"xum":  "Xumo",
	"cwk":  "CW Seed",
	"cwt":  "CW TV",
	"abc":  "ABC",
	"nbc":  "NBC",
	"cbs":  "CBS",
	"fox":  "FOX",
	"pbs":  "PBS",
	"tbs":  "TBS",
	"tnt":  "TNT",
	"usa":  "USA Network",
	"syr":  "Syfy",
	"amc":  "AMC",
	"fx":   "FX",
	"fxx":  "FXX",
	"fxn":  "FXM",
	"tlc":  "TLC",
	"hgt":  "HGTV",
	"fd":   "Food Network",
	"trv":  "Travel Channel",
	"aet":  "A&E",
	"lft":  "Lifetime",
	"cnn":  "CNN",
	"esp":  "ESPN",
	"espn": "ESPN+",
	"nflr": "NFL RedZone",

	"8":    "Netflix",
	"9":    "Prime Video",
	"119":  "Prime Video",
	"15":   "Hulu",
	"1899": "Max",
	"384":  "HBO Max",
	"337":  "Disney+",
	"350":  "Apple TV+",
	"531":  "Paramount+",
	"386":  "Peacock",
	"2":    "Apple TV",
	"3":    "Google Play Movies",
	"7":    "Vudu",
	"10":   "Amazon Video",
	"192":  "YouTube",
	"283":  "Crunchyroll",
	"73":   "Tubi",
	"300":  "Pluto TV",
	"11":   "MUBI",
}

// displayNameFor returns the canonical name for key, or fallback when the key is unknown.
func displayNameFor(key, fallback string) string {
	if name, ok := providerNames[strings.ToLower(key)]; ok {
		return name
	}
	return fallback
}
