package platforms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEveryRowResolvesToItself(t *testing.T) {
	r := MustDefault("")
	for _, row := range DefaultRows {
		for _, name := range append([]string{row.Name}, row.Aliases...) {
			for _, variant := range []string{name, strings.ToUpper(name), strings.ToLower(name), "  " + name + " "} {
				d := r.Resolve(variant)
				require.False(t, d.Generic(), "expected %q to be registered", variant)
				require.Equal(t, row.Name, d.Name())
				require.Equal(t, row.Priority, d.Priority())
				require.True(t, d.HasIOS(), "%s should have an iOS scheme", row.Name)
				require.NotEmpty(t, d.Color(), "%s should have a branding color", row.Name)
			}
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	r := MustDefault("")
	require.Equal(t, r.Resolve("netflix"), r.Resolve("NETFLIX"))
	require.Equal(t, r.Resolve("Disney+"), r.Resolve("disney+"))
}

func TestNoFuzzyMatching(t *testing.T) {
	r := MustDefault("")
	require.True(t, r.Resolve("Netflix Kids").Generic())
	require.True(t, r.Resolve("Netfli").Generic())
	require.True(t, r.Resolve("").Generic())
}

func TestUnknownProviderIsWebOnly(t *testing.T) {
	r := MustDefault("")
	d := r.Resolve("Kanopy")
	require.True(t, d.Generic())

	_, ok := d.IOSScheme("123")
	require.False(t, ok)
	_, ok = d.AndroidTarget("https://www.kanopy.com/video/1", "123")
	require.False(t, ok)

	require.Equal(t, "https://www.kanopy.com/video/1", d.WebURL("https://www.kanopy.com/video/1"))
	require.Equal(t, DefaultGenericWebURL, d.WebURL(""))
	require.Equal(t, DefaultGenericWebURL, d.WebURL("not a url"))
}

func TestGenericWebURLIsConfigurable(t *testing.T) {
	r := MustDefault("https://example.org/where-to-watch")
	require.Equal(t, "https://example.org/where-to-watch", r.Resolve("Unknown+").WebURL(""))
}

func TestUnknownProviderKeepsBranding(t *testing.T) {
	r := MustDefault("")
	d := r.Resolve("showtime")
	require.True(t, d.Generic())
	require.Equal(t, "red-700", d.Color())
}

func TestWebURLPrefersContentURL(t *testing.T) {
	d := MustDefault("").Resolve("Netflix")
	require.Equal(t, "https://netflix.com/title/123", d.WebURL("https://netflix.com/title/123"))
	require.Equal(t, "https://www.netflix.com", d.WebURL(""))
}

func TestIOSSchemeDeepAndBare(t *testing.T) {
	r := MustDefault("")

	scheme, ok := r.Resolve("Netflix").IOSScheme("")
	require.True(t, ok)
	require.Equal(t, "nflx://", scheme)

	scheme, ok = r.Resolve("Netflix").IOSScheme("80057281")
	require.True(t, ok)
	require.Equal(t, "nflx://www.netflix.com/title/80057281", scheme)

	scheme, ok = r.Resolve("YouTube").IOSScheme("dQw4w9WgXcQ")
	require.True(t, ok)
	require.Equal(t, "youtube://watch?v=dQw4w9WgXcQ", scheme)

	scheme, ok = r.Resolve("Hulu").IOSScheme("a b")
	require.True(t, ok)
	require.Equal(t, "hulu://play/a%20b", scheme)

	// No deep form registered: the bare scheme is used even with an id.
	scheme, ok = r.Resolve("Tubi").IOSScheme("42")
	require.True(t, ok)
	require.Equal(t, "tubitv://", scheme)
}

func TestAndroidTargets(t *testing.T) {
	r := MustDefault("")

	target, ok := r.Resolve("Hulu").AndroidTarget("", "")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(target, "intent://"))

	target, ok = r.Resolve("Netflix").AndroidTarget("https://www.netflix.com/title/80057281", "")
	require.True(t, ok)
	require.Equal(t, "https://www.netflix.com/title/80057281", target)

	target, ok = r.Resolve("Netflix").AndroidTarget("", "")
	require.True(t, ok)
	require.Equal(t, "https://www.netflix.com", target)

	_, ok = r.Resolve("Apple TV+").AndroidTarget("https://tv.apple.com/show/1", "1")
	require.False(t, ok, "Apple TV+ has no Android app")
}

func TestAliasesShareDescriptor(t *testing.T) {
	r := MustDefault("")
	require.Equal(t, r.Resolve("HBO Max"), r.Resolve("max"))
	require.Equal(t, r.Resolve("Prime Video"), r.Resolve("Amazon Prime"))
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Row{
		{Name: "Netflix", HomeURL: "https://www.netflix.com"},
		{Name: "NETFLIX", HomeURL: "https://www.netflix.com"},
	}, nil, "")
	require.ErrorContains(t, err, "duplicate platform")

	_, err = NewRegistry([]Row{
		{Name: "Max", HomeURL: "https://www.max.com"},
		{Name: "HBO Max", Aliases: []string{"max"}, HomeURL: "https://www.max.com"},
	}, nil, "")
	require.ErrorContains(t, err, "duplicate platform")
}

func TestNewRegistryRejectsBadRows(t *testing.T) {
	_, err := NewRegistry([]Row{{Name: " ", HomeURL: "https://x.test"}}, nil, "")
	require.Error(t, err)

	_, err = NewRegistry([]Row{{Name: "X", HomeURL: "/relative"}}, nil, "")
	require.Error(t, err)

	_, err = NewRegistry(nil, nil, "ftp://example.org")
	require.Error(t, err)
}

func TestRegistryIsolatedFromCallerRows(t *testing.T) {
	rows := []Row{{Name: "Example", Priority: 1, HomeURL: "https://example.org", IOSScheme: "example://"}}
	r, err := NewRegistry(rows, nil, "")
	require.NoError(t, err)

	rows[0].Name = "Changed"
	require.Equal(t, "Example", r.List()[0].Name)
}

func TestListOrderedByPriority(t *testing.T) {
	list := MustDefault("").List()
	require.Len(t, list, len(DefaultRows))
	require.Equal(t, "Netflix", list[0].Name)
	for i := 1; i < len(list); i++ {
		require.LessOrEqual(t, list[i-1].Priority, list[i].Priority)
	}
	for _, info := range list {
		if info.Name == "Apple TV+" {
			require.True(t, info.HasIOS)
			require.False(t, info.HasAndroid)
		}
	}
}
