// Package platforms is the static knowledge base of streaming providers:
// branding, display priority, and the web/iOS/Android launch targets.
package platforms

import (
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"streamscout/models"
	"streamscout/utils"
)

const (
	// DefaultGenericWebURL is where unknown providers send users without a content URL.
	DefaultGenericWebURL = "https://www.justwatch.com"
	genericPriority      = 1000
)

// Descriptor is the resolved launch knowledge for one provider. Generic
// descriptors (unknown providers) only resolve a web target.
type Descriptor struct {
	name       string
	generic    bool
	color      string
	priority   int
	homeURL    string
	row        Row
	genericWeb string
}

func (d Descriptor) Name() string    { return d.name }
func (d Descriptor) Generic() bool   { return d.generic }
func (d Descriptor) Color() string   { return d.color }
func (d Descriptor) Priority() int   { return d.priority }
func (d Descriptor) HomeURL() string { return d.homeURL }

// WebURL returns contentURL when it is a usable absolute URL, otherwise the
// provider home page (or the generic fallback for unknown providers).
func (d Descriptor) WebURL(contentURL string) string {
	if cleaned, err := utils.NormalizeWebURL(contentURL); err == nil {
		return cleaned
	}
	if d.generic {
		return d.genericWeb
	}
	return d.homeURL
}

// HasIOS reports whether the provider ships an iOS app scheme.
func (d Descriptor) HasIOS() bool { return !d.generic && d.row.IOSScheme != "" }

// HasAndroid reports whether the provider has an Android launch target.
func (d Descriptor) HasAndroid() bool { return !d.generic && d.row.AndroidTarget != "" }

// IOSScheme returns the deep form when contentID is given and the provider
// supports it, else the bare scheme.
func (d Descriptor) IOSScheme(contentID string) (string, bool) {
	if !d.HasIOS() {
		return "", false
	}
	contentID = strings.TrimSpace(contentID)
	if contentID != "" && d.row.IOSDeepLink != "" {
		return strings.ReplaceAll(d.row.IOSDeepLink, "{id}", url.PathEscape(contentID)), true
	}
	return d.row.IOSScheme, true
}

// AndroidTarget returns an intent:// URL or a plain URL for Android devices.
func (d Descriptor) AndroidTarget(contentURL, contentID string) (string, bool) {
	if !d.HasAndroid() {
		return "", false
	}
	if d.row.AndroidPrefersContentURL {
		if cleaned, err := utils.NormalizeWebURL(contentURL); err == nil {
			return cleaned, true
		}
	}
	return d.row.AndroidTarget, true
}

// Info is the public listing form of the descriptor.
func (d Descriptor) Info() models.PlatformInfo {
	return models.PlatformInfo{
		Name:       d.name,
		Color:      d.color,
		Priority:   d.priority,
		WebURL:     d.WebURL(""),
		HasIOS:     d.HasIOS(),
		HasAndroid: d.HasAndroid(),
	}
}

// Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	byName     map[string]Row
	rows       []Row
	colors     map[string]string
	genericWeb string
	debug      bool
}

func foldKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NewRegistry indexes rows by name and aliases. Empty or duplicate names
// (after case folding) are rejected.
func NewRegistry(rows []Row, colors map[string]string, genericWebURL string) (*Registry, error) {
	if genericWebURL == "" {
		genericWebURL = DefaultGenericWebURL
	}
	if _, err := utils.NormalizeWebURL(genericWebURL); err != nil {
		return nil, fmt.Errorf("generic web url %q: %w", genericWebURL, err)
	}

	byName := make(map[string]Row, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			return nil, fmt.Errorf("platform row has an empty name")
		}
		if _, err := utils.NormalizeWebURL(row.HomeURL); err != nil {
			return nil, fmt.Errorf("platform %q home url: %w", row.Name, err)
		}
		for _, name := range append([]string{row.Name}, row.Aliases...) {
			key := foldKey(name)
			if key == "" {
				return nil, fmt.Errorf("platform %q has an empty alias", row.Name)
			}
			if existing, ok := byName[key]; ok {
				return nil, fmt.Errorf("duplicate platform %q (already registered by %q)", name, existing.Name)
			}
			byName[key] = row
		}
	}

	folded := make(map[string]string, len(colors))
	for name, color := range colors {
		folded[foldKey(name)] = color
	}

	cloned := make([]Row, len(rows))
	copy(cloned, rows)
	return &Registry{byName: byName, rows: cloned, colors: folded, genericWeb: genericWebURL}, nil
}

// MustDefault builds the registry from the built-in tables.
func MustDefault(genericWebURL string) *Registry {
	r, err := NewRegistry(DefaultRows, DefaultColors, genericWebURL)
	if err != nil {
		panic(err)
	}
	return r
}

// WithDebug returns a copy that logs unknown-provider lookups.
func (r *Registry) WithDebug(debug bool) *Registry {
	clone := *r
	clone.debug = debug
	return &clone
}

// Resolve returns the descriptor for a provider display name. Matching is
// case-insensitive and exact; unknown names get a web-only generic descriptor.
func (r *Registry) Resolve(name string) Descriptor {
	key := foldKey(name)
	if row, ok := r.byName[key]; ok {
		return Descriptor{
			name:       row.Name,
			color:      r.colors[foldKey(row.Name)],
			priority:   row.Priority,
			homeURL:    row.HomeURL,
			row:        row,
			genericWeb: r.genericWeb,
		}
	}
	if r.debug {
		log.Printf("[platforms] debug: no launch row for %q, using generic web descriptor", name)
	}
	return Descriptor{
		name:       strings.TrimSpace(name),
		generic:    true,
		color:      r.colors[key],
		priority:   genericPriority,
		homeURL:    r.genericWeb,
		genericWeb: r.genericWeb,
	}
}

// List returns the registered platforms, most prominent first.
func (r *Registry) List() []models.PlatformInfo {
	out := make([]models.PlatformInfo, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, r.Resolve(row.Name).Info())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}
