package models

// SearchResult is one autocomplete candidate.
type SearchResult struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Year       string      `json:"year,omitempty"`
	Type       ContentType `json:"type"`
	Poster     string      `json:"poster,omitempty"`
	Popularity float64     `json:"-"`
}

// PlatformInfo is the public view of a Platform Registry row.
type PlatformInfo struct {
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	Priority   int    `json:"priority"`
	WebURL     string `json:"webUrl"`
	HasIOS     bool   `json:"hasIos"`
	HasAndroid bool   `json:"hasAndroid"`
}
