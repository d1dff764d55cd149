package utils

import (
	"errors"
	"net/url"
	"strings"
)

// EncodeURLWithSpaces encodes raw spaces in path, query and fragment.
// Upstream catalogs occasionally hand out links with unencoded spaces.
func EncodeURLWithSpaces(rawURL string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	encoded := parsedURL.Scheme + "://" + parsedURL.Host + parsedURL.EscapedPath()
	if parsedURL.RawQuery != "" {
		encoded += "?" + strings.ReplaceAll(parsedURL.RawQuery, " ", "%20")
	}
	if parsedURL.Fragment != "" {
		encoded += "#" + parsedURL.EscapedFragment()
	}
	return encoded, nil
}

// NormalizeWebURL returns rawURL as an absolute http(s) URL with spaces encoded.
func NormalizeWebURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", errors.New("not an http(s) url")
	}
	if parsed.Host == "" {
		return "", errors.New("url has no host")
	}
	if !strings.Contains(rawURL, " ") {
		return rawURL, nil
	}
	return EncodeURLWithSpaces(rawURL)
}
