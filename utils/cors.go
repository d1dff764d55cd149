package utils

import (
	"net"
	"net/url"
	"strings"
)

// OriginPolicy decides which browser origins may call the API.
// Local and private-network origins are always allowed; public origins only
// when listed explicitly.
type OriginPolicy struct {
	explicit map[string]struct{}
}

// NewOriginPolicy builds a policy from configured origins like "https://app.example.com".
func NewOriginPolicy(origins []string) OriginPolicy {
	explicit := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.ToLower(strings.TrimSpace(o)), "/")
		if o != "" {
			explicit[o] = struct{}{}
		}
	}
	return OriginPolicy{explicit: explicit}
}

// Allowed reports whether origin should receive CORS headers.
func (p OriginPolicy) Allowed(origin string) bool {
	if _, ok := p.explicit["*"]; ok && origin != "" {
		return true
	}
	if _, ok := p.explicit[strings.TrimRight(strings.ToLower(origin), "/")]; ok {
		return true
	}
	return IsAllowedOrigin(origin)
}

// IsAllowedOrigin checks whether an Origin header value is local or private.
// It allows localhost, private/RFC1918 IPs, link-local IPs, .local hostnames,
// and single-label hostnames (no dots). Public internet origins are blocked.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()

	if hostname == "localhost" {
		return true
	}

	// mDNS hostnames (e.g., mybox.local)
	if strings.HasSuffix(hostname, ".local") {
		return true
	}

	// Single-label hostnames are LAN names
	if !strings.Contains(hostname, ".") && net.ParseIP(hostname) == nil {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
	}

	return false
}
