package utils

import (
	"net"
	"net/url"
	"strings"
)

// OriginPolicy decides which browser origins may read the JSON endpoints.
// Origins on the local network are always allowed so a dev front end can
// talk to a local server; public origins must be listed explicitly, either
// exactly ("https://films.example") or by subdomain ("*.films.example").
type OriginPolicy struct {
	exact    map[string]struct{}
	suffixes []string
}

func NewOriginPolicy(allowed []string) *OriginPolicy {
	p := &OriginPolicy{exact: make(map[string]struct{})}
	for _, origin := range allowed {
		origin = strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
		switch {
		case origin == "":
		case strings.HasPrefix(origin, "*."):
			p.suffixes = append(p.suffixes, origin[1:])
		default:
			p.exact[origin] = struct{}{}
		}
	}
	return p
}

// Allows reports whether an Origin header value should be trusted.
func (p *OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if isLocalHostname(parsed.Hostname()) {
		return true
	}
	if p == nil {
		return false
	}
	normalized := strings.ToLower(parsed.Scheme + "://" + parsed.Host)
	if _, ok := p.exact[normalized]; ok {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// isLocalHostname accepts localhost, .local names, single-label LAN names
// and private, loopback or link-local addresses.
func isLocalHostname(hostname string) bool {
	switch {
	case hostname == "localhost":
		return true
	case strings.HasSuffix(hostname, ".local"):
		return true
	case !strings.Contains(hostname, ".") && !strings.Contains(hostname, ":"):
		return true
	}
	ip := net.ParseIP(hostname)
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
