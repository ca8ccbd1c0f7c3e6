// Package url classifies omnibox input as an address or a search query.
package url

import (
	"net"
	"strings"
)

var schemes = []string{"http://", "https://", "file://", "about:"}

func hasScheme(input string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(input, s) {
			return true
		}
	}
	return strings.Contains(input, "://")
}

// Normalize adds a scheme to URL-like input. Bare IP addresses get http://,
// everything else https://. Input with a scheme or that does not look like a
// URL is returned unchanged.
func Normalize(input string) string {
	if input == "" || hasScheme(input) || !LooksLikeURL(input) {
		return input
	}
	if isIPHost(hostOf(input)) {
		return "http://" + input
	}
	return "https://" + input
}

// LooksLikeURL reports whether the input appears to be an address rather than
// search terms: anything with a scheme, localhost, an IP address, or a dotted
// host name without spaces.
func LooksLikeURL(input string) bool {
	if input == "" || strings.ContainsAny(input, " \t") {
		return false
	}
	if hasScheme(input) {
		return true
	}

	host := hostOf(input)
	if host == "localhost" || isIPHost(host) {
		return true
	}
	return strings.Contains(host, ".") &&
		!strings.HasPrefix(host, ".") &&
		!strings.HasSuffix(host, ".")
}

// hostOf strips the path and port from schemeless input.
func hostOf(input string) string {
	host, _, _ := strings.Cut(input, "/")
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end > 0 {
			return host[1:end]
		}
		return host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isIPHost(host string) bool {
	return net.ParseIP(host) != nil
}
