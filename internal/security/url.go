// Package security validates untrusted input before the stylist acts on it.
package security

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// ErrUnsafeURL is returned for image URLs the server refuses to fetch.
var ErrUnsafeURL = errors.New("unsafe image URL")

// ValidateImageURL checks a client supplied photo URL before it is fetched.
// Only HTTPS to public hosts is allowed so the server cannot be pointed at
// itself or at the private network.
func ValidateImageURL(urlStr string) error {
	if strings.TrimSpace(urlStr) == "" {
		return fmt.Errorf("%w: empty URL", ErrUnsafeURL)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeURL, err)
	}

	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("%w: only https URLs are allowed (got %q)", ErrUnsafeURL, parsed.Scheme)
	}
	if parsed.User != nil {
		return fmt.Errorf("%w: credentials in URL", ErrUnsafeURL)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("%w: URL must have a hostname", ErrUnsafeURL)
	}
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("%w: local or private host %s", ErrUnsafeURL, host)
	}

	return nil
}

// isLocalOrPrivateHost checks if a hostname is localhost or a private,
// loopback, link-local or unspecified address.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		// A DNS name; the dialer checks the resolved address with IsPrivateAddr.
		return false
	}
	return IsPrivateAddr(addr)
}

// IsPrivateAddr reports whether addr is loopback, private, link-local or
// unspecified. IPv4-mapped IPv6 addresses are judged by their IPv4 form.
func IsPrivateAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}
