// Package http provides HTTP utilities for fetching remote resources.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"

	"github.com/kalil1010/ai-stylist/internal/security"
	"github.com/kalil1010/ai-stylist/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "stylist"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps a response body. Garment photos are well below this.
	DefaultMaxBytes int64 = 20 << 20
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBytes limits the response size. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// PublicOnly validates every redirect with security.ValidateImageURL and
	// refuses connections to loopback, private, link-local and unspecified
	// addresses after DNS resolution. Set it for client supplied URLs.
	PublicOnly bool
}

// maxRedirects matches the net/http default.
const maxRedirects = 10

// dialAllowed decides whether a resolved address may be dialled when
// PublicOnly is set.
var dialAllowed = func(addr netip.AddrPort) bool {
	return !security.IsPrivateAddr(addr.Addr())
}

// Fetch retrieves content from a URL with context and timeout support.
// It automatically sets the User-Agent header and handles common HTTP errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	client := &http.Client{
		Timeout: timeout,
	}
	if opts.PublicOnly {
		client.Transport = publicTransport(timeout)
		client.CheckRedirect = checkPublicRedirect
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent())
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("response larger than %d bytes", maxBytes)
	}

	return data, nil
}

func publicTransport(timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: func(_, address string, _ syscall.RawConn) error {
			addr, err := netip.ParseAddrPort(address)
			if err != nil {
				return fmt.Errorf("%w: cannot parse dial address %q", security.ErrUnsafeURL, address)
			}
			if !dialAllowed(addr) {
				return fmt.Errorf("%w: connection to %s refused", security.ErrUnsafeURL, addr)
			}
			return nil
		},
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Dial targets directly so Control sees their address.
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return transport
}

func checkPublicRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}
	if err := security.ValidateImageURL(req.URL.String()); err != nil {
		return fmt.Errorf("redirect to %s: %w", req.URL.Redacted(), err)
	}
	return nil
}

// UserAgent returns the User-Agent sent with every request.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", UserAgentName, version.Version)
}
