package httpx

import (
	"net"
	"net/http"
	"time"
)

// New returns an *http.Client with a tuned transport and a default
// User-Agent applied to requests that carry none. The client is safe for
// use by many concurrent outstanding requests.
func New(timeout time.Duration, userAgent string) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          200,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 5 * time.Second,
	}
	rt := http.RoundTripper(transport)
	if userAgent != "" {
		rt = &userAgentTransport{next: transport, userAgent: userAgent}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: rt,
		// the quote provider treats every 3xx as failure, so redirects
		// must surface to the caller instead of being followed
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
}

type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		// RoundTrip must not modify the caller's request
		clone := req.Clone(req.Context())
		clone.Header.Set("User-Agent", t.userAgent)
		req = clone
	}
	return t.next.RoundTrip(req)
}
