package hexun

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=hexun_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches quotes from the Hexun quote endpoints, one request per
// security. It implements quote.Client.
type Client struct {
	// baseHost is the shared host suffix under the per-market prefixes.
	baseHost string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// ClientOption is a configuration option for the quote client.
type ClientOption func(*Client)

// WithBaseHost overrides the quote endpoint base host.
func WithBaseHost(host string) ClientOption {
	return func(c *Client) {
		c.baseHost = host
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new Hexun quote client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseHost: defaultBaseHost,
		// any status >= 300 is a failure, so the default client must not
		// follow redirects behind the status check
		httpClient: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		header: http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Quote performs one GET for the given security and parses the response.
// No retries and no redirect following: any status >= 300 is a failure.
func (c *Client) Quote(ctx context.Context, id security.Identifier) (*quote.Data, error) {
	url := buildURL(c.baseHost, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s -> %d", url, res.StatusCode)
	}

	// The provider serves GBK-encoded text; the numeric payload is plain
	// ASCII so decoding is transparent to the parser.
	body, err := io.ReadAll(transform.NewReader(res.Body, simplifiedchinese.GBK.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return parseQuote(string(body), id)
}
