// Package xapi is a thin typed client for the microblogging platform's v2
// REST and filtered-stream API. It covers only what disasterwatch needs:
// recent search, stream rule management and the filtered stream itself.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.twitter.com/2"

// Field sets requested on every search and stream call. Creation time,
// engagement metrics, geo and entities on the tweet; author expansion with
// name, handle and location.
const (
	tweetFields = "created_at,public_metrics,geo,entities"
	userFields  = "name,username,location"
	expansions  = "author_id,geo.place_id"
)

const (
	requestTimeout = 30 * time.Second
	// PerRequestMax is the platform's per-call result ceiling.
	PerRequestMax = 100
	// perRequestMin is the platform's per-call result floor; smaller
	// requests are bumped up and truncated by the caller.
	perRequestMin = 10
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("platform API error %d: %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("platform API error %d", e.StatusCode)
}

// Client talks to the v2 API with bearer-token auth. Outbound requests are
// paced through a shared rate limiter.
type Client struct {
	baseURL    string
	bearer     string
	httpClient *http.Client
	// streamClient has no request timeout; stream responses stay open for
	// the life of the connection.
	streamClient *http.Client
	limiter      *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, used in tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRateLimit overrides the default request pacing.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient builds a client from a bearer token.
func NewClient(bearerToken string, opts ...Option) (*Client, error) {
	if bearerToken == "" {
		return nil, fmt.Errorf("bearer token is required")
	}

	c := &Client{
		baseURL:      DefaultBaseURL,
		bearer:       bearerToken,
		httpClient:   &http.Client{Timeout: requestTimeout},
		streamClient: &http.Client{},
		limiter:      rate.NewLimiter(rate.Limit(1), 2),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// RecentSearch queries the recent search endpoint with the fixed field set.
// maxResults is clamped to the platform's per-call bounds.
func (c *Client) RecentSearch(ctx context.Context, query string, maxResults int) (*SearchResponse, error) {
	if maxResults > PerRequestMax {
		maxResults = PerRequestMax
	}
	if maxResults < perRequestMin {
		maxResults = perRequestMin
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", tweetFields)
	params.Set("user.fields", userFields)
	params.Set("expansions", expansions)

	var out SearchResponse
	if err := c.getJSON(ctx, "/tweets/search/recent", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do issues a request and maps non-2xx responses to *APIError. The caller
// owns the response body on success.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(apiErr)
		resp.Body.Close()
		return nil, apiErr
	}

	return resp, nil
}
