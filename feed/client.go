// Package feed retrieves disaster-related posts from the microblogging
// platform. All operations are best-effort: platform failures are logged
// and surface to the caller as empty or partial results, never as errors.
package feed

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	cache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"disasterwatch/models"
	"disasterwatch/xapi"
)

const trendCacheTTL = 5 * time.Minute

// Credentials is the set of platform secrets, fixed for the client's
// lifetime. The token quad drives the legacy API, the bearer token the
// modern one.
type Credentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
	BearerToken  string
}

// SearchStreamAPI is the modern platform surface used by search and
// streaming. *xapi.Client satisfies it through a small adapter; tests
// substitute mocks.
type SearchStreamAPI interface {
	RecentSearch(ctx context.Context, query string, maxResults int) (*xapi.SearchResponse, error)
	Rules(ctx context.Context) (*xapi.RulesResponse, error)
	AddRules(ctx context.Context, values []string) error
	DeleteRules(ctx context.Context, ids []string) error
	OpenStream(ctx context.Context) (StreamConn, error)
}

// StreamConn is a live filtered stream connection.
type StreamConn interface {
	Messages() <-chan *xapi.StreamMessage
	Close()
}

// TrendsAPI is the legacy platform surface used for place trends.
type TrendsAPI interface {
	PlaceTrends(ctx context.Context, woeid int64) ([]models.Trend, error)
}

// apiAdapter narrows *xapi.Client to the SearchStreamAPI interface.
type apiAdapter struct {
	*xapi.Client
}

func (a apiAdapter) OpenStream(ctx context.Context) (StreamConn, error) {
	return a.Client.OpenStream(ctx)
}

type modernHandle struct {
	api SearchStreamAPI
	ok  bool
}

type legacyHandle struct {
	api TrendsAPI
	ok  bool
}

// Client holds the two authenticated platform handles. If initialization
// fails both handles stay unavailable and every operation degrades to an
// empty result; the Client itself is always usable.
type Client struct {
	modern modernHandle
	legacy legacyHandle

	clock      clockwork.Clock
	trendCache *cache.Cache

	chunkSize   int
	maxKeywords int
	chunkDelay  time.Duration
	errorDelay  time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithClock swaps the time source, used by tests.
func WithClock(c clockwork.Clock) Option {
	return func(client *Client) {
		client.clock = c
	}
}

// WithChunking overrides the query chunk size and the overall keyword cap.
func WithChunking(chunkSize, maxKeywords int) Option {
	return func(client *Client) {
		if chunkSize > 0 {
			client.chunkSize = chunkSize
		}
		if maxKeywords > 0 {
			client.maxKeywords = maxKeywords
		}
	}
}

// WithPacing overrides the courtesy delay between chunks and the longer
// delay applied after a failed chunk.
func WithPacing(chunkDelay, errorDelay time.Duration) Option {
	return func(client *Client) {
		client.chunkDelay = chunkDelay
		client.errorDelay = errorDelay
	}
}

// WithSearchStreamAPI injects a modern API implementation directly,
// bypassing credential-based construction.
func WithSearchStreamAPI(api SearchStreamAPI) Option {
	return func(client *Client) {
		client.modern = modernHandle{api: api, ok: true}
	}
}

// WithTrendsAPI injects a legacy API implementation directly.
func WithTrendsAPI(api TrendsAPI) Option {
	return func(client *Client) {
		client.legacy = legacyHandle{api: api, ok: true}
	}
}

// NewClient builds both platform handles from the credential set. A
// construction failure is logged once and leaves the client inert rather
// than returning an error, matching the best-effort contract of the
// monitoring pipeline.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		clock:       clockwork.NewRealClock(),
		trendCache:  cache.New(trendCacheTTL, 2*trendCacheTTL),
		chunkSize:   5,
		maxKeywords: 30,
		chunkDelay:  500 * time.Millisecond,
		errorDelay:  600 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.modern.ok || c.legacy.ok {
		// Handles were injected, skip credential-based construction.
		return c
	}

	modern, err := xapi.NewClient(creds.BearerToken)
	if err != nil {
		log.Errorf("Error initializing platform API clients: %s", err)
		return c
	}

	legacy, err := NewLegacyClient(creds)
	if err != nil {
		log.Errorf("Error initializing platform API clients: %s", err)
		return c
	}

	c.modern = modernHandle{api: apiAdapter{modern}, ok: true}
	c.legacy = legacyHandle{api: legacy, ok: true}
	log.Info("Platform API clients initialized successfully")

	return c
}

// pause sleeps through the injected clock, bailing out early if the
// context is cancelled.
func (c *Client) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-c.clock.After(d):
	}
}
