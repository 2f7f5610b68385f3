package feed_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disasterwatch/feed"
	"disasterwatch/models"
	"disasterwatch/xapi"
)

// mockModernAPI records calls and replays canned search responses.
type mockModernAPI struct {
	queries    []string
	maxResults []int
	responses  []*xapi.SearchResponse
	errs       []error

	rules       *xapi.RulesResponse
	deletedIDs  [][]string
	addedValues [][]string
	conn        feed.StreamConn
	connErr     error
	opened      chan struct{}
	calls       []string
}

func (m *mockModernAPI) RecentSearch(_ context.Context, query string, maxResults int) (*xapi.SearchResponse, error) {
	call := len(m.queries)
	m.queries = append(m.queries, query)
	m.maxResults = append(m.maxResults, maxResults)

	if call < len(m.errs) && m.errs[call] != nil {
		return nil, m.errs[call]
	}
	if call < len(m.responses) {
		return m.responses[call], nil
	}
	return &xapi.SearchResponse{}, nil
}

func (m *mockModernAPI) Rules(context.Context) (*xapi.RulesResponse, error) {
	m.calls = append(m.calls, "rules")
	if m.rules == nil {
		return &xapi.RulesResponse{}, nil
	}
	return m.rules, nil
}

func (m *mockModernAPI) AddRules(_ context.Context, values []string) error {
	m.calls = append(m.calls, "add")
	m.addedValues = append(m.addedValues, values)
	return nil
}

func (m *mockModernAPI) DeleteRules(_ context.Context, ids []string) error {
	m.calls = append(m.calls, "delete")
	m.deletedIDs = append(m.deletedIDs, ids)
	return nil
}

func (m *mockModernAPI) OpenStream(context.Context) (feed.StreamConn, error) {
	m.calls = append(m.calls, "open")
	if m.connErr != nil {
		return nil, m.connErr
	}
	if m.opened != nil {
		close(m.opened)
	}
	return m.conn, nil
}

type fakeConn struct {
	ch <-chan *xapi.StreamMessage
}

func (f *fakeConn) Messages() <-chan *xapi.StreamMessage { return f.ch }
func (f *fakeConn) Close()                               {}

type mockTrendsAPI struct {
	calls  int
	trends []models.Trend
	err    error
}

func (m *mockTrendsAPI) PlaceTrends(_ context.Context, _ int64) ([]models.Trend, error) {
	m.calls++
	return m.trends, m.err
}

func searchClient(api *mockModernAPI, opts ...feed.Option) *feed.Client {
	opts = append([]feed.Option{
		feed.WithSearchStreamAPI(api),
		feed.WithPacing(0, 0),
	}, opts...)
	return feed.NewClient(feed.Credentials{}, opts...)
}

func TestSearchPostsChunksLongKeywordLists(t *testing.T) {
	api := &mockModernAPI{}
	client := searchClient(api)

	keywords := make([]string, 12)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%d", i)
	}

	client.SearchPosts(context.Background(), keywords, 1000, "en")

	// 12 keywords become exactly three chunk queries of sizes 5, 5 and 2
	require.Len(t, api.queries, 3)
	assert.Equal(t, "kw0 OR kw1 OR kw2 OR kw3 OR kw4 lang:en -is:retweet", api.queries[0])
	assert.Equal(t, "kw5 OR kw6 OR kw7 OR kw8 OR kw9 lang:en -is:retweet", api.queries[1])
	assert.Equal(t, "kw10 OR kw11 lang:en -is:retweet", api.queries[2])
}

func TestSearchPostsShortListSingleQuery(t *testing.T) {
	api := &mockModernAPI{}
	client := searchClient(api)

	client.SearchPosts(context.Background(), []string{"flood", "flooding"}, 50, "hi")

	require.Len(t, api.queries, 1)
	assert.Equal(t, "flood OR flooding lang:hi -is:retweet", api.queries[0])
	assert.Equal(t, []int{50}, api.maxResults)
}

func TestSearchPostsCapsKeywordList(t *testing.T) {
	api := &mockModernAPI{}
	client := searchClient(api)

	keywords := make([]string, 40)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%d", i)
	}

	client.SearchPosts(context.Background(), keywords, 1000, "en")

	// Capped at 30 keywords, six chunks of five
	require.Len(t, api.queries, 6)
	assert.True(t, strings.HasPrefix(api.queries[5], "kw25 OR"))
}

func TestSearchPostsNeverExceedsLimit(t *testing.T) {
	batch := func(n int) *xapi.SearchResponse {
		resp := &xapi.SearchResponse{}
		for i := 0; i < n; i++ {
			resp.Data = append(resp.Data, xapi.Tweet{ID: fmt.Sprintf("id%d", i)})
		}
		return resp
	}

	api := &mockModernAPI{responses: []*xapi.SearchResponse{batch(100), batch(100), batch(100)}}
	client := searchClient(api)

	keywords := make([]string, 12)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%d", i)
	}

	posts := client.SearchPosts(context.Background(), keywords, 150, "en")

	assert.Len(t, posts, 150)
	// Limit reached after two chunks, the third is never requested
	assert.Len(t, api.queries, 2)
	// Remaining budget is passed through per call
	assert.Equal(t, []int{150, 50}, api.maxResults)
}

func TestSearchPostsWithoutAuthorExpansion(t *testing.T) {
	resp := &xapi.SearchResponse{}
	for i := 0; i < 30; i++ {
		resp.Data = append(resp.Data, xapi.Tweet{
			ID:            fmt.Sprintf("id%d", i),
			Text:          "flood",
			AuthorID:      fmt.Sprintf("u%d", i),
			PublicMetrics: xapi.PublicMetrics{LikeCount: i},
		})
	}

	api := &mockModernAPI{responses: []*xapi.SearchResponse{resp}}
	client := searchClient(api)

	posts := client.SearchPosts(context.Background(), []string{"flood"}, 50, "en")

	require.Len(t, posts, 30)
	for _, post := range posts {
		assert.Nil(t, post.Author)
	}
	assert.Equal(t, 29, posts[29].LikeCount)
}

func TestSearchPostsAttachesAuthors(t *testing.T) {
	resp := &xapi.SearchResponse{
		Data: []xapi.Tweet{
			{ID: "1", AuthorID: "u1"},
			{ID: "2", AuthorID: "unknown"},
		},
		Includes: xapi.Includes{Users: []xapi.User{
			{ID: "u1", Name: "Alert Desk", Username: "alertdesk", Location: "Chennai"},
		}},
	}

	api := &mockModernAPI{responses: []*xapi.SearchResponse{resp}}
	client := searchClient(api)

	posts := client.SearchPosts(context.Background(), []string{"flood"}, 10, "en")

	require.Len(t, posts, 2)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "alertdesk", posts[0].Author.Username)
	assert.Equal(t, "Chennai", posts[0].Author.Location)
	assert.Nil(t, posts[1].Author)
}

func TestSearchPostsContinuesPastChunkErrors(t *testing.T) {
	resp := &xapi.SearchResponse{Data: []xapi.Tweet{{ID: "1"}}}
	api := &mockModernAPI{
		errs:      []error{fmt.Errorf("rate limited"), nil, nil},
		responses: []*xapi.SearchResponse{nil, resp, resp},
	}
	client := searchClient(api)

	keywords := make([]string, 12)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%d", i)
	}

	posts := client.SearchPosts(context.Background(), keywords, 100, "en")

	// First chunk fails, the rest still run and partial results survive
	assert.Len(t, api.queries, 3)
	assert.Len(t, posts, 2)
}

func TestOperationsWithUninitializedClient(t *testing.T) {
	// Empty credentials leave both handles unavailable
	client := feed.NewClient(feed.Credentials{})

	assert.Empty(t, client.SearchPosts(context.Background(), []string{"flood"}, 10, "en"))
	assert.Empty(t, client.Trends(context.Background(), 1))
	// Stream must return promptly without panicking or calling back
	client.Stream(context.Background(), []string{"flood"}, func(models.Post) {
		t.Fatal("callback invoked on uninitialized client")
	}, time.Second)
}

func TestTrendsCachesPerPlace(t *testing.T) {
	api := &mockTrendsAPI{trends: []models.Trend{{Name: "#CycloneAlert", TweetVolume: 1200}}}
	client := feed.NewClient(feed.Credentials{}, feed.WithTrendsAPI(api))

	first := client.Trends(context.Background(), 1)
	second := client.Trends(context.Background(), 1)

	require.Len(t, first, 1)
	assert.Equal(t, "#CycloneAlert", first[0].Name)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.calls)
}

func TestTrendsErrorYieldsEmpty(t *testing.T) {
	api := &mockTrendsAPI{err: fmt.Errorf("boom")}
	client := feed.NewClient(feed.Credentials{}, feed.WithTrendsAPI(api))

	assert.Empty(t, client.Trends(context.Background(), 1))
	// Errors are not cached; the next call retries
	client.Trends(context.Background(), 1)
	assert.Equal(t, 2, api.calls)
}

func TestStreamReplacesRulesBeforeConnecting(t *testing.T) {
	msgs := make(chan *xapi.StreamMessage)
	close(msgs)

	api := &mockModernAPI{
		rules: &xapi.RulesResponse{Data: []xapi.Rule{{ID: "r1", Value: "old"}, {ID: "r2", Value: "stale"}}},
		conn:  &fakeConn{ch: msgs},
	}
	client := searchClient(api)

	client.Stream(context.Background(), []string{"flood", "cyclone"}, func(models.Post) {}, time.Second)

	assert.Equal(t, []string{"rules", "delete", "add", "open"}, api.calls)
	require.Len(t, api.deletedIDs, 1)
	assert.Equal(t, []string{"r1", "r2"}, api.deletedIDs[0])
	require.Len(t, api.addedValues, 1)
	assert.Equal(t, []string{"flood", "cyclone"}, api.addedValues[0])
}

func TestStreamStopsAtTimeLimit(t *testing.T) {
	fc := clockwork.NewFakeClock()
	msgs := make(chan *xapi.StreamMessage)
	opened := make(chan struct{})

	api := &mockModernAPI{conn: &fakeConn{ch: msgs}, opened: opened}
	client := searchClient(api, feed.WithClock(fc))

	delivered := 0
	processed := make(chan struct{})
	done := make(chan struct{})

	go func() {
		client.Stream(context.Background(), []string{"flood"}, func(models.Post) {
			delivered++
			processed <- struct{}{}
		}, 60*time.Second)
		close(done)
	}()

	// The stream clock starts before the connection opens, so once the
	// connection is up the fake clock can advance safely.
	<-opened

	// One post per second for 65 seconds
deliver:
	for i := 1; i <= 65; i++ {
		fc.Advance(time.Second)
		select {
		case msgs <- &xapi.StreamMessage{Data: xapi.Tweet{ID: fmt.Sprintf("%d", i)}}:
		case <-done:
			break deliver
		}
		select {
		case <-processed:
		case <-done:
			break deliver
		}
	}
	<-done

	// Posts arriving after the limit are dropped
	assert.Equal(t, 60, delivered)
}

func TestStreamSetupErrorReturnsQuietly(t *testing.T) {
	api := &mockModernAPI{connErr: fmt.Errorf("credential rejected")}
	client := searchClient(api)

	client.Stream(context.Background(), []string{"flood"}, func(models.Post) {
		t.Fatal("callback invoked despite setup failure")
	}, time.Second)

	assert.Equal(t, []string{"rules", "delete", "add", "open"}, api.calls)
}
