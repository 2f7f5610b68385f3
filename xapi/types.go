package xapi

import "time"

// Wire types for the platform's v2 API. Only the fields this project
// requests are mapped; everything else is dropped at decode time.

// PublicMetrics holds the engagement counters attached to a tweet.
type PublicMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

// HashtagEntity is a single hashtag from the entities object.
type HashtagEntity struct {
	Tag string `json:"tag"`
}

// MentionEntity is a single mention from the entities object.
type MentionEntity struct {
	Username string `json:"username"`
}

// Entities carries the tweet entity annotations we care about.
type Entities struct {
	Hashtags []HashtagEntity `json:"hashtags,omitempty"`
	Mentions []MentionEntity `json:"mentions,omitempty"`
}

// GeoCoordinates is the optional exact position inside a geo reference.
type GeoCoordinates struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Geo is the optional place reference on a tweet.
type Geo struct {
	PlaceID     string          `json:"place_id,omitempty"`
	Coordinates *GeoCoordinates `json:"coordinates,omitempty"`
}

// Tweet is a single post as returned by search and streaming endpoints.
type Tweet struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     time.Time     `json:"created_at"`
	PublicMetrics PublicMetrics `json:"public_metrics"`
	Entities      *Entities     `json:"entities,omitempty"`
	Geo           *Geo          `json:"geo,omitempty"`
}

// User is an expanded author object from includes.users.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Location string `json:"location,omitempty"`
}

// Includes holds expanded objects referenced by the main payload.
type Includes struct {
	Users []User `json:"users,omitempty"`
}

// SearchMeta is the pagination metadata on a search response.
type SearchMeta struct {
	ResultCount int    `json:"result_count"`
	NewestID    string `json:"newest_id,omitempty"`
	OldestID    string `json:"oldest_id,omitempty"`
	NextToken   string `json:"next_token,omitempty"`
}

// SearchResponse is the envelope returned by the recent search endpoint.
type SearchResponse struct {
	Data     []Tweet    `json:"data"`
	Includes Includes   `json:"includes"`
	Meta     SearchMeta `json:"meta"`
}

// MatchingRule identifies the stream rule a delivered tweet matched.
type MatchingRule struct {
	ID  string `json:"id"`
	Tag string `json:"tag,omitempty"`
}

// StreamMessage is one newline-delimited envelope from the filtered stream.
type StreamMessage struct {
	Data          Tweet          `json:"data"`
	Includes      Includes       `json:"includes"`
	MatchingRules []MatchingRule `json:"matching_rules,omitempty"`
}

// Rule is a server-side filtered stream rule.
type Rule struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

// RulesResponse is the envelope returned by the stream rules endpoint.
type RulesResponse struct {
	Data []Rule `json:"data"`
}
