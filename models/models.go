package models

import "time"

// Author holds the subset of account fields we keep for a post.
type Author struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Location string `json:"location,omitempty"`
}

// Geo is the place reference attached to a post, if any.
type Geo struct {
	PlaceId     string    `json:"placeId,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Post model with key fields from a retrieved post
type Post struct {
	Id           string    `json:"id"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
	ReplyCount   int       `json:"replyCount"`
	RetweetCount int       `json:"retweetCount"`
	LikeCount    int       `json:"likeCount"`
	QuoteCount   int       `json:"quoteCount,omitempty"`
	Hashtags     []string  `json:"hashtags,omitempty"`
	Mentions     []string  `json:"mentions,omitempty"`
	Geo          *Geo      `json:"geo,omitempty"`
	Author       *Author   `json:"author,omitempty"`
}

// Trend is returned as the platform reports it, untransformed.
type Trend struct {
	Name        string `json:"name"`
	TweetVolume int64  `json:"tweetVolume,omitempty"`
}

type PostsAggregatedByTime struct {
	Time  time.Time `json:"time"`
	Count int64     `json:"count"`
}
