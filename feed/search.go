package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"disasterwatch/models"
	"disasterwatch/xapi"
)

// SearchPosts retrieves up to limit recent posts matching any of the given
// keywords. Long keyword lists are split into chunks so each generated
// query stays under the platform's length limit; each chunk becomes one
// search call, followed by a courtesy delay. A failed chunk is logged,
// penalized with a longer delay and skipped; whatever was accumulated is
// returned, so the result holds 0..limit records and the call never fails.
func (c *Client) SearchPosts(ctx context.Context, keywords []string, limit int, lang string) []models.Post {
	if !c.modern.ok {
		log.Error("Platform API client not initialized")
		return nil
	}
	if len(keywords) == 0 || limit <= 0 {
		return nil
	}
	if lang == "" {
		lang = "en"
	}

	chunks := c.chunkKeywords(keywords)

	var posts []models.Post
	for i, chunk := range chunks {
		if len(posts) >= limit {
			break
		}

		query := strings.Join(chunk, " OR ")
		query += fmt.Sprintf(" lang:%s", lang)
		// Exclude retweets for better quality
		query += " -is:retweet"

		resp, err := c.modern.api.RecentSearch(ctx, query, limit-len(posts))
		if err != nil {
			log.Errorf("Error searching posts for chunk: %s", err)
			c.pause(ctx, c.errorDelay)
			continue
		}

		if resp == nil || len(resp.Data) == 0 {
			log.Warnf("No posts found for query chunk: %s", query)
			continue
		}

		authors := authorLookup(resp.Includes.Users)
		for _, tweet := range resp.Data {
			if len(posts) >= limit {
				break
			}
			posts = append(posts, normalizePost(tweet, authors))
		}

		log.Infof("Retrieved %d posts for query chunk: %s", len(resp.Data), query)
		if i < len(chunks)-1 {
			c.pause(ctx, c.chunkDelay)
		}
	}

	log.Infof("Total posts retrieved: %d", len(posts))
	return posts
}

// chunkKeywords splits a long keyword list into query-sized chunks. Lists
// that fit within two chunks are sent as a single query; beyond that the
// list is capped and split so no query carries more than chunkSize terms.
func (c *Client) chunkKeywords(keywords []string) [][]string {
	if len(keywords) <= 2*c.chunkSize {
		return [][]string{keywords}
	}
	if len(keywords) > c.maxKeywords {
		keywords = keywords[:c.maxKeywords]
	}
	return lo.Chunk(keywords, c.chunkSize)
}

// authorLookup indexes expanded author records by id for one response
// batch. Lookups are not cached across chunks.
func authorLookup(users []xapi.User) map[string]models.Author {
	authors := make(map[string]models.Author, len(users))
	for _, user := range users {
		authors[user.ID] = models.Author{
			Id:       user.ID,
			Name:     user.Name,
			Username: user.Username,
			Location: user.Location,
		}
	}
	return authors
}

// normalizePost converts a wire tweet into the uniform post record,
// attaching the expanded author when the batch includes one.
func normalizePost(tweet xapi.Tweet, authors map[string]models.Author) models.Post {
	post := models.Post{
		Id:           tweet.ID,
		Text:         tweet.Text,
		CreatedAt:    tweet.CreatedAt,
		ReplyCount:   tweet.PublicMetrics.ReplyCount,
		RetweetCount: tweet.PublicMetrics.RetweetCount,
		LikeCount:    tweet.PublicMetrics.LikeCount,
		QuoteCount:   tweet.PublicMetrics.QuoteCount,
	}

	if tweet.Entities != nil {
		for _, tag := range tweet.Entities.Hashtags {
			post.Hashtags = append(post.Hashtags, tag.Tag)
		}
		for _, mention := range tweet.Entities.Mentions {
			post.Mentions = append(post.Mentions, mention.Username)
		}
	}

	if tweet.Geo != nil {
		geo := &models.Geo{PlaceId: tweet.Geo.PlaceID}
		if tweet.Geo.Coordinates != nil {
			geo.Coordinates = tweet.Geo.Coordinates.Coordinates
		}
		post.Geo = geo
	}

	if author, ok := authors[tweet.AuthorID]; ok {
		post.Author = &author
	}

	return post
}
