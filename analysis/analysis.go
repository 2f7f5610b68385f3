// Package analysis provides lightweight post-processing for retrieved
// posts: text cleanup, impact-tier scoring against the keyword catalog and
// simple filtering/aggregation helpers.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"disasterwatch/keywords"
	"disasterwatch/models"
)

// Impact levels, most severe first. ImpactUnknown means no tier keyword
// matched at all.
const (
	ImpactSevere   = "severe"
	ImpactModerate = "moderate"
	ImpactMinor    = "minor"
	ImpactUnknown  = "unknown"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern    = regexp.MustCompile(`@\w+`)
	hashtagPattern    = regexp.MustCompile(`#\w+`)
	retweetPattern    = regexp.MustCompile(`^rt\s+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText strips URLs, mentions, hashtags and the leading retweet marker
// from post text and collapses whitespace, for downstream text analysis.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "")
	text = retweetPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ImpactLevel scores the severity of impact a post describes by counting
// tier keyword hits. The most severe tier with at least one hit wins.
func ImpactLevel(text string) string {
	lowered := strings.ToLower(text)
	impact := keywords.ImpactKeywords()

	for _, tier := range []struct {
		catalog string
		level   string
	}{
		{"Severe", ImpactSevere},
		{"Moderate", ImpactModerate},
		{"Minor", ImpactMinor},
	} {
		for _, kw := range impact[tier.catalog] {
			if strings.Contains(lowered, kw) {
				return tier.level
			}
		}
	}

	return ImpactUnknown
}

// FilterPosts keeps posts whose text contains any of the given keywords,
// case-insensitive. An empty keyword list keeps everything.
func FilterPosts(posts []models.Post, kws []string) []models.Post {
	if len(kws) == 0 {
		return posts
	}

	lowered := make([]string, 0, len(kws))
	for _, kw := range kws {
		lowered = append(lowered, strings.ToLower(kw))
	}

	var filtered []models.Post
	for _, post := range posts {
		text := strings.ToLower(post.Text)
		for _, kw := range lowered {
			if strings.Contains(text, kw) {
				filtered = append(filtered, post)
				break
			}
		}
	}
	return filtered
}

// AggregateByHour counts posts per UTC hour bucket, ascending by time.
// Posts without a creation timestamp are skipped.
func AggregateByHour(posts []models.Post) []models.PostsAggregatedByTime {
	buckets := make(map[time.Time]int64)
	for _, post := range posts {
		if post.CreatedAt.IsZero() {
			continue
		}
		buckets[post.CreatedAt.UTC().Truncate(time.Hour)]++
	}

	out := make([]models.PostsAggregatedByTime, 0, len(buckets))
	for hour, count := range buckets {
		out = append(out, models.PostsAggregatedByTime{Time: hour, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
