package analysis_test

import (
	"testing"
	"time"

	"disasterwatch/analysis"
	"disasterwatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "empty string",
			text:     "",
			expected: "",
		},
		{
			name:     "plain text untouched",
			text:     "Flood warning issued for the river basin",
			expected: "flood warning issued for the river basin",
		},
		{
			name:     "strips urls",
			text:     "Evacuation routes here https://example.com/routes now",
			expected: "evacuation routes here now",
		},
		{
			name:     "strips mentions and hashtags",
			text:     "@ndrf teams deployed #CycloneAlert #IMD",
			expected: "teams deployed",
		},
		{
			name:     "strips retweet marker",
			text:     "RT storm surge expected",
			expected: "storm surge expected",
		},
		{
			name:     "collapses whitespace",
			text:     "rising   water\t\tlevels",
			expected: "rising water levels",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.CleanText(tt.text))
		})
	}
}

func TestImpactLevel(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "empty string",
			text:     "",
			expected: analysis.ImpactUnknown,
		},
		{
			name:     "no tier keywords",
			text:     "lovely weather in the hills today",
			expected: analysis.ImpactUnknown,
		},
		{
			name:     "severe keyword",
			text:     "Catastrophic flooding, several casualties reported",
			expected: analysis.ImpactSevere,
		},
		{
			name:     "moderate keyword",
			text:     "Power outage across three districts after the storm",
			expected: analysis.ImpactModerate,
		},
		{
			name:     "minor keyword",
			text:     "Water levels returning to normal, situation under control",
			expected: analysis.ImpactMinor,
		},
		{
			name:     "severe outranks minor",
			text:     "Deadly landslide, relief camps opened",
			expected: analysis.ImpactSevere,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.ImpactLevel(tt.text))
		})
	}
}

func TestFilterPosts(t *testing.T) {
	posts := []models.Post{
		{Id: "1", Text: "Flash flood in the valley"},
		{Id: "2", Text: "Sunny skies expected"},
		{Id: "3", Text: "FLOOD warning extended"},
	}

	filtered := analysis.FilterPosts(posts, []string{"flood"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].Id)
	assert.Equal(t, "3", filtered[1].Id)

	// Empty keyword list keeps everything
	assert.Equal(t, posts, analysis.FilterPosts(posts, nil))
}

func TestAggregateByHour(t *testing.T) {
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{Id: "1", CreatedAt: base.Add(5 * time.Minute)},
		{Id: "2", CreatedAt: base.Add(45 * time.Minute)},
		{Id: "3", CreatedAt: base.Add(90 * time.Minute)},
		{Id: "4"}, // no timestamp, skipped
	}

	buckets := analysis.AggregateByHour(posts)

	require.Len(t, buckets, 2)
	assert.Equal(t, base, buckets[0].Time)
	assert.Equal(t, int64(2), buckets[0].Count)
	assert.Equal(t, base.Add(time.Hour), buckets[1].Time)
	assert.Equal(t, int64(1), buckets[1].Count)
}
