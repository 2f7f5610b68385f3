package feed

import (
	"context"
	"fmt"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"
	"github.com/labstack/gommon/log"

	"disasterwatch/models"
)

// LegacyClient wraps the v1.1-era API behind an OAuth1-signed HTTP client.
// Trends lookup only exists on this surface.
type LegacyClient struct {
	client *twitter.Client
}

// NewLegacyClient builds a signed client from the credential quad.
func NewLegacyClient(creds Credentials) (*LegacyClient, error) {
	if creds.APIKey == "" || creds.APISecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
		return nil, fmt.Errorf("incomplete legacy API credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &LegacyClient{client: twitter.NewClient(httpClient)}, nil
}

// PlaceTrends fetches the trending topics for a place identifier and
// returns the first result set's trends verbatim.
func (c *LegacyClient) PlaceTrends(_ context.Context, woeid int64) ([]models.Trend, error) {
	lists, _, err := c.client.Trends.Place(woeid, nil)
	if err != nil {
		log.Errorf("failed to fetch place trends: %s", err)
		return nil, fmt.Errorf("failed to fetch place trends: %w", err)
	}

	if len(lists) == 0 {
		return nil, nil
	}

	trends := make([]models.Trend, 0, len(lists[0].Trends))
	for _, trend := range lists[0].Trends {
		trends = append(trends, models.Trend{
			Name:        trend.Name,
			TweetVolume: trend.TweetVolume,
		})
	}
	return trends, nil
}
