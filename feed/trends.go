package feed

import (
	"context"
	"strconv"

	cache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"disasterwatch/models"
)

// WorldwideWOEID is the place identifier covering all locations.
const WorldwideWOEID int64 = 1

// Trends returns the trending topics for a place identifier. Results are
// cached for a few minutes per place; failures are logged and reported as
// an empty list.
func (c *Client) Trends(ctx context.Context, woeid int64) []models.Trend {
	if !c.legacy.ok {
		log.Error("Legacy platform API client not initialized")
		return nil
	}
	if woeid <= 0 {
		woeid = WorldwideWOEID
	}

	key := strconv.FormatInt(woeid, 10)
	if cached, ok := c.trendCache.Get(key); ok {
		return cached.([]models.Trend)
	}

	trends, err := c.legacy.api.PlaceTrends(ctx, woeid)
	if err != nil {
		log.Errorf("Error getting trends: %s", err)
		return nil
	}
	if len(trends) == 0 {
		return nil
	}

	c.trendCache.Set(key, trends, cache.DefaultExpiration)
	return trends
}
