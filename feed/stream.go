package feed

import (
	"context"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"disasterwatch/models"
	"disasterwatch/xapi"
)

// Stream watches the real-time filtered feed for posts matching the given
// keywords, invoking onPost synchronously for each delivered post until
// timeLimit has elapsed. Existing server-side rules are replaced with one
// rule per keyword before the connection opens. The deadline is checked as
// each post arrives, so with a quiet stream the call can outlast the limit
// until the next delivery or the connection closes. Setup failures are
// logged and the call returns without having streamed anything.
func (c *Client) Stream(ctx context.Context, keywords []string, onPost func(models.Post), timeLimit time.Duration) {
	if !c.modern.ok {
		log.Error("Platform API client not initialized")
		return
	}
	if len(keywords) == 0 {
		log.Warn("No keywords given, not starting stream")
		return
	}
	if timeLimit <= 0 {
		timeLimit = 60 * time.Second
	}

	api := c.modern.api

	// The clock starts when the operation begins, rule setup included.
	start := c.clock.Now()

	// Replace any pre-existing rules: fetch ids, delete all, add one rule
	// per keyword.
	existing, err := api.Rules(ctx)
	if err != nil {
		log.Errorf("Error fetching stream rules: %s", err)
		return
	}
	ids := lo.Map(existing.Data, func(rule xapi.Rule, _ int) string { return rule.ID })
	if err := api.DeleteRules(ctx, ids); err != nil {
		log.Errorf("Error deleting stream rules: %s", err)
		return
	}
	if err := api.AddRules(ctx, keywords); err != nil {
		log.Errorf("Error adding stream rules: %s", err)
		return
	}

	conn, err := api.OpenStream(ctx)
	if err != nil {
		log.Errorf("Error opening filtered stream: %s", err)
		return
	}
	defer conn.Close()

	delivered := 0

	for msg := range conn.Messages() {
		if c.clock.Since(start) > timeLimit {
			// Past the deadline: drop this post and stop.
			break
		}

		authors := authorLookup(msg.Includes.Users)
		onPost(normalizePost(msg.Data, authors))
		delivered++
	}

	log.Infof("Stream finished after %d posts", delivered)
}
