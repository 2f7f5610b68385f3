package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"disasterwatch/feed"
)

func trendsCmd() *cli.Command {
	return &cli.Command{
		Name:  "trends",
		Usage: "Show trending topics for a location",
		Description: `Fetches the platform's trending topics for a place identifier
(WOEID). The default of 1 is worldwide.

Returns each trend as a JSON object on a single line.`,
		Flags: append(credentialFlags(),
			&cli.Int64Flag{
				Name:    "woeid",
				Value:   feed.WorldwideWOEID,
				Usage:   "Where-on-earth identifier of the location",
				EnvVars: []string{"DISASTERWATCH_WOEID"},
			},
		),
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			client := newFeedClient(cfg)
			for _, trend := range client.Trends(ctx.Context, ctx.Int64("woeid")) {
				printJSONLine(trend)
			}

			return nil
		},
	}
}
