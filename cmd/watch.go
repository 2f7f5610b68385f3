package cmd

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"disasterwatch/keywords"
	"disasterwatch/models"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch the real-time feed for disaster posts",
		Description: `Watches the platform's filtered real-time feed for posts matching
the chosen category's keywords (or explicit --keyword values) until the
time limit elapses.

Returns each post as a JSON object on a single line. Use a tool like jq to
process the output. All other log messages go to stderr.`,
		Flags: append(credentialFlags(),
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"t"},
				Usage:   "Disaster category whose keywords to track",
				EnvVars: []string{"DISASTERWATCH_CATEGORY"},
			},
			&cli.StringSliceFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "Explicit keyword to track (repeatable, overrides --category)",
			},
			&cli.DurationFlag{
				Name:    "time-limit",
				Value:   60 * time.Second,
				Usage:   "How long to keep the stream open",
				EnvVars: []string{"DISASTERWATCH_TIME_LIMIT"},
			},
		),
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			kws := ctx.StringSlice("keyword")
			if len(kws) == 0 {
				kws = keywords.ForCategory(ctx.String("category"))
			}

			timeLimit := ctx.Duration("time-limit")
			if !ctx.IsSet("time-limit") && cfg.TimeLimit > 0 {
				timeLimit = cfg.TimeLimit
			}

			client := newFeedClient(cfg)
			client.Stream(ctx.Context, kws, func(post models.Post) {
				printJSONLine(post)
			}, timeLimit)

			return nil
		},
	}
}
