package cmd

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"disasterwatch/mockdata"
)

func mockCmd() *cli.Command {
	return &cli.Command{
		Name:  "mock",
		Usage: "Generate synthetic disaster posts",
		Description: `Generates synthetic posts for a disaster category, useful when
platform credentials are unavailable or rate limited.

Returns each post as a JSON object on a single line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"t"},
				Value:   "All",
				Usage:   "Disaster category to generate posts for",
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Value:   50,
				Usage:   "Number of posts to generate",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Random seed for reproducible output",
			},
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			seed := ctx.Int64("seed")
			if !ctx.IsSet("seed") {
				seed = time.Now().UnixNano()
			}

			gen := mockdata.NewGenerator(seed, nil)
			for _, post := range gen.Posts(ctx.String("category"), ctx.Int("count")) {
				printJSONLine(post)
			}

			return nil
		},
	}
}
