package cmd

import (
	"os"

	"github.com/cqroot/prompt"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"disasterwatch/analysis"
	"disasterwatch/keywords"
	"disasterwatch/models"
)

type scoredPost struct {
	models.Post
	Impact string `json:"impact,omitempty"`
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search recent posts for a disaster category",
		Description: `Searches recent posts using the keyword catalog for the chosen
disaster category. When no category is given you are prompted to pick one.

Returns each post as a JSON object on a single line. Use a tool like jq to
process the output. All other log messages go to stderr.`,
		Flags: append(credentialFlags(),
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"t"},
				Usage:   "Disaster category (e.g. Flood, Cyclone) or All",
				EnvVars: []string{"DISASTERWATCH_CATEGORY"},
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Value:   100,
				Usage:   "Maximum number of posts to retrieve",
				EnvVars: []string{"DISASTERWATCH_LIMIT"},
			},
			&cli.StringFlag{
				Name:    "lang",
				Usage:   "Language filter for posts",
				EnvVars: []string{"DISASTERWATCH_LANG"},
			},
			&cli.BoolFlag{
				Name:  "impact",
				Usage: "Annotate each post with its impact level",
			},
		),
		Action: func(ctx *cli.Context) error {
			// Keep stdout clean for the JSON output
			log.SetOutput(os.Stderr)

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			category := ctx.String("category")
			if category == "" {
				choices := append([]string{keywords.AllCategories}, keywords.Categories()...)
				category, err = prompt.New().Ask("Disaster category:").Choose(choices)
				if err != nil {
					return err
				}
			}

			lang := cfg.Language
			if v := ctx.String("lang"); v != "" {
				lang = v
			}

			client := newFeedClient(cfg)
			posts := client.SearchPosts(ctx.Context, keywords.ForCategory(category), ctx.Int("limit"), lang)

			for _, post := range posts {
				if ctx.Bool("impact") {
					printJSONLine(scoredPost{Post: post, Impact: analysis.ImpactLevel(post.Text)})
					continue
				}
				printJSONLine(post)
			}

			return nil
		},
	}
}
