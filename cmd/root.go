package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "disasterwatch",
		Usage: "Monitor social media for disaster-related posts",
		Description: `Disasterwatch retrieves and filters microblog posts relevant to
		disaster monitoring: keyword search, trending topics and a
		time-bounded real-time watch, driven by a static catalog of
		disaster keywords.

		Flags can generally be set via environment variables, e.g.:

		--bearer-token => DISASTERWATCH_BEARER_TOKEN=...
		--limit => DISASTERWATCH_LIMIT=100
		`,
		Commands: []*cli.Command{
			searchCmd(),
			trendsCmd(),
			watchCmd(),
			categoriesCmd(),
			mockCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
