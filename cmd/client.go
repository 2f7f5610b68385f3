package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"disasterwatch/config"
	"disasterwatch/feed"
)

// credentialFlags are shared by every command that talks to the platform.
func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to TOML configuration file",
			EnvVars: []string{"DISASTERWATCH_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Platform API key",
			EnvVars: []string{"DISASTERWATCH_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "api-secret",
			Usage:   "Platform API secret",
			EnvVars: []string{"DISASTERWATCH_API_SECRET"},
		},
		&cli.StringFlag{
			Name:    "access-token",
			Usage:   "Platform access token",
			EnvVars: []string{"DISASTERWATCH_ACCESS_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "access-secret",
			Usage:   "Platform access token secret",
			EnvVars: []string{"DISASTERWATCH_ACCESS_SECRET"},
		},
		&cli.StringFlag{
			Name:    "bearer-token",
			Usage:   "Platform bearer token for the modern API",
			EnvVars: []string{"DISASTERWATCH_BEARER_TOKEN"},
		},
	}
}

// loadConfig reads the optional config file and layers flag values on top.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if path := ctx.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v := ctx.String("api-key"); v != "" {
		cfg.Credentials.APIKey = v
	}
	if v := ctx.String("api-secret"); v != "" {
		cfg.Credentials.APISecret = v
	}
	if v := ctx.String("access-token"); v != "" {
		cfg.Credentials.AccessToken = v
	}
	if v := ctx.String("access-secret"); v != "" {
		cfg.Credentials.AccessSecret = v
	}
	if v := ctx.String("bearer-token"); v != "" {
		cfg.Credentials.BearerToken = v
	}

	return cfg, nil
}

func newFeedClient(cfg *config.Config) *feed.Client {
	return feed.NewClient(feed.Credentials{
		APIKey:       cfg.Credentials.APIKey,
		APISecret:    cfg.Credentials.APISecret,
		AccessToken:  cfg.Credentials.AccessToken,
		AccessSecret: cfg.Credentials.AccessSecret,
		BearerToken:  cfg.Credentials.BearerToken,
	},
		feed.WithChunking(cfg.ChunkSize, cfg.MaxKeywords),
		feed.WithPacing(cfg.ChunkDelay, cfg.ErrorDelay),
	)
}

// printJSONLine writes v to stdout as a single JSON line. Use jq or similar
// to process the output.
func printJSONLine(v interface{}) {
	encoded, err := json.Marshal(v)
	if err == nil {
		fmt.Println(string(encoded))
	}
}
