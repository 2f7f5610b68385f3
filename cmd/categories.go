package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"disasterwatch/keywords"
)

func categoriesCmd() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the recognized disaster categories",
		Action: func(ctx *cli.Context) error {
			for _, category := range keywords.Categories() {
				fmt.Println(category)
			}
			return nil
		},
	}
}
