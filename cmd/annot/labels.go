package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func labelsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the labels of the stored docs",
		ArgsUsage: "[MATCH]",
		Action: func(c *cli.Context) error {
			path, err := storePath(c)
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			repo, err := NewDocRepository(c, pool, path)
			if err != nil {
				return err
			}

			labels, err := repo.Labels(c.Args().First())
			if err != nil {
				return err
			}

			for _, l := range labels {
				fmt.Fprintf(ui.Out, "🔖 %s\n", l)
			}
			return nil
		},
	}
}
