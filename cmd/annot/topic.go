package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/edit"
	"github.com/revelaction/annot/render"
)

// topicCommand prints the expressions of a topic
func topicCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "topic",
		Usage:     "list the topics of the store, or print the expressions of one",
		ArgsUsage: "[NAME]",
		Action: func(c *cli.Context) error {
			path, err := storePath(c)
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			repo, err := NewTopicRepository(c, pool, path)
			if err != nil {
				return err
			}

			// No name provided (list all)
			if c.NArg() == 0 {
				names, err := repo.Names()
				if err != nil {
					return err
				}

				for topicId, name := range names {
					fmt.Fprintf(ui.Out, "📖 %d %s\n", topicId, name)
				}

				return nil
			}

			tp, err := repo.Topic(c.Args().First())
			if err != nil {
				return err
			}

			render.NewRenderer(ui.Out).Topic(tp.Exprs)
			return nil
		},
	}
}

func editCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit the topics of the store interactively, or apply one edit",
		ArgsUsage: "[TOPIC EXPR...[/]]",
		Action: func(c *cli.Context) error {
			path, err := storePath(c)
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			repo, err := NewTopicRepository(c, pool, path)
			if err != nil {
				return err
			}

			lib, err := repo.All()
			if err != nil {
				return err
			}

			hdl := edit.NewHandler(ui.Out, lib, repo)

			// one shot edit from the arguments
			if c.NArg() > 0 {
				return hdl.Exec(strings.Join(c.Args().Slice(), " "))
			}

			return hdl.Run()
		},
	}
}
