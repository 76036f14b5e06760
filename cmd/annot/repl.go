package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/query"
	"github.com/revelaction/annot/render"
)

func replCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "annotate interactively; ?expr queries the last text or the --store",
		Flags: pipelineFlags(),
		Action: func(c *cli.Context) error {
			p, err := newPipeline(c, ui, nil)
			if err != nil {
				return err
			}

			hasColor := !c.Bool("no-color") && !color.NoColor

			dr := render.NewDocRenderer(ui.Out)
			dr.HasColor = hasColor

			r := render.NewRenderer(ui.Out)
			r.HasColor = hasColor
			r.PrefixTopicFunc = render.PrefixFuncEmpty

			h := query.NewHandler(ui.Out, p, dr, r)

			if path := c.String("store"); path != "" {
				pool := &Pool{}
				defer pool.Close()

				repo, err := NewDocRepository(c, pool, path)
				if err != nil {
					return err
				}
				topics, err := NewTopicRepository(c, pool, path)
				if err != nil {
					return err
				}
				lib, err := topics.All()
				if err != nil {
					return err
				}

				h.DocRepo = repo
				h.TopicLibrary = lib
				r.HasPrefix = true
			}

			return h.Run(c.Context)
		},
	}
}
