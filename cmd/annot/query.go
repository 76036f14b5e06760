package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/render"
	"github.com/revelaction/annot/search"
	"github.com/revelaction/annot/topic"
)

func queryCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "find the stored sentences matching an expression or a topic",
		ArgsUsage: "[EXPR...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "doc",
				Usage: "search only the doc `ID`",
			},
			&cli.StringFlag{
				Name:  "topic",
				Usage: "match the expressions of the topic `NAME`",
			},
			&cli.StringSliceFlag{
				Name:  "label",
				Usage: "search only docs with `LABEL`",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.Defaultformat,
				Usage:   strings.Join(render.SupportedFormats(), ", "),
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "write the matches as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-prefix",
				Usage: "do not prefix the sentences with doc and sentence ids",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "stop after `N` sentences (0 = all)",
			},
			&cli.IntFlag{
				Name:  "matches",
				Usage: "show only sentences matching at least `N` topic expressions",
			},
		},
		Action: func(c *cli.Context) error {
			return queryAction(c, ui)
		},
	}
}

func queryAction(c *cli.Context, ui UI) error {
	if c.NArg() == 0 && c.String("topic") == "" {
		return errors.New("no expression and no --topic given")
	}

	var expr topic.TopicExpr
	if c.NArg() > 0 {
		var err error
		expr, err = topic.Parse(c.Args().Slice())
		if err != nil {
			return err
		}
	}

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

	var tp topic.Topic
	if name := c.String("topic"); name != "" {
		topics, err := NewTopicRepository(c, pool, path)
		if err != nil {
			return err
		}
		tp, err = topics.Topic(name)
		if err != nil {
			return err
		}
	}

	s := search.New(tp, repo).WithLabels(c.StringSlice("label")).WithLimit(c.Int("limit"))
	if c.IsSet("doc") {
		s = s.WithDocID(c.Int("doc"))
	}

	results, err := s.Sentences(c.Context, expr)
	if err != nil {
		return err
	}

	var mr render.MatchRenderer
	if c.Bool("json") {
		mr = render.NewJSONRenderer(ui.Out)
	} else {
		r := render.NewRenderer(ui.Out)
		r.Format = c.String("format")
		r.HasColor = !c.Bool("no-color") && !color.NoColor
		r.HasPrefix = !c.Bool("no-prefix")
		r.NumMatches = c.Int("matches")
		if tp.Name == "" {
			r.PrefixTopicFunc = render.PrefixFuncEmpty
		}
		mr = r
	}

	if err := mr.Render(results); err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(ui.Err, "no matches")
	}
	return nil
}
