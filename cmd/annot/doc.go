package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/render"
	sent "github.com/revelaction/annot/sentence"
)

func docCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "doc",
		Usage:     "list the stored docs, or print one",
		ArgsUsage: "[ID]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "label",
				Usage: "list only docs with a label containing `MATCH`",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.DefaultDocFormat,
				Usage:   strings.Join(render.SupportedDocFormats(), ", "),
			},
			&cli.IntFlag{
				Name:  "start",
				Usage: "first sentence to print",
			},
			&cli.IntFlag{
				Name:  "end",
				Usage: "last sentence to print",
				Value: -1,
			},
		},
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

			if c.NArg() == 0 {
				docs, err := repo.List(c.String("label"))
				if err != nil {
					return err
				}

				for _, doc := range docs {
					fmt.Fprintf(ui.Out, "📖 %d %s %s\n", doc.Id, doc.Title, strings.Join(doc.Labels, ","))
				}
				return nil
			}

			id, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().First())
			}

			doc, err := repo.Read(id)
			if err != nil {
				return err
			}

			doc.Sentences = sentenceRange(doc.Sentences, c.Int("start"), c.Int("end"))

			r := render.NewDocRenderer(ui.Out)
			r.Format = c.String("format")
			r.HasColor = !c.Bool("no-color") && !color.NoColor
			r.HasPrefix = true
			return r.Render(&doc)
		},
	}
}

// sentenceRange returns the sentences with index in [start, end], end < 0
// is the last one.
func sentenceRange(sentences []sent.Sentence, start, end int) []sent.Sentence {
	var out []sent.Sentence
	for i, s := range sentences {
		if i < start || (end >= 0 && i > end) {
			continue
		}
		out = append(out, s)
	}
	return out
}
