package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/match"
	"github.com/revelaction/annot/render"
)

// topicsCommand prints the topics matching a stored sentence
func topicsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "topics",
		Usage:     "print the topics of the store matching a sentence",
		ArgsUsage: "DOCID SENTID",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   render.Defaultformat,
				Usage:   strings.Join(render.SupportedFormats(), ", "),
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("usage: topics <docId> <sentenceId>")
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().Get(0))
			}
			sentId, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("invalid sentence id %q", c.Args().Get(1))
			}

			path, err := storePath(c)
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			docRepo, err := NewDocRepository(c, pool, path)
			if err != nil {
				return err
			}
			topicRepo, err := NewTopicRepository(c, pool, path)
			if err != nil {
				return err
			}

			doc, err := docRepo.Read(docId)
			if err != nil {
				return err
			}

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence index %d out of range (0-%d)", sentId, len(doc.Sentences)-1)
			}
			s := doc.Sentences[sentId]

			r := render.NewRenderer(ui.Out)
			r.Sentence(s.Tokens, "✍  ")
			fmt.Fprintln(ui.Out)

			allTopics, err := topicRepo.All()
			if err != nil {
				return err
			}

			r.HasColor = !c.Bool("no-color") && !color.NoColor
			r.HasPrefix = true
			r.PrefixDocFunc = render.PrefixFuncEmpty
			r.Format = c.String("format")

			for _, tp := range allTopics {
				sm := match.NewMatcher(tp).MatchSentence(s)
				if sm == nil {
					continue
				}

				r.Match([]*match.SentenceMatch{sm})
			}

			return nil
		},
	}
}
