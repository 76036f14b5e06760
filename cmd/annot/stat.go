package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/stat"
)

const topValues = 10

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics of a stored doc, a sentence, or the whole store",
		ArgsUsage: "[DOCID [SENTID]]",
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

			hdl := stat.NewHandler()

			if c.NArg() == 0 {
				docs, err := repo.List("")
				if err != nil {
					return err
				}
				for _, d := range docs {
					doc, err := repo.Read(d.Id)
					if err != nil {
						return err
					}
					hdl.Aggregate(doc)
				}

				writeStats(ui.Out, hdl.Get())
				return nil
			}

			docId, err := strconv.Atoi(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid doc id %q", c.Args().Get(0))
			}

			doc, err := repo.Read(docId)
			if err != nil {
				return err
			}

			if c.NArg() > 1 {
				sentId, err := strconv.Atoi(c.Args().Get(1))
				if err != nil {
					return fmt.Errorf("invalid sentence id %q", c.Args().Get(1))
				}
				if sentId < 0 || sentId >= len(doc.Sentences) {
					return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
				}
				doc = sent.Doc{Text: doc.Text, Sentences: []sent.Sentence{doc.Sentences[sentId]}}
			}

			hdl.Aggregate(doc)
			writeStats(ui.Out, hdl.Get())
			return nil
		},
	}
}

func writeStats(w io.Writer, stats stat.Stats) {
	fmt.Fprintf(w, "Num docs %s, num sentences %s, num tokens %s, num tokens per sentence %d, num entities %s\n",
		humanize.Comma(int64(stats.NumDocs)),
		humanize.Comma(int64(stats.NumSentences)),
		humanize.Comma(int64(stats.NumTokens)),
		stats.TokensPerSentenceMean,
		humanize.Comma(int64(stats.NumEntities)),
	)

	for _, dis := range []struct {
		name string
		dis  map[string]int
	}{
		{"tags", stats.TagDis},
		{"pos", stats.PosDis},
		{"entities", stats.EntityDis},
	} {
		if len(dis.dis) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:", dis.name)
		for _, c := range stat.Top(dis.dis, topValues) {
			fmt.Fprintf(w, " %s=%s", c.Value, humanize.Comma(int64(c.N)))
		}
		fmt.Fprintln(w)
	}
}
