package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/render"
)

func sentenceCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print the tokens of a stored sentence",
		ArgsUsage: "DOCID SENTID [OFFSET]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return errors.New("usage: sentence <docId> <sentenceId> [offset]")
			}

			var nums []int
			for _, arg := range c.Args().Slice() {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid number %q", arg)
				}
				nums = append(nums, n)
			}
			docId, sentId := nums[0], nums[1]

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

			doc, err := repo.Read(docId)
			if err != nil {
				return err
			}

			if sentId < 0 || sentId >= len(doc.Sentences) {
				return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
			}

			s := doc.Sentences[sentId].Tokens
			r := render.NewRenderer(ui.Out)
			prefix := fmt.Sprintf("✍  %d-%d ", docId, sentId)
			r.Sentence(s, prefix)
			fmt.Fprintln(ui.Out)

			offset := 0
			if len(nums) > 2 {
				offset = nums[2]
			}

			// check len
			if offset < 0 || offset > len(s) {
				return errors.New("offset is greater than length of sentence. Usage <docId> <sentenceId> [offset]")
			}

			for _, token := range s[offset:] {
				fmt.Fprintf(ui.Out, "%20q %15q %8s %6d %6d %8s %6s %s\n", token.Text, token.Lemma, token.Pos, token.Index, token.Head, token.Dep, token.Tag, token.Ent)
			}

			return nil
		},
	}
}
