package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/storage/filesystem"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy the docs and topics of a directory store into the --store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "directory store `PATH`",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			to, err := storePath(c)
			if err != nil {
				return err
			}

			from := c.String("from")
			if isSqlite(from) {
				return errors.New("--from must be a directory store")
			}
			if filepath.Clean(from) == filepath.Clean(to) {
				return errors.New("--from and --store are the same store")
			}

			src, err := filesystem.NewDocStore(filepath.Join(from, docsDir))
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			dst, err := NewDocRepository(c, pool, to)
			if err != nil {
				return err
			}

			fmt.Fprintf(ui.Out, "Reading docs from %s...\n", from)

			progress := uiprogress.New()
			progress.Out = ui.Err
			progress.Start()
			bar := progress.AddBar(1)
			bar.AppendCompleted()
			bar.PrependElapsed()

			var currentName string
			bar.AppendFunc(func(b *uiprogress.Bar) string {
				return currentName
			})

			err = src.Preload(func(current, total int, name string) {
				if bar.Total != total {
					bar.Total = total
				}
				currentName = name
				bar.Set(current)
			})
			progress.Stop()
			if err != nil {
				return err
			}

			docs, err := src.List("")
			if err != nil {
				return err
			}

			count := 0
			for _, meta := range docs {
				doc, err := src.Read(meta.Id)
				if err != nil {
					return fmt.Errorf("failed to read doc %s: %w", meta.Title, err)
				}

				if _, err := dst.Write(doc); err != nil {
					return fmt.Errorf("failed to write doc %s: %w", meta.Title, err)
				}
				count++
			}

			srcTopics := filesystem.NewTopicStore(filepath.Join(from, topicsDir))
			lib, err := srcTopics.All()
			if err != nil {
				return err
			}

			dstTopics, err := NewTopicRepository(c, pool, to)
			if err != nil {
				return err
			}
			for _, tp := range lib {
				if err := dstTopics.Write(tp); err != nil {
					return fmt.Errorf("failed to write topic %s: %w", tp.Name, err)
				}
			}

			fmt.Fprintf(ui.Out, "Successfully imported %d docs and %d topics from %s to %s\n", count, len(lib), from, to)
			return nil
		},
	}
}
