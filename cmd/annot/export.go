package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/render"
	sent "github.com/revelaction/annot/sentence"
)

var exportExt = map[string]string{
	"json":   ".json",
	"conllu": ".conllu",
}

func exportCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write every stored doc to a file of the --to directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target `DIR`",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "json or conllu",
			},
		},
		Action: func(c *cli.Context) error {
			format := c.String("format")
			ext, ok := exportExt[format]
			if !ok {
				return fmt.Errorf("unsupported export format %q", format)
			}

			path, err := storePath(c)
			if err != nil {
				return err
			}

			pool := &Pool{}
			defer pool.Close()

			src, err := NewDocRepository(c, pool, path)
			if err != nil {
				return err
			}

			to := c.String("to")
			// Ensure target directory exists
			if err := os.MkdirAll(to, 0755); err != nil {
				return fmt.Errorf("failed to create target directory: %w", err)
			}

			docs, err := src.List("")
			if err != nil {
				return err
			}

			progress := uiprogress.New()
			progress.Out = ui.Err
			progress.Start()
			defer progress.Stop()

			bar := progress.AddBar(max(len(docs), 1))
			bar.AppendCompleted()
			bar.PrependElapsed()

			for _, meta := range docs {
				doc, err := src.Read(meta.Id)
				if err != nil {
					return fmt.Errorf("failed to read doc %s (id %d): %w", meta.Title, meta.Id, err)
				}

				targetPath := filepath.Join(to, fmt.Sprintf("%06d%s", meta.Id, ext))
				if err := writeDoc(targetPath, format, &doc); err != nil {
					return fmt.Errorf("failed to write file %s: %w", targetPath, err)
				}
				bar.Incr()
			}

			fmt.Fprintf(ui.Out, "Successfully exported %d docs to %s\n", len(docs), to)
			return nil
		},
	}
}

func writeDoc(path, format string, doc *sent.Doc) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	r := render.NewDocRenderer(f)
	r.Format = format
	return r.Render(doc)
}
