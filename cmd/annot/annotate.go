package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uiprogress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annot/render"
	"github.com/revelaction/annot/storage"
)

// input is a text to annotate and its default title
type input struct {
	title string
	text  string
}

func annotateCommand(ui UI) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"t"},
			Usage:   "annotate `TEXT` instead of the files or stdin",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   render.DefaultDocFormat,
			Usage:   strings.Join(render.SupportedDocFormats(), ", "),
		},
		&cli.BoolFlag{
			Name:  "prefix",
			Usage: "prefix sentences with their index",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "title of the stored doc (default: the file name)",
		},
		&cli.StringSliceFlag{
			Name:  "label",
			Usage: "`LABEL` of the stored doc",
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "print the pipeline metrics to stderr",
		},
	}

	return &cli.Command{
		Name:      "annotate",
		Usage:     "annotate text from --text, files or stdin; store it with --store",
		ArgsUsage: "[FILE...]",
		Flags:     append(flags, pipelineFlags()...),
		Action: func(c *cli.Context) error {
			return annotateAction(c, ui)
		},
	}
}

func annotateAction(c *cli.Context, ui UI) error {
	inputs, err := readInputs(c, ui)
	if err != nil {
		return err
	}

	var reg *prometheus.Registry
	if c.Bool("metrics") {
		reg = prometheus.NewRegistry()
	}

	p, err := newPipeline(c, ui, registerer(reg))
	if err != nil {
		return err
	}

	var repo storage.DocWriter
	if path := c.String("store"); path != "" {
		pool := &Pool{}
		defer pool.Close()

		repo, err = NewDocRepository(c, pool, path)
		if err != nil {
			return err
		}
	}

	r := render.NewDocRenderer(ui.Out)
	r.Format = c.String("format")
	r.HasColor = !c.Bool("no-color") && !color.NoColor
	r.HasPrefix = c.Bool("prefix")

	// batch import to a store shows a progress bar instead of the docs
	var bar *uiprogress.Bar
	if repo != nil && len(inputs) > 1 {
		progress := uiprogress.New()
		progress.Out = ui.Err
		progress.Start()
		defer progress.Stop()

		bar = progress.AddBar(len(inputs))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	for _, in := range inputs {
		doc, err := p.Annotate(c.Context, in.text)
		if err != nil {
			if in.title != "" {
				return fmt.Errorf("%s: %w", in.title, err)
			}
			return err
		}

		if repo != nil {
			doc.Title = in.title
			if t := c.String("title"); t != "" {
				doc.Title = t
			}
			doc.Labels = c.StringSlice("label")

			id, err := repo.Write(*doc)
			if err != nil {
				return fmt.Errorf("failed to store doc %q: %w", doc.Title, err)
			}
			doc.Id = id
		}

		if bar != nil {
			bar.Incr()
			continue
		}

		if err := r.Render(doc); err != nil {
			return err
		}

		if repo != nil {
			fmt.Fprintf(ui.Err, "📖 %d %s\n", doc.Id, doc.Title)
		}
	}

	if reg != nil {
		return writeMetrics(ui.Err, reg)
	}
	return nil
}

// registerer avoids a typed nil interface
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func readInputs(c *cli.Context, ui UI) ([]input, error) {
	if c.IsSet("text") {
		if c.NArg() > 0 {
			return nil, errors.New("--text and files are exclusive")
		}
		return []input{{text: c.String("text")}}, nil
	}

	if c.NArg() == 0 {
		b, err := io.ReadAll(ui.In)
		if err != nil {
			return nil, err
		}
		return []input{{text: string(b)}}, nil
	}

	inputs := make([]input, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		inputs = append(inputs, input{title: title, text: string(b)})
	}

	return inputs, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
