package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
)

// UI contains the input and output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(ui).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "annot: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "annot",
		Usage:     "annotate english text: tokens, sentences, POS tags, lemmas, entities and dependencies",
		Version:   BuildTag,
		Reader:    ui.In,
		Writer:    ui.Out,
		ErrWriter: ui.Err,

		EnableBashCompletion: true,

		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration `FILE` (yaml or toml)",
				EnvVars: []string{"ANNOT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Usage:   "document store `PATH`: a directory or a sqlite file",
				EnvVars: []string{"ANNOT_STORE"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colors",
			},
		},

		Commands: []*cli.Command{
			annotateCommand(ui),
			docCommand(ui),
			sentenceCommand(ui),
			labelsCommand(ui),
			queryCommand(ui),
			statCommand(ui),
			replCommand(ui),
			topicCommand(ui),
			topicsCommand(ui),
			editCommand(ui),
			importCommand(ui),
			exportCommand(ui),
			versionCommand(ui),
		},
	}
}
