package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/annot/config"
	"github.com/revelaction/annot/pipeline"
	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/storage/filesystem"
	"github.com/revelaction/annot/storage/sqlite/zombiezen"
)

const (
	docsDir   = "docs"
	topicsDir = "topics"
)

var errNoStore = errors.New("no store given: use --store or ANNOT_STORE")

// Pool opens the sqlite pool of a store once.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(c *cli.Context, path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.Open(c.Context, path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}

// isSqlite tells if path is a sqlite store: an existing file, or a new path
// with a database extension. Anything else is a filesystem store.
func isSqlite(path string) bool {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir()
	}

	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func storePath(c *cli.Context) (string, error) {
	path := c.String("store")
	if path == "" {
		return "", errNoStore
	}
	return path, nil
}

func NewDocRepository(c *cli.Context, p *Pool, path string) (storage.DocRepository, error) {
	if !isSqlite(path) {
		return filesystem.NewDocStore(filepath.Join(path, docsDir))
	}

	pool, err := p.Open(c, path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func NewTopicRepository(c *cli.Context, p *Pool, path string) (storage.TopicRepository, error) {
	if !isSqlite(path) {
		return filesystem.NewTopicStore(filepath.Join(path, topicsDir)), nil
	}

	pool, err := p.Open(c, path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewTopicStore(pool), nil
}

// newLogger returns a text logger on w and its level, so that the config
// file can set it when the flag is not given.
func newLogger(c *cli.Context, w io.Writer) (*slog.Logger, *slog.LevelVar, error) {
	level := new(slog.LevelVar)
	if c.IsSet("log-level") {
		l, err := config.ParseLevel(c.String("log-level"))
		if err != nil {
			return nil, nil, err
		}
		level.Set(l)
	} else {
		level.Set(slog.LevelWarn)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, level, nil
}

// newPipeline builds the pipeline of the configuration, the command line
// flags (--disable, --workers) take precedence. A non nil reg gets the
// pipeline metrics.
func newPipeline(c *cli.Context, ui UI, reg prometheus.Registerer) (*pipeline.Pipeline, error) {
	logger, level, err := newLogger(c, ui.Err)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader(logger).Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if !c.IsSet("log-level") && cfg.Log.Level != "" {
		l, err := config.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		level.Set(l)
	}

	if c.IsSet("workers") {
		cfg.Pipeline.Workers = c.Int("workers")
	}
	cfg.Pipeline.Disable = append(cfg.Pipeline.Disable, c.StringSlice("disable")...)

	var metrics *pipeline.Metrics
	if reg != nil {
		metrics, err = pipeline.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
	}

	opts, err := cfg.Options(logger, metrics)
	if err != nil {
		return nil, err
	}

	return pipeline.New(opts)
}

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "disable",
			Usage: "disable a `STAGE` (tokenize, ssplit, pos, lemma, ner, parse) and the stages depending on it",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "sentences annotated at once (0 = number of CPUs)",
		},
	}
}
