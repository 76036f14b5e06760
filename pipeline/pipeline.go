// Package pipeline runs the annotation stages over a text and assembles the
// annotated document.
//
// Tokenization and sentence splitting run over the whole text. The
// sentence stages (pos, then lemma, ner and parse) run per sentence on a
// bounded pool of goroutines; sentences are independent and every task
// writes only its own sentence. A Pipeline is read only once built and can
// serve concurrent Annotate calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/annot/depparse"
	"github.com/revelaction/annot/lemma"
	"github.com/revelaction/annot/ner"
	"github.com/revelaction/annot/pos"
	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/ssplit"
	"github.com/revelaction/annot/tokenize"
)

// Options configures a Pipeline. The zero value runs all stages with the
// reference models.
type Options struct {
	// Stages is the explicit set of enabled stages, nil for all.
	Stages []Stage
	// Disable removes stages and the stages depending on them.
	Disable []Stage

	// Abbreviations replaces the tokenizer abbreviations when not nil.
	Abbreviations []string
	// ExtraAbbreviations are added to the tokenizer abbreviations.
	ExtraAbbreviations []string
	// Clitics replaces the tokenizer clitic table when not nil.
	Clitics []string
	// SkipNormalize disables the NFC normalization of the input.
	SkipNormalize bool

	Tagger      pos.Scorer
	NERModel    ner.Scorer
	ParserModel depparse.Scorer
	Grammar     *depparse.Grammar
	Lemmatizer  *lemma.Lemmatizer
	// MaxSpan is the longest entity span in tokens, 0 for the default.
	MaxSpan int

	// Workers bounds the sentence tasks running at once, 0 for GOMAXPROCS.
	Workers int
	// MaxLength is the maximum text length in runes, 0 for no limit.
	MaxLength int

	Logger  *slog.Logger
	Metrics *Metrics
}

type Pipeline struct {
	enabled map[Stage]bool

	tokenizer  *tokenize.Tokenizer
	splitter   *ssplit.Splitter
	tagger     *pos.Tagger
	lemmatizer *lemma.Lemmatizer
	recognizer *ner.Recognizer
	parser     *depparse.Parser

	normalize bool
	workers   int
	maxLength int

	logger  *slog.Logger
	metrics *Metrics
}

// New validates opts and builds the Pipeline. Configuration problems are
// returned as *ConfigError.
func New(opts Options) (*Pipeline, error) {
	enabled, err := resolve(opts.Stages, opts.Disable)
	if err != nil {
		return nil, err
	}

	if opts.Workers < 0 {
		return nil, &ConfigError{Err: fmt.Errorf("invalid workers %d", opts.Workers)}
	}
	if opts.MaxLength < 0 {
		return nil, &ConfigError{Err: fmt.Errorf("invalid max length %d", opts.MaxLength)}
	}
	if opts.MaxSpan < 0 {
		return nil, &ConfigError{Stage: NER, Err: fmt.Errorf("invalid max span %d", opts.MaxSpan)}
	}

	var tokOpts []tokenize.Option
	if opts.Abbreviations != nil {
		tokOpts = append(tokOpts, tokenize.WithAbbreviations(opts.Abbreviations))
	}
	if len(opts.ExtraAbbreviations) > 0 {
		tokOpts = append(tokOpts, tokenize.WithExtraAbbreviations(opts.ExtraAbbreviations))
	}
	if opts.Clitics != nil {
		tokOpts = append(tokOpts, tokenize.WithClitics(opts.Clitics))
	}

	tagger := opts.Tagger
	if tagger == nil {
		tagger = pos.NewModel()
	}
	nerModel := opts.NERModel
	if nerModel == nil {
		nerModel = ner.NewModel()
	}
	parserModel := opts.ParserModel
	if parserModel == nil {
		parserModel = depparse.NewModel()
	}
	lemmatizer := opts.Lemmatizer
	if lemmatizer == nil {
		lemmatizer = lemma.New()
	}

	var parserOpts []depparse.Option
	if opts.Grammar != nil {
		parserOpts = append(parserOpts, depparse.WithGrammar(opts.Grammar))
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		enabled:    enabled,
		tokenizer:  tokenize.New(tokOpts...),
		splitter:   ssplit.New(),
		tagger:     pos.NewTagger(tagger),
		lemmatizer: lemmatizer,
		recognizer: ner.NewRecognizer(nerModel, ner.WithMaxSpan(opts.MaxSpan)),
		parser:     depparse.NewParser(parserModel, parserOpts...),
		normalize:  !opts.SkipNormalize,
		workers:    workers,
		maxLength:  opts.MaxLength,
		logger:     logger,
		metrics:    opts.Metrics,
	}, nil
}

// Enabled reports whether st runs.
func (p *Pipeline) Enabled(st Stage) bool {
	return p.enabled[st]
}

// Stages returns the enabled stages in execution order.
func (p *Pipeline) Stages() []Stage {
	var stages []Stage
	for _, st := range AllStages {
		if p.enabled[st] {
			stages = append(stages, st)
		}
	}
	return stages
}

// Annotate returns the annotated document of text. Errors are
// *InputError, *StageFailure or the context error; no document is returned
// with an error. The context is checked between stages and before every
// sentence task.
func (p *Pipeline) Annotate(ctx context.Context, text string) (*sent.Doc, error) {
	logger := p.logger.With(slog.String("request", uuid.NewString()))
	start := time.Now()

	doc, err := p.annotate(ctx, text, logger)
	if err != nil {
		p.metrics.fail(kind(err))
		logger.Warn("annotation failed", slog.String("error", err.Error()))
		return nil, err
	}

	p.metrics.done(len(doc.Sentences), doc.NumTokens())
	logger.Debug("annotated",
		slog.Int("sentences", len(doc.Sentences)),
		slog.Int("tokens", doc.NumTokens()),
		slog.Duration("elapsed", time.Since(start)))

	return doc, nil
}

func (p *Pipeline) annotate(ctx context.Context, text string, logger *slog.Logger) (*sent.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	if !utf8.ValidString(text) {
		return nil, &InputError{Err: tokenize.ErrMalformed}
	}
	if p.maxLength > 0 {
		if n := utf8.RuneCountInString(text); n > p.maxLength {
			return nil, &InputError{Err: fmt.Errorf("%w: %d runes, limit %d", ErrTooLong, n, p.maxLength)}
		}
	}

	doc := &sent.Doc{Text: text}
	if !p.enabled[Tokenize] {
		return doc, nil
	}

	// tokens are scanned on the NFC text, their offsets point in text
	normalized := text
	var offsets []int
	if p.normalize {
		var err error
		if normalized, offsets, err = tokenize.NormalizeOffsets(text); err != nil {
			return nil, &InputError{Err: err}
		}
	}

	begin := time.Now()
	tokens, err := p.tokenizer.Tokenize(normalized)
	if err != nil {
		return nil, &StageFailure{Stage: Tokenize, Sentence: -1, Token: -1, Err: err}
	}
	if offsets != nil {
		tokenize.Remap(tokens, offsets)
	}
	p.metrics.observe(Tokenize, begin)
	logger.Debug("tokenized", slog.Int("tokens", len(tokens)))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	if p.enabled[Split] {
		begin = time.Now()
		doc.Sentences = p.splitter.Split(tokens)
		p.metrics.observe(Split, begin)
	} else {
		doc.Sentences = ssplit.Single(tokens)
	}

	if !p.enabled[POS] || len(doc.Sentences) == 0 {
		return doc, nil
	}

	if err := p.annotateSentences(ctx, doc.Sentences); err != nil {
		return nil, err
	}

	return doc, nil
}

// annotateSentences runs the sentence stages on the pool. When several
// sentences fail the lowest failing sentence is reported: once a failure
// is seen no new task starts, and every task already started has a lower
// index and runs to completion.
func (p *Pipeline) annotateSentences(ctx context.Context, sentences []sent.Sentence) error {
	errs := make([]error, len(sentences))
	var failed atomic.Bool

	var g errgroup.Group
	g.SetLimit(min(p.workers, len(sentences)))

	for i := range sentences {
		if failed.Load() || ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := p.annotateSentence(&sentences[i]); err != nil {
				errs[i] = err
				failed.Store(true)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("annotate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// annotateSentence runs pos, lemma, ner and parse on one sentence. A panic
// of a collaborator is returned as a StageFailure of the running stage.
func (p *Pipeline) annotateSentence(s *sent.Sentence) (err error) {
	stage := POS
	defer func() {
		if r := recover(); r != nil {
			err = &StageFailure{Stage: stage, Sentence: s.Id, Token: -1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	run := func(st Stage, f func() error) error {
		if !p.enabled[st] {
			return nil
		}
		stage = st
		begin := time.Now()
		if err := f(); err != nil {
			return failure(st, s.Id, err)
		}
		p.metrics.observe(st, begin)
		return nil
	}

	if err := run(POS, func() error { return p.tagger.Tag(s) }); err != nil {
		return err
	}
	if err := run(Lemma, func() error { return p.lemmatizer.Lemmatize(s) }); err != nil {
		return err
	}
	if err := run(NER, func() error { return p.recognizer.Recognize(s) }); err != nil {
		return err
	}

	return run(Parse, func() error {
		tree, err := p.parser.Parse(s.Tokens)
		if err != nil {
			return err
		}
		if err := tree.Validate(len(s.Tokens)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTree, err)
		}
		s.SetTree(tree)
		return nil
	})
}

func failure(st Stage, sentence int, err error) *StageFailure {
	f := &StageFailure{Stage: st, Sentence: sentence, Token: -1, Err: err}

	var te *sent.TokenError
	if errors.As(err, &te) {
		f.Token = te.Index
		f.Err = te.Err
	}
	return f
}

func kind(err error) string {
	var (
		ie *InputError
		sf *StageFailure
		ce *ConfigError
	)
	switch {
	case errors.As(err, &ie):
		return "input"
	case errors.As(err, &sf):
		return "stage"
	case errors.As(err, &ce):
		return "config"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
