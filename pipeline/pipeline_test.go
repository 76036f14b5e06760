package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annot/pos"
	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/tokenize"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quiet()
	}
	p, err := New(opts)
	require.NoError(t, err)
	return p
}

func TestAnnotateExample(t *testing.T) {
	p := newPipeline(t, Options{})

	doc, err := p.Annotate(context.Background(), "Dr. Smith met John Kerry. He left.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)

	first := doc.Sentences[0]
	assert.Equal(t, "Dr.", first.Tokens[0].Text)
	assert.True(t, first.Tokens[0].Abbrev)

	last := first.Tokens[len(first.Tokens)-1]
	assert.Equal(t, ".", last.Text)

	kerry := first.Tokens[4]
	assert.Equal(t, "Kerry", kerry.Text)
	assert.Equal(t, "PERSON", kerry.Ent)

	met := first.Tokens[2]
	assert.Equal(t, "meet", met.Lemma)
	assert.True(t, met.IsRoot())

	second := doc.Sentences[1]
	assert.Equal(t, []string{"He", "left", "."}, second.Texts())
	assert.Equal(t, "leave", second.Tokens[1].Lemma)
	assert.Equal(t, 1, second.Tokens[0].SentenceId)
}

func TestAnnotateInvariants(t *testing.T) {
	p := newPipeline(t, Options{Workers: 3})

	texts := []string{
		"Dr. Smith met John Kerry. He left.",
		`He said "no." She visited New York on March 5. Hello world again`,
		"Wait... what?! I can't go (it's cold). Mary's dog barked loudly.",
		"Boston, NASA and Acme Corp. bought 300 dogs in 2020 -- really.",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			doc, err := p.Annotate(context.Background(), text)
			require.NoError(t, err)

			runes := []rune(doc.Text)
			last := 0
			for _, s := range doc.Sentences {
				require.NotNil(t, s.Tree)
				assert.NoError(t, s.Tree.Validate(len(s.Tokens)))

				for i, tk := range s.Tokens {
					assert.GreaterOrEqual(t, tk.Idx, last)
					assert.Equal(t, tk.Text, string(runes[tk.Idx:tk.End]))
					assert.Equal(t, i, tk.Index)
					assert.NotEmpty(t, tk.Tag)
					assert.NotEmpty(t, tk.Lemma)
					assert.NotEmpty(t, tk.Ent)
					last = tk.End
				}
			}
		})
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	p := newPipeline(t, Options{Workers: 4})
	text := strings.Repeat("Dr. Smith met John Kerry. He left. ", 20)

	a, err := p.Annotate(context.Background(), text)
	require.NoError(t, err)
	b, err := p.Annotate(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAnnotateOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "Sentence number %d is here. ", i)
	}

	p := newPipeline(t, Options{Workers: 8})
	doc, err := p.Annotate(context.Background(), b.String())
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 50)

	for i, s := range doc.Sentences {
		assert.Equal(t, i, s.Id)
		assert.Equal(t, fmt.Sprint(i), s.Tokens[2].Text)
	}
}

func TestAnnotateEmpty(t *testing.T) {
	p := newPipeline(t, Options{})

	for _, text := range []string{"", "  \n "} {
		doc, err := p.Annotate(context.Background(), text)
		require.NoError(t, err)
		assert.Empty(t, doc.Sentences)
	}
}

func TestAnnotateUnknownWord(t *testing.T) {
	p := newPipeline(t, Options{})

	doc, err := p.Annotate(context.Background(), "I met Zyzzx.")
	require.NoError(t, err)
	assert.Equal(t, pos.Unknown, doc.Sentences[0].Tokens[2].Tag)
}

func TestAnnotateSingleToken(t *testing.T) {
	p := newPipeline(t, Options{})

	doc, err := p.Annotate(context.Background(), "Hello")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)

	tree := doc.Sentences[0].Tree
	assert.Equal(t, 0, tree.Root)
	assert.Empty(t, tree.Arcs)
}

func TestAnnotateNormalizes(t *testing.T) {
	decomposed := "Cafe\u0301 opened."

	// offsets point in the text as given, token texts are NFC
	p := newPipeline(t, Options{})
	doc, err := p.Annotate(context.Background(), decomposed)
	require.NoError(t, err)
	assert.Equal(t, decomposed, doc.Text)

	tokens := doc.Tokens()
	assert.Equal(t, "Caf\u00e9", tokens[0].Text)
	assert.Equal(t, 0, tokens[0].Idx)
	assert.Equal(t, 5, tokens[0].End)
	assert.Equal(t, 6, tokens[1].Idx)
	assert.Equal(t, 12, tokens[1].End)
	assert.Equal(t, 12, tokens[2].Idx)
	assert.Equal(t, 13, tokens[2].End)

	p = newPipeline(t, Options{SkipNormalize: true})
	doc, err = p.Annotate(context.Background(), decomposed)
	require.NoError(t, err)
	assert.Equal(t, decomposed, doc.Text)
	assert.Equal(t, decomposed[:6], doc.Sentences[0].Tokens[0].Text)
	assert.Equal(t, 5, doc.Sentences[0].Tokens[0].End)
}

func TestAnnotateInputErrors(t *testing.T) {
	p := newPipeline(t, Options{MaxLength: 10})

	_, err := p.Annotate(context.Background(), "bad \xff input")
	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, tokenize.ErrMalformed)

	doc, err := p.Annotate(context.Background(), "this text is longer than ten")
	assert.Nil(t, doc)
	require.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestDisableNER(t *testing.T) {
	p := newPipeline(t, Options{Disable: []Stage{NER}})

	doc, err := p.Annotate(context.Background(), "Dr. Smith met John Kerry.")
	require.NoError(t, err)

	for _, tk := range doc.Tokens() {
		assert.Empty(t, tk.Ent)
		assert.NotEmpty(t, tk.Tag)
		assert.NotEmpty(t, tk.Lemma)
	}

	assert.Equal(t, "Kerry (O)", doc.Project().NamedEntities[4])
}

func TestDisableCascades(t *testing.T) {
	p := newPipeline(t, Options{Disable: []Stage{POS}})

	assert.Equal(t, []Stage{Tokenize, Split}, p.Stages())

	doc, err := p.Annotate(context.Background(), "He left. She stayed.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)
	assert.Nil(t, doc.Sentences[0].Tree)
	for _, tk := range doc.Tokens() {
		assert.Empty(t, tk.Tag)
		assert.Empty(t, tk.Lemma)
	}
}

func TestSplitDisabled(t *testing.T) {
	p := newPipeline(t, Options{Stages: []Stage{Tokenize}})

	doc, err := p.Annotate(context.Background(), "He left. She stayed.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)
	assert.Len(t, doc.Sentences[0].Tokens, 6)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"missing prerequisite", Options{Stages: []Stage{Tokenize, Split, NER}}, ErrMissingPrerequisite},
		{"unknown stage", Options{Stages: []Stage{"coref"}}, ErrUnknownStage},
		{"unknown disabled", Options{Disable: []Stage{"coref"}}, ErrUnknownStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := New(Options{Workers: -1})
	assert.Error(t, err)
}

func TestParseStage(t *testing.T) {
	st, err := ParseStage("ssplit")
	require.NoError(t, err)
	assert.Equal(t, Split, st)

	stages, err := ParseStages([]string{"tokenize", " POS "})
	require.NoError(t, err)
	assert.Equal(t, []Stage{Tokenize, POS}, stages)

	_, err = ParseStage("sentiment")
	assert.ErrorIs(t, err, ErrUnknownStage)
}

// failingTagger returns an invalid candidate for tokens with text fail.
type failingTagger struct {
	inner pos.Scorer
	fail  string
}

func (f failingTagger) ScoreCandidates(tokens []sent.Token, i int, prev string) []pos.Candidate {
	if tokens[i].Text == f.fail {
		return []pos.Candidate{{Tag: "NN", Prob: -1}}
	}
	return f.inner.ScoreCandidates(tokens, i, prev)
}

func TestStageFailureLowestSentence(t *testing.T) {
	text := "Good one. Bad two. Fine three. Bad four."

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprint(workers), func(t *testing.T) {
			p := newPipeline(t, Options{
				Workers: workers,
				Tagger:  failingTagger{inner: pos.NewModel(), fail: "Bad"},
			})

			doc, err := p.Annotate(context.Background(), text)
			assert.Nil(t, doc)

			var sf *StageFailure
			require.True(t, errors.As(err, &sf))
			assert.Equal(t, POS, sf.Stage)
			assert.Equal(t, 1, sf.Sentence)
			assert.Equal(t, 0, sf.Token)
			assert.ErrorIs(t, err, pos.ErrInvalidProb)
		})
	}
}

type panickyNER struct{}

func (panickyNER) ScoreEntitySpan(tokens []sent.Token, start, end int) (string, float64) {
	panic("model crashed")
}

func TestStagePanic(t *testing.T) {
	p := newPipeline(t, Options{NERModel: panickyNER{}})

	_, err := p.Annotate(context.Background(), "He left.")

	var sf *StageFailure
	require.True(t, errors.As(err, &sf))
	assert.Equal(t, NER, sf.Stage)
	assert.Equal(t, 0, sf.Sentence)
	assert.Contains(t, err.Error(), "model crashed")
}

// cancelingTagger cancels the request on its first call.
type cancelingTagger struct {
	inner  pos.Scorer
	cancel context.CancelFunc
}

func (c cancelingTagger) ScoreCandidates(tokens []sent.Token, i int, prev string) []pos.Candidate {
	c.cancel()
	return c.inner.ScoreCandidates(tokens, i, prev)
}

func TestAnnotateCanceled(t *testing.T) {
	p := newPipeline(t, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc, err := p.Annotate(ctx, "He left.")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	p = newPipeline(t, Options{Workers: 1, Tagger: cancelingTagger{inner: pos.NewModel(), cancel: cancel}})

	doc, err = p.Annotate(ctx, strings.Repeat("He left. ", 10))
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	p := newPipeline(t, Options{Metrics: m})

	_, err = p.Annotate(context.Background(), "Dr. Smith met John Kerry. He left.")
	require.NoError(t, err)
	_, err = p.Annotate(context.Background(), "\xff")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Documents))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Sentences))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.Tokens))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("input")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
