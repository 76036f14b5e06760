package pos

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/tokenize"
)

func tagText(t *testing.T, text string) *sent.Sentence {
	t.Helper()

	tokens, err := tokenize.New().Tokenize(text)
	require.NoError(t, err)

	s := &sent.Sentence{Tokens: tokens}
	require.NoError(t, NewTagger(NewModel()).Tag(s))
	return s
}

func tags(s *sent.Sentence) []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = t.Tag
	}
	return out
}

func TestModelTag(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Dr. Smith met John Kerry.", []string{"NNP", Unknown, "VBD", "NNP", Unknown, "."}},
		{"He left.", []string{"PRP", "VBD", "."}},
		{"I can't go.", []string{"PRP", "MD", "RB", "VB", "."}},
		{"The dogs barked loudly.", []string{"DT", "NNS", "VBD", "RB", "."}},
		{"John's dog", []string{"NNP", "POS", "NN"}},
		{"He's here", []string{"PRP", "VBZ", "RB"}},
		{"Boston has 3.14 NASA", []string{"NNP", "VBZ", "CD", "NNP"}},
		{"Running is fun", []string{"VBG", "VBZ", "NN"}},
		{"The dogs were barking loudly.", []string{"DT", "NNS", "VBD", "VBG", "RB", "."}},
		{"They have walked.", []string{"PRP", "VBP", "VBN", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, tags(tagText(t, tt.text)))
		})
	}
}

func TestModelUnknownProperNoun(t *testing.T) {
	s := tagText(t, "I met Zyzzx.")

	zyzzx := s.Tokens[2]
	assert.Equal(t, Unknown, zyzzx.Tag)
	assert.Equal(t, X, zyzzx.Pos)
}

func TestUniversal(t *testing.T) {
	assert.Equal(t, VERB, Universal("VBD"))
	assert.Equal(t, AUX, Universal("MD"))
	assert.Equal(t, PROPN, Universal("NNP"))
	assert.Equal(t, PUNCT, Universal("."))
	assert.Equal(t, X, Universal(Unknown))
	assert.Equal(t, X, Universal("nonsense"))
}

func TestParseEntry(t *testing.T) {
	got, err := ParseEntry("VBD:.6 JJ:0.2 NN")
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{"VBD", .6}, {"JJ", .2}, {"NN", 1}}, got)

	got, err = ParseEntry("::1 ,")
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{":", 1}, {",", 1}}, got)

	for _, bad := range []string{"", "NN:x", "NN:0", "NN:1.5"} {
		_, err := ParseEntry(bad)
		assert.Error(t, err, bad)
	}
}

func TestModelAddEntry(t *testing.T) {
	m := NewModel()
	require.NoError(t, m.AddEntry("Zyzzx", "NNP"))
	assert.Error(t, m.AddEntry("bad", "NN:-1"))

	c, ok := m.Lookup("zyzzx")
	require.True(t, ok)
	assert.Equal(t, "NNP", c[0].Tag)
}

type fakeScorer struct {
	candidates map[int][]Candidate
	prevs      []string
}

func (f *fakeScorer) ScoreCandidates(tokens []sent.Token, i int, prev string) []Candidate {
	f.prevs = append(f.prevs, prev)
	return f.candidates[i]
}

func TestTaggerTieKeepsOrder(t *testing.T) {
	f := &fakeScorer{candidates: map[int][]Candidate{
		0: {{"NN", .5}, {"VB", .5}},
		1: {{"JJ", .2}, {"VBD", .7}},
	}}

	s := &sent.Sentence{Tokens: make([]sent.Token, 3)}
	require.NoError(t, NewTagger(f).Tag(s))

	assert.Equal(t, []string{"NN", "VBD", Unknown}, tags(s))
	assert.Equal(t, []string{"", "NN", "VBD"}, f.prevs)
}

func TestTaggerInvalidCandidate(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want error
	}{
		{"nan", Candidate{"NN", math.NaN()}, ErrInvalidProb},
		{"negative", Candidate{"NN", -1}, ErrInvalidProb},
		{"empty tag", Candidate{"", .5}, ErrEmptyTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeScorer{candidates: map[int][]Candidate{1: {tt.c}}}
			s := &sent.Sentence{Tokens: make([]sent.Token, 2)}

			err := NewTagger(f).Tag(s)
			require.ErrorIs(t, err, tt.want)

			var te *sent.TokenError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, 1, te.Index)
		})
	}
}
