package lemma

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annot/sentence"
)

func TestLemma(t *testing.T) {
	tests := []struct {
		form, tag, want string
	}{
		{"dogs", "NNS", "dog"},
		{"cities", "NNS", "city"},
		{"boxes", "NNS", "box"},
		{"glasses", "NNS", "glass"},
		{"bus", "NNS", "bus"},
		{"children", "NNS", "child"},
		{"running", "VBG", "run"},
		{"making", "VBG", "make"},
		{"going", "VBG", "go"},
		{"seeing", "VBG", "see"},
		{"bring", "VBG", "bring"},
		{"opening", "VBG", "open"},
		{"falling", "VBG", "fall"},
		{"barked", "VBD", "bark"},
		{"smiled", "VBD", "smile"},
		{"stopped", "VBD", "stop"},
		{"added", "VBD", "add"},
		{"rubbed", "VBD", "rub"},
		{"committed", "VBN", "commit"},
		{"odder", "JJR", "odd"},
		{"barking", "VBG", "bark"},
		{"stayed", "VBD", "stay"},
		{"agreed", "VBN", "agree"},
		{"cried", "VBD", "cry"},
		{"met", "VBD", "meet"},
		{"left", "VBD", "leave"},
		{"left", "JJ", "left"},
		{"Was", "VBD", "be"},
		{"'s", "VBZ", "be"},
		{"'s", "POS", "'s"},
		{"n't", "RB", "not"},
		{"ca", "MD", "can"},
		{"goes", "VBZ", "go"},
		{"watches", "VBZ", "watch"},
		{"bigger", "JJR", "big"},
		{"happiest", "JJS", "happy"},
		{"better", "JJR", "good"},
		{"better", "RBR", "well"},
		{"The", "DT", "the"},
		{"Smith", "NNP", "Smith"},
		{"Zyzzx", "UNKNOWN", "Zyzzx"},
		{"3.14", "CD", "3.14"},
	}

	l := New()
	for _, tt := range tests {
		t.Run(tt.form+"/"+tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Lemma(tt.form, tt.tag))
		})
	}
}

func TestLemmatize(t *testing.T) {
	s := &sent.Sentence{Tokens: []sent.Token{
		{Text: "He", Tag: "PRP"},
		{Text: "left", Tag: "VBD"},
		{Text: ".", Tag: "."},
	}}

	require.NoError(t, New().Lemmatize(s))
	assert.Equal(t, "he", s.Tokens[0].Lemma)
	assert.Equal(t, "leave", s.Tokens[1].Lemma)
	assert.Equal(t, ".", s.Tokens[2].Lemma)
}

func TestLemmatizeUntagged(t *testing.T) {
	s := &sent.Sentence{Tokens: []sent.Token{
		{Text: "He", Tag: "PRP"},
		{Text: "left"},
	}}

	err := New().Lemmatize(s)
	require.ErrorIs(t, err, ErrUntagged)

	var te *sent.TokenError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
}

func TestAddException(t *testing.T) {
	l := New()
	l.AddException(Noun, "Octopi", "octopus")
	l.AddException(Any, "gonna", "go")

	assert.Equal(t, "octopus", l.Lemma("octopi", "NNS"))
	assert.Equal(t, "octopi", l.Lemma("octopi", "JJ"))
	assert.Equal(t, "go", l.Lemma("gonna", "VBG"))
}

func TestClass(t *testing.T) {
	assert.Equal(t, Noun, Class("NNS"))
	assert.Equal(t, Verb, Class("MD"))
	assert.Equal(t, Adj, Class("JJR"))
	assert.Equal(t, Adv, Class("RB"))
	assert.Equal(t, "", Class("NNP"))
	assert.Equal(t, "", Class("DT"))
}
