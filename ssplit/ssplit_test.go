package ssplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/tokenize"
)

func split(t *testing.T, text string) [][]string {
	t.Helper()

	tokens, err := tokenize.New().Tokenize(text)
	require.NoError(t, err)

	var out [][]string
	for _, s := range New().Split(tokens) {
		out = append(out, s.Texts())
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			"two sentences",
			"John left. Mary stayed!",
			[][]string{{"John", "left", "."}, {"Mary", "stayed", "!"}},
		},
		{
			"abbreviation",
			"Dr. Smith met John Kerry. He smiled.",
			[][]string{{"Dr.", "Smith", "met", "John", "Kerry", "."}, {"He", "smiled", "."}},
		},
		{
			"closing quote",
			`He said "no." She left.`,
			[][]string{{"He", "said", `"`, "no", ".", `"`}, {"She", "left", "."}},
		},
		{
			"lower case no",
			"He said no. She left.",
			[][]string{{"He", "said", "no", "."}, {"She", "left", "."}},
		},
		{
			"terminal inside quotation",
			`She said "Stop. Go home." Then she left.`,
			[][]string{{"She", "said", `"`, "Stop", ".", "Go", "home", ".", `"`}, {"Then", "she", "left", "."}},
		},
		{
			"terminal inside single quotation",
			"He said 'Stop. Go.' Then left.",
			[][]string{{"He", "said", "'", "Stop", ".", "Go", ".", "'"}, {"Then", "left", "."}},
		},
		{
			"possessive apostrophe",
			"The dogs' bones. Then rain.",
			[][]string{{"The", "dogs", "'", "bones", "."}, {"Then", "rain", "."}},
		},
		{
			"opening quote starts sentence",
			`Stop. "Why?" he asked.`,
			[][]string{{"Stop", "."}, {`"`, "Why", "?", `"`, "he", "asked", "."}},
		},
		{
			"brackets",
			"It rained (we stayed. It was cold.) Then sun.",
			[][]string{{"It", "rained", "(", "we", "stayed", ".", "It", "was", "cold", ".", ")"}, {"Then", "sun", "."}},
		},
		{
			"lowercase continuation",
			"Wait... what? Yes.",
			[][]string{{"Wait", "...", "what", "?"}, {"Yes", "."}},
		},
		{
			"no terminal",
			"no final stop",
			[][]string{{"no", "final", "stop"}},
		},
		{
			"trailing tokens",
			"One. two",
			[][]string{{"One", ".", "two"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, split(t, tt.text))
		})
	}
}

func TestSplitIndexes(t *testing.T) {
	tokens, err := tokenize.New().Tokenize("A b. C d e.")
	require.NoError(t, err)

	sentences := New().Split(tokens)
	require.Len(t, sentences, 2)

	for id, s := range sentences {
		assert.Equal(t, id, s.Id)
		for i, tk := range s.Tokens {
			assert.Equal(t, i, tk.Index)
			assert.Equal(t, id, tk.SentenceId)
		}
	}

	// doc level ids survive
	assert.Equal(t, 3, sentences[1].Tokens[0].Id)
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, New().Split(nil))
	assert.Empty(t, Single(nil))
}

func TestSingle(t *testing.T) {
	tokens := []sent.Token{{Text: "a"}, {Text: "."}, {Text: "B"}}
	sentences := Single(tokens)
	require.Len(t, sentences, 1)
	assert.Equal(t, 2, sentences[0].Tokens[2].Index)
}
