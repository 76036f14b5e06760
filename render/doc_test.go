package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annot/sentence"
)

func testDoc() *sent.Doc {
	return &sent.Doc{
		Text: "Mary sleeps.",
		Sentences: []sent.Sentence{{
			Id: 0,
			Tokens: []sent.Token{
				{Id: 0, Index: 0, Text: "Mary", Lemma: "Mary", Tag: "NNP", Pos: "PROPN", Ent: "PERSON", Head: 1, Dep: "nsubj", Idx: 0, End: 4},
				{Id: 1, Index: 1, Text: "sleeps", Lemma: "sleep", Tag: "VBZ", Pos: "VERB", Ent: sent.NoEntity, Head: 1, Dep: sent.RootRel, Idx: 5, End: 11},
				{Id: 2, Index: 2, Text: ".", Lemma: ".", Tag: ".", Pos: "PUNCT", Ent: sent.NoEntity, Head: 1, Dep: "punct", Idx: 11, End: 12},
			},
		}},
	}
}

func renderDoc(t *testing.T, r *DocRenderer, format string) string {
	t.Helper()

	var buf bytes.Buffer
	r.Out = &buf
	r.Format = format
	require.NoError(t, r.Render(testDoc()))
	return buf.String()
}

func TestDocText(t *testing.T) {
	r := NewDocRenderer(nil)
	assert.Equal(t, "Mary sleeps.\n", renderDoc(t, r, "text"))

	r.HasPrefix = true
	assert.Equal(t, "  0 ✍  Mary sleeps.\n", renderDoc(t, r, "text"))

	r.HasPrefix = false
	r.HasColor = true
	out := renderDoc(t, r, "text")
	assert.Contains(t, out, entityColors["PERSON"].Sprint("Mary"))
	assert.Contains(t, out, " sleeps.")
}

func TestDocTable(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(renderDoc(t, NewDocRenderer(nil), "table")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"SENT", "INDEX", "TEXT", "LEMMA", "TAG", "POS", "ENT", "HEAD", "DEP"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "1", "sleeps", "sleep", "VBZ", "VERB", "O", "1", "ROOT"}, strings.Fields(lines[2]))
}

func TestDocEntities(t *testing.T) {
	assert.Equal(t, "Mary (PERSON)\n", renderDoc(t, NewDocRenderer(nil), "entities"))
}

func TestDocProjection(t *testing.T) {
	var p sent.Projection
	require.NoError(t, json.Unmarshal([]byte(renderDoc(t, NewDocRenderer(nil), "projection")), &p))

	assert.Equal(t, []string{"Mary", "sleeps", "."}, p.Tokens)
	assert.Equal(t, []string{"NNP", "VBZ", "."}, p.PosTags)
	assert.Equal(t, []string{"Mary (PERSON)", "sleeps (O)", ". (O)"}, p.NamedEntities)
}

func TestDocJSON(t *testing.T) {
	var doc sent.Doc
	require.NoError(t, json.Unmarshal([]byte(renderDoc(t, NewDocRenderer(nil), "json")), &doc))
	assert.Equal(t, testDoc().Sentences[0].Tokens, doc.Sentences[0].Tokens)
}

func TestDocConllu(t *testing.T) {
	out := renderDoc(t, NewDocRenderer(nil), "conllu")
	assert.True(t, strings.HasPrefix(out, "# sent_id = 1\n# text = Mary sleeps.\n"))
	assert.Contains(t, out, "2\tsleeps\tsleep\tVERB\tVBZ\t_\t0\troot\t_\t")
}

func TestDocUnknownFormat(t *testing.T) {
	r := NewDocRenderer(&bytes.Buffer{})
	r.Format = "xml"
	assert.ErrorContains(t, r.Render(testDoc()), `unsupported format "xml"`)
}

func TestDocNextFormat(t *testing.T) {
	r := NewDocRenderer(nil)
	r.NextFormat()
	assert.Equal(t, "table", r.Format)

	r.Format = "conllu"
	r.NextFormat()
	assert.Equal(t, "text", r.Format)
}
