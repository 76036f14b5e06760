package query

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annot/pipeline"
	"github.com/revelaction/annot/render"
	"github.com/revelaction/annot/storage/filesystem"
	"github.com/revelaction/annot/storage/storagetest"
	"github.com/revelaction/annot/topic"
)

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()

	p, err := pipeline.New(pipeline.Options{Workers: 2})
	require.NoError(t, err)

	var out bytes.Buffer
	h := NewHandler(&out, p, render.NewDocRenderer(&out), render.NewRenderer(&out))
	return h, &out
}

func TestExecAnnotate(t *testing.T) {
	h, out := newHandler(t)
	ctx := context.Background()

	require.NoError(t, h.Exec(ctx, "Mary met John."))
	assert.Equal(t, "Mary met John.\n", out.String())

	out.Reset()
	require.NoError(t, h.Exec(ctx, ":format entities"))
	require.NoError(t, h.Exec(ctx, "Mary met John."))
	assert.Equal(t, "Mary (PERSON)\nJohn (PERSON)\n", out.String())

	out.Reset()
	require.NoError(t, h.Exec(ctx, "   "))
	assert.Empty(t, out.String())
}

func TestExecQueryLast(t *testing.T) {
	h, out := newHandler(t)
	ctx := context.Background()

	assert.ErrorIs(t, h.Exec(ctx, "?meet"), errNothingToQuery)

	require.NoError(t, h.Exec(ctx, "The dogs were barking. Dr. Smith met Mary."))
	out.Reset()

	require.NoError(t, h.Exec(ctx, "?meet"))
	assert.Equal(t, "Dr. Smith met Mary.\n", out.String())

	out.Reset()
	require.NoError(t, h.Exec(ctx, ":match lemma"))
	require.NoError(t, h.Exec(ctx, "?dog"))
	assert.Equal(t, "dog\n", out.String())
}

func TestExecQueryTopic(t *testing.T) {
	h, out := newHandler(t)
	ctx := context.Background()

	dog, err := topic.Parse([]string{"dog"})
	require.NoError(t, err)
	h.TopicLibrary = topic.Library{topic.Assemble("animals", []topic.TopicExpr{dog})}

	require.NoError(t, h.Exec(ctx, "The dogs were barking. Dr. Smith met Mary."))
	out.Reset()

	require.NoError(t, h.Exec(ctx, "?animals"))
	assert.Equal(t, "The dogs were barking.\n", out.String())

	// topic and expression must both match
	out.Reset()
	require.NoError(t, h.Exec(ctx, "?animals meet"))
	assert.Empty(t, out.String())
}

func TestExecQueryStore(t *testing.T) {
	h, out := newHandler(t)

	store, err := filesystem.NewDocStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, err)
	_, err = store.Write(storagetest.Annotate(t, "A cat met the dogs.", "cats"))
	require.NoError(t, err)
	h.DocRepo = store

	require.NoError(t, h.Exec(context.Background(), "?meet"))
	assert.Equal(t, "A cat met the dogs.\n", out.String())
}

func TestExecErrors(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	assert.Error(t, h.Exec(ctx, "?"))
	assert.Error(t, h.Exec(ctx, "?3"))
	assert.Error(t, h.Exec(ctx, ":"))
	assert.Error(t, h.Exec(ctx, ":format"))
	assert.Error(t, h.Exec(ctx, ":unknown x"))

	require.NoError(t, h.Exec(ctx, ":format xml"))
	assert.ErrorContains(t, h.Exec(ctx, "Mary met John."), "unsupported format")
}

func TestParse(t *testing.T) {
	h, _ := newHandler(t)
	dog, err := topic.Parse([]string{"dog"})
	require.NoError(t, err)
	h.TopicLibrary = topic.Library{topic.Assemble("animals", []topic.TopicExpr{dog})}

	tp, expr, err := h.parse("animals bark")
	require.NoError(t, err)
	assert.Equal(t, "animals", tp.Name)
	assert.Equal(t, "bark", expr.String())

	tp, expr, err = h.parse("bark 2 NN")
	require.NoError(t, err)
	assert.Empty(t, tp.Name)
	assert.Equal(t, "bark 2 NN", expr.String())
}
