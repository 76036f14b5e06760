// Package storagetest checks that a storage.DocRepository and a
// storage.TopicRepository behave as the storage interfaces document.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annot/pipeline"
	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/topic"
)

// Annotate returns the annotated doc of text with the reference models.
func Annotate(t testing.TB, text, title string, labels ...string) sent.Doc {
	t.Helper()

	p, err := pipeline.New(pipeline.Options{Workers: 1})
	require.NoError(t, err)

	doc, err := p.Annotate(context.Background(), text)
	require.NoError(t, err)

	doc.Title = title
	doc.Labels = labels
	return *doc
}

// collect runs FindCandidates to completion in pages of limit.
func collect(t *testing.T, repo storage.DocReader, lemmas, labels []string, limit int) []storage.Candidate {
	t.Helper()

	var all []storage.Candidate
	cursor := storage.Cursor(0)
	for {
		var page []storage.Candidate
		next, err := repo.FindCandidates(lemmas, labels, cursor, limit, func(c storage.Candidate) error {
			page = append(page, c)
			return nil
		})
		require.NoError(t, err)

		all = append(all, page...)
		if len(page) == 0 || next == cursor {
			return all
		}
		require.Greater(t, next, cursor)
		cursor = next
	}
}

// DocRepository runs the document storage checks on an empty repo.
func DocRepository(t *testing.T, repo storage.DocRepository) {
	dogs := Annotate(t, "The dogs were barking. Dr. Smith met Mary.", "dogs", "animals", "fiction")
	cats := Annotate(t, "A cat met the dogs. Cats sleep.", "cats", "animals")
	news := Annotate(t, "Acme Corp. hired 300 people in New York.", "news", "news")

	var ids []int
	for _, doc := range []sent.Doc{dogs, cats, news} {
		id, err := repo.Write(doc)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.Len(t, ids, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	t.Run("List", func(t *testing.T) {
		docs, err := repo.List("")
		require.NoError(t, err)
		require.Len(t, docs, 3)

		assert.Equal(t, ids[0], docs[0].Id)
		assert.Equal(t, "dogs", docs[0].Title)
		assert.Equal(t, []string{"animals", "fiction"}, docs[0].Labels)
		assert.Empty(t, docs[0].Sentences)

		docs, err = repo.List("fict")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "dogs", docs[0].Title)

		docs, err = repo.List("nothing")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Read", func(t *testing.T) {
		doc, err := repo.Read(ids[0])
		require.NoError(t, err)

		assert.Equal(t, ids[0], doc.Id)
		assert.Equal(t, dogs.Text, doc.Text)
		require.Len(t, doc.Sentences, len(dogs.Sentences))
		assert.Equal(t, dogs.Project(), doc.Project())

		for i, s := range doc.Sentences {
			assert.Equal(t, i, s.Id)
			assert.Equal(t, ids[0], s.DocId)
			require.NotNil(t, s.Tree)
			assert.NoError(t, s.Tree.Validate(len(s.Tokens)))
		}

		_, err = repo.Read(ids[2] + 100)
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrNotFound))
	})

	t.Run("FindCandidates", func(t *testing.T) {
		candidates := collect(t, repo, []string{"dog"}, nil, 0)
		require.Len(t, candidates, 2)
		assert.Equal(t, "dogs", candidates[0].DocTitle)
		assert.Equal(t, ids[0], candidates[0].Sentence.DocId)
		assert.Equal(t, 0, candidates[0].Sentence.Id)
		assert.Equal(t, "cats", candidates[1].DocTitle)

		// all lemmas
		candidates = collect(t, repo, []string{"dog", "meet"}, nil, 0)
		require.Len(t, candidates, 1)
		assert.Equal(t, "cats", candidates[0].DocTitle)

		// all labels
		candidates = collect(t, repo, []string{"meet"}, []string{"animals", "fiction"}, 0)
		require.Len(t, candidates, 1)
		assert.Equal(t, "dogs", candidates[0].DocTitle)

		// pages of one
		candidates = collect(t, repo, []string{"meet"}, nil, 1)
		require.Len(t, candidates, 2)
		assert.Equal(t, "dogs", candidates[0].DocTitle)
		assert.Equal(t, "cats", candidates[1].DocTitle)

		// no lemma: every sentence
		candidates = collect(t, repo, nil, nil, 2)
		assert.Len(t, candidates, 5)

		assert.Empty(t, collect(t, repo, []string{"unicorn"}, nil, 0))
	})

	t.Run("FindCandidatesError", func(t *testing.T) {
		stop := errors.New("stop")
		_, err := repo.FindCandidates([]string{"dog"}, nil, 0, 0, func(storage.Candidate) error {
			return stop
		})
		assert.True(t, errors.Is(err, stop))
	})

	t.Run("Labels", func(t *testing.T) {
		labels, err := repo.Labels("")
		require.NoError(t, err)
		assert.Equal(t, []string{"animals", "fiction", "news"}, labels)

		labels, err = repo.Labels("n")
		require.NoError(t, err)
		assert.Equal(t, []string{"animals", "fiction", "news"}, labels)

		labels, err = repo.Labels("ew")
		require.NoError(t, err)
		assert.Equal(t, []string{"news"}, labels)
	})
}

// TopicRepository runs the topic storage checks on an empty repo.
func TopicRepository(t *testing.T, repo storage.TopicRepository) {
	meet, err := topic.Parse([]string{"meet", "3", "ent:PERSON"})
	require.NoError(t, err)
	dog, err := topic.Parse([]string{"dog"})
	require.NoError(t, err)

	require.NoError(t, repo.Write(topic.Topic{Name: "meetings", Exprs: []topic.TopicExpr{meet, dog}}))
	require.NoError(t, repo.Write(topic.Topic{Name: "animals", Exprs: []topic.TopicExpr{dog}}))

	names, err := repo.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "meetings"}, names)

	tp, err := repo.Topic("meetings")
	require.NoError(t, err)
	require.Len(t, tp.Exprs, 2)
	assert.True(t, topic.EqualExpr(meet, tp.Exprs[0]))
	assert.Equal(t, "meetings", tp.Exprs[0][1].TopicName)
	assert.Equal(t, "meet 3 ent:PERSON", tp.Exprs[0][1].ExprId)
	assert.Equal(t, 1, tp.Exprs[1][0].ExprIndex)

	// overwrite
	require.NoError(t, repo.Write(topic.Topic{Name: "animals", Exprs: []topic.TopicExpr{dog, meet}}))
	tp, err = repo.Topic("animals")
	require.NoError(t, err)
	assert.Len(t, tp.Exprs, 2)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "meetings"}, all.Names())

	_, err = repo.Topic("missing")
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
