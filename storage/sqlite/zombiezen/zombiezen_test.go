package zombiezen

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/annot/storage/storagetest"
)

func openPool(t *testing.T) *sqlitex.Pool {
	t.Helper()

	pool, err := Open(context.Background(), filepath.Join(t.TempDir(), "annot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestDocStore(t *testing.T) {
	storagetest.DocRepository(t, NewDocStore(openPool(t)))
}

func TestTopicStore(t *testing.T) {
	storagetest.TopicRepository(t, NewTopicStore(openPool(t)))
}

func TestCreateSchemas(t *testing.T) {
	pool := openPool(t)

	// scripts are idempotent
	require.NoError(t, CreateSchemas(context.Background(), pool, DocSchema))
	assert.Error(t, CreateSchemas(context.Background(), pool, "missing.sql"))
}

func TestWriteAssignsId(t *testing.T) {
	store := NewDocStore(openPool(t))

	doc := storagetest.Annotate(t, "The dog barked.", "dog")
	id, err := store.Write(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	docs, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
