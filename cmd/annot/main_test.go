package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/annot/sentence"
)

type result struct {
	out string
	err string
}

// run runs the app with args after the program name. The home directory
// is empty so no user config is loaded.
func run(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANNOT_STORE", "")
	t.Setenv("ANNOT_CONFIG", "")

	var out, errb bytes.Buffer
	ui := UI{In: strings.NewReader(stdin), Out: &out, Err: &errb}

	err := newApp(ui).RunContext(context.Background(), append([]string{"annot", "--no-color"}, args...))
	return result{out.String(), errb.String()}, err
}

func mustRun(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	res, err := run(t, stdin, args...)
	require.NoError(t, err, "stderr: %s", res.err)
	return res
}

func TestAnnotateText(t *testing.T) {
	res := mustRun(t, "", "annotate", "--format", "entities", "--text", "Mary met John.")
	assert.Equal(t, "Mary (PERSON)\nJohn (PERSON)\n", res.out)

	res = mustRun(t, "", "annotate", "--text", "Mary met John.")
	assert.Equal(t, "Mary met John.\n", res.out)
}

func TestAnnotateStdin(t *testing.T) {
	res := mustRun(t, "Dr. Smith met Mary.", "annotate", "--format", "projection")

	var p sent.Projection
	require.NoError(t, json.Unmarshal([]byte(res.out), &p))
	assert.Equal(t, []string{"Dr.", "Smith", "met", "Mary", "."}, p.Tokens)
	assert.Len(t, p.PosTags, 5)
	assert.Equal(t, "Mary (PERSON)", p.NamedEntities[3])
}

func TestAnnotateDisable(t *testing.T) {
	res := mustRun(t, "", "annotate", "--disable", "ner", "--format", "projection", "--text", "Mary met John.")

	var p sent.Projection
	require.NoError(t, json.Unmarshal([]byte(res.out), &p))
	assert.Equal(t, "Mary (O)", p.NamedEntities[0])
}

func TestAnnotateMetrics(t *testing.T) {
	res := mustRun(t, "", "annotate", "--metrics", "--text", "Mary met John.")
	assert.Contains(t, res.err, "annot_documents_total 1")
}

func TestAnnotateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"annotate", "--format", "xml", "--text", "Hi."}},
		{"stage", []string{"annotate", "--disable", "nope", "--text", "Hi."}},
		{"workers", []string{"annotate", "--workers", "-1", "--text", "Hi."}},
		{"text and files", []string{"annotate", "--text", "Hi.", "a.txt"}},
		{"missing file", []string{"annotate", filepath.Join(t.TempDir(), "missing.txt")}},
		{"config", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "annotate", "--text", "Hi."}},
		{"log level", []string{"--log-level", "loud", "annotate", "--text", "Hi."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestAnnotateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lexicon:\n  zyzzx: NNP\nner:\n  gazetteer:\n    Zyzzx: ORGANIZATION\n"), 0644))

	res := mustRun(t, "", "--config", path, "annotate", "--format", "entities", "--text", "I met Zyzzx in town.")
	assert.Contains(t, res.out, "Zyzzx (ORGANIZATION)\n")
}

func storeFlow(t *testing.T, store string) {
	t.Helper()

	res := mustRun(t, "", "--store", store, "annotate", "--title", "dogs", "--label", "animals",
		"--text", "The dogs were barking. Dr. Smith met Mary.")
	assert.Equal(t, "The dogs were barking.\nDr. Smith met Mary.\n", res.out)
	assert.Equal(t, "📖 1 dogs\n", res.err)

	res = mustRun(t, "", "--store", store, "doc")
	assert.Equal(t, "📖 1 dogs animals\n", res.out)

	res = mustRun(t, "", "--store", store, "doc", "--start", "1", "1")
	assert.Equal(t, "  1 ✍  Dr. Smith met Mary.\n", res.out)

	res = mustRun(t, "", "--store", store, "labels")
	assert.Equal(t, "🔖 animals\n", res.out)

	res = mustRun(t, "", "--store", store, "query", "--no-prefix", "meet")
	assert.Equal(t, "Dr. Smith met Mary.\n", res.out)

	res = mustRun(t, "", "--store", store, "query", "--json", "dog")
	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.out), &matches))
	assert.Len(t, matches, 1)

	res = mustRun(t, "", "--store", store, "query", "--no-prefix", "unicorn")
	assert.Empty(t, res.out)
	assert.Equal(t, "no matches\n", res.err)

	mustRun(t, "", "--store", store, "edit", "animals", "dog")
	res = mustRun(t, "", "--store", store, "topic")
	assert.Equal(t, "📖 0 animals\n", res.out)

	res = mustRun(t, "", "--store", store, "topic", "animals")
	assert.Equal(t, "dog\n", res.out)

	res = mustRun(t, "", "--store", store, "query", "--no-prefix", "--topic", "animals")
	assert.Equal(t, "The dogs were barking.\n", res.out)

	res = mustRun(t, "", "--store", store, "topics", "1", "0")
	assert.Equal(t, "✍  The dogs were barking.\n\n[🏷  animals             ] ✍  The dogs were barking.\n", res.out)

	res = mustRun(t, "", "--store", store, "topics", "1", "1")
	assert.Equal(t, "✍  Dr. Smith met Mary.\n\n", res.out)

	exported := filepath.Join(t.TempDir(), "export")
	mustRun(t, "", "--store", store, "export", "--format", "conllu", "--to", exported)
	b, err := os.ReadFile(filepath.Join(exported, "000001.conllu"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# newdoc id = dogs\n# sent_id = 1\n"))

	res = mustRun(t, "", "--store", store, "stat", "1")
	assert.Contains(t, res.out, "num sentences 2")
	assert.Contains(t, res.out, "entities:")

	res = mustRun(t, "", "--store", store, "stat")
	assert.Contains(t, res.out, "Num docs 1")

	res = mustRun(t, "", "--store", store, "sentence", "1", "1")
	assert.Contains(t, res.out, "✍  1-1 Dr. Smith met Mary.\n")
	assert.Contains(t, res.out, `"met"`)

	_, err = run(t, "", "--store", store, "sentence", "1", "9")
	assert.Error(t, err)

	_, err = run(t, "", "--store", store, "doc", "99")
	assert.Error(t, err)
}

func TestStoreDirectory(t *testing.T) {
	storeFlow(t, filepath.Join(t.TempDir(), "store"))
}

func TestStoreSqlite(t *testing.T) {
	storeFlow(t, filepath.Join(t.TempDir(), "annot.db"))
}

func TestAnnotateFilesToStore(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for name, text := range map[string]string{"one": "A cat sleeps.", "two": "Mary met John."} {
		path := filepath.Join(dir, name+".txt")
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
		files = append(files, path)
	}

	store := filepath.Join(dir, "store")
	res := mustRun(t, "", append([]string{"--store", store, "annotate", "--label", "batch"}, files...)...)
	assert.Empty(t, res.out)

	res = mustRun(t, "", "--store", store, "doc", "--label", "batch")
	assert.Len(t, strings.Split(strings.TrimSpace(res.out), "\n"), 2)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "store")
	to := filepath.Join(dir, "annot.db")

	mustRun(t, "", "--store", from, "annotate", "--title", "cats", "--text", "A cat met the dogs.")
	mustRun(t, "", "--store", from, "edit", "animals", "cat")

	res := mustRun(t, "", "--store", to, "import", "--from", from)
	assert.Contains(t, res.out, "Successfully imported 1 docs and 1 topics")

	res = mustRun(t, "", "--store", to, "query", "--no-prefix", "--topic", "animals")
	assert.Equal(t, "A cat met the dogs.\n", res.out)

	_, err := run(t, "", "--store", from, "import", "--from", from)
	assert.Error(t, err)
}

func TestNoStore(t *testing.T) {
	for _, cmd := range []string{"doc", "labels", "query", "stat", "topic", "edit"} {
		_, err := run(t, "", cmd, "x")
		assert.Error(t, err, cmd)
	}

	_, err := run(t, "", "doc")
	assert.ErrorIs(t, err, errNoStore)
}

func TestVersion(t *testing.T) {
	res := mustRun(t, "", "version")
	assert.Equal(t, "annot version dev (commit: none)\n", res.out)
}

func TestFprintErr(t *testing.T) {
	var buf bytes.Buffer
	fprintErr(&buf, errNoStore)
	assert.Equal(t, "annot: no store given: use --store or ANNOT_STORE\n", buf.String())
}
