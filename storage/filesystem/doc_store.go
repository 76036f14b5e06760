package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/storage"
)

// DocStore keeps one JSON file per annotated document in a directory. The
// file name is the zero padded document id.
type DocStore struct {
	docDir string

	// In-memory cache, filled by Preload
	docs map[int]sent.Doc
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. The directory is
// created if it does not exist.
func NewDocStore(docDir string) (*DocStore, error) {
	if err := os.MkdirAll(docDir, 0755); err != nil {
		return nil, err
	}

	return &DocStore{docDir: docDir}, nil
}

func (h *DocStore) path(id int) string {
	return filepath.Join(h.docDir, fmt.Sprintf("%06d.json", id))
}

// ids returns the ids of the stored docs in ascending order.
func (h *DocStore) ids() ([]int, error) {
	files, err := os.ReadDir(h.docDir)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}

// Preload loads all docs into memory.
// The callback is called for each file loaded (current, total, name).
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	ids, err := h.ids()
	if err != nil {
		return err
	}

	docs := make(map[int]sent.Doc, len(ids))
	for i, id := range ids {
		doc, err := ReadDoc(h.path(id))
		if err != nil {
			return err
		}
		docs[id] = doc

		if cb != nil {
			cb(i+1, len(ids), doc.Title)
		}
	}

	h.docs = docs
	return nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	ids, err := h.ids()
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(ids))
	for _, id := range ids {
		doc, err := h.Read(id)
		if err != nil {
			return nil, err
		}

		if labelMatch != "" && !slices.ContainsFunc(doc.Labels, func(l string) bool { return strings.Contains(l, labelMatch) }) {
			continue
		}

		docs = append(docs, sent.Doc{Id: doc.Id, Title: doc.Title, Labels: doc.Labels})
	}

	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if doc, ok := h.docs[id]; ok {
		return doc, nil
	}

	doc, err := ReadDoc(h.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
		}
		return sent.Doc{}, err
	}

	doc.Id = id
	return doc, nil
}

// FindCandidates scans the sentences of all docs in id order. The cursor
// is the 1 based position of a sentence in that order.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(storage.Candidate) error) (storage.Cursor, error) {
	ids, err := h.ids()
	if err != nil {
		return after, err
	}

	cursor := after
	var pos storage.Cursor
	found := 0

	for _, id := range ids {
		doc, err := h.Read(id)
		if err != nil {
			return after, err
		}

		if !hasLabels(doc, labels) {
			pos += storage.Cursor(len(doc.Sentences))
			continue
		}

		for _, s := range doc.Sentences {
			pos++
			if pos <= after || !hasLemmas(s, lemmas) {
				continue
			}

			if limit > 0 && found == limit {
				return cursor, nil
			}

			s.DocId = doc.Id
			if err := onCandidate(storage.Candidate{Pos: pos, DocTitle: doc.Title, Sentence: s}); err != nil {
				return cursor, err
			}
			cursor = pos
			found++
		}
	}

	return cursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	docs, err := h.List("")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	labels := []string{}
	for _, doc := range docs {
		for _, l := range doc.Labels {
			if seen[l] || (pattern != "" && !strings.Contains(l, pattern)) {
				continue
			}
			seen[l] = true
			labels = append(labels, l)
		}
	}

	sort.Strings(labels)
	return labels, nil
}

// Write stores the doc with the next free id.
func (h *DocStore) Write(doc sent.Doc) (int, error) {
	ids, err := h.ids()
	if err != nil {
		return 0, err
	}

	id := 1
	if len(ids) > 0 {
		id = ids[len(ids)-1] + 1
	}

	doc.Id = id
	sentences := make([]sent.Sentence, len(doc.Sentences))
	for i, s := range doc.Sentences {
		s.DocId = id
		sentences[i] = s
	}
	doc.Sentences = sentences

	data, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}

	// write and rename, readers never see a partial file
	tmp, err := os.CreateTemp(h.docDir, ".doc-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), h.path(id)); err != nil {
		return 0, err
	}

	if h.docs != nil {
		h.docs[id] = doc
	}
	return id, nil
}

func hasLabels(doc sent.Doc, labels []string) bool {
	for _, l := range labels {
		if !slices.Contains(doc.Labels, l) {
			return false
		}
	}
	return true
}

func hasLemmas(s sent.Sentence, lemmas []string) bool {
	for _, lemma := range lemmas {
		if !slices.ContainsFunc(s.Tokens, func(t sent.Token) bool { return t.Lemma == lemma }) {
			return false
		}
	}
	return true
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
