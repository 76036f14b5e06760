package storage

import (
	"errors"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/topic"
)

// ErrNotFound is returned when a document or topic does not exist
var ErrNotFound = errors.New("not found")

// TopicReader defines read operations for topic storage
type TopicReader interface {
	// All returns all topics from storage
	All() (topic.Library, error)

	// Topic returns a single topic by name
	Topic(name string) (topic.Topic, error)

	// Names returns the names of all available topics
	Names() ([]string, error)
}

// TopicWriter defines write operations for topic storage
type TopicWriter interface {
	// Write persists a topic to storage
	Write(tp topic.Topic) error
}

// TopicRepository combines read and write operations
type TopicRepository interface {
	TopicReader
	TopicWriter
}

// Cursor for paginated lemma-based queries
type Cursor int64

// Candidate is a stored sentence returned by an indexed query
type Candidate struct {
	// Position of the sentence in the store, used as cursor
	Pos      Cursor
	DocTitle string
	Sentence sent.Sentence
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Text, Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentence candidates containing ALL given lemmas
	// in documents carrying ALL labels, resuming after the given cursor. It
	// calls onCandidate for each result.
	// Returns the new cursor and any error.
	FindCandidates(lemmas []string, labels []string, after Cursor, limit int, onCandidate func(Candidate) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists an annotated document, its sentences and lemma index,
	// and returns the id assigned to it.
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

// Lemmas returns the unique non empty lemmas of s, in order of appearance.
func Lemmas(s sent.Sentence) []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, t := range s.Tokens {
		if t.Lemma != "" && !seen[t.Lemma] {
			seen[t.Lemma] = true
			lemmas = append(lemmas, t.Lemma)
		}
	}
	return lemmas
}
