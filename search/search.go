package search

import (
	"context"
	"fmt"

	"github.com/revelaction/annot/match"
	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/topic"
)

const pageSize = 500

// Search orchestrates the strategy selection for finding sentences
// that match a topic expression against a document repository.
type Search struct {
	topic  topic.Topic
	repo   storage.DocReader
	docID  *int
	labels []string
	limit  int
}

// New creates a new Search instance with the given topic and repository.
// The topic is used to construct the internal Matcher for evaluating expressions.
func New(t topic.Topic, dr storage.DocReader) *Search {
	return &Search{
		topic: t,
		repo:  dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// WithLabels restricts the search to documents carrying all labels.
func (s *Search) WithLabels(labels []string) *Search {
	s.labels = labels
	return s
}

// WithLimit stops the search after n matches (0 = no limit).
func (s *Search) WithLimit(n int) *Search {
	s.limit = n
	return s
}

// Sentences returns the sentences matching the topic and expr, sorted by
// number of matched topic expressions, doc and sentence.
func (s *Search) Sentences(ctx context.Context, expr topic.TopicExpr) ([]*match.SentenceMatch, error) {
	matcher := match.NewMatcher(s.topic)
	matcher.AddTopicExpr(expr)

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return nil, err
		}
		// Ensure doc has ID set (Read might return 0 if backend doesn't populate)
		doc.Id = *s.docID

		matcher.Match(doc)
		results := matcher.Sentences()
		if s.limit > 0 && len(results) > s.limit {
			results = results[:s.limit]
		}
		return results, nil
	}

	// Strategy 2: Find candidates (indexed search)
	//
	// The argument expression must match, its lemmas restrict the
	// candidates. Without them every topic expression is an alternative
	// lemma set. Without any lemma all sentences are candidates.
	var queries [][]string
	switch {
	case len(expr.Lemmas()) > 0:
		queries = [][]string{expr.Lemmas()}
	case len(s.topic.Exprs) > 0 && s.topic.Indexable():
		queries = s.topic.LemmaSets()
	default:
		queries = [][]string{nil}
	}

	seen := map[storage.Cursor]bool{}
	var results []*match.SentenceMatch

	for _, lemmas := range queries {
		cursor := storage.Cursor(0)
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			fetched := 0
			next, err := s.repo.FindCandidates(lemmas, s.labels, cursor, pageSize, func(c storage.Candidate) error {
				fetched++
				if seen[c.Pos] {
					return nil
				}
				seen[c.Pos] = true

				if sm := matcher.MatchSentence(c.Sentence); sm != nil {
					sm.DocTitle = c.DocTitle
					results = append(results, sm)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to find candidates: %w", err)
			}

			if fetched == 0 || next == cursor {
				break // No more progress
			}
			if s.limit > 0 && len(results) >= s.limit && len(queries) == 1 {
				break
			}
			cursor = next
		}
	}

	match.Sort(results)
	if s.limit > 0 && len(results) > s.limit {
		results = results[:s.limit]
	}
	return results, nil
}
