// Package ner labels token spans of a sentence with entity categories.
package ner

import (
	"errors"
	"fmt"
	"math"
	"sort"

	sent "github.com/revelaction/annot/sentence"
)

// Entity labels.
const (
	Person       = "PERSON"
	Location     = "LOCATION"
	Organization = "ORGANIZATION"
	Misc         = "MISC"
	Date         = "DATE"
	Number       = "NUMBER"
)

// DefaultMaxSpan is the longest span in tokens the Recognizer scores.
const DefaultMaxSpan = 6

var (
	ErrUntagged     = errors.New("token has no tag")
	ErrInvalidScore = errors.New("invalid span score")
)

// Scorer labels the span tokens[start:end]. An empty label, the
// sentence.NoEntity label or a non positive score means no entity.
type Scorer interface {
	ScoreEntitySpan(tokens []sent.Token, start, end int) (label string, score float64)
}

// Recognizer assigns an entity label to every token of a sentence.
//
// All spans without punctuation of up to MaxSpan tokens are scored. Spans
// are then taken longest first, by score on equal length and leftmost on
// equal score, skipping spans that overlap an already taken one. Tokens
// outside any taken span get sentence.NoEntity.
type Recognizer struct {
	scorer  Scorer
	maxSpan int
}

type Option func(*Recognizer)

func WithMaxSpan(n int) Option {
	return func(r *Recognizer) {
		if n > 0 {
			r.maxSpan = n
		}
	}
}

func NewRecognizer(s Scorer, opts ...Option) *Recognizer {
	r := &Recognizer{scorer: s, maxSpan: DefaultMaxSpan}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type span struct {
	start, end int
	label      string
	score      float64
}

// Recognize sets the Ent label of every token of the sentence.
func (r *Recognizer) Recognize(s *sent.Sentence) error {
	tokens := s.Tokens
	for i := range tokens {
		if tokens[i].Tag == "" {
			return &sent.TokenError{Index: i, Err: ErrUntagged}
		}
	}

	var spans []span
	for start := range tokens {
		for end := start + 1; end <= len(tokens) && end-start <= r.maxSpan; end++ {
			if tokens[end-1].Pos == "PUNCT" {
				break
			}

			label, score := r.scorer.ScoreEntitySpan(tokens, start, end)
			if label == "" || label == sent.NoEntity {
				continue
			}
			if math.IsNaN(score) || math.IsInf(score, 0) {
				return &sent.TokenError{Index: start, Err: fmt.Errorf("%w: %s %v", ErrInvalidScore, label, score)}
			}
			if score <= 0 {
				continue
			}

			spans = append(spans, span{start: start, end: end, label: label, score: score})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if la, lb := a.end-a.start, b.end-b.start; la != lb {
			return la > lb
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.start < b.start
	})

	labels := make([]string, len(tokens))
	for _, sp := range spans {
		if !free(labels, sp) {
			continue
		}
		for i := sp.start; i < sp.end; i++ {
			labels[i] = sp.label
		}
	}

	for i := range tokens {
		if labels[i] == "" {
			labels[i] = sent.NoEntity
		}
		tokens[i].Ent = labels[i]
	}

	return nil
}

func free(labels []string, sp span) bool {
	for i := sp.start; i < sp.end; i++ {
		if labels[i] != "" {
			return false
		}
	}
	return true
}
