// Package pos assigns part of speech tags to the tokens of a sentence.
//
// The Tagger makes a greedy left to right decision per token, choosing the
// best scored candidate given the tag resolved for the previous token. The
// scoring is delegated to a Scorer; Model is the reference lexicon and
// first order Markov implementation.
package pos

import (
	"errors"
	"fmt"
	"math"

	sent "github.com/revelaction/annot/sentence"
)

// Unknown is the tag of a token for which no candidate exists.
const Unknown = "UNKNOWN"

var (
	ErrInvalidProb = errors.New("invalid candidate probability")
	ErrEmptyTag    = errors.New("empty candidate tag")
)

// Candidate is a possible tag of a token with its score.
type Candidate struct {
	Tag  string
	Prob float64
}

// Scorer proposes scored tag candidates for tokens[i]. prev is the tag
// resolved for the previous token, empty at sentence start. The tokens
// before i are already tagged. Returning no candidates means the token is
// unknown to the scorer.
type Scorer interface {
	ScoreCandidates(tokens []sent.Token, i int, prev string) []Candidate
}

// Tagger sets Tag and Pos of every token of a sentence.
type Tagger struct {
	scorer Scorer
}

func NewTagger(s Scorer) *Tagger {
	return &Tagger{scorer: s}
}

// Tag tags the sentence in place. A Candidate with an empty tag or a
// probability that is not a positive finite number is an error wrapped in
// a sentence.TokenError.
func (t *Tagger) Tag(s *sent.Sentence) error {
	prev := ""
	for i := range s.Tokens {
		tag, err := t.best(t.scorer.ScoreCandidates(s.Tokens, i, prev))
		if err != nil {
			return &sent.TokenError{Index: i, Err: err}
		}

		s.Tokens[i].Tag = tag
		s.Tokens[i].Pos = Universal(tag)
		prev = tag
	}

	return nil
}

// best returns the tag of the highest scored candidate. On equal scores
// the first candidate wins.
func (t *Tagger) best(candidates []Candidate) (string, error) {
	if len(candidates) == 0 {
		return Unknown, nil
	}

	best := -1
	for i, c := range candidates {
		if c.Tag == "" {
			return "", ErrEmptyTag
		}
		if math.IsNaN(c.Prob) || math.IsInf(c.Prob, 0) || c.Prob <= 0 {
			return "", fmt.Errorf("%w: %s %v", ErrInvalidProb, c.Tag, c.Prob)
		}

		if best < 0 || c.Prob > candidates[best].Prob {
			best = i
		}
	}

	return candidates[best].Tag, nil
}
