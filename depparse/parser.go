// Package depparse builds dependency trees with a deterministic arc standard
// transition parser.
package depparse

import (
	"errors"
	"fmt"
	"math"

	"github.com/revelaction/annot/pos"
	sent "github.com/revelaction/annot/sentence"
)

// Fragment is the relation of the disconnected subtrees attached to the
// root when the parser can not connect a sentence.
const Fragment = "fragment"

var (
	ErrUntagged     = errors.New("token has no tag")
	ErrInvalidScore = errors.New("invalid transition score")
)

// Scorer scores an arc transition allowed by rule in state st. A non
// positive score rejects the transition.
type Scorer interface {
	ScoreTransition(st *State, t Transition, r Rule) float64
}

// Parser chooses at every step the best scored arc allowed by its Grammar,
// LeftArc on equal scores, and shifts when no arc applies. When the buffer
// is exhausted the remaining stack elements are attached to the bottom one
// as fragments, so every sentence gets a single tree.
type Parser struct {
	scorer  Scorer
	grammar *Grammar
}

type Option func(*Parser)

func WithGrammar(g *Grammar) Option {
	return func(p *Parser) {
		p.grammar = g
	}
}

func NewParser(s Scorer, opts ...Option) *Parser {
	p := &Parser{scorer: s, grammar: DefaultGrammar()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the tree of the tagged tokens of a sentence.
func (p *Parser) Parse(tokens []sent.Token) (*sent.Tree, error) {
	for i, t := range tokens {
		if t.Tag == "" && t.Pos == "" {
			return nil, &sent.TokenError{Index: i, Err: ErrUntagged}
		}
	}

	st := NewState(len(tokens))
	for {
		t, rel, err := p.next(tokens, st)
		if err != nil {
			return nil, err
		}

		if t < 0 {
			break
		}

		if err := st.Apply(t, rel); err != nil {
			return nil, err
		}
	}

	return finish(st), nil
}

// next returns the transition to apply, or -1 when the parse is done.
func (p *Parser) next(tokens []sent.Token, st *State) (Transition, string, error) {
	left, lrel, err := p.score(tokens, st, LeftArc)
	if err != nil {
		return 0, "", err
	}

	right, rrel, err := p.score(tokens, st, RightArc)
	if err != nil {
		return 0, "", err
	}

	switch {
	case left > 0 && left >= right:
		return LeftArc, lrel, nil
	case right > 0:
		return RightArc, rrel, nil
	case st.Valid(Shift):
		return Shift, "", nil
	}

	return -1, "", nil
}

// score returns the score and relation of an arc transition, 0 if the
// grammar does not allow it.
func (p *Parser) score(tokens []sent.Token, st *State, t Transition) (float64, string, error) {
	if !st.Valid(t) {
		return 0, "", nil
	}

	s0, _ := st.S0()
	s1, _ := st.S1()

	var r Rule
	var ok bool
	switch t {
	case LeftArc:
		r, ok = p.grammar.Rule(tokens[s0], tokens[s1], Before)
	case RightArc:
		if p.pending(tokens, st, s0) {
			return 0, "", nil
		}
		r, ok = p.grammar.Rule(tokens[s1], tokens[s0], After)
	}

	if !ok {
		return 0, "", nil
	}

	score := p.scorer.ScoreTransition(st, t, r)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, "", &sent.TokenError{Index: s0, Err: fmt.Errorf("%w: %s %v", ErrInvalidScore, t, score)}
	}
	return score, r.Rel, nil
}

// pending reports whether the buffer head may still attach to s0, or
// govern it. Reducing s0 now would lose that arc.
func (p *Parser) pending(tokens []sent.Token, st *State, s0 int) bool {
	b0, ok := st.B0()
	if !ok || Class(tokens[b0]) == pos.PUNCT {
		return false
	}

	if _, ok := p.grammar.Rule(tokens[s0], tokens[b0], After); ok {
		return true
	}
	_, ok = p.grammar.Rule(tokens[b0], tokens[s0], Before)
	return ok
}

func finish(st *State) *sent.Tree {
	if len(st.Stack) > 1 {
		root := st.Stack[0]
		for _, i := range st.Stack[1:] {
			st.attach(i, root, Fragment)
		}
	}

	return sent.NewTree(st.Heads, st.Rels)
}
