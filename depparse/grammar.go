package depparse

import (
	"github.com/revelaction/annot/pos"
	sent "github.com/revelaction/annot/sentence"
)

// Direction is the side of the head the dependent is on.
type Direction int

const (
	// Before means the dependent precedes the head.
	Before Direction = iota
	// After means the dependent follows the head.
	After
)

// Rule is a relation allowed between two classes with its base weight.
type Rule struct {
	Rel    string
	Weight float64
}

type ruleKey struct {
	head, dep string
	dir       Direction
}

// Grammar holds the tag pair compatibility rules of the parser, keyed by
// the universal class of head and dependent.
type Grammar struct {
	rules map[ruleKey]Rule
	punct Rule
}

// NewGrammar returns an empty Grammar. Punctuation always attaches with
// the punct rule.
func NewGrammar() *Grammar {
	return &Grammar{
		rules: make(map[ruleKey]Rule),
		punct: Rule{Rel: "punct", Weight: .1},
	}
}

// Add allows dependents of class dep on side dir of heads of class head.
func (g *Grammar) Add(head, dep string, dir Direction, rel string, weight float64) {
	g.rules[ruleKey{head, dep, dir}] = Rule{Rel: rel, Weight: weight}
}

// Rule returns the rule attaching dep to head.
func (g *Grammar) Rule(head, dep sent.Token, dir Direction) (Rule, bool) {
	hc, dc := Class(head), Class(dep)
	if dc == pos.PUNCT {
		if hc == pos.PUNCT {
			return Rule{}, false
		}
		return g.punct, true
	}

	r, ok := g.rules[ruleKey{hc, dc, dir}]
	return r, ok
}

// Class returns the grammar class of a token. Unknown words are treated as
// proper nouns.
func Class(t sent.Token) string {
	c := t.Pos
	if c == "" {
		c = pos.Universal(t.Tag)
	}
	if c == pos.X {
		return pos.PROPN
	}
	return c
}

// DefaultGrammar returns the built in English rules.
func DefaultGrammar() *Grammar {
	g := NewGrammar()

	v := pos.VERB
	g.Add(v, pos.PRON, Before, "nsubj", .9)
	g.Add(v, pos.NOUN, Before, "nsubj", .8)
	g.Add(v, pos.PROPN, Before, "nsubj", .8)
	g.Add(v, pos.AUX, Before, "aux", .9)
	g.Add(v, pos.ADV, Before, "advmod", .6)
	g.Add(v, pos.PART, Before, "mark", .7)

	g.Add(v, pos.NOUN, After, "obj", .8)
	g.Add(v, pos.PROPN, After, "obj", .8)
	g.Add(v, pos.PRON, After, "obj", .7)
	g.Add(v, pos.NUM, After, "obj", .4)
	g.Add(v, pos.ADP, After, "prep", .6)
	g.Add(v, pos.ADV, After, "advmod", .5)
	g.Add(v, pos.ADJ, After, "xcomp", .4)
	g.Add(v, pos.VERB, After, "xcomp", .3)
	g.Add(v, pos.CCONJ, After, "cc", .3)

	for _, n := range []string{pos.NOUN, pos.PROPN} {
		g.Add(n, pos.DET, Before, "det", .9)
		g.Add(n, pos.ADJ, Before, "amod", .8)
		g.Add(n, pos.NOUN, Before, "compound", .6)
		g.Add(n, pos.PROPN, Before, "compound", .7)
		g.Add(n, pos.NUM, Before, "nummod", .7)
		g.Add(n, pos.PRON, Before, "nmod:poss", .7)

		g.Add(n, pos.PART, After, "case", .8)
		g.Add(n, pos.ADP, After, "prep", .5)
		g.Add(n, pos.CCONJ, After, "cc", .3)
	}
	g.Add(pos.PROPN, pos.NUM, After, "nummod", .6)

	for _, d := range []string{pos.NOUN, pos.PROPN, pos.PRON} {
		g.Add(pos.ADP, d, After, "pobj", .8)
	}
	g.Add(pos.ADP, pos.NUM, After, "pobj", .6)

	g.Add(pos.ADJ, pos.ADV, Before, "advmod", .7)
	g.Add(pos.ADJ, pos.ADP, After, "prep", .3)

	return g
}
