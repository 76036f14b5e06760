package pos

import (
	"fmt"
	"strconv"
	"strings"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/tokenize"
)

const (
	start             = "START"
	defaultTransition = 0.3
)

// Model is the reference Scorer: lexicon priors multiplied by a transition
// weight between the universal class of the previous tag and the class of
// the candidate. Forms missing from the lexicon go to the Guesser.
//
// A Model is read only once built and can be shared between goroutines.
type Model struct {
	lexicon     map[string][]Candidate
	transitions map[string]map[string]float64
}

var _ Scorer = (*Model)(nil)

// NewModel returns a Model with the built in lexicon and transitions.
func NewModel() *Model {
	m := &Model{
		lexicon:     make(map[string][]Candidate, len(defaultLexicon)),
		transitions: defaultTransitions,
	}

	for form, entry := range defaultLexicon {
		c, err := ParseEntry(entry)
		if err != nil {
			panic(fmt.Sprintf("pos: lexicon entry %q: %v", form, err))
		}
		m.lexicon[key(form)] = c
	}

	return m
}

// AddEntry adds or replaces the lexicon entry of form. entry has the
// compact syntax of ParseEntry.
func (m *Model) AddEntry(form, entry string) error {
	c, err := ParseEntry(entry)
	if err != nil {
		return fmt.Errorf("lexicon entry %q: %w", form, err)
	}
	m.lexicon[key(form)] = c
	return nil
}

// Lookup returns the lexicon candidates of form.
func (m *Model) Lookup(form string) ([]Candidate, bool) {
	c, ok := m.lexicon[key(form)]
	return c, ok
}

// ScoreCandidates implements Scorer.
func (m *Model) ScoreCandidates(tokens []sent.Token, i int, prev string) []Candidate {
	priors, ok := m.Lookup(tokens[i].Text)
	if !ok {
		priors = Guess(tokens, i)
	}

	from := start
	aux := ""
	if prev != "" {
		from = class(prev)
		if from == VERB && i > 0 {
			if a, ok := auxiliaries[key(tokens[i-1].Text)]; ok {
				from, aux = AUX, a
			}
		}
	}

	out := make([]Candidate, len(priors))
	for k, c := range priors {
		out[k] = Candidate{Tag: c.Tag, Prob: c.Prob * m.transition(from, class(c.Tag)) * auxWeight(aux, c.Tag)}
	}
	return out
}

// auxWeight is the weight of a verb tag after a form of be, have or do.
func auxWeight(aux, tag string) float64 {
	if w, ok := auxTags[aux][tag]; ok {
		return w
	}
	return 1
}

func (m *Model) transition(from, to string) float64 {
	if row, ok := m.transitions[from]; ok {
		if w, ok := row[to]; ok {
			return w
		}
	}
	return defaultTransition
}

// class is the transition class of a tag. Unknown words behave as proper
// nouns.
func class(tag string) string {
	u := Universal(tag)
	if u == X {
		return PROPN
	}
	return u
}

func key(form string) string {
	return strings.ReplaceAll(tokenize.Fold(form), "’", "'")
}

// ParseEntry parses a lexicon entry of the form "TAG:p TAG:p ...". A bare
// "TAG" has probability 1.
func ParseEntry(entry string) ([]Candidate, error) {
	fields := strings.Fields(entry)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty entry")
	}

	candidates := make([]Candidate, 0, len(fields))
	for _, f := range fields {
		// the tag may contain a colon, as in ":"
		k := strings.LastIndex(f, ":")
		if k <= 0 {
			candidates = append(candidates, Candidate{Tag: f, Prob: 1})
			continue
		}

		p, err := strconv.ParseFloat(f[k+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", f, err)
		}
		if p <= 0 || p > 1 {
			return nil, fmt.Errorf("candidate %q: probability out of range", f)
		}
		candidates = append(candidates, Candidate{Tag: f[:k], Prob: p})
	}

	return candidates, nil
}

// auxiliaries maps the verb forms of be, have and do to their lemma. A
// verb tagged form of them makes the transition class AUX.
var auxiliaries = map[string]string{
	"be": "be", "am": "be", "is": "be", "are": "be", "was": "be", "were": "be",
	"been": "be", "being": "be", "'s": "be", "'re": "be", "'m": "be",
	"have": "have", "has": "have", "had": "have", "having": "have", "'ve": "have",
	"do": "do", "does": "do", "did": "do",
}

// auxTags weights the verb tags following an auxiliary: participles after
// be, past participles after have, base forms after do.
var auxTags = map[string]map[string]float64{
	"be":   {"VBG": 1, "VBN": .9, "VB": .2, "VBD": .2, "VBP": .2, "VBZ": .2},
	"have": {"VBN": 1, "VBD": .3, "VBG": .3, "VB": .2, "VBP": .2, "VBZ": .2},
	"do":   {"VB": 1, "VBP": .2, "VBZ": .1, "VBD": .1, "VBN": .1, "VBG": .1},
}

var defaultTransitions = map[string]map[string]float64{
	start: {DET: .8, PRON: .8, PROPN: .8, NOUN: .6, ADV: .5, ADP: .5, ADJ: .5, NUM: .5, AUX: .4, INTJ: .5},
	DET:   {NOUN: 1, ADJ: .8, PROPN: .6, NUM: .5, VERB: .05, ADP: .05, AUX: .05, PUNCT: .05},
	ADJ:   {NOUN: 1, ADJ: .5, PROPN: .5, VERB: .2, ADP: .4, PUNCT: .4},
	NOUN:  {VERB: .8, AUX: .7, ADP: .8, PART: .8, PUNCT: .7, CCONJ: .6, NOUN: .5, ADJ: .2, DET: .1},
	PROPN: {PROPN: .9, VERB: .8, AUX: .7, PART: .9, PUNCT: .7, ADP: .6, CCONJ: .6, NOUN: .3, DET: .1},
	PRON:  {VERB: 1, AUX: 1, ADV: .5, ADJ: .2, NOUN: .1, DET: .1},
	VERB:  {DET: .8, PRON: .7, PROPN: .7, NOUN: .6, ADP: .7, ADV: .6, ADJ: .5, PUNCT: .6, PART: .6, NUM: .5, VERB: .2, AUX: .1},
	AUX:   {VERB: 1, ADV: .6, PART: .6, DET: .5, ADJ: .5, PRON: .3, AUX: .3, NOUN: .1},
	ADP:   {DET: 1, NOUN: .8, PROPN: .8, PRON: .7, NUM: .7, ADJ: .6, VERB: .1},
	PART:  {VERB: 1, NOUN: .8, ADJ: .5},
	ADV:   {VERB: .8, ADJ: .7, AUX: .5, PUNCT: .5, ADV: .4, DET: .3},
	NUM:   {NOUN: 1, PUNCT: .6, NUM: .5, ADP: .4},
	CCONJ: {DET: .7, NOUN: .7, PROPN: .7, PRON: .7, VERB: .6, ADJ: .6},
}
