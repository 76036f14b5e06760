package ner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/tokenize"
)

// Model is the reference Scorer. It combines a gazetteer of known entity
// phrases with shape rules on tags and capitalization. A Model is read only
// once built.
type Model struct {
	gazetteer map[string]string
}

var _ Scorer = (*Model)(nil)

// NewModel returns a Model with the built in gazetteer.
func NewModel() *Model {
	m := &Model{gazetteer: make(map[string]string, len(defaultGazetteer))}
	for phrase, label := range defaultGazetteer {
		m.Add(phrase, label)
	}
	return m
}

// Add adds phrase to the gazetteer. Phrases match token texts case
// insensitively, tokens separated by a single space.
func (m *Model) Add(phrase, label string) {
	m.gazetteer[phraseKey(strings.Fields(phrase))] = label
}

// Lookup returns the gazetteer label of phrase.
func (m *Model) Lookup(phrase string) (string, bool) {
	l, ok := m.gazetteer[phraseKey(strings.Fields(phrase))]
	return l, ok
}

// ScoreEntitySpan implements Scorer. Rules are tried from the most to the
// least specific:
//
//	known phrase                      1.0
//	month followed by numbers         0.9  DATE
//	capitalized run after a title     0.8  PERSON
//	capitalized run after given name  0.7  PERSON
//	capitalized run before org suffix 0.8  ORGANIZATION
//	numbers                           0.6  NUMBER
//	given name alone                  0.5  PERSON
//	unknown capitalized run           0.3  MISC
func (m *Model) ScoreEntitySpan(tokens []sent.Token, start, end int) (string, float64) {
	span := tokens[start:end]
	n := len(span)

	words := make([]string, n)
	for i, t := range span {
		words[i] = t.Text
	}

	if !allLower(span) {
		if label, ok := m.gazetteer[phraseKey(words)]; ok {
			return label, 1
		}
	}

	first := key(span[0].Text)

	switch {
	case n > 1 && isMonth(first) && capitalized(span[0].Text) && allTag(span[1:], "CD"):
		return Date, .9
	case start > 0 && titles[key(tokens[start-1].Text)] && properRun(span):
		return Person, .8
	case n > 1 && givenNames[first] && capitalized(span[0].Text) && properRun(span[1:]):
		return Person, .7
	case n > 1 && orgSuffixes[key(span[n-1].Text)] && properRun(span[:n-1]):
		return Organization, .8
	case allTag(span, "CD"):
		return Number, .6
	case n == 1 && givenNames[first] && capitalized(span[0].Text):
		return Person, .5
	case allTag(span, "UNKNOWN") && properRun(span):
		return Misc, .3
	}

	return "", 0
}

// properRun reports whether every token is a capitalized proper noun or
// unknown word.
func properRun(tokens []sent.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !capitalized(t.Text) {
			return false
		}
		switch t.Tag {
		case "NNP", "NNPS", "UNKNOWN":
		default:
			return false
		}
	}
	return true
}

func allTag(tokens []sent.Token, tag string) bool {
	for _, t := range tokens {
		if t.Tag != tag {
			return false
		}
	}
	return len(tokens) > 0
}

func allLower(tokens []sent.Token) bool {
	for _, t := range tokens {
		if capitalized(t.Text) {
			return false
		}
	}
	return true
}

func capitalized(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(r) || unicode.IsTitle(r)
}

func isMonth(k string) bool {
	return months[k]
}

func key(text string) string {
	return tokenize.Fold(text)
}

func phraseKey(words []string) string {
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = key(w)
	}
	return strings.Join(folded, " ")
}
