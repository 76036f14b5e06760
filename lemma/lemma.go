// Package lemma derives the dictionary form of tagged tokens.
package lemma

import (
	"errors"
	"strings"
	"unicode/utf8"

	sent "github.com/revelaction/annot/sentence"
)

// Lemma classes of the exception table.
const (
	Noun = "NOUN"
	Verb = "VERB"
	Adj  = "ADJ"
	Adv  = "ADV"

	// Any matches a form in every class.
	Any = "*"
)

// ErrUntagged is returned for a token without tag. Lemmas need the tag.
var ErrUntagged = errors.New("token has no tag")

type rule struct {
	suffix  string
	replace string
	minLen  int
	// undouble removes a doubled final consonant of the stem, or restores a
	// final e to a short consonant-vowel-consonant stem.
	undouble bool
}

// rules per fine tag, first match wins.
var rules = map[string][]rule{
	"NNS": {
		{"ies", "y", 5, false},
		{"sses", "ss", 5, false},
		{"ches", "ch", 5, false},
		{"shes", "sh", 5, false},
		{"xes", "x", 4, false},
		{"zes", "z", 4, false},
		{"ss", "ss", 2, false},
		{"us", "us", 2, false},
		{"s", "", 3, false},
	},
	"VBZ": {
		{"ies", "y", 5, false},
		{"sses", "ss", 5, false},
		{"ches", "ch", 5, false},
		{"shes", "sh", 5, false},
		{"xes", "x", 4, false},
		{"zes", "z", 4, false},
		{"oes", "o", 4, false},
		{"s", "", 3, false},
	},
	"VBG": {
		{"ing", "", 5, true},
	},
	"VBD": {
		{"ied", "y", 4, false},
		{"eed", "ee", 4, false},
		{"ed", "", 4, true},
	},
	"VBN": {
		{"ied", "y", 4, false},
		{"eed", "ee", 4, false},
		{"ed", "", 4, true},
	},
	"JJR": {
		{"ier", "y", 5, false},
		{"er", "", 4, true},
	},
	"JJS": {
		{"iest", "y", 6, false},
		{"est", "", 5, true},
	},
	"RBR": {
		{"ier", "y", 5, false},
		{"er", "", 4, true},
	},
	"RBS": {
		{"iest", "y", 6, false},
		{"est", "", 5, true},
	},
}

// Lemmatizer applies per tag suffix rules after an exception lookup.
// It is read only once built.
type Lemmatizer struct {
	exceptions map[string]string
}

func New() *Lemmatizer {
	l := &Lemmatizer{exceptions: make(map[string]string)}
	for class, forms := range defaultExceptions {
		for form, lemma := range forms {
			l.AddException(class, form, lemma)
		}
	}
	return l
}

// AddException overrides the lemma of form for tags of class. class Any
// applies to all tags.
func (l *Lemmatizer) AddException(class, form, lemma string) {
	l.exceptions[exceptionKey(class, lower(form))] = lemma
}

// Lemmatize sets the Lemma of every token of the sentence.
func (l *Lemmatizer) Lemmatize(s *sent.Sentence) error {
	for i := range s.Tokens {
		if s.Tokens[i].Tag == "" {
			return &sent.TokenError{Index: i, Err: ErrUntagged}
		}
		s.Tokens[i].Lemma = l.Lemma(s.Tokens[i].Text, s.Tokens[i].Tag)
	}
	return nil
}

// Lemma returns the lemma of form tagged with tag. Proper nouns and
// unknown words keep their surface form, other lemmas are lower case.
func (l *Lemmatizer) Lemma(form, tag string) string {
	switch tag {
	case "NNP", "NNPS", "UNKNOWN":
		return form
	}

	w := lower(form)
	if lemma, ok := l.exceptions[exceptionKey(Class(tag), w)]; ok {
		return lemma
	}
	if lemma, ok := l.exceptions[exceptionKey(Any, w)]; ok {
		return lemma
	}

	n := utf8.RuneCountInString(w)
	for _, r := range rules[tag] {
		if n < r.minLen || !strings.HasSuffix(w, r.suffix) {
			continue
		}

		stem := strings.TrimSuffix(w, r.suffix) + r.replace
		if r.undouble {
			if !hasVowel(stem) {
				return w
			}
			stem = restore(stem)
		}
		return stem
	}

	return w
}

// Class returns the lemma class of a fine tag, empty for closed classes.
func Class(tag string) string {
	switch {
	case tag == "NN" || tag == "NNS":
		return Noun
	case strings.HasPrefix(tag, "VB") || tag == "MD":
		return Verb
	case strings.HasPrefix(tag, "JJ"):
		return Adj
	case strings.HasPrefix(tag, "RB"):
		return Adv
	}
	return ""
}

// restore undoes the spelling changes of an inflection on the stem:
// doubled consonants after a consonant-vowel-consonant (stopp, not add) or
// a dropped final e (mak).
func restore(stem string) string {
	n := len(stem)
	if n >= 4 && stem[n-1] == stem[n-2] && isConsonant(stem[n-1]) && !strings.ContainsRune("lsfz", rune(stem[n-1])) && isCVC(stem[:n-1]) {
		return stem[:n-1]
	}

	if n >= 3 && syllables(stem) == 1 && isCVC(stem) {
		return stem + "e"
	}
	return stem
}

func isCVC(s string) bool {
	n := len(s)
	a, b, c := s[n-3], s[n-2], s[n-1]
	return isConsonant(a) && isVowel(b) && isConsonant(c) && !strings.ContainsRune("wxy", rune(c))
}

func syllables(s string) int {
	count := 0
	prev := false
	for i := 0; i < len(s); i++ {
		v := isVowel(s[i])
		if v && !prev {
			count++
		}
		prev = v
	}
	return count
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

func isConsonant(b byte) bool {
	return b >= 'a' && b <= 'z' && !isVowel(b)
}

func hasVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouy")
}

func lower(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "’", "'")
}

func exceptionKey(class, form string) string {
	return class + "\x00" + form
}
