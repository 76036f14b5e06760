package pos

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sent "github.com/revelaction/annot/sentence"
)

type suffixRule struct {
	suffix     string
	minLen     int
	candidates []Candidate
}

func c(tag string, p float64) Candidate {
	return Candidate{Tag: tag, Prob: p}
}

// Lower case suffix rules, first match wins.
var suffixRules = []suffixRule{
	{"ing", 5, []Candidate{c("VBG", .7), c("NN", .3)}},
	{"ed", 4, []Candidate{c("VBD", .6), c("VBN", .4)}},
	{"ly", 4, []Candidate{c("RB", .9), c("JJ", .1)}},
	{"tion", 5, []Candidate{c("NN", 1)}},
	{"sion", 5, []Candidate{c("NN", 1)}},
	{"ment", 5, []Candidate{c("NN", 1)}},
	{"ness", 5, []Candidate{c("NN", 1)}},
	{"ity", 4, []Candidate{c("NN", 1)}},
	{"ance", 5, []Candidate{c("NN", 1)}},
	{"ence", 5, []Candidate{c("NN", 1)}},
	{"ship", 5, []Candidate{c("NN", 1)}},
	{"ism", 4, []Candidate{c("NN", 1)}},
	{"ist", 4, []Candidate{c("NN", 1)}},
	{"able", 5, []Candidate{c("JJ", 1)}},
	{"ible", 5, []Candidate{c("JJ", 1)}},
	{"ful", 4, []Candidate{c("JJ", 1)}},
	{"ous", 4, []Candidate{c("JJ", 1)}},
	{"ive", 4, []Candidate{c("JJ", 1)}},
	{"less", 5, []Candidate{c("JJ", 1)}},
	{"ish", 4, []Candidate{c("JJ", 1)}},
	{"ic", 4, []Candidate{c("JJ", 1)}},
	{"al", 4, []Candidate{c("JJ", .7), c("NN", .3)}},
	{"est", 5, []Candidate{c("JJS", 1)}},
	{"ier", 5, []Candidate{c("JJR", 1)}},
	{"ize", 4, []Candidate{c("VB", .6), c("VBP", .4)}},
	{"ise", 4, []Candidate{c("VB", .6), c("VBP", .4)}},
	{"ify", 4, []Candidate{c("VB", .6), c("VBP", .4)}},
	{"er", 4, []Candidate{c("NN", .7), c("JJR", .3)}},
	{"or", 4, []Candidate{c("NN", 1)}},
	{"ss", 3, []Candidate{c("NN", 1)}},
	{"us", 3, []Candidate{c("NN", 1)}},
	{"is", 3, []Candidate{c("NN", 1)}},
	{"s", 3, []Candidate{c("NNS", .7), c("VBZ", .3)}},
}

// Capitalized suffixes typical of proper names.
var properSuffixes = []string{
	"ton", "ville", "burg", "burgh", "land", "stan", "ia", "son", "sen",
	"berg", "ford", "shire", "chester", "field", "wood", "ski", "sky", "ez",
}

var lowerFallback = []Candidate{c("NN", .6), c("JJ", .2), c("VB", .2)}

// Guess proposes candidates for a form missing from the lexicon from its
// shape and suffix. It returns nil for a capitalized word it can not
// classify, leaving the token unknown.
func Guess(tokens []sent.Token, i int) []Candidate {
	t := tokens[i]
	text := t.Text

	if isNumber(text) {
		return []Candidate{c("CD", 1)}
	}

	if isPunct(text) {
		return []Candidate{c(punctTag(tokens, i), 1)}
	}

	if hasDigit(text) {
		return []Candidate{c("NN", .6), c("CD", .4)}
	}

	first, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(first) && !unicode.IsTitle(first) {
		if t.Abbrev {
			return []Candidate{c("FW", 1)}
		}
		if cands := suffixGuess(text); cands != nil {
			return cands
		}
		return lowerFallback
	}

	switch {
	case t.Abbrev:
		return []Candidate{c("NNP", 1)}
	case isAllCaps(text):
		return []Candidate{c("NNP", 1)}
	case hasProperSuffix(text):
		return []Candidate{c("NNP", 1)}
	case sentenceInitial(tokens, i):
		return suffixGuess(strings.ToLower(text))
	}

	return nil
}

func suffixGuess(lower string) []Candidate {
	n := utf8.RuneCountInString(lower)
	for _, r := range suffixRules {
		if n >= r.minLen && strings.HasSuffix(lower, r.suffix) {
			return r.candidates
		}
	}
	return nil
}

func hasProperSuffix(text string) bool {
	lower := strings.ToLower(text)
	n := utf8.RuneCountInString(lower)
	for _, s := range properSuffixes {
		if n > len(s)+1 && strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// sentenceInitial reports whether only opening punctuation precedes
// tokens[i] in the sentence.
func sentenceInitial(tokens []sent.Token, i int) bool {
	for _, t := range tokens[:i] {
		if !isPunct(t.Text) {
			return false
		}
	}
	return true
}

func isNumber(text string) bool {
	digits := 0
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func hasDigit(text string) bool {
	return strings.IndexFunc(text, unicode.IsDigit) >= 0
}

func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 1
}

func isPunct(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// punctTag maps punctuation to the Penn Treebank punctuation tags. An ascii
// double quote opens when it is not attached to the previous token.
func punctTag(tokens []sent.Token, i int) string {
	text := tokens[i].Text
	r, _ := utf8.DecodeRuneInString(text)

	switch r {
	case '.', '!', '?':
		return "."
	case ',':
		return ","
	case ':', ';', '-', '–', '—':
		if r == '-' && len(text) == 1 {
			return "HYPH"
		}
		return ":"
	case '(', '[', '{':
		return "-LRB-"
	case ')', ']', '}':
		return "-RRB-"
	case '“', '‘', '«', '`':
		return "``"
	case '”', '’', '»':
		return "''"
	case '"', '\'':
		if i == 0 || tokens[i-1].End < tokens[i].Idx {
			return "``"
		}
		return "''"
	case '$', '€', '£':
		return "$"
	case '#':
		return "#"
	case '%', '&', '+', '=', '/', '*', '@':
		return "SYM"
	}
	return "NFP"
}
