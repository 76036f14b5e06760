// Package tokenize splits raw text in tokens keeping the rune offsets of
// every token in the original text.
package tokenize

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	sent "github.com/revelaction/annot/sentence"
)

// ErrMalformed is returned for input that is not valid UTF-8.
var ErrMalformed = errors.New("malformed utf-8 input")

// DefaultAbbreviations are recognized when no other set is configured.
var DefaultAbbreviations = []string{
	"Dr.", "Mr.", "Mrs.", "Ms.", "Prof.", "Sr.", "Jr.", "St.", "Mt.",
	"Gen.", "Col.", "Lt.", "Capt.", "Sgt.", "Gov.", "Sen.", "Rep.", "Rev.",
	"Inc.", "Corp.", "Ltd.", "Co.", "Bros.",
	"vs.", "etc.", "e.g.", "i.e.", "approx.", "No.", "Fig.", "Vol.",
	"Jan.", "Feb.", "Mar.", "Apr.", "Jun.", "Jul.", "Aug.", "Sep.", "Sept.", "Oct.", "Nov.", "Dec.",
	"U.S.", "U.K.", "U.N.", "a.m.", "p.m.",
}

// DefaultClitics is the suffix table used to split contractions.
var DefaultClitics = []string{"n't", "'s", "'re", "'ve", "'ll", "'d", "'m"}

type class int

const (
	classWord class = iota
	classSpace
	classPunct
	classQuote
)

// Tokenizer scans text left to right and emits a token whenever the
// character class changes, except inside abbreviations and word internal
// connectors. Contractions are split using the clitic table.
type Tokenizer struct {
	// folded abbreviation to whether it matches with any initial case
	abbrevs   map[string]bool
	maxAbbrev int
	clitics   []string
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithAbbreviations replaces the abbreviation set.
func WithAbbreviations(abbrevs []string) Option {
	return func(t *Tokenizer) {
		t.abbrevs = map[string]bool{}
		t.maxAbbrev = 0
		t.addAbbreviations(abbrevs)
	}
}

// WithExtraAbbreviations adds abbreviations to the current set.
func WithExtraAbbreviations(abbrevs []string) Option {
	return func(t *Tokenizer) {
		t.addAbbreviations(abbrevs)
	}
}

// WithClitics replaces the clitic suffix table.
func WithClitics(clitics []string) Option {
	return func(t *Tokenizer) {
		t.clitics = nil
		for _, c := range clitics {
			if c != "" {
				t.clitics = append(t.clitics, apostrophes(fold(c)))
			}
		}
		sortLongestFirst(t.clitics)
	}
}

// New returns a Tokenizer with the default abbreviations and clitics.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{abbrevs: map[string]bool{}}
	t.addAbbreviations(DefaultAbbreviations)
	WithClitics(DefaultClitics)(t)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tokenizer) addAbbreviations(abbrevs []string) {
	for _, a := range abbrevs {
		if a == "" {
			continue
		}
		key := fold(a)
		first, _ := utf8.DecodeRuneInString(a)
		if unicode.IsLower(first) {
			t.abbrevs[key] = true
		} else if _, ok := t.abbrevs[key]; !ok {
			t.abbrevs[key] = false
		}
		if n := utf8.RuneCountInString(key); n > t.maxAbbrev {
			t.maxAbbrev = n
		}
	}
}

// Normalize validates the text and returns its NFC form. Offsets of
// tokens produced from the result are relative to the normalized text.
func Normalize(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", ErrMalformed
	}
	return norm.NFC.String(text), nil
}

// NormalizeOffsets is Normalize returning also the rune offset in text of
// every rune offset of the normalized text, its end included. The text is
// normalized segment by segment between NFC boundaries; the runes composed
// from a segment map to the start of the segment runes.
func NormalizeOffsets(text string) (string, []int, error) {
	if !utf8.ValidString(text) {
		return "", nil, ErrMalformed
	}

	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)

	orig := 0
	for rest := text; len(rest) > 0; {
		n := norm.NFC.NextBoundaryInString(rest, true)
		if n <= 0 {
			n = len(rest)
		}

		seg, normalized := rest[:n], norm.NFC.String(rest[:n])
		rest = rest[n:]

		o := utf8.RuneCountInString(seg)
		for j := range utf8.RuneCountInString(normalized) {
			offsets = append(offsets, orig+min(j, o-1))
		}
		b.WriteString(normalized)
		orig += o
	}
	offsets = append(offsets, orig)

	return b.String(), offsets, nil
}

// Remap replaces the Idx and End of tokens by their entry in offsets, as
// returned by NormalizeOffsets.
func Remap(tokens []sent.Token, offsets []int) {
	for i := range tokens {
		tokens[i].Idx = offsets[tokens[i].Idx]
		tokens[i].End = offsets[tokens[i].End]
	}
}

// Tokenize splits text in tokens. Only Text, Idx, End and Abbrev are set.
// Empty input yields no tokens and no error.
func (t *Tokenizer) Tokenize(text string) ([]sent.Token, error) {
	if !utf8.ValidString(text) {
		return nil, ErrMalformed
	}

	s := &scanner{src: []rune(text)}
	for s.pos < len(s.src) {
		switch classify(s.src[s.pos]) {
		case classSpace:
			s.pos++
		case classWord:
			t.scanWord(s)
		default:
			s.scanPunct()
		}
	}

	for i := range s.tokens {
		s.tokens[i].Id = i
	}
	return s.tokens, nil
}

type scanner struct {
	src    []rune
	pos    int
	tokens []sent.Token
}

func (s *scanner) emit(start, end int, abbrev bool) {
	s.tokens = append(s.tokens, sent.Token{
		Text:   string(s.src[start:end]),
		Idx:    start,
		End:    end,
		Abbrev: abbrev,
	})
	s.pos = end
}

// scanPunct emits a run of the same punctuation rune as one token.
func (s *scanner) scanPunct() {
	start := s.pos
	end := start + 1
	for end < len(s.src) && s.src[end] == s.src[start] {
		end++
	}
	s.emit(start, end, false)
}

func (t *Tokenizer) scanWord(s *scanner) {
	start := s.pos

	if end := t.abbrevAt(s.src, start); end > start {
		s.emit(start, end, true)
		return
	}

	if end := acronymAt(s.src, start); end > start {
		s.emit(start, end, true)
		return
	}

	end := wordEnd(s.src, start)
	word := s.src[start:end]

	if hasApostrophe(word) {
		if base := t.cliticBase(word); base > 0 {
			s.emit(start, start+base, false)
			s.emit(start+base, end, false)
			return
		}
	}

	s.emit(start, end, false)
}

// abbrevAt returns the end of the longest abbreviation starting at start,
// or start if there is none. The abbreviation must not be followed by a
// word character. Entries starting with a lower case letter match in any
// case, the others only when the text does not start in lower case ("No."
// but not "no.").
func (t *Tokenizer) abbrevAt(src []rune, start int) int {
	limit := min(len(src), start+t.maxAbbrev)
	for end := limit; end > start+1; end-- {
		if end < len(src) && classify(src[end]) == classWord {
			continue
		}
		if src[end-1] != '.' {
			continue
		}
		anyCase, ok := t.abbrevs[fold(string(src[start:end]))]
		if ok && (anyCase || !unicode.IsLower(src[start])) {
			return end
		}
	}
	return start
}

// acronymAt matches single letters followed by a period, at least two of
// them ("U.S.A.").
func acronymAt(src []rune, start int) int {
	end := start
	n := 0
	for end+1 < len(src) && unicode.IsLetter(src[end]) && src[end+1] == '.' {
		if end+2 < len(src) && classify(src[end+2]) == classWord && !(end+3 < len(src) && src[end+3] == '.') {
			break
		}
		end += 2
		n++
	}

	if n < 2 {
		return start
	}
	if end < len(src) && classify(src[end]) == classWord {
		return start
	}
	return end
}

// wordEnd extends a word run over word characters and connectors: hyphen
// and apostrophes between letters, period and comma between digits.
func wordEnd(src []rune, start int) int {
	end := start
	for end < len(src) {
		r := src[end]
		if classify(r) == classWord {
			end++
			continue
		}

		if end+1 >= len(src) || end == start {
			break
		}

		prev, next := src[end-1], src[end+1]
		switch {
		case (r == '-' || isApostrophe(r)) && unicode.IsLetter(prev) && unicode.IsLetter(next):
			end++
		case (r == '.' || r == ',') && unicode.IsDigit(prev) && unicode.IsDigit(next):
			end++
		default:
			return end
		}
	}
	return end
}

// cliticBase returns the length in runes of the base of a contraction, or
// 0 if no clitic of the table ends the word.
func (t *Tokenizer) cliticBase(word []rune) int {
	folded := apostrophes(fold(string(word)))
	n := utf8.RuneCountInString(folded)
	if n != len(word) {
		// folding changed the rune count, offsets would not match
		return 0
	}

	for _, c := range t.clitics {
		cn := utf8.RuneCountInString(c)
		if cn < n && strings.HasSuffix(folded, c) {
			return n - cn
		}
	}
	return 0
}

func classify(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case isQuote(r):
		return classQuote
	case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
		return classWord
	default:
		return classPunct
	}
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '`', '“', '”', '‘', '’', '«', '»':
		return true
	}
	return false
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

func hasApostrophe(word []rune) bool {
	for _, r := range word {
		if isApostrophe(r) {
			return true
		}
	}
	return false
}

// fold returns the case folded form of s. A Caser keeps state, so one is
// created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Fold is the case folding used to compare abbreviations and lexicon keys.
func Fold(s string) string {
	return fold(s)
}

// apostrophes replaces the typographic apostrophe by the ascii one.
func apostrophes(s string) string {
	return strings.ReplaceAll(s, "’", "'")
}

func sortLongestFirst(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		return utf8.RuneCountInString(s[i]) > utf8.RuneCountInString(s[j])
	})
}
