// Package ssplit groups a token stream in sentences.
package ssplit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sent "github.com/revelaction/annot/sentence"
)

// Splitter ends a sentence after a terminal punctuation token that is not
// an abbreviation, when the next token starts a new sentence and no bracket
// or quotation is open. Closing quotes and brackets after the terminal stay
// in the sentence.
type Splitter struct {
	terminals string
}

// New returns a Splitter ending sentences on . ! and ?
func New() *Splitter {
	return &Splitter{terminals: ".!?"}
}

// Split partitions tokens in sentences. The tokens of each sentence get
// their Index and SentenceId set; sentence ids run from 0. Tokens after the
// last terminal form a final sentence. No tokens yields no sentences.
func (s *Splitter) Split(tokens []sent.Token) []sent.Sentence {
	var sentences []sent.Sentence
	start := 0
	var n nest

	for i := 0; i < len(tokens); i++ {
		n.update(tokens, i)

		if !s.isTerminal(tokens[i]) {
			continue
		}

		end := i + 1
		for end < len(tokens) && closes(tokens[end-1], tokens[end]) {
			n.update(tokens, end)
			end++
		}
		i = end - 1

		if n.open() {
			continue
		}

		if end < len(tokens) && !startsSentence(tokens[end:]) {
			continue
		}

		sentences = append(sentences, build(len(sentences), tokens[start:end]))
		start = end
	}

	if start < len(tokens) {
		sentences = append(sentences, build(len(sentences), tokens[start:]))
	}

	return sentences
}

// Single puts all tokens in one sentence.
func Single(tokens []sent.Token) []sent.Sentence {
	if len(tokens) == 0 {
		return nil
	}
	return []sent.Sentence{build(0, tokens)}
}

func build(id int, tokens []sent.Token) sent.Sentence {
	s := sent.Sentence{Id: id, Tokens: make([]sent.Token, len(tokens))}
	copy(s.Tokens, tokens)
	for i := range s.Tokens {
		s.Tokens[i].Index = i
		s.Tokens[i].SentenceId = id
	}
	return s
}

func (s *Splitter) isTerminal(t sent.Token) bool {
	if t.Abbrev || t.Text == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(t.Text)
	return strings.ContainsRune(s.terminals, last)
}

// startsSentence reports whether the next sentence may start at tokens[0]:
// opening quotes and brackets are skipped and the first word must start
// with an upper case letter or a digit.
func startsSentence(tokens []sent.Token) bool {
	for _, t := range tokens {
		if isOpener(t.Text) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(t.Text)
		return unicode.IsUpper(r) || unicode.IsDigit(r) || unicode.IsTitle(r)
	}
	return true
}

// closes reports whether t closes the sentence ending with prev. Ascii
// quotes only close when attached to prev.
func closes(prev, t sent.Token) bool {
	switch t.Text {
	case ")", "]", "}", "”", "’", "»":
		return true
	case `"`, "'":
		return t.Idx == prev.End
	}
	return false
}

func isOpener(text string) bool {
	switch text {
	case "(", "[", "{", "“", "‘", "«", `"`, "'":
		return true
	}
	return false
}

// nest tracks the open brackets and quotations before a token.
type nest struct {
	depth  int
	double bool
	single bool
}

func (n *nest) open() bool {
	return n.depth > 0 || n.double || n.single
}

func (n *nest) update(tokens []sent.Token, i int) {
	switch tokens[i].Text {
	case `"`:
		n.double = asciiQuote(tokens, i, n.double)
	case "'":
		n.single = asciiQuote(tokens, i, n.single)
	default:
		n.depth = nesting(tokens[i].Text, n.depth)
	}
}

// asciiQuote returns whether the quotation is open after the quote at i.
// An open quotation is closed by the next quote. A quote opens one when it
// is attached to the next token but not to the previous.
func asciiQuote(tokens []sent.Token, i int, open bool) bool {
	if open {
		return false
	}

	t := tokens[i]
	attachedPrev := i > 0 && tokens[i-1].End == t.Idx
	attachedNext := i+1 < len(tokens) && tokens[i+1].Idx == t.End
	return !attachedPrev && attachedNext
}

// nesting updates the bracket and typographic quote depth with token text.
func nesting(text string, depth int) int {
	switch text {
	case "(", "[", "{", "“", "«":
		return depth + 1
	case ")", "]", "}", "”", "»":
		if depth > 0 {
			return depth - 1
		}
	}
	return depth
}
