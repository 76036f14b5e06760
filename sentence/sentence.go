package sentence

import "unicode/utf8"

const (
	// NoEntity is the NER label of a token outside any named entity.
	NoEntity = "O"

	// RootRel is the Dep value of the root token of a sentence.
	RootRel = "ROOT"
)

// Doc is an annotated text: the raw text as given and its ordered
// sentences. Id, Title and Labels are storage metadata and are not set by
// the annotator.
type Doc struct {
	Id int `json:"id"`

	Title string `json:"title,omitempty"`

	Labels []string `json:"labels,omitempty"`

	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered, contiguous group of tokens of a Doc.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id"`
	Tokens []Token `json:"tokens"`

	// Tree is the dependency parse, nil when the parse stage did not run.
	Tree *Tree `json:"tree,omitempty"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// The index of the token in the doc, starting at 0.
	Id int `json:"id"`

	// The sentence index of the head token. The root is its own head.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// The fine grained (Penn Treebank) POS tag
	Tag string `json:"tag"`

	// the index of the start character of the token in the doc text (rune based)
	Idx int `json:"idx"`

	// the index after the last character of the token (rune based)
	End int `json:"end"`

	// The word, NFC normalized unless normalization is off
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The NER label. Empty if entity recognition did not run.
	Ent string `json:"ent,omitempty"`

	// Abbrev is set by the tokenizer for recognized abbreviations ("Dr.")
	Abbrev bool `json:"abbrev,omitempty"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Len returns the length of the token text in runes.
func (t Token) Len() int {
	return utf8.RuneCountInString(t.Text)
}

// IsRoot reports whether the token is the root of its sentence parse.
func (t Token) IsRoot() bool {
	return t.Dep == RootRel
}

// Tokens returns all the tokens of the doc in document order.
func (d *Doc) Tokens() []Token {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}

	tokens := make([]Token, 0, n)
	for _, s := range d.Sentences {
		tokens = append(tokens, s.Tokens...)
	}
	return tokens
}

// NumTokens returns the number of tokens of the doc.
func (d *Doc) NumTokens() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// SetTree stores the parse tree in the sentence and mirrors the head and
// relation of every token into its Head and Dep fields.
func (s *Sentence) SetTree(tree *Tree) {
	s.Tree = tree
	if tree == nil {
		return
	}

	for i := range s.Tokens {
		head, rel, ok := tree.Head(i)
		if !ok {
			s.Tokens[i].Head = i
			s.Tokens[i].Dep = RootRel
			continue
		}
		s.Tokens[i].Head = head
		s.Tokens[i].Dep = rel
	}
}

// Texts returns the surface form of the sentence tokens.
func (s Sentence) Texts() []string {
	texts := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		texts[i] = t.Text
	}
	return texts
}
