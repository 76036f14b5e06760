package sentence

import (
	"fmt"
	"strings"
	"unicode"
)

// Entity is a span of adjacent tokens of one sentence sharing a NER label.
type Entity struct {
	Text       string `json:"text"`
	Label      string `json:"label"`
	SentenceId int    `json:"sent"`

	// Start and End are token indexes in the sentence, End exclusive.
	Start int `json:"start"`
	End   int `json:"end"`

	// Idx and EndIdx are the rune offsets of the span in the doc text.
	Idx    int `json:"idx"`
	EndIdx int `json:"end_idx"`
}

// Entities groups the per token NER labels in entity spans. Two tokens
// belong to the same span if they are consecutive, share a label other
// than NoEntity and only whitespace separates them in the text.
func (d *Doc) Entities() []Entity {
	text := []rune(d.Text)

	var entities []Entity
	for _, s := range d.Sentences {
		var cur *Entity

		for i, t := range s.Tokens {
			if !isEntityToken(t) {
				cur = flush(&entities, cur, text)
				continue
			}

			if cur != nil && cur.Label == t.Ent && onlySpace(text, s.Tokens[i-1].End, t.Idx) {
				cur.End = i + 1
				cur.EndIdx = t.End
				continue
			}

			cur = flush(&entities, cur, text)
			cur = &Entity{
				Label:      t.Ent,
				SentenceId: s.Id,
				Start:      i,
				End:        i + 1,
				Idx:        t.Idx,
				EndIdx:     t.End,
			}
		}

		flush(&entities, cur, text)
	}

	return entities
}

func isEntityToken(t Token) bool {
	return t.Ent != "" && t.Ent != NoEntity && t.Pos != "PUNCT"
}

func flush(entities *[]Entity, e *Entity, text []rune) *Entity {
	if e == nil {
		return nil
	}

	if e.Idx >= 0 && e.EndIdx <= len(text) && e.Idx <= e.EndIdx {
		e.Text = string(text[e.Idx:e.EndIdx])
	}
	*entities = append(*entities, *e)
	return nil
}

func onlySpace(text []rune, from, to int) bool {
	if from < 0 || to > len(text) || from > to {
		return false
	}

	for _, r := range text[from:to] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Projection is the flat view of a doc returned to API clients: surface
// forms, POS tags aligned by index, and "<surface> (<label>)" entities.
type Projection struct {
	Tokens        []string `json:"tokens"`
	PosTags       []string `json:"posTags"`
	NamedEntities []string `json:"namedEntities"`
}

// Project builds the Projection of the doc. Tokens without entity label
// (or with entity recognition disabled) are reported with NoEntity.
func (d *Doc) Project() Projection {
	n := d.NumTokens()
	p := Projection{
		Tokens:        make([]string, 0, n),
		PosTags:       make([]string, 0, n),
		NamedEntities: make([]string, 0, n),
	}

	for _, t := range d.Tokens() {
		label := t.Ent
		if label == "" {
			label = NoEntity
		}

		p.Tokens = append(p.Tokens, t.Text)
		p.PosTags = append(p.PosTags, t.Tag)
		p.NamedEntities = append(p.NamedEntities, fmt.Sprintf("%s (%s)", t.Text, label))
	}

	return p
}

// String returns the entity as "<text> (<label>)".
func (e Entity) String() string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(e.Text), e.Label)
}
