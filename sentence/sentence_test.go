package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *Doc {
	// "Dr. Smith met John Kerry."
	return &Doc{
		Text: "Dr. Smith met John Kerry.",
		Sentences: []Sentence{{
			Tokens: []Token{
				{Id: 0, Index: 0, Text: "Dr.", Idx: 0, End: 3, Tag: "NNP", Pos: "PROPN", Ent: NoEntity},
				{Id: 1, Index: 1, Text: "Smith", Idx: 4, End: 9, Tag: "NNP", Pos: "PROPN", Ent: "PERSON"},
				{Id: 2, Index: 2, Text: "met", Idx: 10, End: 13, Tag: "VBD", Pos: "VERB", Ent: NoEntity},
				{Id: 3, Index: 3, Text: "John", Idx: 14, End: 18, Tag: "NNP", Pos: "PROPN", Ent: "PERSON"},
				{Id: 4, Index: 4, Text: "Kerry", Idx: 19, End: 24, Tag: "NNP", Pos: "PROPN", Ent: "PERSON"},
				{Id: 5, Index: 5, Text: ".", Idx: 24, End: 25, Tag: ".", Pos: "PUNCT", Ent: NoEntity},
			},
		}},
	}
}

func TestDocEntities(t *testing.T) {
	doc := testDoc()

	entities := doc.Entities()
	require.Len(t, entities, 2)

	assert.Equal(t, "Smith", entities[0].Text)
	assert.Equal(t, "PERSON", entities[0].Label)
	assert.Equal(t, 1, entities[0].Start)
	assert.Equal(t, 2, entities[0].End)

	assert.Equal(t, "John Kerry", entities[1].Text)
	assert.Equal(t, 3, entities[1].Start)
	assert.Equal(t, 5, entities[1].End)
	assert.Equal(t, "John Kerry (PERSON)", entities[1].String())
}

func TestDocEntitiesPunctuationGap(t *testing.T) {
	doc := &Doc{
		Text: "Paris,London",
		Sentences: []Sentence{{
			Tokens: []Token{
				{Index: 0, Text: "Paris", Idx: 0, End: 5, Pos: "PROPN", Ent: "LOCATION"},
				{Index: 1, Text: ",", Idx: 5, End: 6, Pos: "PUNCT", Ent: "LOCATION"},
				{Index: 2, Text: "London", Idx: 6, End: 12, Pos: "PROPN", Ent: "LOCATION"},
			},
		}},
	}

	entities := doc.Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, "Paris", entities[0].Text)
	assert.Equal(t, "London", entities[1].Text)
}

func TestDocProject(t *testing.T) {
	doc := testDoc()
	doc.Sentences[0].Tokens[2].Ent = ""

	p := doc.Project()
	assert.Equal(t, []string{"Dr.", "Smith", "met", "John", "Kerry", "."}, p.Tokens)
	assert.Equal(t, []string{"NNP", "NNP", "VBD", "NNP", "NNP", "."}, p.PosTags)
	assert.Equal(t, "Kerry (PERSON)", p.NamedEntities[4])
	assert.Equal(t, "met (O)", p.NamedEntities[2])
}

func TestDocProjectEmpty(t *testing.T) {
	doc := &Doc{}
	p := doc.Project()
	assert.Empty(t, p.Tokens)
	assert.NotNil(t, p.Tokens)
}

func TestSetTreeMirrorsHeads(t *testing.T) {
	s := Sentence{Tokens: make([]Token, 3)}
	s.SetTree(NewTree([]int{1, -1, 1}, []string{"nsubj", "", "punct"}))

	assert.Equal(t, 1, s.Tokens[0].Head)
	assert.Equal(t, "nsubj", s.Tokens[0].Dep)
	assert.Equal(t, 1, s.Tokens[1].Head)
	assert.True(t, s.Tokens[1].IsRoot())
	assert.Equal(t, "punct", s.Tokens[2].Dep)
}

func TestTreeValidate(t *testing.T) {
	tests := []struct {
		name    string
		tree    *Tree
		n       int
		wantErr bool
	}{
		{"empty", &Tree{Root: -1}, 0, false},
		{"single", NewTree([]int{-1}, []string{""}), 1, false},
		{"chain", NewTree([]int{1, -1, 1, 2}, []string{"a", "", "b", "c"}), 4, false},
		{"no root", &Tree{Root: -1, Arcs: []Arc{{Head: 1, Dependent: 0}}}, 2, true},
		{"missing arc", NewTree([]int{-1, 0, -1}, []string{"", "a", ""}), 3, true},
		{"cycle", &Tree{Root: 0, Arcs: []Arc{{Head: 2, Dependent: 1}, {Head: 1, Dependent: 2}}}, 3, true},
		{"two heads", &Tree{Root: 0, Arcs: []Arc{{Head: 0, Dependent: 1}, {Head: 2, Dependent: 1}}}, 3, true},
		{"out of range", &Tree{Root: 0, Arcs: []Arc{{Head: 0, Dependent: 5}}}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tree.Validate(tt.n)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTreeChildren(t *testing.T) {
	tree := NewTree([]int{1, -1, 1, 2}, []string{"a", "", "b", "c"})

	assert.Equal(t, []int{0, 2}, tree.Children(1))
	assert.Equal(t, []int{3}, tree.Children(2))
	assert.Nil(t, tree.Children(0))
	assert.Equal(t, 4, tree.Len())

	_, _, ok := tree.Head(1)
	assert.False(t, ok)
}
