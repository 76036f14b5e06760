package topic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	RequiresOne = iota
	RequiresSome
	RequiresNone
)

// Field prefixes of an expression argument ("pos:VERB").
const (
	LemmaField = "lemma"
	TagField   = "tag"
	PosField   = "pos"
	DepField   = "dep"
	EntField   = "ent"
)

type Topic struct {

	// the topic name
	Name string

	// the expression of the topic
	Exprs []TopicExpr
}

type TopicExpr []TopicExprItem

func (m TopicExpr) String() string {
	sl := []string{}
	for _, item := range m {
		if item.Near > 0 {
			sl = append(sl, strconv.Itoa(item.Near))
		}
		sl = append(sl, item.String())
	}

	return strings.Join(sl, " ")
}

// Lemmas returns all unique non-negative lemmas present in the TopicExpr.
// Negative lemmas (starting with '!') and OR lemmas are excluded because
// they cannot be used for indexed candidate retrieval in storage; they are
// handled later by the Matcher.
func (m TopicExpr) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, item := range m {
		if item.Lemma == "" || strings.HasPrefix(item.Lemma, "!") || strings.Contains(item.Lemma, "|") {
			continue
		}
		if !seen[item.Lemma] {
			seen[item.Lemma] = true
			lemmas = append(lemmas, item.Lemma)
		}
	}
	return lemmas
}

// LemmaSets returns a slice of lemma sets, one for each expression in the topic.
// It only includes positive lemmas suitable for indexed searching.
func (t Topic) LemmaSets() [][]string {
	var sets [][]string
	for _, e := range t.Exprs {
		lemmas := e.Lemmas()
		if len(lemmas) > 0 {
			sets = append(sets, lemmas)
		}
	}
	return sets
}

// Indexable reports whether every expression of the topic has a lemma
// usable for indexed retrieval.
func (t Topic) Indexable() bool {
	for _, e := range t.Exprs {
		if len(e.Lemmas()) == 0 {
			return false
		}
	}
	return true
}

type TopicExprItem struct {

	// The Expr index.
	ExprIndex int `json:"-"`

	// ExprId is the Expresion String(). It should be unique as two identical expresions can
	// not be in the same topic file.
	ExprId string `json:"-"`

	// TopicName references the Topic of the Item
	TopicName string `json:"-"`

	Near  int    `json:"near,omitempty"`
	Lemma string `json:"lemma,omitempty"`
	Pos   string `json:"pos,omitempty"`
	Dep   string `json:"dep,omitempty"`
	Tag   string `json:"tag,omitempty"`
	Ent   string `json:"ent,omitempty"`
}

// String renders the item in the syntax accepted by Parse.
func (m TopicExprItem) String() string {
	var fields []string
	if m.Lemma != "" {
		if _, err := strconv.Atoi(m.Lemma); err == nil || isTagLike(m.Lemma) {
			fields = append(fields, LemmaField+":"+m.Lemma)
		} else {
			fields = append(fields, m.Lemma)
		}
	}
	if m.Tag != "" {
		if m.Lemma != "" || !isTagLike(m.Tag) {
			fields = append(fields, TagField+":"+m.Tag)
		} else {
			fields = append(fields, m.Tag)
		}
	}
	if m.Pos != "" {
		fields = append(fields, PosField+":"+m.Pos)
	}
	if m.Dep != "" {
		fields = append(fields, DepField+":"+m.Dep)
	}
	if m.Ent != "" {
		fields = append(fields, EntField+":"+m.Ent)
	}
	return strings.Join(fields, ",")
}

// Library is a collection of topics
type Library []Topic

// Names returns a list of all topic names in the library
func (l Library) Names() []string {
	var names []string
	for _, t := range l {
		names = append(names, t.Name)
	}
	return names
}

// Topic returns the topic of the library with the given name.
func (l Library) Topic(name string) (Topic, bool) {
	for _, t := range l {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

func (m TopicExprItem) Requirement() int {
	if strings.HasPrefix(m.Lemma, "!") {
		return RequiresNone
	}

	if m.Near > 0 {
		return RequiresSome
	}

	return RequiresOne
}

// Parse parses the user input and converts to a TopicExpr.
//
// Every argument is an item; a number sets the maximum distance (in
// tokens) of the next item from the previous one. An item is a comma
// separated list of fields: a bare lowercase word is a lemma, a bare
// uppercase word is a tag prefix ("NN", "VB") and explicit fields are
// written "pos:VERB", "dep:nsubj", "ent:PERSON", "tag:NNP", "lemma:x".
// Values can hold alternatives separated by '|' and a lemma prefixed by
// '!' must not appear.
func Parse(args []string) (TopicExpr, error) {

	isLastInt := false
	var expr TopicExpr
	var lastNear int64 = 0
	for idx, arg := range args {
		near, err := strconv.ParseInt(arg, 10, 64)
		if err == nil {
			if idx == 0 {
				return nil, errors.New("First expression argument can not be number")
			}

			if isLastInt {
				return nil, errors.New("Can not parse two consecutive numbers in the expression")
			}

			if near <= 0 {
				return nil, fmt.Errorf("Distance must be positive: %d", near)
			}

			lastNear = near
			isLastInt = true
			continue
		}

		item, err := parseItem(arg)
		if err != nil {
			return nil, err
		}
		item.Near = int(lastNear)
		expr = append(expr, item)

		lastNear = 0
		isLastInt = false
	}

	if isLastInt {
		return nil, errors.New("Expression can not end with a number")
	}

	return expr, nil
}

func parseItem(arg string) (TopicExprItem, error) {
	var item TopicExprItem

	for _, field := range strings.Split(arg, ",") {
		if field == "" {
			return item, fmt.Errorf("Empty field in %q", arg)
		}

		name, value, ok := strings.Cut(field, ":")
		if !ok {
			if isTagLike(field) {
				item.Tag = field
			} else {
				item.Lemma = field
			}
			continue
		}

		if value == "" {
			return item, fmt.Errorf("Empty value for %q", name)
		}

		switch name {
		case LemmaField:
			item.Lemma = value
		case TagField:
			item.Tag = value
		case PosField:
			item.Pos = value
		case DepField:
			item.Dep = value
		case EntField:
			item.Ent = value
		default:
			return item, fmt.Errorf("Unknown field %q", name)
		}
	}

	return item, nil
}

// isTagLike reports whether s looks like a tag: upper case letters and
// the tag symbols only.
func isTagLike(s string) bool {
	hasUpper := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case r == '$' || r == '|':
		default:
			return false
		}
	}
	return hasUpper
}

// EqualExpr determines if two expresions are the same.
// the Equality requires slice order. It does not support conmutativity:
//
//	itemA, itemB != itemB, itemA
func EqualExpr(a, b TopicExpr) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if !EqualExprItem(v, b[i]) {
			return false
		}
	}
	return true
}

// EqualExprItem determines if two expresions items are the same. Two
// TopicExprItem are the same if they have the same Lemma, Tag, Near, Dep,
// Pos and Ent fields.
func EqualExprItem(a, b TopicExprItem) bool {
	return a.Lemma == b.Lemma &&
		a.Near == b.Near &&
		a.Tag == b.Tag &&
		a.Pos == b.Pos &&
		a.Dep == b.Dep &&
		a.Ent == b.Ent
}
