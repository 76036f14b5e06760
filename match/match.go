package match

import (
	"sort"
	"strings"

	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/topic"
)

// maxCombinations bounds the token combinations reported per expression
const maxCombinations = 64

// Matcher matchs a Doc (or a set of Docs) against a Topic (+ ArgExpr)
// A set of `Docs` can be matched by repeated `Match` calls to the Matcher.
type Matcher struct {
	Topic topic.Topic

	// ArgExpr is an additional topic expresion passed as argument to the
	// command line
	// ArgExpr have an AND semantic, they must match the sentence in addition
	// to one or more TopicExpr of the Topic.
	//
	// So if this is not empty, the match is: sentences that match one of the
	// Topic expr AND this expr.
	ArgExpr topic.TopicExpr

	matches []*SentenceMatch
}

// MatchedTokens is a ordered set of sentence tokens
// that are matched by a Topic Expr
//
// the following topic  expr:
//
// [{"lemma":"when"},{"near":3,"pos":"VERB"}],
//
// will match the following sentence:
//
// # When he saw me open my eyes, his cries of gratitude made them laugh
//
// the expr match two MatchedTokens:
// MatchedTokens 1) [when, saw]
// MatchedTokens 2) [when, open]
type matchedTokens []sent.Token

// ItemTokenMap contains the map between a topic expr token and the matched
// tokens of a sentence MatchedTokens
//
//   - The value is a slice of n 1-dimensional tokens (for unlinked
//     items), where n is the number of match ocurrences.
//   - for items linked by distance (m items), the value is a slice of n
//     m-dimensional slices, stored under the last item of the chain.
type itemTokenMap map[topic.TopicExprItem][]matchedTokens

// ExprMatch holds the token combinations of the sentence matched by one
// expression.
type ExprMatch struct {
	ExprId string         `json:"expr"`
	Tokens [][]sent.Token `json:"tokens"`
}

// SentenceMatch represents a sentence match of "one or more" topicExpr with a
// sentence.
type SentenceMatch struct {

	// TopicName is the topic that has some topic Expr which match this setence
	TopicName string `json:"topic_name,omitempty"`

	// DocTitle is the title of the document of the sentence, when known
	DocTitle string `json:"doc_title,omitempty"`

	// NumExprs is the number of topicExpr that were matched. Used to sort the sentences
	NumExprs int `json:"num_exprs"`

	// Matches has an entry per matched expression, the argument expression first
	Matches []ExprMatch `json:"matches"`

	// Sentence is the matched sentence. The output sentence is created using this.
	Sentence sent.Sentence `json:"sentence"`
}

// AllTokens returns the matched tokens of the sentence, without
// duplicates, in sentence order.
func (sm *SentenceMatch) AllTokens() []sent.Token {
	seen := map[int]bool{}
	sentTokens := []sent.Token{}
	for _, m := range sm.Matches {
		for _, tks := range m.Tokens {
			for _, t := range tks {
				if !seen[t.Index] {
					seen[t.Index] = true
					sentTokens = append(sentTokens, t)
				}
			}
		}
	}

	sort.Slice(sentTokens, func(i, j int) bool { return sentTokens[i].Index < sentTokens[j].Index })
	return sentTokens
}

// Exprs returns the ExprId (string representation) of the unique TopicExpr's
// matched by the sentences.
func (sm *SentenceMatch) Exprs() []string {
	exprIds := []string{}
	for _, m := range sm.Matches {
		exprIds = append(exprIds, m.ExprId)
	}
	return exprIds
}

// TokensForExpr returns the token combinations matched by the expression
// with the given id.
func (sm *SentenceMatch) TokensForExpr(exprStr string) [][]sent.Token {
	for _, m := range sm.Matches {
		if m.ExprId == exprStr {
			return m.Tokens
		}
	}
	return nil
}

// MatchSentence matches a posible Topic AND a possible TopicExpr for a given sentence.
//
// The semantic is as follows:
//
//   - If there are both a Topic and a TopicExpr, a sentence match only happens
//     if the TopicExpr matchs AND 'one or more' of the Topic expressions also match.
//
//   - If there is only a Topic, a sentence match only happens if 'one or more'
//     of the Topic expressions match.
//
//   - If there is only a TopicExpr, a sentence match only happens if the TopicExpr
//     matches.
//
// It returns nil if the sentence does not match.
func (m *Matcher) MatchSentence(sentence sent.Sentence) *SentenceMatch {
	hasTopic := len(m.Topic.Exprs) > 0
	hasExpr := len(m.ArgExpr) > 0

	if !hasTopic && !hasExpr {
		return nil
	}

	match := &SentenceMatch{}

	// ArgExpr check
	if hasExpr {
		mt := itemTokenMap{}
		// If the expr does not match, the sentence does not match
		if !sentenceExprMatch(sentence.Tokens, m.ArgExpr, mt) {
			return nil
		}
		match.Matches = append(match.Matches, ExprMatch{ExprId: m.ArgExpr.String(), Tokens: combinations(mt)})
	}

	// Topic expressions
	for _, expr := range m.Topic.Exprs {
		mt := itemTokenMap{}
		if sentenceExprMatch(sentence.Tokens, expr, mt) {
			match.NumExprs++
			match.Matches = append(match.Matches, ExprMatch{ExprId: expr.String(), Tokens: combinations(mt)})
		}
	}

	if hasTopic && match.NumExprs == 0 {
		return nil
	}

	match.TopicName = m.Topic.Name
	match.Sentence = sentence

	return match
}

// Match matches all the sentences of doc and keeps the matches.
func (m *Matcher) Match(doc sent.Doc) {
	for _, s := range doc.Sentences {
		s.DocId = doc.Id
		if sm := m.MatchSentence(s); sm != nil {
			sm.DocTitle = doc.Title
			m.matches = append(m.matches, sm)
		}
	}
}

// Sentences returns the matches of the Match calls, sorted.
func (m *Matcher) Sentences() []*SentenceMatch {
	Sort(m.matches)
	return m.matches
}

// Sort orders matches by number of matched expressions (desc), then doc
// and sentence id.
func Sort(results []*SentenceMatch) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].NumExprs != results[j].NumExprs {
			return results[i].NumExprs > results[j].NumExprs
		}
		if results[i].Sentence.DocId != results[j].Sentence.DocId {
			return results[i].Sentence.DocId < results[j].Sentence.DocId
		}
		return results[i].Sentence.Id < results[j].Sentence.Id
	})
}

func sentenceExprMatch(sentence []sent.Token, expr topic.TopicExpr, mt itemTokenMap) bool {
	if len(expr) == 0 {
		return false
	}

	// last is the last item with candidates, the anchor of distances
	var last *topic.TopicExprItem

	for itemIdx, item := range expr {
		requirement := item.Requirement()
		if requirement == topic.RequiresSome && last == nil {
			requirement = topic.RequiresOne
		}

		switch requirement {
		case topic.RequiresOne:
			if t := matchOne(sentence, item); len(t) > 0 {
				mt[item] = t
				last = &expr[itemIdx]
				continue
			}
		case topic.RequiresSome:
			if t := matchSome(sentence, mt[*last], item); len(t) > 0 {
				mt[item] = t
				delete(mt, *last)
				last = &expr[itemIdx]
				continue
			}
		case topic.RequiresNone:
			positive := item
			positive.Lemma = strings.TrimPrefix(item.Lemma, "!")

			if item.Near == 0 || last == nil {
				if len(matchOne(sentence, positive)) == 0 {
					continue
				}
				break
			}

			if t := matchNone(sentence, mt[*last], positive); len(t) > 0 {
				mt[*last] = t
				continue
			}
		}

		// Match failed
		return false
	}

	return true
}

func (m *Matcher) AddTopicExpr(expr topic.TopicExpr) {
	m.ArgExpr = expr
}

func NewMatcher(topic topic.Topic) *Matcher {
	return &Matcher{
		Topic: topic,
	}
}

func matchOne(sentence []sent.Token, item topic.TopicExprItem) (matched []matchedTokens) {
	for _, t := range sentence {
		if isTokenMatch(t, item) {
			matched = append(matched, matchedTokens{t})
		}
	}

	return matched
}

// window returns the tokens at most near positions after the last token of
// the chain tc.
func window(sentence []sent.Token, tc matchedTokens, near int) []sent.Token {
	previousTokenIndex := tc[len(tc)-1].Index
	sentenceEnd := len(sentence) - 1

	// Check If previous is the last token of sentence, there is no
	// possibility of a near match
	if previousTokenIndex >= sentenceEnd {
		return nil
	}

	requiredEnd := min(previousTokenIndex+near, sentenceEnd)
	return sentence[previousTokenIndex+1 : requiredEnd+1]
}

func matchSome(sentence []sent.Token, previousItemCandidates []matchedTokens, item topic.TopicExprItem) (matched []matchedTokens) {
	for _, tc := range previousItemCandidates {
		for _, t := range window(sentence, tc, item.Near) {
			if isTokenMatch(t, item) {
				newCandidate := matchedTokens{}
				newCandidate = append(newCandidate, tc...)
				newCandidate = append(newCandidate, t)
				matched = append(matched, newCandidate)
			}
		}
	}

	// no new candidate
	return
}

// matchNone keeps the candidates not followed, within the item distance,
// by a token matching item.
func matchNone(sentence []sent.Token, previousItemCandidates []matchedTokens, item topic.TopicExprItem) (kept []matchedTokens) {
CANDIDATE:
	for _, tc := range previousItemCandidates {
		for _, t := range window(sentence, tc, item.Near) {
			if isTokenMatch(t, item) {
				continue CANDIDATE
			}
		}
		kept = append(kept, tc)
	}
	return
}

// combinations returns the cartesian product of the candidates of the
// items of the expression, each combination in sentence order.
func combinations(mt itemTokenMap) [][]sent.Token {
	if len(mt) == 0 {
		return nil
	}

	items := make([]topic.TopicExprItem, 0, len(mt))
	for item := range mt {
		items = append(items, item)
	}
	// deterministic order
	sort.Slice(items, func(i, j int) bool {
		return mt[items[i]][0][0].Index < mt[items[j]][0][0].Index
	})

	partial := [][]sent.Token{{}}
	for _, item := range items {
		var next [][]sent.Token
		for _, p := range partial {
			for _, tokens := range mt[item] {
				if len(next) == maxCombinations {
					break
				}
				cp := make([]sent.Token, 0, len(p)+len(tokens))
				cp = append(cp, p...)
				cp = append(cp, tokens...)
				next = append(next, cp)
			}
		}
		partial = next
	}

	for _, c := range partial {
		sort.Slice(c, func(i, j int) bool { return c[i].Index < c[j].Index })
	}
	return partial
}

func isTokenMatch(t sent.Token, item topic.TopicExprItem) bool {
	//
	// Lemma field
	//
	if len(item.Lemma) > 0 && !anyOf(item.Lemma, func(v string) bool { return v == t.Lemma }) {
		return false
	}

	//
	// Tag field
	//
	// A tag value is a prefix: "VB" matches VB, VBD, VBZ...
	if len(item.Tag) > 0 && !anyOf(item.Tag, func(v string) bool { return strings.HasPrefix(t.Tag, v) }) {
		return false
	}

	if len(item.Pos) > 0 && !anyOf(item.Pos, func(v string) bool { return v == t.Pos }) {
		return false
	}

	if len(item.Dep) > 0 && !anyOf(item.Dep, func(v string) bool { return v == t.Dep }) {
		return false
	}

	if len(item.Ent) > 0 && !anyOf(item.Ent, func(v string) bool { return v == t.Ent }) {
		return false
	}

	return true
}

// anyOf splits the OR values of field ("a|b") and reports whether one of
// them satisfies ok.
func anyOf(field string, ok func(string) bool) bool {
	for _, orValue := range strings.Split(field, "|") {
		if ok(orValue) {
			return true
		}
	}
	return false
}
