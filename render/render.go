package render

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/revelaction/annot/match"
	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/topic"
)

const (
	partialOffset = 6
	Defaultformat = "all"
)

var (
	matchColor = newColor(color.FgGreen, color.Bold)
	titleColor = newColor(color.FgHiBlack, color.Bold)
	topicColor = newColor(color.FgYellow)
)

// newColor returns a color that ignores the terminal detection of the color
// package. The Renderer HasColor field decides.
func newColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func SupportedFormats() []string {
	return []string{"all", "part", "lemma", "aggr"}
}

// MatchRenderer writes the results of a query
type MatchRenderer interface {
	Render(results []*match.SentenceMatch) error
}

var _ MatchRenderer = (*Renderer)(nil)

type Renderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	PrefixDocFunc   func(*match.SentenceMatch) string
	PrefixTopicFunc func(*match.SentenceMatch) string

	// Format determines the format of the sentence
	//
	// all: print all sentence
	// part: print the sorrounding of the matches in the sentence, cut the rest.
	// lemma: print only the lemmas of the matched words of the sentence
	// aggr: count the matched lemma sequences
	Format string

	// Show only sentences with this amount of matches
	NumMatches int
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{Out: out, Format: Defaultformat}
}

// Render writes the matches, in the order given.
func (r *Renderer) Render(results []*match.SentenceMatch) error {
	r.Match(results)
	return nil
}

// Match writes the matched sentences in the Renderer format.
func (r *Renderer) Match(resultsSorted []*match.SentenceMatch) {

	// if aggr format, we collect the aggr lemmas here
	aggregatedLemmas := map[string]int{}

	for _, sentenceMatch := range resultsSorted {
		if r.NumMatches > 0 && sentenceMatch.NumExprs < r.NumMatches {
			break
		}

		sentTokens := sentenceMatch.AllTokens()

		prefixDoc := r.buildPrefixDoc(sentenceMatch)
		prefixTopic := r.buildPrefixTopic(sentenceMatch)

		var text string
		switch r.Format {
		case "part":
			text = r.syntagma(sentenceMatch.Sentence.Tokens, sentTokens)
		case "lemma":
			text = r.lemma(sentTokens)
		case "aggr":
			r.aggregateLemma(sentTokens, aggregatedLemmas)
			continue
		default:
			text = r.sentence(sentenceMatch.Sentence.Tokens, sentTokens)
		}

		fmt.Fprintf(r.Out, "%s%s%s\n", prefixDoc, prefixTopic, strings.ReplaceAll(text, "\n", " "))
	}

	if r.Format == "aggr" {
		r.aggrLemmas(aggregatedLemmas)
	}
}

func (r *Renderer) Sentence(s []sent.Token, prefix string) {
	text := r.sentence(s, []sent.Token{})
	fmt.Fprintf(r.Out, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", " "))
}

func (r *Renderer) SentenceString(s []sent.Token, matches []sent.Token) string {
	text := r.sentence(s, matches)
	return strings.ReplaceAll(text, "\n", " ")
}

var maskRe = regexp.MustCompile(`#+`)

// SentenceBlindedString returns the original text of the sentence s with the
// words in matches substituted by a mask (f.ex. XXX)
func (r *Renderer) SentenceBlindedString(s []sent.Token, matches []sent.Token) string {

	blinded := make([]sent.Token, 0, len(s))
	for _, t := range s {
		for _, mt := range matches {
			if t.Index == mt.Index {
				t.Text = strings.Repeat("#", t.Len())
				break
			}
		}

		blinded = append(blinded, t)
	}

	text := r.sentence(blinded, nil)
	rText := strings.ReplaceAll(text, "\n", " ")
	return maskRe.ReplaceAllLiteralString(rText, "###")
}

// sentence rebuilds the sentence text from the tokens: the gap between
// the end offset of a token and the start of the next one is written as
// spaces.
func (r *Renderer) sentence(sentence, matches []sent.Token) string {
	var str strings.Builder
	for i, token := range sentence {
		if i > 0 {
			if gap := token.Idx - sentence[i-1].End; gap > 0 {
				str.WriteString(strings.Repeat(" ", gap))
			}
		}
		str.WriteString(r.colorToken(token, matches))
	}

	return str.String()
}

func (r *Renderer) syntagma(sentence, matches []sent.Token) string {
	// if not matches, we print the whole sentence
	if len(matches) == 0 {
		return r.sentence(sentence, matches)
	}

	// matches slice is at least 1, take the first as the first candidate
	firstMatchIndex := matches[0].Index
	lastMatchIndex := matches[0].Index
	for _, mt := range matches {
		firstMatchIndex = min(firstMatchIndex, mt.Index)
		lastMatchIndex = max(lastMatchIndex, mt.Index)
	}

	lastTokenIndex := len(sentence) - 1

	syntagmaFirstIdx := 0
	syntagmaLastIdx := lastTokenIndex

	// if firstMatchIndex less, show from start sentence
	if firstMatchIndex > partialOffset {
		syntagmaFirstIdx = firstMatchIndex - partialOffset
	}

	if lastTokenIndex-lastMatchIndex > partialOffset {
		syntagmaLastIdx = lastMatchIndex + partialOffset
	}

	return r.sentence(sentence[syntagmaFirstIdx:syntagmaLastIdx+1], matches)
}

// Topic renders topic expressions in a mode compatible with the topic parser
//
//	[{"lemma":"take"}, {"near": 2, "pos":"NOUN"}],
//
// will be rendered as:
//
//	take 2 pos:NOUN
func (r *Renderer) Topic(exprs []topic.TopicExpr) {
	for _, expr := range exprs {
		fmt.Fprintf(r.Out, "%s\n", expr.String())
	}
}

func (r *Renderer) LemmaString(s []sent.Token, matches []sent.Token) string {
	return r.lemma(matches)
}

// lemma renders only the matched tokens (the lemma field)
func (r *Renderer) lemma(matches []sent.Token) string {
	matchedWords := []string{}
	for _, t := range matches {
		matchedWords = append(matchedWords, t.Lemma)
	}

	return strings.Join(matchedWords, " ")
}

func (r *Renderer) aggregateLemma(matches []sent.Token, aggrLemmas map[string]int) {
	// matches have no duplicates and are in sentence order
	aggrLemmas[r.lemma(matches)]++
}

func (r *Renderer) colorToken(token sent.Token, matches []sent.Token) string {
	for _, mt := range matches {
		if mt.Index == token.Index {
			return r.paint(matchColor, token.Text)
		}
	}

	return token.Text
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.HasColor {
		return s
	}
	return c.Sprint(s)
}

func (r *Renderer) buildPrefixDoc(sentenceMatch *match.SentenceMatch) string {

	if !r.HasPrefix {
		return PrefixFuncEmpty(sentenceMatch)
	}

	if r.PrefixDocFunc != nil {
		return r.PrefixDocFunc(sentenceMatch)
	}

	// Default
	return fmt.Sprintf("[%s %2d %5d:%2d] ✍  ", r.title(sentenceMatch.DocTitle), sentenceMatch.Sentence.DocId, sentenceMatch.Sentence.Id, sentenceMatch.NumExprs)
}

func PrefixFuncEmpty(sentenceMatch *match.SentenceMatch) string {
	return ""
}

func PrefixFuncIconHand(sentenceMatch *match.SentenceMatch) string {
	return fmt.Sprintf("%2d ✍  ", sentenceMatch.Sentence.Id)
}

func PrefixFuncIconLabel(sentenceMatch *match.SentenceMatch) string {
	return fmt.Sprintf("%2d 🔖 ", sentenceMatch.Sentence.Id)
}

func (r *Renderer) buildPrefixTopic(sm *match.SentenceMatch) string {

	if !r.HasPrefix {
		return PrefixFuncEmpty(sm)
	}

	if r.PrefixTopicFunc != nil {
		return r.PrefixTopicFunc(sm)
	}

	if sm.TopicName == "" {
		return ""
	}

	return fmt.Sprintf("[🏷  %-20s] ✍  ", r.paint(topicColor, sm.TopicName))
}

func (r *Renderer) title(title string) string {
	runes := []rune(title)
	var part string
	if len(runes) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = string(runes[:20])
	}

	return r.paint(titleColor, part)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}

func (r *Renderer) aggrLemmas(agls map[string]int) {
	// flatten map to use sortSlice
	type aggr struct {
		NumSent  int
		LemmaStr string
	}

	sl := make([]aggr, 0, len(agls))
	for lemmaStr, n := range agls {
		sl = append(sl, aggr{n, lemmaStr})
	}

	// first by num sentences, then by len of lemmas string
	sort.Slice(sl, func(i, j int) bool {
		if sl[i].NumSent != sl[j].NumSent {
			return sl[i].NumSent > sl[j].NumSent
		}
		if len(sl[i].LemmaStr) != len(sl[j].LemmaStr) {
			return len(sl[i].LemmaStr) < len(sl[j].LemmaStr)
		}
		return sl[i].LemmaStr < sl[j].LemmaStr
	})

	var prefix string
	for _, s := range sl {
		if r.HasPrefix {
			prefix = "[" + fmt.Sprintf("%5s", strconv.Itoa(s.NumSent)) + "] ✍  "
		}

		fmt.Fprintf(r.Out, "%s%s\n", prefix, s.LemmaStr)
	}
}
