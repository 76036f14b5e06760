package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/annot/match"
	"github.com/revelaction/annot/pipeline"
	"github.com/revelaction/annot/render"
	"github.com/revelaction/annot/search"
	sent "github.com/revelaction/annot/sentence"
	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/topic"
)

const (
	// queryPrefix is the Character in the prompt that starts a topic query
	queryPrefix = "?"

	// commandPrefix starts a REPL command (:format)
	commandPrefix = ":"

	quit = "quit"
)

var errNothingToQuery = errors.New("nothing to query: annotate a text first or open a store")

// Handler runs the annotation REPL. Plain lines are annotated and rendered
// with the DocRenderer; lines starting with "?" are topic queries over the
// store (when DocRepo is set) or the last annotated text.
type Handler struct {
	Out io.Writer

	Pipeline     *pipeline.Pipeline
	DocRenderer  *render.DocRenderer
	Renderer     *render.Renderer
	DocRepo      storage.DocReader
	TopicLibrary topic.Library

	last *sent.Doc
}

func NewHandler(out io.Writer, p *pipeline.Pipeline, dr *render.DocRenderer, r *render.Renderer) *Handler {
	return &Handler{
		Out:         out,
		Pipeline:    p,
		DocRenderer: dr,
		Renderer:    r,
	}
}

func (h *Handler) Run(ctx context.Context) error {

	fmt.Fprintln(h.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, ?topic expr: query, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("annot"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.DocRenderer.NextFormat()
					fmt.Fprintln(h.Out, "Format set to: "+h.DocRenderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					h.DocRenderer.HasPrefix = h.Renderer.HasPrefix
					fmt.Fprintln(h.Out, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if strings.TrimSpace(in) == quit {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		history = append(history, in)
		if err := h.Exec(ctx, in); err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
		}
	}
}

// Exec runs one REPL line.
func (h *Handler) Exec(ctx context.Context, in string) error {
	in = strings.TrimSpace(in)

	switch {
	case in == "":
		return nil
	case strings.HasPrefix(in, queryPrefix):
		return h.query(ctx, strings.TrimPrefix(in, queryPrefix))
	case strings.HasPrefix(in, commandPrefix):
		return h.command(strings.TrimPrefix(in, commandPrefix))
	}

	doc, err := h.Pipeline.Annotate(ctx, in)
	if err != nil {
		return err
	}

	h.last = doc
	return h.DocRenderer.Render(doc)
}

func (h *Handler) command(in string) error {
	fields := strings.Fields(in)
	if len(fields) == 0 {
		return errors.New("empty command")
	}

	switch fields[0] {
	case "format":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :format <%s>", strings.Join(render.SupportedDocFormats(), "|"))
		}
		h.DocRenderer.Format = fields[1]
	case "match":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :match <%s>", strings.Join(render.SupportedFormats(), "|"))
		}
		h.Renderer.Format = fields[1]
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}

	return nil
}

func (h *Handler) query(ctx context.Context, in string) error {
	tp, expr, err := h.parse(in)
	if err != nil {
		return err
	}

	var results []*match.SentenceMatch
	switch {
	case h.DocRepo != nil:
		results, err = search.New(tp, h.DocRepo).Sentences(ctx, expr)
		if err != nil {
			return err
		}
	case h.last != nil:
		matcher := match.NewMatcher(tp)
		matcher.AddTopicExpr(expr)
		matcher.Match(*h.last)
		results = matcher.Sentences()
	default:
		return errNothingToQuery
	}

	return h.Renderer.Render(results)
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// completion only for queries
		if !strings.HasPrefix(befCursor, queryPrefix) {
			return s
		}
		befCursor = strings.TrimPrefix(befCursor, queryPrefix)

		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")
		firstToken := tokens[0]

		if len(tokens) == 1 {
			s = append(s, h.completeTopic(firstToken)...)
			s = append(s, h.completeExpressionItem(firstToken)...)
			return s
		}

		_, isFirstTopic := h.TopicLibrary.Topic(firstToken)

		// len = 2 and first is topic
		if len(tokens) == 2 {
			if isFirstTopic {
				s = append(s, h.completeExpressionItem(tokens[1])...)
			}

			return s
		}

		// len > 2, complete as expr string
		rest := befCursor

		if isFirstTopic {
			rest = befCursor[len(firstToken)+1:]
		}

		for _, topic := range h.TopicLibrary {
			for _, expr := range topic.Exprs {
				exprStr := expr.String()
				if len(rest) > len(exprStr) || !strings.HasPrefix(exprStr, rest) {
					continue
				}

				wordBeforeLen := len(in.GetWordBeforeCursor())
				start := len(rest) - wordBeforeLen
				s = append(s, prompt.Suggest{Text: exprStr[start:], Description: topic.Name})
			}
		}

		return s
	}
}

func (h *Handler) completeTopic(token string) (s []prompt.Suggest) {
	for _, tp := range h.TopicLibrary {
		if strings.HasPrefix(tp.Name, token) {
			s = append(s, prompt.Suggest{Text: tp.Name, Description: "🔖 " + tp.Name})
		}
	}

	return s
}

func (h *Handler) completeExpressionItem(token string) (s []prompt.Suggest) {
	for _, topic := range h.TopicLibrary {
		for _, expr := range topic.Exprs {
			for _, exprItem := range expr {
				if strings.HasPrefix(exprItem.Lemma, token) || strings.HasPrefix(exprItem.Tag, token) {
					s = append(s, prompt.Suggest{Text: expr.String(), Description: topic.Name})
					break
				}
			}
		}
	}

	return s
}

// parse splits the query in an optional leading topic name and an
// optional expression. At least one of them is required.
func (h *Handler) parse(in string) (topic.Topic, topic.TopicExpr, error) {

	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return topic.Topic{}, nil, errors.New("no topic and no expression given")
	}

	tp, isFirstTopic := h.TopicLibrary.Topic(tokens[0])

	exprArgs := tokens
	if isFirstTopic {
		exprArgs = tokens[1:]
	}

	if len(exprArgs) == 0 {
		return tp, nil, nil
	}

	exp, err := topic.Parse(exprArgs)
	if err != nil {
		return tp, nil, err
	}

	return tp, exp, nil
}
