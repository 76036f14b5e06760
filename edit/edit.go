package edit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/annot/storage"
	"github.com/revelaction/annot/topic"
)

const (
	actionAdd    = 1
	actionDelete = 0

	// deleteSuffix at the end of the line removes the expression
	deleteSuffix = "/"
)

var (
	ErrExprExists   = errors.New("expression already exists")
	ErrExprNotFound = errors.New("expression does not exist")
)

type Handler struct {
	Out io.Writer

	Library topic.Library

	Repo storage.TopicRepository
}

func NewHandler(out io.Writer, l topic.Library, repo storage.TopicRepository) *Handler {
	return &Handler{
		Out:     out,
		Library: l,
		Repo:    repo,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 <topic> <expr> adds, <topic> <expr>/ deletes, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("annot edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if strings.TrimSpace(in) == "quit" {
			return nil
		}

		history = append(history, in)
		if err := h.Exec(in); err != nil {
			var werr *writeError
			if errors.As(err, &werr) {
				return werr.err
			}
			fmt.Fprintf(h.Out, "❌ %s\n", err)
		}
	}
}

type writeError struct{ err error }

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

// Exec adds the expression of the line to its topic, or deletes it when
// the line ends with "/". Unknown topics are created on add. The topic is
// written to the repository and reloaded into the library.
func (h *Handler) Exec(in string) error {
	tp, expr, action, err := h.parse(in)
	if err != nil {
		return err
	}

	if action == actionAdd {
		if exprExistInTopic(tp, expr) {
			return ErrExprExists
		}

		tp.Exprs = append(tp.Exprs, expr)

	} else {

		if !exprExistInTopic(tp, expr) {
			return ErrExprNotFound
		}

		tp = removeExprFromTopic(tp, expr)
	}

	if err := h.Repo.Write(tp); err != nil {
		return &writeError{err}
	}

	// reload the topic after write
	newTp, err := h.Repo.Topic(tp.Name)
	if err != nil {
		return &writeError{err}
	}

	for i, t := range h.Library {
		if t.Name == tp.Name {
			h.Library[i] = newTp
			return nil
		}
	}

	h.Library = append(h.Library, newTp)
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		// Only one character in line
		if "" == befCursor {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		if len(tokens) == 1 {
			for _, tp := range h.Library {
				if strings.HasPrefix(tp.Name, befCursor) {
					s = append(s, prompt.Suggest{Text: tp.Name, Description: ""})
				}
			}

			return s
		}

		// First token must be the topic
		tp, ok := h.Library.Topic(tokens[0])
		if !ok {
			return s
		}

		rest := strings.Join(tokens[1:], " ")

		if rest == "" {
			return s
		}

		for _, expr := range tp.Exprs {
			// Do not show sugestion at the end of the text
			if strings.HasPrefix(expr.String(), rest) && len(rest) < len(expr.String()) {
				s = append(s, prompt.Suggest{Text: expr.String(), Description: ""})
			}
		}

		return s
	}
}

func (h *Handler) parse(in string) (topic.Topic, topic.TopicExpr, int, error) {

	tokens := strings.Fields(in)

	action := actionAdd
	if len(tokens) == 0 {
		return topic.Topic{}, nil, action, errors.New("no topic given to refine")
	}

	lastToken := tokens[len(tokens)-1]
	if strings.HasSuffix(lastToken, deleteSuffix) {
		action = actionDelete
		tokens[len(tokens)-1] = strings.TrimSuffix(lastToken, deleteSuffix)
		if tokens[len(tokens)-1] == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}

	tp, ok := h.Library.Topic(tokens[0])
	if !ok {
		if action == actionDelete {
			return tp, nil, action, fmt.Errorf("there is no such topic: %s", tokens[0])
		}
		tp = topic.Topic{Name: tokens[0]}
	}

	expr := tokens[1:]
	if len(expr) == 0 {
		return tp, nil, action, errors.New("no expression given")
	}

	exp, err := topic.Parse(expr)
	if err != nil {
		return tp, nil, action, err
	}

	return tp, exp, action, nil
}

func exprExistInTopic(tp topic.Topic, expr topic.TopicExpr) bool {
	for _, e := range tp.Exprs {
		if topic.EqualExpr(e, expr) {
			return true
		}
	}

	return false
}

func removeExprFromTopic(tp topic.Topic, expr topic.TopicExpr) topic.Topic {

	exprs := make([]topic.TopicExpr, 0, len(tp.Exprs))

	for _, e := range tp.Exprs {
		if topic.EqualExpr(e, expr) {
			continue
		}
		exprs = append(exprs, e)
	}

	return topic.Topic{Name: tp.Name, Exprs: exprs}
}
