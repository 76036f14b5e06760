package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/revelaction/annot/conllu"
	sent "github.com/revelaction/annot/sentence"
)

const DefaultDocFormat = "text"

var entityColors = map[string]*color.Color{
	"PERSON":       newColor(color.FgCyan, color.Bold),
	"LOCATION":     newColor(color.FgMagenta, color.Bold),
	"ORGANIZATION": newColor(color.FgBlue, color.Bold),
	"MISC":         newColor(color.FgYellow, color.Bold),
}

var defaultEntityColor = newColor(color.FgRed, color.Bold)

func SupportedDocFormats() []string {
	return []string{"text", "table", "entities", "json", "projection", "conllu"}
}

// DocRenderer writes annotated docs in one of SupportedDocFormats.
type DocRenderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	Format string
}

func NewDocRenderer(out io.Writer) *DocRenderer {
	return &DocRenderer{Out: out, Format: DefaultDocFormat}
}

// Render writes doc in the DocRenderer format.
func (r *DocRenderer) Render(doc *sent.Doc) error {
	switch r.Format {
	case "", "text":
		return r.text(doc)
	case "table":
		return r.table(doc)
	case "entities":
		return r.entities(doc)
	case "json":
		return r.json(doc)
	case "projection":
		return r.json(doc.Project())
	case "conllu":
		return conllu.Write(r.Out, doc)
	default:
		return fmt.Errorf("unsupported format %q, supported: %s", r.Format, strings.Join(SupportedDocFormats(), ", "))
	}
}

// NextFormat cycles the format through SupportedDocFormats.
func (r *DocRenderer) NextFormat() {
	supported := SupportedDocFormats()
	i := slices.Index(supported, r.Format)
	r.Format = supported[(i+1)%len(supported)]
}

func (r *DocRenderer) text(doc *sent.Doc) error {
	for _, s := range doc.Sentences {
		var prefix string
		if r.HasPrefix {
			prefix = fmt.Sprintf("%3d ✍  ", s.Id)
		}

		var b strings.Builder
		for i, t := range s.Tokens {
			if i > 0 {
				if gap := t.Idx - s.Tokens[i-1].End; gap > 0 {
					b.WriteString(strings.Repeat(" ", gap))
				}
			}
			b.WriteString(r.entity(t))
		}

		if _, err := fmt.Fprintf(r.Out, "%s%s\n", prefix, strings.ReplaceAll(b.String(), "\n", " ")); err != nil {
			return err
		}
	}
	return nil
}

func (r *DocRenderer) entity(t sent.Token) string {
	if !r.HasColor || t.Ent == "" || t.Ent == sent.NoEntity {
		return t.Text
	}

	c, ok := entityColors[t.Ent]
	if !ok {
		c = defaultEntityColor
	}
	return c.Sprint(t.Text)
}

func (r *DocRenderer) table(doc *sent.Doc) error {
	w := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SENT\tINDEX\tTEXT\tLEMMA\tTAG\tPOS\tENT\tHEAD\tDEP")
	for _, s := range doc.Sentences {
		for _, t := range s.Tokens {
			head := ""
			if t.Dep != "" {
				head = strconv.Itoa(t.Head)
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				s.Id, t.Index, t.Text, t.Lemma, t.Tag, t.Pos, t.Ent, head, t.Dep)
		}
	}
	return w.Flush()
}

func (r *DocRenderer) entities(doc *sent.Doc) error {
	for _, e := range doc.Entities() {
		var prefix string
		if r.HasPrefix {
			prefix = fmt.Sprintf("%3d 🔖 ", e.SentenceId)
		}
		if _, err := fmt.Fprintf(r.Out, "%s%s\n", prefix, e.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *DocRenderer) json(v any) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
