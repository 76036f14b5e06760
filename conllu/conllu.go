// Package conllu writes annotated documents in the CoNLL-U format.
//
// Every sentence is a block of comment lines (sent_id, text) followed by
// one tab separated row per token and a blank line. Token ids are 1 based
// and the root has head 0.
package conllu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/annot/sentence"
)

const (
	// Empty is the value of an unset field
	Empty = "_"

	// Root is the relation written for the sentence root
	Root = "root"
)

// A Row is a single token row of a CoNLL-U sentence
type Row struct {
	ID      int
	Form    string
	Lemma   string
	UPosTag string
	XPosTag string
	Feats   string
	Head    int
	DepRel  string
	Deps    string
	Misc    []string
}

func (r Row) String() string {
	fields := []string{
		strconv.Itoa(r.ID),
		escape(r.Form),
		escape(r.Lemma),
		r.UPosTag,
		r.XPosTag,
		r.Feats,
		strconv.Itoa(r.Head),
		r.DepRel,
		r.Deps,
		strings.Join(r.Misc, "|"),
	}

	// The head is only known when the parse ran
	if r.DepRel == "" {
		fields[6] = ""
	}

	for i, field := range fields {
		if len(field) == 0 {
			fields[i] = Empty
		}
	}
	return strings.Join(fields, "\t")
}

// Rows converts the tokens of s to CoNLL-U rows. Adjacent offsets give
// the SpaceAfter attribute.
func Rows(s sent.Sentence) []Row {
	rows := make([]Row, len(s.Tokens))

	for i, t := range s.Tokens {
		row := Row{
			ID:      i + 1,
			Form:    t.Text,
			Lemma:   t.Lemma,
			UPosTag: t.Pos,
			XPosTag: t.Tag,
		}

		switch {
		case t.Dep == "":
		case t.Dep == sent.RootRel:
			row.Head = 0
			row.DepRel = Root
		default:
			row.Head = t.Head + 1
			row.DepRel = t.Dep
		}

		if i+1 < len(s.Tokens) && s.Tokens[i+1].Idx == t.End {
			row.Misc = append(row.Misc, "SpaceAfter=No")
		}
		if t.Ent != "" && t.Ent != sent.NoEntity {
			row.Misc = append(row.Misc, "NER="+t.Ent)
		}

		rows[i] = row
	}

	return rows
}

// Write writes doc to w.
func Write(w io.Writer, doc *sent.Doc) error {
	bw := bufio.NewWriter(w)
	text := []rune(doc.Text)

	if doc.Title != "" {
		fmt.Fprintf(bw, "# newdoc id = %s\n", doc.Title)
	}

	for _, s := range doc.Sentences {
		fmt.Fprintf(bw, "# sent_id = %d\n", s.Id+1)
		if st := sentenceText(s, text); st != "" {
			fmt.Fprintf(bw, "# text = %s\n", st)
		}

		for _, row := range Rows(s) {
			bw.WriteString(row.String())
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func sentenceText(s sent.Sentence, text []rune) string {
	if len(s.Tokens) == 0 {
		return ""
	}

	start, end := s.Tokens[0].Idx, s.Tokens[len(s.Tokens)-1].End
	if start < 0 || end > len(text) || start > end {
		return strings.Join(s.Texts(), " ")
	}
	return strings.Join(strings.Fields(string(text[start:end])), " ")
}

// Fields can not contain tabs or newlines
func escape(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}
