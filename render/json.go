package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/annot/match"
)

// JSONRenderer writes SentenceMatch results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes sentence match results as a JSON array. Nil results
// are written as an empty array.
func (r *JSONRenderer) Render(results []*match.SentenceMatch) error {
	if results == nil {
		results = []*match.SentenceMatch{}
	}
	return json.NewEncoder(r.W).Encode(results)
}

// compile-time interface check
var _ MatchRenderer = (*JSONRenderer)(nil)
