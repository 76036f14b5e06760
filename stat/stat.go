package stat

import (
	"sort"

	sent "github.com/revelaction/annot/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	NumEntities           int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// Distributions of the fine grained tags, the coarse POS and the
	// entity labels (per entity span, not per token).
	TagDis    map[string]int
	PosDis    map[string]int
	EntityDis map[string]int
}

// Count is a value of a distribution and its frequency
type Count struct {
	Value string
	N     int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		TagDis:               map[string]int{},
		PosDis:               map[string]int{},
		EntityDis:            map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the counts of doc to the stats.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	h.stats.NumSentences += len(doc.Sentences)

	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++

		for _, t := range sentence.Tokens {
			if t.Tag != "" {
				h.stats.TagDis[t.Tag]++
			}
			if t.Pos != "" {
				h.stats.PosDis[t.Pos]++
			}
		}
	}

	for _, e := range doc.Entities() {
		h.stats.NumEntities++
		h.stats.EntityDis[e.Label]++
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// Top returns the n most frequent values of dis, ties in value order.
// n <= 0 returns all.
func Top(dis map[string]int, n int) []Count {
	counts := make([]Count, 0, len(dis))
	for v, c := range dis {
		counts = append(counts, Count{v, c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Value < counts[j].Value
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
