package depparse

// Model is the reference Scorer. It decays the grammar weight of an arc
// with the distance between head and dependent.
type Model struct {
	// Decay is the weight lost per token of distance beyond adjacency.
	Decay float64
}

var _ Scorer = (*Model)(nil)

func NewModel() *Model {
	return &Model{Decay: .1}
}

// ScoreTransition implements Scorer.
func (m *Model) ScoreTransition(st *State, t Transition, r Rule) float64 {
	s0, ok0 := st.S0()
	s1, ok1 := st.S1()
	if !ok0 || !ok1 {
		return 0
	}

	d := s0 - s1
	if d < 1 {
		d = 1
	}
	return r.Weight / (1 + m.Decay*float64(d-1))
}
