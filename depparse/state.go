package depparse

import (
	"errors"
	"fmt"
)

// Transition is an action of the arc standard system.
type Transition int

const (
	// Shift moves the head of the buffer to the stack.
	Shift Transition = iota
	// LeftArc makes the second element of the stack a dependent of the top
	// and pops the second.
	LeftArc
	// RightArc makes the top of the stack a dependent of the second and
	// pops the top.
	RightArc
)

func (t Transition) String() string {
	switch t {
	case Shift:
		return "SHIFT"
	case LeftArc:
		return "LEFT-ARC"
	case RightArc:
		return "RIGHT-ARC"
	}
	return fmt.Sprintf("Transition(%d)", int(t))
}

var ErrIllegal = errors.New("illegal transition")

// State is a configuration of the parser: a stack of partial tree roots, a
// buffer of the tokens not yet shifted, and the arcs built so far.
type State struct {
	Stack []int
	// Next is the index of the buffer head, the buffer is Next..n-1.
	Next  int
	Heads []int
	Rels  []string
}

// NewState returns the initial state for n tokens: empty stack, all tokens
// in the buffer, no arcs.
func NewState(n int) *State {
	st := &State{
		Stack: make([]int, 0, n),
		Heads: make([]int, n),
		Rels:  make([]string, n),
	}
	for i := range st.Heads {
		st.Heads[i] = -1
	}
	return st
}

// S0 returns the top of the stack.
func (st *State) S0() (int, bool) {
	if len(st.Stack) == 0 {
		return 0, false
	}
	return st.Stack[len(st.Stack)-1], true
}

// S1 returns the element below the top of the stack.
func (st *State) S1() (int, bool) {
	if len(st.Stack) < 2 {
		return 0, false
	}
	return st.Stack[len(st.Stack)-2], true
}

// B0 returns the head of the buffer.
func (st *State) B0() (int, bool) {
	if st.Next >= len(st.Heads) {
		return 0, false
	}
	return st.Next, true
}

// Terminal reports whether the buffer is empty.
func (st *State) Terminal() bool {
	return st.Next >= len(st.Heads)
}

// Valid reports whether t can be applied.
func (st *State) Valid(t Transition) bool {
	switch t {
	case Shift:
		return !st.Terminal()
	case LeftArc, RightArc:
		return len(st.Stack) >= 2
	}
	return false
}

// Apply applies t, labeling the new arc with rel.
func (st *State) Apply(t Transition, rel string) error {
	if !st.Valid(t) {
		return fmt.Errorf("%w: %s", ErrIllegal, t)
	}

	switch t {
	case Shift:
		st.Stack = append(st.Stack, st.Next)
		st.Next++
	case LeftArc:
		s0, _ := st.S0()
		s1, _ := st.S1()
		st.attach(s1, s0, rel)
		st.Stack = append(st.Stack[:len(st.Stack)-2], s0)
	case RightArc:
		s0, _ := st.S0()
		s1, _ := st.S1()
		st.attach(s0, s1, rel)
		st.Stack = st.Stack[:len(st.Stack)-1]
	}

	return nil
}

func (st *State) attach(dep, head int, rel string) {
	st.Heads[dep] = head
	st.Rels[dep] = rel
}
