package sentence

import (
	"errors"
	"fmt"
	"sort"
)

// Arc is a labeled dependency between two token indexes of a sentence.
type Arc struct {
	Head      int    `json:"head"`
	Dependent int    `json:"dep"`
	Rel       string `json:"rel"`
}

func (a Arc) String() string {
	return fmt.Sprintf("(%d,%s,%d)", a.Head, a.Rel, a.Dependent)
}

// Tree is the dependency tree of a sentence. Every token but the root is
// the dependent of exactly one arc. An empty sentence has Root -1 and no arcs.
type Tree struct {
	Root int   `json:"root"`
	Arcs []Arc `json:"arcs"`
}

// NewTree builds a tree from a head slice, where heads[i] is the head of
// token i and -1 marks the root. rels[i] is the relation of token i.
func NewTree(heads []int, rels []string) *Tree {
	t := &Tree{Root: -1}
	for i, h := range heads {
		if h < 0 {
			if t.Root < 0 {
				t.Root = i
			}
			continue
		}
		t.Arcs = append(t.Arcs, Arc{Head: h, Dependent: i, Rel: rels[i]})
	}

	sort.Slice(t.Arcs, func(i, j int) bool {
		return t.Arcs[i].Dependent < t.Arcs[j].Dependent
	})
	return t
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int {
	if t.Root < 0 {
		return len(t.Arcs)
	}
	return len(t.Arcs) + 1
}

// Head returns the head and relation of token i. ok is false for the root
// or an index without arc.
func (t *Tree) Head(i int) (head int, rel string, ok bool) {
	k := sort.Search(len(t.Arcs), func(k int) bool {
		return t.Arcs[k].Dependent >= i
	})
	if k < len(t.Arcs) && t.Arcs[k].Dependent == i {
		return t.Arcs[k].Head, t.Arcs[k].Rel, true
	}
	return 0, "", false
}

// Children returns the dependents of token i in sentence order.
func (t *Tree) Children(i int) []int {
	var children []int
	for _, a := range t.Arcs {
		if a.Head == i {
			children = append(children, a.Dependent)
		}
	}
	return children
}

// Validate checks that the tree spans the n tokens of its sentence: one
// root (none if n is 0), one head per other token, no cycles.
func (t *Tree) Validate(n int) error {
	if n == 0 {
		if t.Root >= 0 || len(t.Arcs) > 0 {
			return errors.New("tree of empty sentence has nodes")
		}
		return nil
	}

	if t.Root < 0 || t.Root >= n {
		return fmt.Errorf("invalid root %d for %d tokens", t.Root, n)
	}

	if len(t.Arcs) != n-1 {
		return fmt.Errorf("tree has %d arcs, want %d", len(t.Arcs), n-1)
	}

	heads := make([]int, n)
	for i := range heads {
		heads[i] = -2
	}
	heads[t.Root] = -1

	for _, a := range t.Arcs {
		if a.Dependent < 0 || a.Dependent >= n || a.Head < 0 || a.Head >= n {
			return fmt.Errorf("arc %s out of range", a)
		}
		if a.Dependent == t.Root {
			return fmt.Errorf("root %d has a head", t.Root)
		}
		if heads[a.Dependent] != -2 {
			return fmt.Errorf("token %d has more than one head", a.Dependent)
		}
		heads[a.Dependent] = a.Head
	}

	// every path of heads must reach the root in less than n steps
	for i := range heads {
		cur := i
		for steps := 0; cur != t.Root; steps++ {
			if steps >= n {
				return fmt.Errorf("cycle through token %d", i)
			}
			cur = heads[cur]
		}
	}

	return nil
}
