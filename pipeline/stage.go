package pipeline

import (
	"fmt"
	"strings"
)

// Stage names an annotation step.
type Stage string

const (
	Tokenize Stage = "tokenize"
	Split    Stage = "split"
	POS      Stage = "pos"
	Lemma    Stage = "lemma"
	NER      Stage = "ner"
	Parse    Stage = "parse"
)

// AllStages lists the stages in execution order.
var AllStages = []Stage{Tokenize, Split, POS, Lemma, NER, Parse}

// requires maps a stage to the stage it consumes.
var requires = map[Stage]Stage{
	Split: Tokenize,
	POS:   Split,
	Lemma: POS,
	NER:   POS,
	Parse: POS,
}

// ParseStage returns the stage named s. "ssplit" is accepted for Split.
func ParseStage(s string) (Stage, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "ssplit" {
		return Split, nil
	}

	for _, st := range AllStages {
		if string(st) == name {
			return st, nil
		}
	}
	return "", &ConfigError{Err: fmt.Errorf("%w: %q", ErrUnknownStage, s)}
}

// ParseStages parses a list of stage names.
func ParseStages(names []string) ([]Stage, error) {
	stages := make([]Stage, 0, len(names))
	for _, n := range names {
		st, err := ParseStage(n)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	return stages, nil
}

// Requires returns the prerequisite of st.
func (st Stage) Requires() (Stage, bool) {
	r, ok := requires[st]
	return r, ok
}

func (st Stage) valid() bool {
	for _, s := range AllStages {
		if s == st {
			return true
		}
	}
	return false
}

// resolve returns the set of stages that run. An explicit enabled set must
// contain the prerequisites of its stages. Disabled stages are removed
// together with every stage depending on them.
func resolve(enabled, disabled []Stage) (map[Stage]bool, error) {
	set := make(map[Stage]bool, len(AllStages))

	if enabled == nil {
		for _, st := range AllStages {
			set[st] = true
		}
	}

	for _, st := range enabled {
		if !st.valid() {
			return nil, &ConfigError{Err: fmt.Errorf("%w: %q", ErrUnknownStage, st)}
		}
		set[st] = true
	}

	for _, st := range enabled {
		if req, ok := st.Requires(); ok && !set[req] {
			return nil, &ConfigError{Stage: st, Err: fmt.Errorf("%w: %s requires %s", ErrMissingPrerequisite, st, req)}
		}
	}

	for _, st := range disabled {
		if !st.valid() {
			return nil, &ConfigError{Err: fmt.Errorf("%w: %q", ErrUnknownStage, st)}
		}
		delete(set, st)
	}

	// AllStages is in dependency order, one pass cascades
	for _, st := range AllStages {
		if req, ok := st.Requires(); ok && !set[req] {
			delete(set, st)
		}
	}

	return set, nil
}
