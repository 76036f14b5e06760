package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStage        = errors.New("unknown stage")
	ErrMissingPrerequisite = errors.New("missing prerequisite stage")
	ErrTooLong             = errors.New("text too long")
	ErrInvalidTree         = errors.New("invalid dependency tree")
)

// InputError reports text that can not be annotated. No stage has run.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid pipeline configuration. Stage is the
// offending stage, if any.
type ConfigError struct {
	Stage Stage
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StageFailure reports the failure of a stage. Sentence and Token are -1
// when the failure is not local to a sentence or token.
type StageFailure struct {
	Stage    Stage
	Sentence int
	Token    int
	Err      error
}

func (e *StageFailure) Error() string {
	switch {
	case e.Sentence < 0:
		return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
	case e.Token < 0:
		return fmt.Sprintf("stage %s: sentence %d: %v", e.Stage, e.Sentence, e.Err)
	}
	return fmt.Sprintf("stage %s: sentence %d: token %d: %v", e.Stage, e.Sentence, e.Token, e.Err)
}

func (e *StageFailure) Unwrap() error {
	return e.Err
}
