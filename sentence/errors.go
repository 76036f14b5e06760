package sentence

import "fmt"

// TokenError reports an annotation failure on a token of a sentence.
type TokenError struct {
	Index int
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %d: %v", e.Index, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
