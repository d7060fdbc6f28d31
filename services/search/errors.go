package search

import "fmt"

// SearchFailedError reports a network or backend failure during a
// search. It is surfaced as a dismissible banner; nothing retries
// automatically.
type SearchFailedError struct {
	Err error
}

func (e *SearchFailedError) Error() string {
	return fmt.Sprintf("searchFailed: %v", e.Err)
}

func (e *SearchFailedError) Unwrap() error { return e.Err }
