package domain

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// FetchError reports a transport failure or a non-success status from an upstream.
type FetchError struct {
	Source string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: fetch: status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("%s: fetch: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports an upstream body that could not be decoded or lacks required fields.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string { return fmt.Sprintf("%s: parse: %v", e.Source, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }
