package parse

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by ParseChecked when the text holds no messages.
var ErrEmptyInput = errors.New("no messages found in chat export")

// ParseError describes a message header whose timestamp could not be read.
// The message is dropped and parsing goes on.
type ParseError struct {
	Line   int
	Header string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: bad timestamp %q: %v", e.Line, e.Header, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
