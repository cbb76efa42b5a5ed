package parser

import (
	"errors"
	"fmt"
)

// Kind sentinels. A *ParseError matches its kind with errors.Is.
var (
	ErrMissingField     = errors.New("missing field")
	ErrWrongLineCount   = errors.New("wrong line count")
	ErrInvalidTabFormat = errors.New("invalid tab format")
)

// ParseError describes why a message block could not become an Entry.
type ParseError struct {
	Kind  error  // one of the Err* sentinels
	Field string // "tab", "name" or "text"
	Lines int    // actual line count for ErrWrongLineCount
	Value string // offending tab text for ErrInvalidTabFormat
	msg   string
}

func (e *ParseError) Error() string { return e.msg }

func (e *ParseError) Unwrap() error { return e.Kind }

func missingField(field string) *ParseError {
	return &ParseError{
		Kind:  ErrMissingField,
		Field: field,
		msg:   fmt.Sprintf("%s field missing", field),
	}
}

func wrongLineCount(field string, n int) *ParseError {
	return &ParseError{
		Kind:  ErrWrongLineCount,
		Field: field,
		Lines: n,
		msg:   fmt.Sprintf("%s field has %d lines, want 1", field, n),
	}
}

func invalidTab(value, reason string) *ParseError {
	return &ParseError{
		Kind:  ErrInvalidTabFormat,
		Field: "tab",
		Value: value,
		msg:   fmt.Sprintf("invalid tab %q: %s", value, reason),
	}
}

// BlockError attaches the position of the failing block to a ParseError.
type BlockError struct {
	Index int
	Err   *ParseError
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %s", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }
