package dag

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failure modes the core can signal. The table in
// SPEC_FULL.md §7 lists which operation raises which kind.
type ErrorKind string

const (
	DuplicateColumn          ErrorKind = "duplicate_column"
	UnknownIdentifier        ErrorKind = "unknown_identifier"
	TypeMismatch             ErrorKind = "type_mismatch"
	NumberOfColumnsDoesntMatch ErrorKind = "number_of_columns_doesnt_match"
	ThereIsNoColumn          ErrorKind = "there_is_no_column"
	IllegalColumn            ErrorKind = "illegal_column"
	LogicalError             ErrorKind = "logical_error"
)

// Error is the one exported error type the core returns; the only other
// errors that reach a caller are those a Settings.CompileFunctions callback
// returns, which Compile passes through unchanged. Op names the
// failing operation (e.g. "add_input", "split_for_filter") for messages;
// Err, when set, wraps an underlying cause (e.g. a runtime resolver error).
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newErr(kind ErrorKind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func wrapErr(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
