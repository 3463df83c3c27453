package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Sentinel errors returned (wrapped in *Error) by the translators.
var (
	ErrUnsupportedFieldKind   = errors.New("unsupported field kind")
	ErrUnresolvableSchemaType = errors.New("unresolvable schema type")
	ErrUnknownWidget          = errors.New("unknown widget")
	// ErrInvalidConstraintValue is shared with the schema parser so wire and
	// descriptor errors match the same sentinel.
	ErrInvalidConstraintValue = schema.ErrInvalidValue
)

// Error is a translation failure. Name carries the offending class, type,
// widget or keyword.
type Error struct {
	Op    string
	Name  string
	Err   error
	Cause error
}

func (e *Error) Error() string {
	msg := "formschema"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Name != "" {
		msg += " " + strconv.Quote(e.Name)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Err != nil {
		out = append(out, e.Err)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// NewUnsupportedFieldKind reports a class or kind with no table entry.
func NewUnsupportedFieldKind(op, name string) error {
	return &Error{Op: op, Name: name, Err: ErrUnsupportedFieldKind}
}

// NewUnresolvableSchemaType reports a fragment no resolution rule matched.
func NewUnresolvableSchemaType(op, name string) error {
	return &Error{Op: op, Name: name, Err: ErrUnresolvableSchemaType}
}

// NewUnknownWidget reports a widget marker the destination cannot attach.
func NewUnknownWidget(op, name string) error {
	return &Error{Op: op, Name: name, Err: ErrUnknownWidget}
}

// NewInvalidConstraintValue reports a malformed or inconsistent constraint.
func NewInvalidConstraintValue(op, name string, cause error) error {
	return &Error{Op: op, Name: name, Err: ErrInvalidConstraintValue, Cause: cause}
}

func invalidf(op, name, format string, args ...any) error {
	return NewInvalidConstraintValue(op, name, fmt.Errorf(format, args...))
}
