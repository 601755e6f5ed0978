package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by SectionFor when no section key matches.
// The generator is expected to fall back to a default sidebar.
var ErrNotFound = errors.New("no sidebar section matches path")

// SchemaError reports a malformed node: a missing required field or
// mutually exclusive fields set together.
type SchemaError struct {
	Location string // ex: sidebar["/tech/"][0].children[1]
	Field    string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: %s %s", e.Location, e.Field, e.Reason)
}

// DuplicateKeyError reports a section key declared more than once.
type DuplicateKeyError struct {
	Key   string
	First int // index of the first declaration
	Index int // index of the repeated declaration
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate sidebar section %q at index %d (first declared at index %d)",
		e.Key, e.Index, e.First)
}

func schemaErr(location, field, reason string) error {
	return &SchemaError{Location: location, Field: field, Reason: reason}
}

// Violations extracts every *SchemaError and *DuplicateKeyError carried by
// err, however deeply it was wrapped or combined.
func Violations(err error) []error {
	var out []error
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *SchemaError, *DuplicateKeyError:
			out = append(out, x)
		case interface{ Unwrap() []error }:
			for _, c := range x.Unwrap() {
				walk(c)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}
