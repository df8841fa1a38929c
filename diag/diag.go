// Package diag collects the non-fatal errors observed while compiling a
// single source buffer.
package diag

import (
	"errors"
	"fmt"
)

type Kind int

const (
	DivideByZero Kind = iota
	InvalidOperands
	NotImplemented
	UnknownToken
	MissingToken
	InvalidTokenValue
	UnexpectedToken
)

var kindNames = map[Kind]string{
	DivideByZero:      "Divide by Zero",
	InvalidOperands:   "Invalid Operands",
	NotImplemented:    "Not Implemented",
	UnknownToken:      "Unknown Token",
	MissingToken:      "Missing Token",
	InvalidTokenValue: "Invalid Token Value",
	UnexpectedToken:   "Unexpected Token",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Diagnostic is a positioned error record. Line is 1-based, Position is the
// byte offset into the source.
type Diagnostic struct {
	Kind     Kind
	Line     int
	Position int
}

func New(kind Kind, line, position int) Diagnostic {
	return Diagnostic{Kind: kind, Line: line, Position: position}
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s[%d:%d]", d.Kind, d.Line, d.Position)
}

// Is reports whether target is a Diagnostic of the same kind, so that
// errors.Is(err, diag.Diagnostic{Kind: diag.DivideByZero}) matches regardless
// of position.
func (d Diagnostic) Is(target error) bool {
	t, ok := target.(Diagnostic)
	if !ok {
		return false
	}
	return t.Kind == d.Kind
}

// List is an ordered, append-only collection of diagnostics owned by one
// compilation. It is not safe for concurrent use.
type List struct {
	items []Diagnostic
}

func NewList() *List {
	return &List{}
}

func (l *List) Report(d Diagnostic) {
	l.items = append(l.items, d)
}

func (l *List) HasErrors() bool {
	return len(l.items) > 0
}

func (l *List) Len() int {
	return len(l.items)
}

// All returns a copy of the diagnostics in the order they were reported.
func (l *List) All() []Diagnostic {
	if len(l.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	return out
}

// Drain returns the reported diagnostics and leaves the list empty.
func (l *List) Drain() []Diagnostic {
	out := l.items
	l.items = nil
	return out
}

// Err joins all diagnostics into a single error, or returns nil when none
// were reported.
func (l *List) Err() error {
	if len(l.items) == 0 {
		return nil
	}
	errs := make([]error, len(l.items))
	for i, d := range l.items {
		errs[i] = d
	}
	return errors.Join(errs...)
}
