// Package format renders compilation results for people and programs.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/SatelliteDish/Novel/compile"
	"github.com/SatelliteDish/Novel/diag"
	"github.com/SatelliteDish/Novel/syntax"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(r *Report) error
}

// Report is everything one command found out about one source. Fields that
// were not computed are left empty and are not printed.
type Report struct {
	Name        string
	Tokens      []syntax.Token
	Tree        *syntax.Node
	Value       *syntax.Value
	Err         error
	Diagnostics []diag.Diagnostic
}

// UnitReport describes a compiled unit: its tree and diagnostics.
func UnitReport(u *compile.Unit) *Report {
	return &Report{
		Name:        u.Name,
		Tree:        u.Tree,
		Diagnostics: u.Diagnostics.All(),
	}
}

// WithValue records the outcome of evaluating the report's source.
func (r *Report) WithValue(v syntax.Value, err error) *Report {
	if err != nil {
		r.Err = err
		return r
	}
	r.Value = &v
	return r
}

// NewEncoder returns the encoder for the named output format.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text", "":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
