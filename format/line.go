package format

import (
	"fmt"
	"io"
	"strings"
)

// LineEncoder prints one fact per line. Tokens are tab separated; the tree
// is printed indented; diagnostics use the name:line:position: prefix
// editors recognize.
type LineEncoder struct {
	w         io.Writer
	report    *Report
	positions bool
}

type LineOption func(*LineEncoder)

// WithPositions prints every tree node with its line and offset.
func WithPositions() LineOption {
	return func(e *LineEncoder) {
		e.positions = true
	}
}

func NewLineEncoder(w io.Writer, opts ...LineOption) *LineEncoder {
	e := &LineEncoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *LineEncoder) Encode(r *Report) error {
	e.report = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.report

	for _, tok := range r.Tokens {
		fmt.Fprintf(&sb, "token\t%s\t%s\t%d:%d\t%q\n",
			tok.Kind,
			tok.Value,
			tok.Line,
			tok.Offset,
			tok.Raw,
		)
	}

	if r.Tree != nil {
		if e.positions {
			sb.WriteString(r.Tree.StringWithPositions())
		} else {
			sb.WriteString(r.Tree.String())
		}
	}

	if r.Value != nil {
		fmt.Fprintf(&sb, "value\t%s\n", r.Value)
	}
	if r.Err != nil {
		fmt.Fprintf(&sb, "error\t%s\n", r.Err)
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.name(), d.Line, d.Position, d.Kind)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) name() string {
	if e.report.Name == "" {
		return "<input>"
	}
	return e.report.Name
}
