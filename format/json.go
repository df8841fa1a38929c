package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/SatelliteDish/Novel/diag"
	"github.com/SatelliteDish/Novel/syntax"
)

type JSONEncoder struct {
	w      io.Writer
	report *Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(r *Report) error {
	e.report = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildReport(), "", "  ")
}

type jsonReport struct {
	Name        string           `json:"name,omitempty"`
	Tokens      []syntax.Token   `json:"tokens,omitempty"`
	Tree        *syntax.Node     `json:"tree,omitempty"`
	Value       *syntax.Value    `json:"value,omitempty"`
	Error       *jsonError       `json:"error,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Kind     string `json:"kind"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
}

type jsonError struct {
	Message    string          `json:"message"`
	Diagnostic *jsonDiagnostic `json:"diagnostic,omitempty"`
}

func (e *JSONEncoder) buildReport() jsonReport {
	r := e.report
	data := jsonReport{
		Name:        r.Name,
		Tokens:      r.Tokens,
		Tree:        r.Tree,
		Value:       r.Value,
		Diagnostics: make([]jsonDiagnostic, len(r.Diagnostics)),
	}
	for i, d := range r.Diagnostics {
		data.Diagnostics[i] = diagnosticToJSON(d)
	}
	if r.Err != nil {
		data.Error = &jsonError{Message: r.Err.Error()}
		var d diag.Diagnostic
		if errors.As(r.Err, &d) {
			jd := diagnosticToJSON(d)
			data.Error.Diagnostic = &jd
		}
	}
	return data
}

func diagnosticToJSON(d diag.Diagnostic) jsonDiagnostic {
	return jsonDiagnostic{
		Kind:     d.Kind.String(),
		Line:     d.Line,
		Position: d.Position,
	}
}
