// Package compile runs the lexer, parser and evaluator over whole
// compilation units and fans out over many of them.
package compile

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/SatelliteDish/Novel/diag"
	"github.com/SatelliteDish/Novel/eval"
	"github.com/SatelliteDish/Novel/syntax"
)

// Extension is the file name suffix of Novel sources.
const Extension = ".novel"

var log = commonlog.GetLogger("novel.compile")

// ErrHasDiagnostics is returned by Evaluate when the unit did not parse
// cleanly and evaluation was not forced.
var ErrHasDiagnostics = errors.New("unit has diagnostics")

// Unit is one compiled source buffer. Each unit owns its diagnostics.
type Unit struct {
	Name        string
	Source      string
	Tree        *syntax.Node
	Diagnostics *diag.List
}

// Source names a buffer to compile.
type Source struct {
	Name string
	Text string
}

// Compile lexes and parses src. It never fails: problems end up in the
// unit's diagnostics.
func Compile(name, src string, opts ...syntax.Option) *Unit {
	diags := diag.NewList()
	tree := syntax.NewParser(src, diags, opts...).Parse()
	if diags.HasErrors() {
		log.Debugf("%s: %d diagnostics", name, diags.Len())
	}
	return &Unit{
		Name:        name,
		Source:      src,
		Tree:        tree,
		Diagnostics: diags,
	}
}

// Evaluate reduces the unit's tree. Unless force is set, a unit with
// diagnostics is not evaluated and ErrHasDiagnostics is returned.
func (u *Unit) Evaluate(force bool) (syntax.Value, error) {
	if u.Diagnostics.HasErrors() && !force {
		return syntax.Value{}, fmt.Errorf("%s: %w", u.Name, ErrHasDiagnostics)
	}
	v, err := eval.Evaluate(u.Tree)
	if err != nil {
		return syntax.Value{}, fmt.Errorf("%s: %w", u.Name, err)
	}
	return v, nil
}

// OK reports whether the unit parsed without diagnostics.
func (u *Unit) OK() bool {
	return !u.Diagnostics.HasErrors()
}

// CompileAll compiles every source on up to workers goroutines and returns
// the units in the order of sources. A workers value below one means one
// worker per CPU. When ctx is cancelled no further sources are started and
// the context's error is returned with the units finished so far; the slots
// of sources that never ran are nil.
func CompileAll(ctx context.Context, sources []Source, workers int, opts ...syntax.Option) ([]*Unit, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(sources) {
		workers = len(sources)
	}

	units := make([]*Unit, len(sources))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				units[i] = Compile(sources[i].Name, sources[i].Text, opts...)
			}
		}()
	}

	var err error
schedule:
	for i := range sources {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break schedule
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		log.Warningf("compilation cancelled: %s", err)
		return units, err
	}
	log.Infof("compiled %d units on %d workers", len(units), workers)
	return units, nil
}
