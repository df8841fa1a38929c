// Package eval reduces a syntax tree to a single value.
package eval

import (
	"math"

	"github.com/SatelliteDish/Novel/diag"
	"github.com/SatelliteDish/Novel/syntax"
)

// Evaluate reduces n to a value. It has no side effects. Failures are
// diag.Diagnostic values positioned at the node's token: the operator for
// arithmetic nodes, the leaf itself otherwise.
//
// An Empty node evaluates to Absent, so a tree whose unsupported parts were
// replaced by the parser can still be reduced.
func Evaluate(n *syntax.Node) (syntax.Value, error) {
	if n == nil {
		return syntax.Value{}, diag.New(diag.NotImplemented, 0, 0)
	}
	switch {
	case n.Kind.IsArithmetic():
		return binary(n)
	case n.Kind == syntax.KindNegation:
		return negation(n)
	case n.Kind == syntax.KindNumericLiteral:
		return n.Value, nil
	case n.Kind == syntax.KindEmpty:
		return syntax.Absent(), nil
	}
	return syntax.Value{}, n.Token.Diagnostic(diag.NotImplemented)
}

func binary(n *syntax.Node) (syntax.Value, error) {
	left, err := Evaluate(n.Left())
	if err != nil {
		return syntax.Value{}, err
	}
	right, err := Evaluate(n.Right())
	if err != nil {
		return syntax.Value{}, err
	}

	lf, lok := left.Number()
	rf, rok := right.Number()
	if !lok || !rok {
		return syntax.Value{}, n.Token.Diagnostic(diag.InvalidOperands)
	}

	switch n.Kind {
	case syntax.KindAddition:
		return syntax.Number(lf + rf), nil
	case syntax.KindSubtraction:
		return syntax.Number(lf - rf), nil
	case syntax.KindMultiplication:
		return syntax.Number(lf * rf), nil
	case syntax.KindDivision:
		if rf == 0.0 {
			return syntax.Value{}, n.Token.Diagnostic(diag.DivideByZero)
		}
		return syntax.Number(lf / rf), nil
	case syntax.KindModulo:
		if rf == 0.0 {
			return syntax.Value{}, n.Token.Diagnostic(diag.DivideByZero)
		}
		return syntax.Number(math.Mod(lf, rf)), nil
	}
	return syntax.Value{}, n.Token.Diagnostic(diag.NotImplemented)
}

func negation(n *syntax.Node) (syntax.Value, error) {
	v, err := Evaluate(n.Operand())
	if err != nil {
		return syntax.Value{}, err
	}
	f, ok := v.Number()
	if !ok {
		return syntax.Value{}, n.Token.Diagnostic(diag.InvalidOperands)
	}
	return syntax.Number(-f), nil
}
