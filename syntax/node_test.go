package syntax

import (
	"errors"
	"testing"

	"github.com/SatelliteDish/Novel/diag"
)

func mustToken(t *testing.T, src string) Token {
	t.Helper()
	tok, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("Scan(%q): %v", src, err)
	}
	return tok
}

func TestNewLeaf(t *testing.T) {
	tests := []struct {
		name  string
		kind  NodeKind
		src   string
		valid bool
	}{
		{"number", KindNumericLiteral, "4", true},
		{"string", KindStringLiteral, `"x"`, true},
		{"true", KindBooleanLiteral, "true", true},
		{"false", KindBooleanLiteral, "false", true},
		{"keyword accepts any token", KindKeyword, "called", true},
		{"empty accepts any token", KindEmpty, "4", true},
		{"number from string", KindNumericLiteral, `"4"`, false},
		{"dot from comma", KindDot, ",", false},
		{"not a leaf", KindAddition, "+", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := mustToken(t, tt.src)
			node, err := NewLeaf(tt.kind, tok)
			if !tt.valid {
				if !errors.Is(err, diag.Diagnostic{Kind: diag.UnexpectedToken}) {
					t.Errorf("error = %v, want Unexpected Token", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLeaf: %v", err)
			}
			if node.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", node.Kind, tt.kind)
			}
			if tt.kind == KindEmpty {
				if !node.Value.IsAbsent() {
					t.Errorf("Empty carries %v", node.Value)
				}
			} else if !node.Value.Equal(tok.Value) {
				t.Errorf("Value = %v, want %v", node.Value, tok.Value)
			}
		})
	}
}

func TestNewBinary(t *testing.T) {
	left := NewEmpty(Token{})
	right := NewEmpty(Token{})

	if _, err := NewBinary(KindAddition, left, right, mustToken(t, "*")); err != nil {
		t.Errorf("arithmetic node rejected operator: %v", err)
	}
	if _, err := NewBinary(KindLess, left, right, mustToken(t, "is less than")); err != nil {
		t.Errorf("Less rejected its own operator: %v", err)
	}
	if _, err := NewBinary(KindLess, left, right, mustToken(t, "is greater than")); err == nil {
		t.Error("Less accepted a Greater operator")
	}
	if _, err := NewBinary(KindEmpty, left, right, Token{}); err == nil {
		t.Error("Empty accepted as a binary node")
	}

	node, _ := NewBinary(KindDivision, left, right, mustToken(t, "/"))
	if node.Left() != left || node.Right() != right {
		t.Error("children out of order")
	}
}

func TestNodeKindShapes(t *testing.T) {
	if !KindEmpty.IsLeaf() || !KindEndOfInput.IsLeaf() {
		t.Error("Empty and EndOfInput must be leaves")
	}
	if KindNegation.IsLeaf() || KindNegation.IsArithmetic() {
		t.Error("Negation is neither a leaf nor binary")
	}
	for _, k := range []NodeKind{KindAddition, KindSubtraction, KindMultiplication, KindDivision, KindModulo} {
		if !k.IsArithmetic() {
			t.Errorf("%v is not arithmetic", k)
		}
	}
	if !KindParens.IsUnsupported() || KindAddition.IsUnsupported() {
		t.Error("unsupported shapes misclassified")
	}
	if NodeKind(999).IsLeaf() || NodeKind(999).String() != "Unknown" {
		t.Error("unknown kind misclassified")
	}
}

func TestNodeWalk(t *testing.T) {
	tree, _ := Parse("1 + -2 * 3")

	var kinds []NodeKind
	tree.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	want := []NodeKind{KindMultiplication, KindAddition, KindNumericLiteral, KindNegation, KindNumericLiteral, KindNumericLiteral}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("node %d: got %v, want %v", i, kinds[i], want[i])
		}
	}

	visited := 0
	tree.Walk(func(n *Node) bool {
		visited++
		return n.Kind != KindAddition
	})
	if visited != 2 {
		t.Errorf("Walk visited %d nodes after stop, want 2", visited)
	}
}

func TestNodeStringWithPositions(t *testing.T) {
	tree, _ := Parse("1 +\n-2")
	want := "Addition [1:2] +\n  NumericLiteral [1:0] Number(1)\n  Negation [2:4] -\n    NumericLiteral [2:5] Number(2)\n"
	if got := tree.StringWithPositions(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLeafKindsMatchTokens(t *testing.T) {
	for tok, kind := range leafKinds {
		if !kind.IsLeaf() {
			t.Errorf("%v maps to non-leaf %v", tok, kind)
		}
	}
	for tok, kind := range binaryKinds {
		if kind.IsLeaf() {
			t.Errorf("%v maps to leaf %v", tok, kind)
		}
		if tok.IsOperator() != kind.IsArithmetic() {
			t.Errorf("%v and %v disagree on arithmetic", tok, kind)
		}
	}
}

func TestConstructKind(t *testing.T) {
	tests := []struct {
		tok         TokenKind
		kind        NodeKind
		ok          bool
		unsupported bool
	}{
		{TokenIf, KindIf, true, true},
		{TokenLeftParen, KindParens, true, true},
		{TokenLessEq, KindLessEq, true, true},
		{TokenStar, KindMultiplication, true, false},
		{TokenIdKeyword, 0, false, true},
		{TokenNumericLiteral, 0, false, false},
		{TokenMinus, KindSubtraction, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			kind, ok := ConstructKind(tt.tok)
			if ok != tt.ok || (ok && kind != tt.kind) {
				t.Errorf("ConstructKind = %v, %v, want %v, %v", kind, ok, tt.kind, tt.ok)
			}
			if got := unsupported(tt.tok); got != tt.unsupported {
				t.Errorf("unsupported = %v, want %v", got, tt.unsupported)
			}
		})
	}
}
