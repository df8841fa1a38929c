package syntax

import (
	"strconv"
	"strings"

	"github.com/SatelliteDish/Novel/diag"
)

type NodeKind int

const (
	KindEmpty NodeKind = iota

	// Leaves
	KindNumericLiteral
	KindStringLiteral
	KindIdentifier
	KindKeyword
	KindComma
	KindDot
	KindBang
	KindQuestion
	KindInterrobang
	KindSemicolon
	KindColon
	KindBooleanLiteral
	KindNoneLiteral
	KindYouLiteral
	KindEndOfInput

	// Arithmetic
	KindAddition
	KindSubtraction
	KindMultiplication
	KindDivision
	KindModulo
	KindNegation

	// Recognized but not supported
	KindIf
	KindTherefore
	KindAssignment
	KindDeclaration
	KindParens
	KindEqTo
	KindNeqTo
	KindOr
	KindNot
	KindAnd
	KindLess
	KindGreater
	KindLessEq
	KindGreaterEq
)

var nodeKindNames = map[NodeKind]string{
	KindEmpty:          "Empty",
	KindNumericLiteral: "NumericLiteral",
	KindStringLiteral:  "StringLiteral",
	KindIdentifier:     "Identifier",
	KindKeyword:        "Keyword",
	KindComma:          "Comma",
	KindDot:            "Dot",
	KindBang:           "Bang",
	KindQuestion:       "Question",
	KindInterrobang:    "Interrobang",
	KindSemicolon:      "Semicolon",
	KindColon:          "Colon",
	KindBooleanLiteral: "BooleanLiteral",
	KindNoneLiteral:    "NoneLiteral",
	KindYouLiteral:     "YouLiteral",
	KindEndOfInput:     "EndOfInput",
	KindAddition:       "Addition",
	KindSubtraction:    "Subtraction",
	KindMultiplication: "Multiplication",
	KindDivision:       "Division",
	KindModulo:         "Modulo",
	KindNegation:       "Negation",
	KindIf:             "If",
	KindTherefore:      "Therefore",
	KindAssignment:     "Assignment",
	KindDeclaration:    "Declaration",
	KindParens:         "Parens",
	KindEqTo:           "EqTo",
	KindNeqTo:          "NeqTo",
	KindOr:             "Or",
	KindNot:            "Not",
	KindAnd:            "And",
	KindLess:           "Less",
	KindGreater:        "Greater",
	KindLessEq:         "LessEq",
	KindGreaterEq:      "GreaterEq",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type nodeShape int

const (
	shapeLeaf nodeShape = iota
	shapeBinary
	shapeUnary
	shapeUnsupported
)

var nodeShapes = map[NodeKind]nodeShape{
	KindEmpty:          shapeLeaf,
	KindNumericLiteral: shapeLeaf,
	KindStringLiteral:  shapeLeaf,
	KindIdentifier:     shapeLeaf,
	KindKeyword:        shapeLeaf,
	KindComma:          shapeLeaf,
	KindDot:            shapeLeaf,
	KindBang:           shapeLeaf,
	KindQuestion:       shapeLeaf,
	KindInterrobang:    shapeLeaf,
	KindSemicolon:      shapeLeaf,
	KindColon:          shapeLeaf,
	KindBooleanLiteral: shapeLeaf,
	KindNoneLiteral:    shapeLeaf,
	KindYouLiteral:     shapeLeaf,
	KindEndOfInput:     shapeLeaf,
	KindAddition:       shapeBinary,
	KindSubtraction:    shapeBinary,
	KindMultiplication: shapeBinary,
	KindDivision:       shapeBinary,
	KindModulo:         shapeBinary,
	KindNegation:       shapeUnary,
	KindIf:             shapeUnsupported,
	KindTherefore:      shapeUnsupported,
	KindAssignment:     shapeUnsupported,
	KindDeclaration:    shapeUnsupported,
	KindParens:         shapeUnsupported,
	KindEqTo:           shapeUnsupported,
	KindNeqTo:          shapeUnsupported,
	KindOr:             shapeUnsupported,
	KindNot:            shapeUnsupported,
	KindAnd:            shapeUnsupported,
	KindLess:           shapeUnsupported,
	KindGreater:        shapeUnsupported,
	KindLessEq:         shapeUnsupported,
	KindGreaterEq:      shapeUnsupported,
}

func (k NodeKind) IsLeaf() bool {
	s, ok := nodeShapes[k]
	return ok && s == shapeLeaf
}

func (k NodeKind) IsArithmetic() bool {
	return nodeShapes[k] == shapeBinary
}

// IsUnsupported reports whether k models a construct the parser recognizes
// but never builds.
func (k NodeKind) IsUnsupported() bool {
	return nodeShapes[k] == shapeUnsupported
}

// leafKinds maps each token kind that forms a Factor on its own to the leaf
// node it becomes. Keyword and Empty leaves accept any token.
var leafKinds = map[TokenKind]NodeKind{
	TokenNumericLiteral: KindNumericLiteral,
	TokenStringLiteral:  KindStringLiteral,
	TokenIdentifier:     KindIdentifier,
	TokenComma:          KindComma,
	TokenDot:            KindDot,
	TokenBang:           KindBang,
	TokenQuestion:       KindQuestion,
	TokenInterrobang:    KindInterrobang,
	TokenSemicolon:      KindSemicolon,
	TokenColon:          KindColon,
	TokenTrue:           KindBooleanLiteral,
	TokenFalse:          KindBooleanLiteral,
	TokenNone:           KindNoneLiteral,
	TokenYou:            KindYouLiteral,
	TokenEndOfInput:     KindEndOfInput,
}

// binaryKinds maps operator tokens to the node that combines two operands.
var binaryKinds = map[TokenKind]NodeKind{
	TokenPlus:      KindAddition,
	TokenMinus:     KindSubtraction,
	TokenStar:      KindMultiplication,
	TokenSlash:     KindDivision,
	TokenMod:       KindModulo,
	TokenEqTo:      KindEqTo,
	TokenNeqTo:     KindNeqTo,
	TokenOr:        KindOr,
	TokenNot:       KindNot,
	TokenAnd:       KindAnd,
	TokenLess:      KindLess,
	TokenGreater:   KindGreater,
	TokenLessEq:    KindLessEq,
	TokenGreaterEq: KindGreaterEq,
}

// prefixKinds maps tokens that open a construct to the node it would build.
var prefixKinds = map[TokenKind]NodeKind{
	TokenIf:          KindIf,
	TokenTherefore:   KindTherefore,
	TokenAssignment:  KindAssignment,
	TokenDeclaration: KindDeclaration,
	TokenLeftParen:   KindParens,
}

// Node is a syntax tree node. Leaves carry a Value and their originating
// Token; binary nodes have two Children and the operator Token; Negation has
// one child. Trees are not modified after the parser returns them.
type Node struct {
	Kind     NodeKind
	Value    Value
	Token    Token
	Children []*Node
}

// LeafKind returns the leaf node kind a token forms on its own.
func LeafKind(tok TokenKind) (NodeKind, bool) {
	k, ok := leafKinds[tok]
	return k, ok
}

// BinaryKind returns the node kind an operator token combines operands into.
func BinaryKind(tok TokenKind) (NodeKind, bool) {
	k, ok := binaryKinds[tok]
	return k, ok
}

// ConstructKind returns the node kind tok would build, either as the opening
// token of a construct or as an operator between two operands.
func ConstructKind(tok TokenKind) (NodeKind, bool) {
	if k, ok := prefixKinds[tok]; ok {
		return k, true
	}
	return BinaryKind(tok)
}

// NewLeaf builds a leaf of the given kind from tok. The token must be one
// that forms that leaf; KindKeyword and KindEmpty accept any token.
func NewLeaf(kind NodeKind, tok Token) (*Node, error) {
	if !kind.IsLeaf() {
		return nil, tok.Diagnostic(diag.UnexpectedToken)
	}
	if kind != KindKeyword && kind != KindEmpty {
		if want, ok := leafKinds[tok.Kind]; !ok || want != kind {
			return nil, tok.Diagnostic(diag.UnexpectedToken)
		}
	}
	val := tok.Value
	if kind == KindEmpty {
		val = Absent()
	}
	return &Node{Kind: kind, Value: val, Token: tok}, nil
}

func NewEmpty(tok Token) *Node {
	return &Node{Kind: KindEmpty, Value: Absent(), Token: tok}
}

// NewBinary combines left and right under the operator token op. Both
// arithmetic and the unsupported comparison kinds are accepted.
func NewBinary(kind NodeKind, left, right *Node, op Token) (*Node, error) {
	if !kind.IsArithmetic() {
		if want, ok := binaryKinds[op.Kind]; !ok || want != kind {
			return nil, op.Diagnostic(diag.UnexpectedToken)
		}
	}
	return &Node{Kind: kind, Token: op, Children: []*Node{left, right}}, nil
}

func NewNegation(operand *Node, op Token) *Node {
	return &Node{Kind: KindNegation, Token: op, Children: []*Node{operand}}
}

// Left returns the first child, or nil.
func (n *Node) Left() *Node {
	if len(n.Children) > 0 {
		return n.Children[0]
	}
	return nil
}

// Right returns the second child of a binary node, or nil.
func (n *Node) Right() *Node {
	if len(n.Children) > 1 {
		return n.Children[1]
	}
	return nil
}

// Operand returns the child of a Negation.
func (n *Node) Operand() *Node {
	return n.Left()
}

func (n *Node) IsEmpty() bool {
	return n.Kind == KindEmpty
}

// Walk visits n and its descendants depth-first, left to right, until fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

// StringWithPositions is String with each node's line and offset.
func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [")
		b.WriteString(strconv.Itoa(n.Token.Line))
		b.WriteString(":")
		b.WriteString(strconv.Itoa(n.Token.Offset))
		b.WriteString("]")
	}
	if n.Kind.IsLeaf() {
		if !n.Value.IsAbsent() {
			b.WriteString(" ")
			b.WriteString(n.Value.String())
		}
	} else if n.Token.Raw != "" {
		b.WriteString(" ")
		b.WriteString(n.Token.Raw)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
