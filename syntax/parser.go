package syntax

import (
	"github.com/SatelliteDish/Novel/diag"
)

// Recovery selects what the parser does after the lexer reports an error.
type Recovery int

const (
	// RecoverSkip skips past the offending text and keeps parsing, so one
	// pass collects as many diagnostics as possible.
	RecoverSkip Recovery = iota
	// RecoverStop ends the parse at the first lexical error and returns the
	// tree built so far.
	RecoverStop
)

func (r Recovery) String() string {
	switch r {
	case RecoverSkip:
		return "skip"
	case RecoverStop:
		return "stop"
	}
	return "unknown"
}

// ParseRecovery converts a configuration string into a Recovery.
func ParseRecovery(s string) (Recovery, bool) {
	switch s {
	case "", "skip":
		return RecoverSkip, true
	case "stop":
		return RecoverStop, true
	}
	return RecoverSkip, false
}

type Option func(*Parser)

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

func WithRecovery(r Recovery) Option {
	return func(p *Parser) {
		p.recovery = r
	}
}

// unsupported reports whether tok starts a construct the language
// recognizes but the parser does not build yet. IdKeyword has no node of
// its own and is never accepted.
func unsupported(tok TokenKind) bool {
	if tok == TokenIdKeyword {
		return true
	}
	kind, ok := ConstructKind(tok)
	return ok && kind.IsUnsupported()
}

// Parser builds a tree from one source buffer. Every problem it meets is
// reported to its diagnostics list and replaced by an Empty node; Parse
// always returns a tree.
//
// Grammar:
//
//	Factor     → NumericLiteral | StringLiteral | Identifier | BooleanLiteral
//	           | NoneLiteral | YouLiteral | punctuation | '-' Factor | EndOfInput
//	Expression → Factor { ('+' | '-' | '*' | '/' | '%') Factor }
//
// All five operators share one precedence level and fold left in the order
// they appear, so "2 + 3 * 4" is (2 + 3) * 4.
type Parser struct {
	startLine int
	recovery  Recovery
	lexer     *Lexer
	diags     *diag.List
	stopped   bool
}

// NewParser prepares a parser over src that reports into diags.
func NewParser(src string, diags *diag.List, opts ...Option) *Parser {
	p := &Parser{
		startLine: 1,
		diags:     diags,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.diags == nil {
		p.diags = diag.NewList()
	}
	p.lexer = NewLexer(src, WithLexerStartLine(p.startLine))
	return p
}

// Parse parses src with its own diagnostics list.
func Parse(src string, opts ...Option) (*Node, *diag.List) {
	diags := diag.NewList()
	return NewParser(src, diags, opts...).Parse(), diags
}

// Diagnostics returns the list the parser reports into.
func (p *Parser) Diagnostics() *diag.List {
	return p.diags
}

func (p *Parser) Parse() *Node {
	return p.parseExpression()
}

func (p *Parser) parseExpression() *Node {
	e := p.parseFactor()
	for p.moreTokens() {
		tok, _ := p.lexer.Scan()
		switch {
		case tok.Kind.IsOperator():
			kind, _ := BinaryKind(tok.Kind)
			right := p.parseFactor()
			e, _ = NewBinary(kind, e, right, tok)
		case unsupported(tok.Kind):
			// A comparison or boolean operator: its right operand is
			// consumed and the whole comparison becomes Empty.
			p.diags.Report(tok.Diagnostic(diag.NotImplemented))
			p.parseFactor()
			e = NewEmpty(tok)
		default:
			// A stray token where an operator belongs is dropped and the
			// operand built so far stays in place.
			p.diags.Report(tok.Diagnostic(diag.UnexpectedToken))
		}
	}
	return e
}

// parseFactor parses one operand. A lexical error where the operand belongs
// is reported and the operand becomes Empty at the error position.
func (p *Parser) parseFactor() *Node {
	if p.stopped {
		return NewEmpty(p.here())
	}
	if _, err := p.lexer.Peek(); err != nil {
		at := p.errorToken(err)
		p.lexicalError(err)
		return NewEmpty(at)
	}

	tok, _ := p.lexer.Scan()
	if kind, ok := LeafKind(tok.Kind); ok {
		if node, err := NewLeaf(kind, tok); err == nil {
			return node
		}
	}

	switch {
	case tok.Kind == TokenMinus:
		return NewNegation(p.parseFactor(), tok)
	case unsupported(tok.Kind):
		p.diags.Report(tok.Diagnostic(diag.NotImplemented))
	default:
		p.diags.Report(tok.Diagnostic(diag.UnexpectedToken))
	}
	return NewEmpty(tok)
}

// moreTokens reports whether another operator may follow, handling any
// lexical errors in between according to the recovery policy.
func (p *Parser) moreTokens() bool {
	for !p.stopped {
		tok, err := p.lexer.Peek()
		if err == nil {
			return tok.Kind != TokenEndOfInput
		}
		p.lexicalError(err)
	}
	return false
}

func (p *Parser) lexicalError(err error) {
	p.diags.Report(toDiagnostic(err, p.lexer.Line(), p.lexer.Offset()))
	if p.recovery == RecoverStop {
		p.stopped = true
		return
	}
	p.lexer.Recover()
}

// errorToken is a placeholder token where err says lexing failed.
func (p *Parser) errorToken(err error) Token {
	d := toDiagnostic(err, p.lexer.Line(), p.lexer.Offset())
	return Token{Kind: TokenInvalid, Line: d.Line, Offset: d.Position}
}

// here is a placeholder token at the lexer's cursor.
func (p *Parser) here() Token {
	return Token{Kind: TokenInvalid, Line: p.lexer.Line(), Offset: p.lexer.Offset()}
}
