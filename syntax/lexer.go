package syntax

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/SatelliteDish/Novel/diag"
)

type LexerOption func(*Lexer)

// WithLexerStartLine sets the line number of the first line (default 1).
func WithLexerStartLine(line int) LexerOption {
	return func(l *Lexer) {
		l.line = line
	}
}

// Lexer turns a source buffer into tokens with one token of lookahead.
//
// When no rule matches at the cursor the lexer reports MissingToken and stays
// where it is: Peek and Scan keep returning the same error until the caller
// invokes Recover. The same holds for a token whose text matched but could
// not be converted (InvalidTokenValue).
type Lexer struct {
	src    string
	pos    int
	line   int
	tok    Token
	err    error
	resume int
}

func NewLexer(src string, opts ...LexerOption) *Lexer {
	l := &Lexer{
		src:  src,
		line: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.advance()
	return l
}

// Peek returns the current token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	return l.tok, l.err
}

// Scan returns the current token and moves to the next non-whitespace token.
// At the end of input it keeps returning the EndOfInput token.
func (l *Lexer) Scan() (Token, error) {
	tok, err := l.tok, l.err
	if err == nil && tok.Kind != TokenEndOfInput {
		l.advance()
	}
	return tok, err
}

// Recover clears a pending lexical error. For MissingToken it skips exactly
// one rune; for InvalidTokenValue the offending text has already been
// consumed. It returns the text that was given up, or "" when there was no
// error to recover from.
func (l *Lexer) Recover() string {
	if l.err == nil {
		return ""
	}
	skipped := l.src[l.errorOffset():l.resume]
	l.consume(l.src[l.pos:l.resume])
	l.advance()
	return skipped
}

// Line is the line the cursor is on.
func (l *Lexer) Line() int {
	return l.line
}

// Offset is the byte offset of the cursor.
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) errorOffset() int {
	var d diag.Diagnostic
	if errors.As(l.err, &d) {
		return d.Position
	}
	return l.pos
}

func (l *Lexer) consume(text string) {
	l.line += strings.Count(text, "\n")
	l.pos += len(text)
}

func (l *Lexer) fail(kind diag.Kind, line, offset, resume int) {
	l.tok = Token{}
	l.err = diag.New(kind, line, offset)
	l.resume = resume
}

func (l *Lexer) advance() {
	for {
		if l.pos >= len(l.src) {
			l.tok = Token{
				Kind:   TokenEndOfInput,
				Value:  EndOfInput(),
				Raw:    l.src[l.pos:],
				Line:   l.line,
				Offset: l.pos,
			}
			l.err = nil
			return
		}

		text := l.src[l.pos:]
		r, n, ok := matchRule(text)
		if !ok {
			_, size := utf8.DecodeRuneInString(text)
			l.fail(diag.MissingToken, l.line, l.pos, l.pos+size)
			return
		}

		raw := text[:n]
		line, offset := l.line, l.pos
		l.consume(raw)
		if r.kind == TokenWhitespace {
			continue
		}

		val, ok := r.value(raw)
		if !ok {
			l.fail(diag.InvalidTokenValue, line, offset, l.pos)
			return
		}
		tok, err := NewToken(r.kind, val, raw, line, offset)
		if err != nil {
			l.tok, l.err, l.resume = Token{}, err, l.pos
			return
		}
		l.tok, l.err = tok, nil
		return
	}
}

// Tokenize lexes src to the end, skipping one rune past every position no
// rule matches. The returned slice always ends with the EndOfInput token.
func Tokenize(src string, opts ...LexerOption) ([]Token, *diag.List) {
	diags := diag.NewList()
	l := NewLexer(src, opts...)
	var tokens []Token
	for {
		tok, err := l.Scan()
		if err != nil {
			diags.Report(toDiagnostic(err, l.Line(), l.Offset()))
			l.Recover()
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEndOfInput {
			return tokens, diags
		}
	}
}

func toDiagnostic(err error, line, offset int) diag.Diagnostic {
	var d diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return diag.New(diag.UnknownToken, line, offset)
}
