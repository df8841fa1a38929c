package syntax

import (
	"fmt"
	"slices"

	"github.com/SatelliteDish/Novel/diag"
)

type TokenKind int

const (
	TokenInvalid TokenKind = iota
	TokenWhitespace
	TokenEndOfInput

	// Literals
	TokenNumericLiteral
	TokenStringLiteral
	TokenIdentifier

	// Punctuation
	TokenComma
	TokenDot
	TokenBang
	TokenQuestion
	TokenInterrobang
	TokenSemicolon
	TokenColon
	TokenLeftParen
	TokenRightParen

	// Arithmetic
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenMod

	// Keyword phrases
	TokenIf
	TokenTherefore
	TokenEqTo
	TokenNeqTo
	TokenOr
	TokenNot
	TokenAnd
	TokenLess
	TokenGreater
	TokenLessEq
	TokenGreaterEq
	TokenFalse
	TokenTrue
	TokenNone
	TokenYou
	TokenAssignment
	TokenDeclaration
	TokenIdKeyword
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid:        "Invalid",
	TokenWhitespace:     "Whitespace",
	TokenEndOfInput:     "EndOfInput",
	TokenNumericLiteral: "NumericLiteral",
	TokenStringLiteral:  "StringLiteral",
	TokenIdentifier:     "Identifier",
	TokenComma:          "Comma",
	TokenDot:            "Dot",
	TokenBang:           "Bang",
	TokenQuestion:       "Question",
	TokenInterrobang:    "Interrobang",
	TokenSemicolon:      "Semicolon",
	TokenColon:          "Colon",
	TokenLeftParen:      "LeftParen",
	TokenRightParen:     "RightParen",
	TokenPlus:           "Plus",
	TokenMinus:          "Minus",
	TokenStar:           "Star",
	TokenSlash:          "Slash",
	TokenMod:            "Mod",
	TokenIf:             "If",
	TokenTherefore:      "Therefore",
	TokenEqTo:           "EqTo",
	TokenNeqTo:          "NeqTo",
	TokenOr:             "Or",
	TokenNot:            "Not",
	TokenAnd:            "And",
	TokenLess:           "Less",
	TokenGreater:        "Greater",
	TokenLessEq:         "LessEq",
	TokenGreaterEq:      "GreaterEq",
	TokenFalse:          "False",
	TokenTrue:           "True",
	TokenNone:           "None",
	TokenYou:            "You",
	TokenAssignment:     "Assignment",
	TokenDeclaration:    "Declaration",
	TokenIdKeyword:      "IdKeyword",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsOperator reports whether k is one of the five arithmetic operators that
// share the single precedence level of an Expression.
func (k TokenKind) IsOperator() bool {
	switch k {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenMod:
		return true
	}
	return false
}

// tokenValueKinds fixes the Value variant each token kind must carry.
var tokenValueKinds = map[TokenKind]ValueKind{
	TokenWhitespace:     ValueAbsent,
	TokenEndOfInput:     ValueEndOfInput,
	TokenNumericLiteral: ValueNumber,
	TokenStringLiteral:  ValueText,
	TokenIdentifier:     ValueIdentifier,
	TokenComma:          ValueSymbol,
	TokenDot:            ValueSymbol,
	TokenBang:           ValueSymbol,
	TokenQuestion:       ValueSymbol,
	TokenInterrobang:    ValueSymbol,
	TokenSemicolon:      ValueSymbol,
	TokenColon:          ValueSymbol,
	TokenLeftParen:      ValueSymbol,
	TokenRightParen:     ValueSymbol,
	TokenPlus:           ValueSymbol,
	TokenMinus:          ValueSymbol,
	TokenStar:           ValueSymbol,
	TokenSlash:          ValueSymbol,
	TokenMod:            ValueSymbol,
	TokenIf:             ValueKeyword,
	TokenTherefore:      ValueKeyword,
	TokenEqTo:           ValueKeyword,
	TokenNeqTo:          ValueKeyword,
	TokenOr:             ValueKeyword,
	TokenNot:            ValueKeyword,
	TokenAnd:            ValueKeyword,
	TokenLess:           ValueKeyword,
	TokenGreater:        ValueKeyword,
	TokenLessEq:         ValueKeyword,
	TokenGreaterEq:      ValueKeyword,
	TokenFalse:          ValueBoolean,
	TokenTrue:           ValueBoolean,
	TokenNone:           ValueKeyword,
	TokenYou:            ValueKeyword,
	TokenAssignment:     ValueKeyword,
	TokenDeclaration:    ValueKeyword,
	TokenIdKeyword:      ValueKeyword,
}

// symbolTexts lists the accepted spellings of each punctuation kind.
var symbolTexts = map[TokenKind][]string{
	TokenComma:       {","},
	TokenDot:         {"."},
	TokenBang:        {"!"},
	TokenQuestion:    {"?"},
	TokenInterrobang: {"‽", "?!", "!?"},
	TokenSemicolon:   {";"},
	TokenColon:       {":"},
	TokenLeftParen:   {"("},
	TokenRightParen:  {")"},
	TokenPlus:        {"+"},
	TokenMinus:       {"-"},
	TokenStar:        {"*"},
	TokenSlash:       {"/"},
	TokenMod:         {"%"},
}

// Token is a lexical unit. Raw is a view into the source buffer the token was
// scanned from: Offset is its byte offset there and Line the 1-based line it
// starts on.
type Token struct {
	Kind   TokenKind
	Value  Value
	Raw    string
	Line   int
	Offset int
}

// NewToken builds a token after checking that val is the variant kind
// requires. A mismatch is reported as InvalidTokenValue at the token's
// position; an unknown or Invalid kind as UnknownToken.
func NewToken(kind TokenKind, val Value, raw string, line, offset int) (Token, error) {
	want, ok := tokenValueKinds[kind]
	if !ok {
		return Token{}, diag.New(diag.UnknownToken, line, offset)
	}
	if val.Kind() != want {
		return Token{}, diag.New(diag.InvalidTokenValue, line, offset)
	}
	if spellings, ok := symbolTexts[kind]; ok {
		sym, _ := val.Text()
		if !slices.Contains(spellings, sym) {
			return Token{}, diag.New(diag.InvalidTokenValue, line, offset)
		}
	}
	return Token{Kind: kind, Value: val, Raw: raw, Line: line, Offset: offset}, nil
}

// End is the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Raw)
}

func (t Token) Len() int {
	return len(t.Raw)
}

// Diagnostic returns a diagnostic of the given kind positioned at t.
func (t Token) Diagnostic(kind diag.Kind) diag.Diagnostic {
	return diag.New(kind, t.Line, t.Offset)
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %s %q", t.Line, t.Offset, t.Kind, t.Value, t.Raw)
}
