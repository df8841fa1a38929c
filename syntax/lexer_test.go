package syntax

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/SatelliteDish/Novel/diag"
)

func tokenKinds(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEndOfInput}},
		{"   \n\t ", []TokenKind{TokenEndOfInput}},
		{"2 + 3", []TokenKind{TokenNumericLiteral, TokenPlus, TokenNumericLiteral, TokenEndOfInput}},
		{"1-2*3/4%5", []TokenKind{TokenNumericLiteral, TokenMinus, TokenNumericLiteral, TokenStar, TokenNumericLiteral, TokenSlash, TokenNumericLiteral, TokenMod, TokenNumericLiteral, TokenEndOfInput}},
		{"If Alice is less than or equal to 3", []TokenKind{TokenIf, TokenIdentifier, TokenLessEq, TokenNumericLiteral, TokenEndOfInput}},
		{"if Alice is less than 3", []TokenKind{TokenIf, TokenIdentifier, TokenLess, TokenNumericLiteral, TokenEndOfInput}},
		{"Bob is greater than or equal to Carol", []TokenKind{TokenIdentifier, TokenGreaterEq, TokenIdentifier, TokenEndOfInput}},
		{"Bob is greater than Carol", []TokenKind{TokenIdentifier, TokenGreater, TokenIdentifier, TokenEndOfInput}},
		{"Bob is equal to Carol", []TokenKind{TokenIdentifier, TokenEqTo, TokenIdentifier, TokenEndOfInput}},
		{"Bob is not equal to Carol", []TokenKind{TokenIdentifier, TokenNeqTo, TokenIdentifier, TokenEndOfInput}},
		{"Bob isn't equal to Carol", []TokenKind{TokenIdentifier, TokenNeqTo, TokenIdentifier, TokenEndOfInput}},
		{"is not equal to X", []TokenKind{TokenNeqTo, TokenIdentifier, TokenEndOfInput}},
		{"Bob is not Carol", []TokenKind{TokenIdentifier, TokenNot, TokenIdentifier, TokenEndOfInput}},
		{"Bob isn't Carol", []TokenKind{TokenIdentifier, TokenNot, TokenIdentifier, TokenEndOfInput}},
		{"Fortune or Glory and Fame", []TokenKind{TokenIdentifier, TokenOr, TokenIdentifier, TokenAnd, TokenIdentifier, TokenEndOfInput}},
		{"true false none You", []TokenKind{TokenTrue, TokenFalse, TokenNone, TokenYou, TokenEndOfInput}},
		{"there is a Cat called Tom", []TokenKind{TokenDeclaration, TokenIdentifier, TokenIdKeyword, TokenIdentifier, TokenEndOfInput}},
		{"There is a Dog named Rex", []TokenKind{TokenDeclaration, TokenIdentifier, TokenIdKeyword, TokenIdentifier, TokenEndOfInput}},
		{"it is 5", []TokenKind{TokenAssignment, TokenNumericLiteral, TokenEndOfInput}},
		{"they are 5", []TokenKind{TokenAssignment, TokenNumericLiteral, TokenEndOfInput}},
		{"Rain; therefore Mud", []TokenKind{TokenIdentifier, TokenTherefore, TokenIdentifier, TokenEndOfInput}},
		{"Rain; Mud", []TokenKind{TokenIdentifier, TokenSemicolon, TokenIdentifier, TokenEndOfInput}},
		{"?! ‽ !? ! ?", []TokenKind{TokenInterrobang, TokenInterrobang, TokenInterrobang, TokenBang, TokenQuestion, TokenEndOfInput}},
		{", . : ( )", []TokenKind{TokenComma, TokenDot, TokenColon, TokenLeftParen, TokenRightParen, TokenEndOfInput}},
		{`"hello" 'world'`, []TokenKind{TokenStringLiteral, TokenStringLiteral, TokenEndOfInput}},
		{"12.", []TokenKind{TokenNumericLiteral, TokenDot, TokenEndOfInput}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, diags := Tokenize(tt.input)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", diags.All())
			}
			got := tokenKinds(tokens)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLexerWordBoundaries(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
		raw   string
	}{
		{"Iffy", TokenIdentifier, "Iffy"},
		{"Ifrit", TokenIdentifier, "Ifrit"},
		{"Yours", TokenIdentifier, "Yours"},
		{"You", TokenYou, "You"},
		{"If", TokenIf, "If"},
		{"Orange", TokenIdentifier, "Orange"},
		{"A", TokenIdentifier, "A"},
		{"Snake_case2", TokenIdentifier, "Snake_case2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer(tt.input).Scan()
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", tok.Raw, tt.raw)
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	tests := []struct {
		input string
		value Value
		raw   string
	}{
		{`"hello world"`, Text("hello world"), `"hello world"`},
		{`'single'`, Text("single"), `'single'`},
		{`""`, Text(""), `""`},
		{"3.25", Number(3.25), "3.25"},
		{"42", Number(42), "42"},
		{"Alice", Identifier("Alice"), "Alice"},
		{"true", Boolean(true), "true"},
		{"false", Boolean(false), "false"},
		{"none", Keyword("none"), "none"},
		{"is less than", Keyword("is less than"), "is less than"},
		{"‽", Symbol("‽"), "‽"},
		{"%", Symbol("%"), "%"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer(tt.input).Scan()
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !tok.Value.Equal(tt.value) {
				t.Errorf("Value = %v, want %v", tok.Value, tt.value)
			}
			if tok.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", tok.Raw, tt.raw)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, diags := Tokenize("2 +\n  Alice")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}

	expected := []struct {
		kind   TokenKind
		line   int
		offset int
	}{
		{TokenNumericLiteral, 1, 0},
		{TokenPlus, 1, 2},
		{TokenIdentifier, 2, 6},
		{TokenEndOfInput, 2, 11},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		tok := tokens[i]
		if tok.Kind != want.kind || tok.Line != want.line || tok.Offset != want.offset {
			t.Errorf("token %d: got %v %d:%d, want %v %d:%d", i, tok.Kind, tok.Line, tok.Offset, want.kind, want.line, want.offset)
		}
	}
}

func TestLexerStringSpansLines(t *testing.T) {
	tokens, _ := Tokenize("\"one\ntwo\" 3")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[1].Line != 2 {
		t.Errorf("line after multi-line string = %d, want 2", tokens[1].Line)
	}
}

func TestLexerStartLine(t *testing.T) {
	tok, _ := NewLexer("\n7", WithLexerStartLine(10)).Peek()
	if tok.Line != 11 {
		t.Errorf("Line = %d, want 11", tok.Line)
	}
}

func TestLexerReconstructsSource(t *testing.T) {
	inputs := []string{
		"",
		"2 + 3 * 4",
		"  If Alice is less than or equal to 3, it is \"big\"!\n",
		"\tthere is a Cat called Tom; therefore You ‽",
		"'x'\n\n-1.5 % 2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, diags := Tokenize(input)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", diags.All())
			}
			var b strings.Builder
			prev := 0
			for _, tok := range tokens {
				gap := input[prev:tok.Offset]
				if strings.TrimSpace(gap) != "" {
					t.Errorf("non-space text %q skipped before %v", gap, tok)
				}
				if got := input[tok.Offset:tok.End()]; got != tok.Raw {
					t.Errorf("source at %d = %q, Raw = %q", tok.Offset, got, tok.Raw)
				}
				b.WriteString(gap)
				b.WriteString(tok.Raw)
				prev = tok.End()
			}
			if b.String() != input {
				t.Errorf("reconstructed %q, want %q", b.String(), input)
			}
			if end := tokens[len(tokens)-1]; end.Offset != len(input) || end.Raw != "" {
				t.Errorf("end of input token = %v", end)
			}
		})
	}
}

func TestLexerDeterministic(t *testing.T) {
	const input = "Alice is not equal to 2 + 'x' ?! 9 @ 3"
	first, firstDiags := Tokenize(input)
	second, secondDiags := Tokenize(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("token streams differ:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(firstDiags.All(), secondDiags.All()) {
		t.Errorf("diagnostics differ: %v vs %v", firstDiags.All(), secondDiags.All())
	}
}

func TestLexerScanAtEnd(t *testing.T) {
	l := NewLexer("1")
	l.Scan()
	for i := 0; i < 3; i++ {
		tok, err := l.Scan()
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if tok.Kind != TokenEndOfInput {
			t.Errorf("scan %d: got %v, want EndOfInput", i, tok.Kind)
		}
	}
}

func TestLexerMissingToken(t *testing.T) {
	l := NewLexer("2 @ 3")
	if tok, err := l.Scan(); err != nil || tok.Kind != TokenNumericLiteral {
		t.Fatalf("first Scan = %v, %v", tok, err)
	}

	_, err := l.Peek()
	var d diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("Peek error = %v, want a diagnostic", err)
	}
	if d.Kind != diag.MissingToken || d.Line != 1 || d.Position != 2 {
		t.Errorf("diagnostic = %v, want Missing Token[1:2]", d)
	}

	// The lexer does not move until it is told to.
	if _, err := l.Scan(); !errors.Is(err, diag.Diagnostic{Kind: diag.MissingToken}) {
		t.Errorf("second Scan error = %v, want Missing Token", err)
	}
	if l.Offset() != 2 {
		t.Errorf("Offset = %d, want 2", l.Offset())
	}

	if skipped := l.Recover(); skipped != "@" {
		t.Errorf("Recover = %q, want %q", skipped, "@")
	}
	tok, err := l.Peek()
	if err != nil {
		t.Fatalf("Peek after Recover: %v", err)
	}
	if tok.Kind != TokenNumericLiteral || tok.Offset != 4 {
		t.Errorf("token after Recover = %v, want NumericLiteral at 4", tok)
	}
}

func TestLexerRecoverSkipsWholeRune(t *testing.T) {
	l := NewLexer("é")
	if _, err := l.Peek(); err == nil {
		t.Fatal("expected an error")
	}
	if skipped := l.Recover(); skipped != "é" {
		t.Errorf("Recover = %q, want %q", skipped, "é")
	}
	tok, err := l.Peek()
	if err != nil || tok.Kind != TokenEndOfInput || tok.Offset != len("é") {
		t.Errorf("after Recover = %v, %v", tok, err)
	}
}

func TestLexerRecoverWithoutError(t *testing.T) {
	l := NewLexer("1")
	if skipped := l.Recover(); skipped != "" {
		t.Errorf("Recover = %q, want empty", skipped)
	}
	if tok, _ := l.Peek(); tok.Kind != TokenNumericLiteral {
		t.Errorf("Peek = %v, want NumericLiteral", tok)
	}
}

func TestLexerInvalidTokenValue(t *testing.T) {
	huge := strings.Repeat("9", 400)
	l := NewLexer(huge + " 1")

	_, err := l.Peek()
	if !errors.Is(err, diag.Diagnostic{Kind: diag.InvalidTokenValue}) {
		t.Fatalf("Peek error = %v, want Invalid Token Value", err)
	}
	var d diag.Diagnostic
	errors.As(err, &d)
	if d.Line != 1 || d.Position != 0 {
		t.Errorf("diagnostic at %d:%d, want 1:0", d.Line, d.Position)
	}

	if skipped := l.Recover(); skipped != huge {
		t.Errorf("Recover skipped %d bytes, want %d", len(skipped), len(huge))
	}
	tok, err := l.Peek()
	if err != nil || tok.Kind != TokenNumericLiteral {
		t.Errorf("after Recover = %v, %v", tok, err)
	}
}

func TestTokenizeSkipsUnknownText(t *testing.T) {
	tokens, diags := Tokenize("2 @ # 3")

	got := tokenKinds(tokens)
	want := []TokenKind{TokenNumericLiteral, TokenNumericLiteral, TokenEndOfInput}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	expected := []diag.Diagnostic{
		diag.New(diag.MissingToken, 1, 2),
		diag.New(diag.MissingToken, 1, 4),
	}
	if !reflect.DeepEqual(diags.All(), expected) {
		t.Errorf("diagnostics = %v, want %v", diags.All(), expected)
	}
}

func TestNewToken(t *testing.T) {
	tests := []struct {
		name string
		kind TokenKind
		val  Value
		want error
	}{
		{"number", TokenNumericLiteral, Number(1), nil},
		{"number with text", TokenNumericLiteral, Text("1"), diag.Diagnostic{Kind: diag.InvalidTokenValue}},
		{"comma", TokenComma, Symbol(","), nil},
		{"comma spelled as semicolon", TokenComma, Symbol(";"), diag.Diagnostic{Kind: diag.InvalidTokenValue}},
		{"interrobang", TokenInterrobang, Symbol("!?"), nil},
		{"interrobang glyph", TokenInterrobang, Symbol("‽"), nil},
		{"interrobang misspelled", TokenInterrobang, Symbol("??"), diag.Diagnostic{Kind: diag.InvalidTokenValue}},
		{"true", TokenTrue, Boolean(true), nil},
		{"true as keyword", TokenTrue, Keyword("true"), diag.Diagnostic{Kind: diag.InvalidTokenValue}},
		{"invalid kind", TokenInvalid, Absent(), diag.Diagnostic{Kind: diag.UnknownToken}},
		{"unknown kind", TokenKind(999), Absent(), diag.Diagnostic{Kind: diag.UnknownToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := NewToken(tt.kind, tt.val, "", 3, 7)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("NewToken: %v", err)
				}
				if tok.Kind != tt.kind || !tok.Value.Equal(tt.val) {
					t.Errorf("token = %v", tok)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var d diag.Diagnostic
			if errors.As(err, &d); d.Line != 3 || d.Position != 7 {
				t.Errorf("diagnostic at %d:%d, want 3:7", d.Line, d.Position)
			}
		})
	}
}
