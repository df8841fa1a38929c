package syntax

import (
	"regexp"
	"strconv"
)

// rule is one entry of the lexical priority list. value converts the matched
// text into the token payload and reports false when the text cannot be
// represented.
type rule struct {
	kind    TokenKind
	pattern *regexp.Regexp
	value   func(match string) (Value, bool)
}

func keywordValue(match string) (Value, bool) {
	return Keyword(match), true
}

func symbolValue(match string) (Value, bool) {
	return Symbol(match), true
}

func absentValue(string) (Value, bool) {
	return Absent(), true
}

func boolValue(b bool) func(string) (Value, bool) {
	return func(string) (Value, bool) { return Boolean(b), true }
}

func identifierValue(match string) (Value, bool) {
	return Identifier(match), true
}

func stringValue(match string) (Value, bool) {
	if len(match) < 2 {
		return Value{}, false
	}
	return Text(match[1 : len(match)-1]), true
}

func numberValue(match string) (Value, bool) {
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Value{}, false
	}
	return Number(n), true
}

func keyword(kind TokenKind, pattern string) rule {
	return rule{kind: kind, pattern: regexp.MustCompile(`^(?:` + pattern + `)\b`), value: keywordValue}
}

func symbol(kind TokenKind, pattern string) rule {
	return rule{kind: kind, pattern: regexp.MustCompile(`^(?:` + pattern + `)`), value: symbolValue}
}

// rules is tried top to bottom and the first pattern that matches at the
// cursor wins. Phrases that are prefixes of longer phrases must stay below
// them: "is not equal to" before "is not", "is less than or equal to" before
// "is less than", the interrobang before "!" and "?".
var rules = []rule{
	keyword(TokenIf, `[iI]f`),
	keyword(TokenTherefore, `; [tT]herefore`),
	keyword(TokenEqTo, `is equal to`),
	keyword(TokenNeqTo, `(?:is not|isn't) equal to`),
	keyword(TokenOr, `or`),
	keyword(TokenNot, `is not|isn't`),
	keyword(TokenAnd, `and`),
	keyword(TokenLessEq, `is less than or equal to`),
	keyword(TokenLess, `is less than`),
	keyword(TokenGreaterEq, `is greater than or equal to`),
	keyword(TokenGreater, `is greater than`),
	{kind: TokenFalse, pattern: regexp.MustCompile(`^false\b`), value: boolValue(false)},
	{kind: TokenTrue, pattern: regexp.MustCompile(`^true\b`), value: boolValue(true)},
	keyword(TokenNone, `none`),
	keyword(TokenYou, `You`),
	keyword(TokenAssignment, `(?:it|he|she) is|they are`),
	keyword(TokenDeclaration, `[tT]here is a`),
	keyword(TokenIdKeyword, `called|named|labelled`),
	{kind: TokenIdentifier, pattern: regexp.MustCompile(`^[A-Z]\w*`), value: identifierValue},
	{kind: TokenStringLiteral, pattern: regexp.MustCompile(`^"[^"]*"`), value: stringValue},
	{kind: TokenStringLiteral, pattern: regexp.MustCompile(`^'[^']*'`), value: stringValue},
	{kind: TokenNumericLiteral, pattern: regexp.MustCompile(`^\d+(?:\.\d+)?`), value: numberValue},
	symbol(TokenComma, `,`),
	symbol(TokenDot, `\.`),
	symbol(TokenInterrobang, `‽|\?!|!\?`),
	symbol(TokenBang, `!`),
	symbol(TokenQuestion, `\?`),
	symbol(TokenSemicolon, `;`),
	symbol(TokenColon, `:`),
	symbol(TokenLeftParen, `\(`),
	symbol(TokenRightParen, `\)`),
	symbol(TokenPlus, `\+`),
	symbol(TokenMinus, `-`),
	symbol(TokenStar, `\*`),
	symbol(TokenSlash, `/`),
	symbol(TokenMod, `%`),
	{kind: TokenWhitespace, pattern: regexp.MustCompile(`^\s+`), value: absentValue},
}

// matchRule returns the first rule matching at the start of text and the
// length of the match.
func matchRule(text string) (rule, int, bool) {
	for _, r := range rules {
		if loc := r.pattern.FindStringIndex(text); loc != nil && loc[1] > 0 {
			return r, loc[1], true
		}
	}
	return rule{}, 0, false
}
