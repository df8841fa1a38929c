// Package syntax turns Novel source text into a syntax tree.
//
// # Overview
//
// Novel reads like English prose: keywords are whole phrases such as
// "is less than or equal to" or "there is a", identifiers start with an
// upper-case letter, and sentences end in punctuation. The package lexes that
// text into tokens and parses the arithmetic subset of the language into a
// tree the eval package reduces to a value.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │
//	│  (string)   │     │  (tokens)   │     │   (Node)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────────────────────┐
//	                    │         diag.List           │
//	                    └─────────────────────────────┘
//
// # Lexing
//
// The lexer tries an ordered list of regular expressions at the cursor and
// takes the first one that matches, not the longest. White space is skipped
// and counted for line numbers. Every token keeps its raw text as a view into
// the source buffer, so concatenating the Raw fields of all tokens with the
// skipped white space reproduces the input.
//
// When nothing matches, the lexer reports MissingToken and stays put until
// the caller calls Recover.
//
// # Parsing
//
// The parser never stops at the first problem. Each one is reported to the
// diagnostics list and the offending part of the tree is replaced by an
// Empty node:
//
//	tree, diags := syntax.Parse("2 + 3 * 4")
//	// tree: Multiplication(Addition(2, 3), 4)
//
// Constructs the language recognizes but the parser does not build yet, such
// as conditionals, comparisons and parentheses, are reported as
// NotImplemented.
//
// # Grammar
//
// grammar.ebnf describes the accepted syntax in the notation of
// golang.org/x/exp/ebnf. Its lexical productions are kept in step with the
// lexer rules, which the tests check with a Matcher.
package syntax
