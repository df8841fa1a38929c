package syntax

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production a whole source buffer must match.
const StartProduction = "Expression"

//go:embed grammar.ebnf
var grammarSource []byte

// GrammarSource returns the EBNF text of the accepted grammar.
func GrammarSource() string {
	return string(grammarSource)
}

// Grammar parses the embedded grammar.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("grammar.ebnf", bytes.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// VerifyGrammar parses the embedded grammar and checks that every production
// is defined and reachable from StartProduction.
func VerifyGrammar() error {
	grammar, err := Grammar()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(grammar, StartProduction); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

type memoKey struct {
	name   string
	offset int
}

// Matcher finds the longest prefix of a text that a grammar production
// derives. It does not skip white space, so it is meant for the lexical
// productions.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(grammar ebnf.Grammar) *Matcher {
	return &Matcher{grammar: grammar}
}

// Match returns the length in bytes of the longest prefix of text derived by
// production. It reports false when the production is undefined or derives
// no prefix of text at all.
func (m *Matcher) Match(production, text string) (int, bool) {
	if _, ok := m.grammar[production]; !ok {
		return 0, false
	}
	m.input = text
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	n := m.matchName(production, 0)
	return n, n >= 0
}

// Lexemes returns the names of the lexical productions in the grammar.
func Lexemes(grammar ebnf.Grammar) []string {
	var names []string
	for name := range grammar {
		if r, _ := utf8.DecodeRuneInString(name); r >= 'a' && r <= 'z' {
			names = append(names, name)
		}
	}
	return names
}

// match returns the length of the longest match of expr at offset, or -1.
// Options and repetitions match the empty string.
func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n := m.match(item, pos)
			if n < 0 {
				return -1
			}
			pos += n
		}
		return pos - offset

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := offset
		for {
			n := m.match(e.Body, pos)
			if n <= 0 {
				break
			}
			pos += n
		}
		return pos - offset

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// Left recursion.
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if size == 0 || r < lo || r > hi {
		return -1
	}
	return size
}
