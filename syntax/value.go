package syntax

import (
	"fmt"
	"strconv"
)

type ValueKind uint8

const (
	ValueAbsent ValueKind = iota
	ValueNumber
	ValueText
	ValueBoolean
	ValueIdentifier
	ValueKeyword
	ValueSymbol
	ValueEndOfInput
)

var valueKindNames = map[ValueKind]string{
	ValueAbsent:     "Absent",
	ValueNumber:     "Number",
	ValueText:       "Text",
	ValueBoolean:    "Boolean",
	ValueIdentifier: "Identifier",
	ValueKeyword:    "Keyword",
	ValueSymbol:     "Symbol",
	ValueEndOfInput: "EndOfInput",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Value is the payload of a token or literal node. The zero Value is Absent.
//
// Only the field that belongs to the variant is ever set, so two Values can be
// compared with == and compare equal exactly when they are the same variant
// with the same payload.
type Value struct {
	kind ValueKind
	num  float64
	b    bool
	text string
}

func Number(n float64) Value { return Value{kind: ValueNumber, num: n} }
func Text(s string) Value { return Value{kind: ValueText, text: s} }
func Boolean(b bool) Value { return Value{kind: ValueBoolean, b: b} }
func Identifier(s string) Value { return Value{kind: ValueIdentifier, text: s} }
func Keyword(s string) Value { return Value{kind: ValueKeyword, text: s} }
func Symbol(s string) Value { return Value{kind: ValueSymbol, text: s} }
func EndOfInput() Value { return Value{kind: ValueEndOfInput} }
func Absent() Value { return Value{} }

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == ValueAbsent
}

// Equal reports structural equality. Values of different variants are never
// equal; Number values follow IEEE-754 comparison.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Number returns the numeric payload and whether v is a Number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == ValueNumber
}

// Text returns the textual payload of Text, Identifier, Keyword and Symbol
// values.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case ValueText, ValueIdentifier, ValueKeyword, ValueSymbol:
		return v.text, true
	}
	return "", false
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == ValueBoolean
}

func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return fmt.Sprintf("Number(%s)", strconv.FormatFloat(v.num, 'g', -1, 64))
	case ValueText:
		return fmt.Sprintf("String(%s)", v.text)
	case ValueBoolean:
		return fmt.Sprintf("Bool(%t)", v.b)
	case ValueIdentifier:
		return fmt.Sprintf("Identifier(%s)", v.text)
	case ValueKeyword:
		return fmt.Sprintf("Keyword(%s)", v.text)
	case ValueSymbol:
		return fmt.Sprintf("Symbol(%s)", v.text)
	case ValueEndOfInput:
		return "EOF"
	}
	return "None"
}
