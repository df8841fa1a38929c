package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Protocol positions count lines from zero and characters in UTF-16 code
// units. Offsets in this module are byte offsets into the source.

// positionAt converts a byte offset into a protocol position. Offsets past the
// end of src are clamped.
func positionAt(src string, offset int) protocol.Position {
	if offset > len(src) {
		offset = len(src)
	}
	var line, char protocol.UInteger
	for i, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			char = 0
			continue
		}
		char += protocol.UInteger(utf16Len(r))
	}
	return protocol.Position{Line: line, Character: char}
}

// offsetAt converts a protocol position into a byte offset. A character past
// the end of its line points at the line's end.
func offsetAt(src string, pos protocol.Position) int {
	var line, char protocol.UInteger
	for i, r := range src {
		if line == pos.Line && (char >= pos.Character || r == '\n') {
			return i
		}
		if r == '\n' {
			line++
			char = 0
			continue
		}
		if line == pos.Line {
			char += protocol.UInteger(utf16Len(r))
		}
	}
	return len(src)
}

func runeAt(src string, offset int) rune {
	r, _ := utf8.DecodeRuneInString(src[offset:])
	return r
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
