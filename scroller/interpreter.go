// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroller/interpreter.go
// Summary: Character interpreter for backspace, tab, and carriage return.
// Usage: Grounded on _examples/original_source/cgdb/scroller.c's parse(),
// reproducing its caret semantics byte for byte rather than inventing new
// ones, per §4.2 of the system this package implements.

package scroller

import "unicode"

const tabSize = 8

// interpret applies buf's control characters against orig starting at
// caret (the scroller's persisted caret position, not necessarily the end
// of orig — cgdb's parse() resumes from `scr->current.pos`, see
// _examples/original_source/cgdb/scroller.c:73), returning the resulting
// line and the caret's new position. BS/DEL retreat the caret by one
// (never past the start of the line); TAB expands to the next multiple of
// tabSize; CR resets the caret to 0; any other printable rune overwrites
// at the caret and advances it; everything else is dropped. Trailing
// whitespace beyond the final caret position is trimmed once
// interpretation finishes.
func interpret(orig string, caret int, buf string) (string, int) {
	line := []rune(orig)
	if caret < 0 {
		caret = 0
	}
	if caret > len(line) {
		caret = len(line)
	}

	for _, r := range buf {
		switch r {
		case 0x08, 0x7F: // backspace, delete
			if caret > 0 {
				caret--
			}
		case '\t':
			next := ((caret / tabSize) + 1) * tabSize
			for caret < next {
				line = writeAt(line, caret, ' ')
				caret++
			}
		case '\r':
			caret = 0
		default:
			if unicode.IsPrint(r) {
				line = writeAt(line, caret, r)
				caret++
			}
		}
	}

	line = trimTrailingSpace(line, caret)
	return string(line), caret
}

// writeAt overwrites line[pos], extending it with spaces if pos is past
// the current end.
func writeAt(line []rune, pos int, r rune) []rune {
	for len(line) <= pos {
		line = append(line, ' ')
	}
	line[pos] = r
	return line
}

// trimTrailingSpace drops trailing whitespace runes beyond keepUpTo,
// mirroring the C original's `for (j = strlen(rv)-1; j > i && isspace(rv[j]); j--)`.
func trimTrailingSpace(line []rune, keepUpTo int) []rune {
	j := len(line) - 1
	for j > keepUpTo && j >= 0 && unicode.IsSpace(line[j]) {
		j--
	}
	return line[:j+1]
}
