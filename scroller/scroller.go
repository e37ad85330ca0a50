// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroller/scroller.go
// Summary: Append-only line buffer with a wrap-aware viewport.
// Usage: Grounded on _examples/original_source/cgdb/scroller.c (scr_new,
// scr_add, scr_move); the teacher's texel/scrollback.go supplied the idiom
// for a Go-side buffer (slice of strings plus a cursor struct) in place of
// the C original's realloc'd char** buffer.

package scroller

// ContentClassifier is an optional hook a caller can install to turn plain
// appended text into SGR-tagged text before it joins the buffer — the seam
// SPEC_FULL.md's domain stack section wires a syntax highlighter through
// (see scroller/format).
type ContentClassifier interface {
	Classify(text string) string
}

// cursor tracks the viewport's current line/column and the caret used
// while interpreting freshly appended text.
type cursor struct {
	Row int // index into lines
	Col int // viewport column, always a multiple of width once settled
	Pos int // caret column within the last line, used by AddText
}

// Scroller is an append-only buffer of lines with a scrollable viewport.
// It owns no Canvas; Render paints into whatever Canvas the caller
// supplies, the same convention wm.Pane.Paint uses.
type Scroller struct {
	lines  []string
	cur    cursor
	height int
	width  int

	classifier ContentClassifier
}

// New creates a Scroller whose viewport is height rows by width columns,
// starting with a single blank line — mirroring scr_new's single empty
// starting line.
func New(height, width int) *Scroller {
	return &Scroller{
		lines:  []string{""},
		height: height,
		width:  width,
	}
}

// SetContentClassifier installs an optional hook that rewrites each
// AddText payload (e.g. to add syntax-highlighting SGR sequences) before
// it is interpreted into the buffer.
func (s *Scroller) SetContentClassifier(c ContentClassifier) {
	s.classifier = c
}

// Resize changes the viewport's dimensions, mirroring scr_move (a fresh
// window at the new size; no reflow of existing lines, same as the C
// original).
func (s *Scroller) Resize(height, width int) {
	s.height, s.width = height, width
}

// Lines exposes the buffer's current content for testing and for callers
// that need to persist or search it. The returned slice must not be
// mutated.
func (s *Scroller) Lines() []string { return s.lines }

// AddText appends buf to the buffer, splitting on '\n' into additional
// lines and interpreting control characters within each segment — ported
// from scr_add/parse in the C original. AddText always ends by scrolling
// to the end of the buffer.
func (s *Scroller) AddText(buf string) {
	if s.classifier != nil {
		buf = s.classifier.Classify(buf)
	}

	rest := buf
	for {
		nl := indexRune(rest, '\n')
		var segment string
		if nl < 0 {
			segment = rest
		} else {
			segment = rest[:nl]
		}

		last := len(s.lines) - 1
		newLine, pos := interpret(s.lines[last], s.cur.Pos, segment)
		s.lines[last] = newLine
		s.cur.Pos = pos

		if nl < 0 {
			break
		}
		rest = rest[nl+1:]
		s.lines = append(s.lines, "")
		s.cur.Pos = 0
	}

	s.ScrollEnd()
}

func indexRune(s string, r rune) int {
	for i, c := range s {
		if c == r {
			return i
		}
	}
	return -1
}
