// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroller/viewport.go
// Summary: Wrap-aware viewport scrolling.
// Usage: Ported line for line from scr_up/scr_down/scr_home/scr_end in
// _examples/original_source/cgdb/scroller.c.

package scroller

// ScrollUp moves the viewport up by nlines visual rows, snapping the
// current column to a multiple of the viewport width first. It stops at
// the top of the buffer.
func (s *Scroller) ScrollUp(nlines int) {
	width := s.width
	if width <= 0 {
		return
	}
	if s.cur.Col > 0 && s.cur.Col%width != 0 {
		s.cur.Col = (s.cur.Col / width) * width
	}

	for i := 0; i < nlines; i++ {
		if s.cur.Col > 0 {
			s.cur.Col -= width
			continue
		}
		if s.cur.Row > 0 {
			s.cur.Row--
			length := visibleLength(s.lines[s.cur.Row])
			if length > width {
				s.cur.Col = ((length - 1) / width) * width
			}
		} else {
			break
		}
	}
}

// ScrollDown moves the viewport down by nlines visual rows, stopping at
// the bottom of the buffer.
func (s *Scroller) ScrollDown(nlines int) {
	width := s.width
	if width <= 0 {
		return
	}
	if s.cur.Col > 0 && s.cur.Col%width != 0 {
		s.cur.Col = (s.cur.Col / width) * width
	}

	for i := 0; i < nlines; i++ {
		length := visibleLength(s.lines[s.cur.Row])
		if s.cur.Col < length-width {
			s.cur.Col += width
			continue
		}
		if s.cur.Row < len(s.lines)-1 {
			s.cur.Row++
			s.cur.Col = 0
		} else {
			break
		}
	}
}

// ScrollHome jumps the viewport to the very first line.
func (s *Scroller) ScrollHome() {
	s.cur.Row = 0
	s.cur.Col = 0
}

// ScrollEnd jumps the viewport to the last line, with the column snapped
// to the start of its final wrapped row.
func (s *Scroller) ScrollEnd() {
	width := s.width
	s.cur.Row = len(s.lines) - 1
	if width <= 0 {
		s.cur.Col = 0
		return
	}
	s.cur.Col = 0
	if length := visibleLength(s.lines[s.cur.Row]); length > 0 {
		s.cur.Col = ((length - 1) / width) * width
	}
}
