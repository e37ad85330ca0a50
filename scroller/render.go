// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroller/render.go
// Summary: SGR-subset escape parsing and the bottom-up render pass.
// Usage: Grounded on _examples/original_source/cgdb/scroller.c
// (get_line_height, scr_refresh): a bare '[' (not ESC+'[') introduces up to
// two ';'-separated integer codes terminated by 'm'; codes 1-8 are
// attribute bits, 30-37/40-47 are plain fg/bg, 90-97/100-107 are bold
// fg/bg. Malformed sequences are printed literally, matching the C
// original falling through to plain text whenever the terminator isn't
// found.

package scroller

import (
	"strconv"
	"strings"

	"github.com/vimwm/corewm/canvas"
)

type segment struct {
	text  string
	attrs canvas.Attr
	fg    canvas.Color
	bg    canvas.Color
}

// splitSegments breaks line into runs of text, each preceded by at most
// one SGR sequence. Each run's attributes/colors start fresh at the
// defaults and are only set by that run's own leading sequence — a
// sequence never carries over into the next run, reproducing the C
// original resetting attributes/foreground/background to their defaults
// at the top of every segment, escape or not.
func splitSegments(line string) []segment {
	var segments []segment
	rest := line

	for len(rest) > 0 {
		attrs := canvas.Attr(0)
		fg, bg := canvas.ColorDefault, canvas.ColorDefault

		if rest[0] == '[' {
			if codes, consumed, ok := parseSGR(rest); ok {
				for _, code := range codes {
					applySGRCode(code, &attrs, &fg, &bg)
				}
				rest = rest[consumed:]
			}
		}

		idx := strings.IndexByte(rest, '[')
		var text string
		if idx < 0 {
			text, rest = rest, ""
		} else if idx == 0 {
			// No text before the next sequence and this chunk didn't start
			// with one either (parseSGR above would have consumed it) —
			// the '[' here didn't terminate in "m", so treat it literally.
			text, rest = rest[:1], rest[1:]
		} else {
			text, rest = rest[:idx], rest[idx:]
		}

		segments = append(segments, segment{text: text, attrs: attrs, fg: fg, bg: bg})
	}

	return segments
}

// parseSGR parses a leading "[n;n" + "m" sequence from s (s[0] == '['),
// returning the parsed codes, the number of bytes consumed, and whether a
// valid terminator was found. Up to two codes are read, matching the C
// original's fixed-size color_code[2].
func parseSGR(s string) (codes []int, consumed int, ok bool) {
	i := 1 // skip '['
	for len(codes) < 2 {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			break
		}
		n, err := strconv.Atoi(s[start:i])
		if err != nil {
			return nil, 0, false
		}
		codes = append(codes, n)
		if i < len(s) && s[i] == ';' {
			i++
			continue
		}
		break
	}
	if len(codes) == 0 {
		return nil, 0, false
	}
	if i < len(s) && s[i] == 'm' {
		return codes, i + 1, true
	}
	return nil, 0, false
}

func applySGRCode(code int, attrs *canvas.Attr, fg, bg *canvas.Color) {
	switch {
	case code >= 1 && code <= 8:
		*attrs |= canvas.Attr(1 << uint(code-1))
	case code >= 30 && code <= 37:
		*fg = canvas.Color(code % 10)
	case code >= 40 && code <= 47:
		*bg = canvas.Color(code % 10)
	case code >= 90 && code <= 97:
		*fg = canvas.Color(code % 10)
		*attrs |= canvas.AttrBold
	case code >= 100 && code <= 107:
		*bg = canvas.Color(code % 10)
		*attrs |= canvas.AttrBold
	}
}

// visibleLength returns line's length with SGR sequences stripped out, the
// quantity get_line_height's wrap math is computed against.
func visibleLength(line string) int {
	n := 0
	for _, seg := range splitSegments(line) {
		n += len([]rune(seg.text))
	}
	return n
}

// lineHeight returns the number of visual (wrapped) rows line occupies at
// the given viewport width.
func lineHeight(line string, width int) int {
	if width <= 0 {
		return 1
	}
	length := visibleLength(line)
	height := 1
	for length -= width; length > 0; length -= width {
		height++
	}
	return height
}

// pairAllocator hands out color-pair ids starting at 101 per render pass,
// reproducing scr_refresh's `int pair_no = 100;` then `init_pair(++pair_no, ...)`.
type pairAllocator struct {
	next int
	seen map[[2]canvas.Color]int
}

func newPairAllocator() *pairAllocator {
	return &pairAllocator{next: 100, seen: make(map[[2]canvas.Color]int)}
}

func (p *pairAllocator) id(fg, bg canvas.Color) int {
	key := [2]canvas.Color{fg, bg}
	if id, ok := p.seen[key]; ok {
		return id
	}
	p.next++
	p.seen[key] = p.next
	return p.next
}

// Render paints the viewport's currently visible lines into c, working
// from the bottom row upward starting at cur.Row, and shows the caret when
// focus is true and the viewport is pinned to the last line — ported from
// scr_refresh.
func (s *Scroller) Render(c canvas.Canvas, focus bool) {
	_, _, height, width := c.Bounds()
	if width <= 0 || height <= 0 {
		return
	}

	if s.cur.Col > 0 && s.cur.Col%width != 0 {
		s.cur.Col = (s.cur.Col / width) * width
	}

	pairs := newPairAllocator()
	row := s.cur.Row
	cursorCol := 0
	rowsUsed := 1

	for rowsUsed <= height {
		destRow := height - rowsUsed
		if row < 0 {
			c.MoveCursor(destRow, 0)
			c.ClearToEndOfLine()
			rowsUsed++
			continue
		}

		lh := lineHeight(s.lines[row], width)
		for clear := 0; clear < lh && height-rowsUsed-clear >= 0; clear++ {
			c.MoveCursor(height-rowsUsed-clear, 0)
			c.ClearToEndOfLine()
		}

		totalLength := s.paintLine(c, s.lines[row], height-rowsUsed, width, pairs)
		if rowsUsed == 1 {
			cursorCol = totalLength % width
		}
		row--
		rowsUsed += lh
	}

	lastLine := s.lines[len(s.lines)-1]
	remaining := 0
	if s.cur.Pos <= len([]rune(lastLine)) {
		remaining = len([]rune(lastLine)) - s.cur.Pos
	}
	if focus && s.cur.Row == len(s.lines)-1 && remaining <= width {
		c.ShowCursor(true)
		col := s.cur.Pos
		if cursorCol < col {
			col = cursorCol
		}
		c.MoveCursor(height-1, col)
	} else {
		c.ShowCursor(false)
	}

	c.Refresh()
}

// paintLine writes line's segments starting at the top row of the
// multi-row block ending at bottomRow, wrapping onto subsequent rows below
// as needed, and returns the line's total visible length.
func (s *Scroller) paintLine(c canvas.Canvas, line string, bottomRow, width int, pairs *pairAllocator) int {
	lh := lineHeight(line, width)
	row := bottomRow - (lh - 1)
	col := 0
	total := 0

	for _, seg := range splitSegments(line) {
		if seg.fg != canvas.ColorDefault || seg.bg != canvas.ColorDefault {
			id := pairs.id(seg.fg, seg.bg)
			_ = c.RegisterColorPair(id, seg.fg, seg.bg)
			c.SetColorPair(id)
		} else {
			c.SetColorPair(0)
		}
		c.SetAttributes(seg.attrs)

		for _, r := range seg.text {
			if col >= width {
				row++
				col = 0
			}
			c.MoveCursor(row, col)
			c.Print(string(r))
			col++
			total++
		}
	}
	return total
}
