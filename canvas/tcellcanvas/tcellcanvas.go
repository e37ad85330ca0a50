// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: canvas/tcellcanvas/tcellcanvas.go
// Summary: tcell.Screen-backed Canvas adapter.
// Usage: Used by cmd/corewm-demo to drive a real terminal; grounded on
// texel/driver_tcell.go's screen-wrapping idiom and texel/pane.go's
// Cell{Ch, Style} rendering from the teacher repo.

package tcellcanvas

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/vimwm/corewm/canvas"
)

// Canvas adapts a region of a shared tcell.Screen to the canvas.Canvas
// interface. Every subregion shares the same underlying screen and a single
// color-pair registry, mirroring how curses subwindows (derwin) share one
// physical terminal in the original cgdb window manager.
type Canvas struct {
	screen tcell.Screen
	pairs  *pairRegistry

	top, left, height, width int
	cursorRow, cursorCol     int
	attrs                    canvas.Attr
	pairID                   int
}

type pairRegistry struct {
	mu    sync.Mutex
	pairs map[int][2]canvas.Color
}

// New wraps the given tcell.Screen as the root Canvas spanning its full
// current size.
func New(screen tcell.Screen) *Canvas {
	w, h := screen.Size()
	return &Canvas{
		screen: screen,
		pairs:  &pairRegistry{pairs: make(map[int][2]canvas.Color)},
		height: h,
		width:  w,
	}
}

func (c *Canvas) NewSubregion(top, left, height, width int) (canvas.Canvas, error) {
	child := &Canvas{
		screen: c.screen,
		pairs:  c.pairs,
		top:    c.top + top,
		left:   c.left + left,
		height: height,
		width:  width,
	}
	return child, nil
}

func (c *Canvas) Resize(height, width int) error {
	c.height, c.width = height, width
	return nil
}

func (c *Canvas) MoveTo(top, left int) error {
	c.top, c.left = top, left
	return nil
}

func (c *Canvas) Bounds() (top, left, height, width int) {
	return c.top, c.left, c.height, c.width
}

func (c *Canvas) Erase() {
	style := c.style()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.screen.SetContent(c.left+x, c.top+y, ' ', nil, style)
		}
	}
}

func (c *Canvas) ClearToEndOfLine() {
	if c.cursorRow < 0 || c.cursorRow >= c.height {
		return
	}
	style := c.style()
	for x := c.cursorCol; x < c.width; x++ {
		c.screen.SetContent(c.left+x, c.top+c.cursorRow, ' ', nil, style)
	}
}

func (c *Canvas) Refresh() {
	c.screen.Show()
}

func (c *Canvas) MoveCursor(row, col int) {
	c.cursorRow, c.cursorCol = row, col
}

func (c *Canvas) Print(text string) {
	if c.cursorRow < 0 || c.cursorRow >= c.height {
		return
	}
	style := c.style()
	col := c.cursorCol
	for _, r := range text {
		if col >= 0 && col < c.width {
			c.screen.SetContent(c.left+col, c.top+c.cursorRow, r, nil, style)
		}
		col++
	}
	c.cursorCol = col
}

func (c *Canvas) SetAttributes(mask canvas.Attr) { c.attrs = mask }
func (c *Canvas) SetColorPair(id int)            { c.pairID = id }

func (c *Canvas) RegisterColorPair(id int, fg, bg canvas.Color) error {
	c.pairs.mu.Lock()
	defer c.pairs.mu.Unlock()
	c.pairs.pairs[id] = [2]canvas.Color{fg, bg}
	return nil
}

func (c *Canvas) ShowCursor(show bool) {
	if show {
		c.screen.ShowCursor(c.left+c.cursorCol, c.top+c.cursorRow)
	} else {
		c.screen.HideCursor()
	}
}

func (c *Canvas) style() tcell.Style {
	c.pairs.mu.Lock()
	pair, ok := c.pairs.pairs[c.pairID]
	c.pairs.mu.Unlock()

	style := tcell.StyleDefault
	if ok {
		style = style.Foreground(tcellColor(pair[0])).Background(tcellColor(pair[1]))
	}
	if c.attrs&canvas.AttrBold != 0 {
		style = style.Bold(true)
	}
	if c.attrs&canvas.AttrDim != 0 {
		style = style.Dim(true)
	}
	if c.attrs&canvas.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if c.attrs&canvas.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if c.attrs&canvas.AttrBlink != 0 || c.attrs&canvas.AttrFastBlink != 0 {
		style = style.Blink(true)
	}
	if c.attrs&canvas.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func tcellColor(c canvas.Color) tcell.Color {
	if c == canvas.ColorDefault {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}
