// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: canvas/fake.go
// Summary: In-memory Canvas implementation used by wm and scroller tests.

package canvas

// Fake is a Canvas backed by a plain cell grid, with no terminal behind it.
// It records everything a real adapter would otherwise need a live screen
// to show, which is what lets wm and scroller tests assert on placement,
// resize, and rendered text without a tcell.Screen.
type Fake struct {
	Top, Left, Height, Width int

	Cells     [][]rune
	Attrs     Attr
	Pair      int
	Pairs     map[int][2]Color
	CursorRow, CursorCol int
	CursorVisible bool

	EraseCount   int
	RefreshCount int

	parent   *Fake
	children []*Fake
}

// NewFake creates a root Fake canvas of the given size at the origin.
func NewFake(height, width int) *Fake {
	f := &Fake{Height: height, Width: width, Pairs: make(map[int][2]Color)}
	f.alloc()
	return f
}

func (f *Fake) alloc() {
	f.Cells = make([][]rune, f.Height)
	for i := range f.Cells {
		row := make([]rune, f.Width)
		for j := range row {
			row[j] = ' '
		}
		f.Cells[i] = row
	}
}

func (f *Fake) NewSubregion(top, left, height, width int) (Canvas, error) {
	child := &Fake{
		Top: f.Top + top, Left: f.Left + left,
		Height: height, Width: width,
		Pairs:  make(map[int][2]Color),
		parent: f,
	}
	child.alloc()
	f.children = append(f.children, child)
	return child, nil
}

func (f *Fake) Resize(height, width int) error {
	f.Height, f.Width = height, width
	f.alloc()
	return nil
}

func (f *Fake) MoveTo(top, left int) error {
	if f.parent != nil {
		f.Top, f.Left = f.parent.Top+top, f.parent.Left+left
	} else {
		f.Top, f.Left = top, left
	}
	return nil
}

func (f *Fake) Bounds() (top, left, height, width int) {
	return f.Top, f.Left, f.Height, f.Width
}

func (f *Fake) Erase() {
	f.EraseCount++
	for i := range f.Cells {
		for j := range f.Cells[i] {
			f.Cells[i][j] = ' '
		}
	}
}

func (f *Fake) ClearToEndOfLine() {
	if f.CursorRow < 0 || f.CursorRow >= f.Height {
		return
	}
	row := f.Cells[f.CursorRow]
	for j := f.CursorCol; j < len(row); j++ {
		row[j] = ' '
	}
}

func (f *Fake) Refresh() { f.RefreshCount++ }

func (f *Fake) MoveCursor(row, col int) {
	f.CursorRow, f.CursorCol = row, col
}

func (f *Fake) Print(text string) {
	if f.CursorRow < 0 || f.CursorRow >= f.Height {
		return
	}
	row := f.Cells[f.CursorRow]
	for _, r := range text {
		if f.CursorCol < 0 || f.CursorCol >= len(row) {
			f.CursorCol++
			continue
		}
		row[f.CursorCol] = r
		f.CursorCol++
	}
}

func (f *Fake) SetAttributes(mask Attr) { f.Attrs = mask }
func (f *Fake) SetColorPair(id int)     { f.Pair = id }

func (f *Fake) RegisterColorPair(id int, fg, bg Color) error {
	f.Pairs[id] = [2]Color{fg, bg}
	return nil
}

func (f *Fake) ShowCursor(show bool) { f.CursorVisible = show }

// Row renders a row of the Fake's grid as a plain string, including its
// trailing blank cells; an out-of-range row yields "". Test helper only.
func (f *Fake) Row(i int) string {
	if i < 0 || i >= len(f.Cells) {
		return ""
	}
	return string(f.Cells[i])
}
