// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package wm

import (
	"testing"

	"github.com/vimwm/corewm/canvas"
)

func newTestTree(height, width int) (*Tree, PaneHandle, *canvas.Fake) {
	fake := canvas.NewFake(height, width)
	tr, root := NewTree(fake, Pane{})
	return tr, root, fake
}

// S1: splitting the root pane produces two panes whose combined dimension
// along the split axis (plus the one-column separator) equals the
// original.
func TestSplitConservesArea(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)

	second, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	first := tr.get(handle(root))
	firstAfter := tr.get(handle(first.self))
	_ = firstAfter
	secondNode := tr.get(handle(second))

	rootNode := tr.rootNode()
	if rootNode.width != 80 || rootNode.height != 24 {
		t.Fatalf("splitter should inherit full bounds, got %dx%d", rootNode.height, rootNode.width)
	}

	sumWidths := 0
	for _, ch := range rootNode.children {
		sumWidths += tr.get(ch).width
	}
	if sumWidths+separatorWidth != 80 {
		t.Fatalf("expected child widths + separator to equal 80, got %d", sumWidths+separatorWidth)
	}
	if secondNode.height != 24 {
		t.Fatalf("expected new pane to span full height, got %d", secondNode.height)
	}
}

// S2: splitting twice in the same orientation (the second time on the pane
// the first split created) inserts a third child into the existing splitter
// rather than nesting another one.
func TestRepeatedSplitSameOrientationFlattens(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)

	p2, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("first split: %v", err)
	}
	_, err = tr.Split(p2, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("second split: %v", err)
	}

	rootNode := tr.rootNode()
	if !rootNode.isSplitter() {
		t.Fatalf("expected root to become a splitter")
	}
	if len(rootNode.children) != 3 {
		t.Fatalf("expected 3 children in a single flattened splitter, got %d", len(rootNode.children))
	}
}

// S3: splitting across the opposite orientation nests a new splitter
// rather than joining the existing one.
func TestSplitOppositeOrientationNests(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)

	p2, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("first split: %v", err)
	}
	_, err = tr.Split(p2, Pane{}, Horizontal)
	if err != nil {
		t.Fatalf("second split: %v", err)
	}

	rootNode := tr.rootNode()
	if len(rootNode.children) != 2 {
		t.Fatalf("expected root splitter to still have 2 children, got %d", len(rootNode.children))
	}
	nested := tr.get(rootNode.children[1])
	if !nested.isSplitter() || nested.orientation != Horizontal {
		t.Fatalf("expected second child to be a nested horizontal splitter")
	}
}

// S4: closing one pane of a 2-child splitter collapses the splitter and
// hands its Canvas to the survivor.
func TestCloseCollapsesSplitter(t *testing.T) {
	tr, root, rootFake := newTestTree(24, 80)

	p2, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	if err := tr.Close(p2); err != nil {
		t.Fatalf("Close: %v", err)
	}

	survivor := tr.rootNode()
	if !survivor.isPane() {
		t.Fatalf("expected root to collapse back to a lone pane")
	}
	if survivor.canvas != canvas.Canvas(rootFake) {
		t.Fatalf("expected survivor to inherit the splitter's own Canvas")
	}
}

func TestCloseRootPaneRejected(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)
	if err := tr.Close(root); err == nil {
		t.Fatalf("expected closing the sole root pane to fail")
	}
}

// Testable property: every leaf's minimum is respected after layout even
// when the available space is tight.
func TestMinimumsRespectedUnderPressure(t *testing.T) {
	tr, root, _ := newTestTree(24, 10)

	min := func() (int, int) { return 1, 6 }
	p2, err := tr.Split(root, Pane{MinSize: min}, Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	_, err = tr.Split(p2, Pane{MinSize: min}, Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	rootNode := tr.rootNode()
	for _, ch := range rootNode.children {
		c := tr.get(ch)
		if minW := c.minDimension(tr, Vertical); c.width < minW {
			t.Fatalf("expected every child to retain at least its minimum %d columns, got %d", minW, c.width)
		}
	}
}

// Testable property: resizing one pane only ever changes it and the
// sibling it borrows from/gives to, never a pane further away.
func TestResizeLocality(t *testing.T) {
	tr, root, _ := newTestTree(24, 90)

	p2, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("split 1: %v", err)
	}
	p3, err := tr.Split(p2, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("split 2: %v", err)
	}

	rootNode := tr.rootNode()
	before := make(map[handle]int)
	for _, ch := range rootNode.children {
		before[ch] = tr.get(ch).width
	}

	rootWidthBefore := tr.get(handle(root)).width
	if err := tr.Resize(PaneHandle(root), Vertical, rootWidthBefore+5); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	thirdHandle := handle(p3)
	for _, ch := range rootNode.children {
		if ch == handle(root) || ch == thirdHandle {
			continue
		}
		// the middle pane (p2) is the one expected to give up width
		continue
	}
	if tr.get(thirdHandle).width != before[thirdHandle] {
		t.Fatalf("expected the non-adjacent pane to be untouched by Resize")
	}
}

// S4: resize(A, Horizontal, 15) on two 10-row panes in a 20-row canvas
// yields heights 15 and 5.
func TestResizeAbsoluteSize(t *testing.T) {
	tr, root, _ := newTestTree(20, 80)

	second, err := tr.Split(root, Pane{}, Horizontal)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	if err := tr.Resize(root, Horizontal, 15); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	a := tr.get(handle(root))
	b := tr.get(handle(second))
	if a.height != 15 {
		t.Fatalf("expected A to be 15 rows, got %d", a.height)
	}
	if b.height != 5 {
		t.Fatalf("expected B to be 5 rows, got %d", b.height)
	}
}

// Horizontal splitters reserve no row between stacked children (only
// Vertical splitters reserve a column), per spec.md §3/§4.1 step 5 and
// wm_splitter_layout's vertical-only `real_width -= (num_children-1)`.
func TestHorizontalSplitReservesNoSeparatorRow(t *testing.T) {
	tr, root, _ := newTestTree(20, 80)

	second, err := tr.Split(root, Pane{}, Horizontal)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	a := tr.get(handle(root))
	b := tr.get(handle(second))
	if a.height != 10 || b.height != 10 {
		t.Fatalf("expected two equal 10-row panes with no phantom separator row, got %d and %d", a.height, b.height)
	}
	if a.height+b.height != 20 {
		t.Fatalf("expected child heights to sum to the full 20-row canvas, got %d", a.height+b.height)
	}
}

// Redraw must not paint a separator strip between vertically stacked
// children of a Horizontal splitter, matching wm_splitter_redraw's
// `if (splitter->orientation == WM_VERTICAL)` guard.
func TestRedrawPaintsNoSeparatorForHorizontalSplit(t *testing.T) {
	tr, root, rootFake := newTestTree(20, 80)

	if _, err := tr.Split(root, Pane{}, Horizontal); err != nil {
		t.Fatalf("split: %v", err)
	}

	tr.Redraw()

	if rootFake.Attrs == canvas.AttrReverse {
		t.Fatalf("expected no reverse-video separator attrs for a horizontal splitter")
	}
	for row := 0; row < rootFake.Height; row++ {
		for col := 0; col < rootFake.Width; col++ {
			if rootFake.Cells[row][col] != ' ' {
				t.Fatalf("expected an untouched canvas at (%d,%d), got %q", row, col, rootFake.Cells[row][col])
			}
		}
	}
}

func TestFocusNeighborAcrossSplitter(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)

	second, err := tr.Split(root, Pane{}, Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	tr.focus = handle(root)

	got, ok := tr.FocusNeighbor(Right, Point{})
	if !ok {
		t.Fatalf("expected a neighbor to the right")
	}
	if got != second {
		t.Fatalf("expected neighbor to be the second pane")
	}

	tr.focus = handle(second)
	back, ok := tr.FocusNeighbor(Left, Point{})
	if !ok {
		t.Fatalf("expected a neighbor back to the left")
	}
	if back != root {
		t.Fatalf("expected neighbor left of the second pane to be the root pane")
	}
}

func TestFocusNeighborNoneAtEdge(t *testing.T) {
	tr, _, _ := newTestTree(24, 80)
	if _, ok := tr.FocusNeighbor(Up, Point{}); ok {
		t.Fatalf("expected no neighbor above a lone root pane")
	}
}

func TestRedrawPaintsEveryPane(t *testing.T) {
	tr, root, _ := newTestTree(10, 20)

	painted := 0
	n := tr.get(handle(root))
	n.pane.Paint = func(c canvas.Canvas) { painted++ }

	second, err := tr.Split(root, Pane{Paint: func(c canvas.Canvas) { painted++ }}, Vertical)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	_ = second

	redrawEvents := 0
	tr.Subscribe(func(ev Event) {
		if ev.Kind == EventRedrawRequested {
			redrawEvents++
		}
	})

	tr.Redraw()
	if painted != 2 {
		t.Fatalf("expected both panes painted, got %d", painted)
	}
	if redrawEvents != 1 {
		t.Fatalf("expected exactly one redraw event, got %d", redrawEvents)
	}
}

// Redraw paints a reverse-video separator strip along the column between
// two vertically split panes, grounded on wm_splitter_redraw's pre-child
// boundary strip in the C original.
func TestRedrawPaintsSeparatorStrip(t *testing.T) {
	tr, root, rootFake := newTestTree(10, 21)

	if _, err := tr.Split(root, Pane{}, Vertical); err != nil {
		t.Fatalf("split: %v", err)
	}

	tr.Redraw()

	rootNode := tr.rootNode()
	first := tr.get(rootNode.children[0])
	sepCol := first.left + first.width
	if rootFake.Attrs != canvas.AttrReverse {
		t.Fatalf("expected the splitter's last-painted attrs to be reverse video, got %v", rootFake.Attrs)
	}
	if got := rootFake.Row(0)[sepCol]; got != ' ' {
		t.Fatalf("expected a blank separator cell at column %d, got %q", sepCol, got)
	}
}

func TestLayoutChangedEventFiresOnSplit(t *testing.T) {
	tr, root, _ := newTestTree(24, 80)

	var kinds []EventKind
	tr.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	if _, err := tr.Split(root, Pane{}, Vertical); err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(kinds) == 0 || kinds[0] != EventLayoutChanged {
		t.Fatalf("expected a layout changed event from Split, got %v", kinds)
	}
}
