// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/layout.go
// Summary: Proportional layout and the resize-borrow algorithm.
// Usage: Grounded on _examples/original_source/lib/wm/wm_splitter.c,
// specifically wm_splitter_layout (proportion-from-current-dimensions,
// redistribute-on-violation) and wm_splitter_resize_window (borrow from
// successors then predecessors). The teacher (texel/tree.go) instead
// persists a SplitRatios field; DESIGN.md's Open Question decisions record
// the decision to follow the C original here, since deriving proportions from current
// dimensions needs no extra state to keep in sync across resizes.

package wm

// layoutFrom recomputes size and position for every node in the subtree
// rooted at h, using h's own current top/left/height/width as the
// allotment. It emits no event itself; Split, Close and Resize each emit a
// single EventLayoutChanged for the whole tree (Pane left at 0) before
// calling it, not one per affected pane.
func (t *Tree) layoutFrom(h handle) {
	n := t.get(h)
	if n == nil {
		return
	}
	if n.isSplitter() {
		t.layoutSplitter(n)
	} else if n.canvas != nil {
		t.resizeCanvas(n)
	}
}

// resizeCanvas pushes a node's top/left/height/width down into its Canvas.
func (t *Tree) resizeCanvas(n *node) {
	if n.canvas == nil {
		return
	}
	_ = n.canvas.MoveTo(n.top, n.left)
	_ = n.canvas.Resize(n.height, n.width)
}

// separatorWidth is the number of columns reserved between adjacent
// children of a Vertical splitter to draw a divider. Horizontal splitters
// reserve nothing: wm_splitter_layout only subtracts `(num_children-1)`
// from `real_width` in its vertical branch, leaving `real_height` for a
// horizontal splitter's children untouched, and wm_splitter_redraw only
// draws the separator/status-bar strip `if (splitter->orientation ==
// WM_VERTICAL)` — see spec.md §3 and §4.1 step 5.
const separatorWidth = 1

// separatorReserve returns how much of a splitter's own dimension along
// axis is consumed by inter-child separators: separatorWidth per internal
// boundary for a Vertical splitter, none for Horizontal.
func separatorReserve(axis Orientation, count int) int {
	if axis != Vertical {
		return 0
	}
	return separatorWidth * (count - 1)
}

func (t *Tree) layoutSplitter(n *node) {
	t.resizeCanvas(n)

	axis := n.orientation
	count := len(n.children)
	if count == 0 {
		return
	}

	total := n.dimension(axis)
	available := total - separatorReserve(axis, count)
	if available < 0 {
		available = 0
	}

	mins := make([]int, count)
	currentDims := make([]int, count)
	currentTotal := 0
	needsEqual := false
	for i, ch := range n.children {
		c := t.get(ch)
		mins[i] = c.minDimension(t, axis)
		currentDims[i] = c.dimension(axis)
		currentTotal += currentDims[i]
		// A freshly split-in child still carries its 1x1 placeholder size;
		// treat that as "never laid out" and fall back to equal split,
		// matching wm_splitter_layout's behavior the first time a new pane
		// joins a splitter.
		if c.height == 1 && c.width == 1 {
			needsEqual = true
		}
	}

	// spec.md §4.1 step 2's literal per-child trigger:
	// proportion[i] * available < min_dim(child[i]). Checked as
	// currentDims[i]*available < mins[i]*currentTotal to stay in integers
	// (currentTotal > 0 is guaranteed by the guard below).
	if !needsEqual && currentTotal > 0 {
		for i := range mins {
			if currentDims[i]*available < mins[i]*currentTotal {
				needsEqual = true
				break
			}
		}
	}

	var sizes []int
	if needsEqual || currentTotal == 0 {
		sizes = distributeEqually(available, count, mins)
	} else {
		sizes = distributeProportionally(available, count, currentTotal, mins, func(i int) int {
			return currentDims[i]
		})
	}

	gap := 0
	if axis == Vertical {
		gap = separatorWidth
	}

	pos := n.position(axis)
	for i, ch := range n.children {
		c := t.get(ch)
		c.setPosition(axis, pos)
		c.setDimension(axis, sizes[i])

		// The cross axis always spans the splitter's full cross dimension.
		crossAxis := Vertical
		if axis == Vertical {
			crossAxis = Horizontal
		}
		c.setPosition(crossAxis, n.position(crossAxis))
		c.setDimension(crossAxis, n.dimension(crossAxis))

		t.layoutFrom(ch)
		pos += sizes[i] + gap
	}
}

// distributeEqually splits available as evenly as possible across count
// slots honoring each slot's minimum, handing any remainder from integer
// division to the earliest slots (matching wm_splitter_layout's remainder
// loop in the C original).
func distributeEqually(available, count int, mins []int) []int {
	sizes := make([]int, count)
	base := available / count
	remainder := available % count
	for i := range sizes {
		sizes[i] = base
		if i < remainder {
			sizes[i]++
		}
		if sizes[i] < mins[i] {
			sizes[i] = mins[i]
		}
	}
	return sizes
}

// distributeProportionally scales each slot's current dimension to fill
// available (floor(proportion[i] * available), per spec.md §4.1 step 3),
// then distributes the rounding remainder per step 4: first topping up any
// slot still below its minimum (in order), then handing whatever is left
// to the last slot. The caller only reaches this function when the
// per-child trigger in layoutSplitter has already established that every
// floored share is at or above its minimum, so the first pass is normally
// a no-op; it is kept to honor step 4's literal wording.
func distributeProportionally(available, count, currentTotal int, mins []int, current func(int) int) []int {
	sizes := make([]int, count)
	assigned := 0
	for i := 0; i < count; i++ {
		share := available * current(i) / currentTotal
		sizes[i] = share
		assigned += share
	}

	remainder := available - assigned
	for i := 0; remainder > 0 && i < count; i++ {
		if sizes[i] < mins[i] {
			need := mins[i] - sizes[i]
			if need > remainder {
				need = remainder
			}
			sizes[i] += need
			remainder -= need
		}
	}
	if remainder > 0 {
		sizes[count-1] += remainder
	}
	return sizes
}

// Resize changes target's size along axis to newSize, clamped to
// [minDimension(target), max], where max is the splitter's dimension minus
// every sibling's minimum (minus separators for Vertical splitters) — §4.1
// step 1. The resulting delta borrows from siblings: successors first (in
// order), then predecessors (in reverse), each contributing min(remaining
// need, sibling's slack above its minimum). Shrinking target instead grows
// the next sibling if one exists, else the previous one — ported from
// wm_splitter_resize_window. A single-child splitter is a no-op success
// per the Open Question decision in SPEC_FULL.md §5.
func (t *Tree) Resize(pane PaneHandle, axis Orientation, newSize int) error {
	n := t.get(handle(pane))
	if n == nil || !n.isPane() {
		return newError(NotFound, "resize", nil)
	}
	parent := t.get(n.parent)
	if parent == nil || parent.orientation != axis {
		return newError(InvalidArgument, "resize", nil)
	}

	idx := findChildIndex(parent, n.self)
	if idx < 0 {
		return newError(NotFound, "resize", nil)
	}
	if len(parent.children) < 2 {
		return nil
	}

	minSelf := n.minDimension(t, axis)
	siblingMinSum := 0
	for i, ch := range parent.children {
		if i == idx {
			continue
		}
		siblingMinSum += t.get(ch).minDimension(t, axis)
	}
	separators := separatorReserve(axis, len(parent.children))
	max := parent.dimension(axis) - siblingMinSum - separators
	if max < minSelf {
		max = minSelf
	}

	clamped := newSize
	if clamped < minSelf {
		clamped = minSelf
	}
	if clamped > max {
		clamped = max
	}

	delta := clamped - n.dimension(axis)
	if delta == 0 {
		return nil
	}
	if delta < 0 {
		return t.shrink(parent, idx, axis, -delta)
	}
	return t.grow(parent, idx, axis, delta)
}

func (t *Tree) shrink(parent *node, idx int, axis Orientation, amount int) error {
	self := t.get(parent.children[idx])
	minSelf := self.minDimension(t, axis)
	room := self.dimension(axis) - minSelf
	if amount > room {
		amount = room
	}
	if amount <= 0 {
		return nil
	}

	var beneficiary *node
	if idx+1 < len(parent.children) {
		beneficiary = t.get(parent.children[idx+1])
	} else if idx > 0 {
		beneficiary = t.get(parent.children[idx-1])
	} else {
		return newError(InvalidArgument, "resize", nil)
	}

	self.setDimension(axis, self.dimension(axis)-amount)
	beneficiary.setDimension(axis, beneficiary.dimension(axis)+amount)

	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(parent.self)
	return nil
}

func (t *Tree) grow(parent *node, idx int, axis Orientation, amount int) error {
	need := amount
	borrowed := 0

	for i := idx + 1; i < len(parent.children) && need > 0; i++ {
		need -= t.borrowFrom(parent.children[i], axis, need)
	}
	for i := idx - 1; i >= 0 && need > 0; i-- {
		need -= t.borrowFrom(parent.children[i], axis, need)
	}
	borrowed = amount - need

	if borrowed <= 0 {
		return nil
	}
	self := t.get(parent.children[idx])
	self.setDimension(axis, self.dimension(axis)+borrowed)

	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(parent.self)
	return nil
}

// borrowFrom takes min(need, sibling's slack above its minimum) from
// sibling h, shrinks it by that amount, and returns the amount taken.
func (t *Tree) borrowFrom(h handle, axis Orientation, need int) int {
	sib := t.get(h)
	slack := sib.dimension(axis) - sib.minDimension(t, axis)
	if slack <= 0 {
		return 0
	}
	take := need
	if take > slack {
		take = slack
	}
	sib.setDimension(axis, sib.dimension(axis)-take)
	return take
}

// Redraw paints every splitter's separator strip, then every pane's
// current content, into their Canvases, and emits EventRedrawRequested
// once for the whole tree. Separators are painted first so pane content
// always draws on top of, never underneath, the one-column boundary strip
// layoutSplitter reserves between children of a Vertical splitter.
func (t *Tree) Redraw() {
	t.paintSeparators(t.root)
	t.Traverse(func(p PaneHandle) {
		n := t.get(handle(p))
		if n.pane.Paint != nil && n.canvas != nil {
			n.pane.Paint(n.canvas)
		}
	})
	t.emit(Event{Kind: EventRedrawRequested})
}

// paintSeparators walks the subtree rooted at h, painting each splitter's
// child-boundary strip into its own Canvas before recursing into its
// children — ported from wm_splitter_redraw's pre-child separator pass in
// the C original (lib/wm/wm_splitter.c), since curses subwindows cannot
// paint outside their own rectangle and the gap between children belongs
// to the splitter, not to either neighbor.
func (t *Tree) paintSeparators(h handle) {
	n := t.get(h)
	if n == nil || !n.isSplitter() {
		return
	}
	t.paintSplitterSeparator(n)
	for _, ch := range n.children {
		t.paintSeparators(ch)
	}
}

// paintSplitterSeparator draws a canvas.AttrReverse-by-default strip (or
// whatever Tree.SetSeparatorStyle last set) along each column boundary
// between adjacent children of a Vertical splitter, in n's own Canvas
// using coordinates local to n (n's own top/left is the origin children's
// top/left are expressed against). Horizontal splitters reserve no
// separator (see separatorReserve) and paint nothing here, matching
// wm_splitter_redraw's `if (splitter->orientation == WM_VERTICAL)` guard
// in the C original.
func (t *Tree) paintSplitterSeparator(n *node) {
	if n.canvas == nil || n.orientation != Vertical || len(n.children) < 2 {
		return
	}
	n.canvas.SetAttributes(n.separatorAttrs)
	n.canvas.SetColorPair(0)

	for i := 0; i < len(n.children)-1; i++ {
		c := t.get(n.children[i])
		col := c.left - n.left + c.width
		if col < 0 || col >= n.width {
			continue
		}
		for row := 0; row < n.height; row++ {
			n.canvas.MoveCursor(row, col)
			n.canvas.Print(" ")
		}
	}
}
