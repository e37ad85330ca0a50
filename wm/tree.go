// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/tree.go
// Summary: Tree construction, split, close, and directional neighbor lookup.
// Usage: The split-tree half of the core; grounded on
// _examples/original_source/lib/wm/wm_splitter.c (wm_splitter_split,
// wm_splitter_remove, wm_splitter_get_neighbor) and the teacher's
// texel/tree.go (SplitActive / CloseActiveLeaf / findNeighbor) for the
// idiomatic Go shape of the same algorithms.

package wm

import (
	"log"

	"github.com/vimwm/corewm/canvas"
)

// Tree owns a single root (pane or splitter), the focus handle, and emits
// layout/redraw events. The zero Tree is not usable; construct one with
// NewTree.
type Tree struct {
	nodes map[handle]*node
	next  handle

	root  handle
	focus handle

	listeners []func(Event)

	// separatorAttrs is the attribute mask stamped onto every splitter
	// created from this point on, painted along its child-boundary strip
	// by Redraw. Defaults to reverse video, matching wm_splitter_redraw's
	// hardcoded A_REVERSE strip in the C original.
	separatorAttrs canvas.Attr
}

// SetSeparatorStyle changes the attribute mask used for splitter
// separator strips created by future Split calls; existing splitters in
// the tree are unaffected. The default is canvas.AttrReverse.
func (t *Tree) SetSeparatorStyle(attrs canvas.Attr) {
	t.separatorAttrs = attrs
}

// NewTree establishes a tree whose root is a single pane attached to
// rootCanvas. Focus starts on that pane.
func NewTree(rootCanvas canvas.Canvas, root Pane) (*Tree, PaneHandle) {
	t := &Tree{nodes: make(map[handle]*node), separatorAttrs: canvas.AttrReverse}
	h := t.alloc()
	n := &node{self: h, parent: nilHandle, kind: kindPane, canvas: rootCanvas, pane: root}
	top, left, height, width := rootCanvas.Bounds()
	n.top, n.left, n.height, n.width = top, left, height, width
	t.nodes[h] = n
	t.root = h
	t.focus = h
	return t, PaneHandle(h)
}

func (t *Tree) alloc() handle {
	t.next++
	return t.next
}

func (t *Tree) get(h handle) *node {
	if h == nilHandle {
		return nil
	}
	return t.nodes[h]
}

// Focus returns the currently focused pane.
func (t *Tree) Focus() PaneHandle { return PaneHandle(t.focus) }

// rootNode returns the tree's root node. It is a pane until the first
// split, and again once closes have collapsed the tree to a single pane.
func (t *Tree) rootNode() *node { return t.get(t.root) }

// minSize is the pure function of the variant the Design Notes call for:
// a pane's minimum size is its policy function (default (1,1)); a
// splitter's is the sum of children along its axis and the max across it,
// exactly wm_splitter_minimum_size in the C original.
func (t *Tree) minSize(n *node) (height, width int) {
	if n.isPane() {
		return n.pane.minSize()
	}
	for _, ch := range n.children {
		c := t.get(ch)
		ch_h, ch_w := t.minSize(c)
		if n.orientation == Horizontal {
			height += ch_h
			if ch_w > width {
				width = ch_w
			}
		} else {
			width += ch_w
			if ch_h > height {
				height = ch_h
			}
		}
	}
	return height, width
}

// findChildIndex returns the index of child within parent.children, or -1.
func findChildIndex(parent *node, child handle) int {
	for i, c := range parent.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Split inserts newPane adjacent to target, per §4.1. orientation chooses
// the axis of the (possibly newly created) splitter that ends up
// containing both panes.
func (t *Tree) Split(target PaneHandle, newPane Pane, orientation Orientation) (PaneHandle, error) {
	targetNode := t.get(handle(target))
	if targetNode == nil || !targetNode.isPane() {
		return 0, newError(NotFound, "split", nil)
	}

	parent := t.get(targetNode.parent)

	switch {
	case parent == nil:
		return t.splitAtRoot(targetNode, newPane, orientation)
	case parent.orientation == orientation:
		return t.splitIntoSplitter(parent, targetNode, newPane, orientation)
	default:
		return t.splitAcrossOrientation(parent, targetNode, newPane, orientation)
	}
}

// splitAtRoot promotes a new splitter to root when target has no
// containing splitter yet.
func (t *Tree) splitAtRoot(targetNode *node, newPane Pane, orientation Orientation) (PaneHandle, error) {
	splitterCanvas := targetNode.canvas

	subCanvas, err := splitterCanvas.NewSubregion(0, 0, targetNode.height, targetNode.width)
	if err != nil {
		return 0, newError(Fatal, "split", err)
	}

	sh := t.alloc()
	splitter := &node{
		self: sh, parent: nilHandle, kind: kindSplitter,
		canvas: splitterCanvas, orientation: orientation,
		top: targetNode.top, left: targetNode.left, height: targetNode.height, width: targetNode.width,
		separatorAttrs: t.separatorAttrs,
	}
	t.nodes[sh] = splitter

	targetNode.parent = sh
	targetNode.canvas = subCanvas

	newHandle, err := t.newLeaf(sh, newPane)
	if err != nil {
		return 0, err
	}

	splitter.children = append(make([]handle, 0, 4), targetNode.self, newHandle)
	t.root = sh

	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(sh)
	log.Printf("wm: split root pane into %s splitter", orientation)
	return PaneHandle(newHandle), nil
}

// newLeaf creates a fresh pane under parent with a 1x1 placeholder Canvas,
// matching wm_splitter_split's derwin(..., 1, 1, 0, 0).
func (t *Tree) newLeaf(parent handle, p Pane) (handle, error) {
	parentNode := t.get(parent)
	c, err := parentNode.canvas.NewSubregion(0, 0, 1, 1)
	if err != nil {
		return nilHandle, newError(Fatal, "split", err)
	}
	h := t.alloc()
	t.nodes[h] = &node{self: h, parent: parent, kind: kindPane, canvas: c, pane: p, height: 1, width: 1}
	return h, nil
}

// splitIntoSplitter inserts newPane into parent's child list immediately
// after target, when orientations already agree.
func (t *Tree) splitIntoSplitter(parent, targetNode *node, newPane Pane, orientation Orientation) (PaneHandle, error) {
	idx := findChildIndex(parent, targetNode.self)
	if idx < 0 {
		return 0, newError(NotFound, "split", nil)
	}

	newHandle, err := t.newLeaf(parent.self, newPane)
	if err != nil {
		return 0, err
	}
	parent.children = insertAt(parent.children, idx+1, newHandle)

	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(parent.self)
	return PaneHandle(newHandle), nil
}

// splitAcrossOrientation wraps target in a fresh intermediate splitter of
// the requested orientation, replacing target's slot in parent.
func (t *Tree) splitAcrossOrientation(parent, targetNode *node, newPane Pane, orientation Orientation) (PaneHandle, error) {
	idx := findChildIndex(parent, targetNode.self)
	if idx < 0 {
		return 0, newError(NotFound, "split", nil)
	}

	// The intermediate splitter takes over target's existing Canvas
	// (already correctly parented under parent's Canvas); target gets a
	// fresh subregion of it, same as a first-time split at the root.
	splitterCanvas := targetNode.canvas
	subCanvas, err := splitterCanvas.NewSubregion(0, 0, targetNode.height, targetNode.width)
	if err != nil {
		return 0, newError(Fatal, "split", err)
	}

	sh := t.alloc()
	splitter := &node{
		self: sh, parent: parent.self, kind: kindSplitter,
		canvas: splitterCanvas, orientation: orientation,
		top: targetNode.top, left: targetNode.left, height: targetNode.height, width: targetNode.width,
		separatorAttrs: t.separatorAttrs,
	}
	t.nodes[sh] = splitter

	targetNode.parent = sh
	targetNode.canvas = subCanvas

	newHandle, err := t.newLeaf(sh, newPane)
	if err != nil {
		return 0, err
	}
	splitter.children = append(make([]handle, 0, 4), targetNode.self, newHandle)

	parent.children[idx] = sh

	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(parent.self)
	return PaneHandle(newHandle), nil
}

func insertAt(s []handle, idx int, h handle) []handle {
	s = append(s, nilHandle)
	copy(s[idx+1:], s[idx:])
	s[idx] = h
	return s
}

// Close removes pane from its containing splitter, collapsing the splitter
// if it would otherwise drop below two children. The root pane cannot be
// closed.
func (t *Tree) Close(pane PaneHandle) error {
	leaf := t.get(handle(pane))
	if leaf == nil || !leaf.isPane() {
		return newError(NotFound, "close", nil)
	}
	parent := t.get(leaf.parent)
	if parent == nil {
		return newError(InvalidArgument, "close", nil)
	}

	idx := findChildIndex(parent, leaf.self)
	if idx < 0 {
		return newError(NotFound, "close", nil)
	}

	wasFocused := t.focus == leaf.self
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	delete(t.nodes, leaf.self)

	if len(parent.children) >= 2 {
		if wasFocused {
			newIdx := idx
			if newIdx >= len(parent.children) {
				newIdx = len(parent.children) - 1
			}
			t.focus = t.firstLeaf(parent.children[newIdx])
		}
		t.emit(Event{Kind: EventLayoutChanged})
		t.layoutFrom(parent.self)
		return nil
	}

	// Collapse: parent now has exactly one child.
	return t.collapse(parent, wasFocused)
}

func (t *Tree) collapse(parent *node, focusWasInSubtree bool) error {
	child := t.get(parent.children[0])
	grandparent := t.get(parent.parent)

	// The child adopts parent's Canvas outright; parent's own Canvas must
	// not be destroyed, only handed over (Design Notes: transfer_canvas).
	child.canvas = parent.canvas
	child.top, child.left, child.height, child.width = parent.top, parent.left, parent.height, parent.width
	child.parent = parent.parent

	if grandparent == nil {
		t.root = child.self
	} else {
		idx := findChildIndex(grandparent, parent.self)
		if idx < 0 {
			return newError(NotFound, "close", nil)
		}
		grandparent.children[idx] = child.self
	}
	delete(t.nodes, parent.self)

	if focusWasInSubtree {
		t.focus = t.firstLeaf(child.self)
	}

	survivor := child.self
	if grandparent != nil {
		survivor = grandparent.self
	}
	t.emit(Event{Kind: EventLayoutChanged})
	t.layoutFrom(survivor)
	return nil
}

// firstLeaf descends to the first pane reachable from h.
func (t *Tree) firstLeaf(h handle) handle {
	n := t.get(h)
	for n.isSplitter() {
		n = t.get(n.children[0])
	}
	return n.self
}

// FocusNeighbor walks up from the focused pane to the nearest ancestor
// splitter aligned with dir, then descends into the adjacent sibling,
// using cursorPos to pick a leaf if that sibling is itself a splitter.
func (t *Tree) FocusNeighbor(dir Direction, cursorPos Point) (PaneHandle, bool) {
	h := t.findNeighbor(t.focus, dir, cursorPos)
	if h == nilHandle {
		return 0, false
	}
	return PaneHandle(h), true
}

func alignedWith(o Orientation, dir Direction) bool {
	switch dir {
	case Up, Down:
		return o == Horizontal
	default:
		return o == Vertical
	}
}

func (t *Tree) findNeighbor(from handle, dir Direction, cursorPos Point) handle {
	cur := from
	for {
		n := t.get(cur)
		parent := t.get(n.parent)
		if parent == nil {
			return nilHandle
		}
		if !alignedWith(parent.orientation, dir) {
			cur = parent.self
			continue
		}

		idx := findChildIndex(parent, cur)
		var sibling handle
		switch dir {
		case Up, Left:
			if idx > 0 {
				sibling = parent.children[idx-1]
			}
		case Down, Right:
			if idx+1 < len(parent.children) {
				sibling = parent.children[idx+1]
			}
		}
		if sibling == nilHandle {
			cur = parent.self
			continue
		}
		return t.leafAt(sibling, cursorPos)
	}
}

// leafAt descends into h, which may be a splitter, choosing the child whose
// rectangle contains cursorPos along the cross axis. If cursorPos falls
// outside every child's range it snaps to the first child when below the
// range, the last when above — ported from wm_splitter_find_window_at in
// the C original (lib/wm/wm_splitter.c), which spec.md's §4.1 describes
// but leaves the boundary rule to this file to pin down.
func (t *Tree) leafAt(h handle, cursorPos Point) handle {
	n := t.get(h)
	for n.isSplitter() {
		var chosen handle
		for i, ch := range n.children {
			c := t.get(ch)
			var value, lo, hi int
			if n.orientation == Horizontal {
				value, lo, hi = cursorPos.Row, c.top, c.top+c.height
			} else {
				value, lo, hi = cursorPos.Col, c.left, c.left+c.width
			}
			atStart := i == 0 && value < lo
			atEnd := i == len(n.children)-1 && value >= hi
			if (value >= lo && value < hi) || atStart || atEnd {
				chosen = ch
				break
			}
		}
		if chosen == nilHandle {
			chosen = n.children[0]
		}
		n = t.get(chosen)
	}
	return n.self
}

// Traverse calls fn for every pane in the tree, in left-to-right leaf
// order.
func (t *Tree) Traverse(fn func(PaneHandle)) {
	t.traverse(t.root, fn)
}

func (t *Tree) traverse(h handle, fn func(PaneHandle)) {
	n := t.get(h)
	if n == nil {
		return
	}
	if n.isPane() {
		fn(PaneHandle(h))
		return
	}
	for _, ch := range n.children {
		t.traverse(ch, fn)
	}
}
