// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/node.go
// Summary: Tagged-variant node type backing the split tree's arena.
// Usage: Internal to wm; Tree is the only thing that dereferences handles.
//
// Grounded on the "Design Notes" of the spec this package implements: an
// arena of nodes addressed by integer handles, rather than the C original's
// raw child->parent back-pointers (lib/wm/wm_splitter.c) or the teacher's
// *Node-pointer tree (texel/tree.go). Handles make Close's splitter-collapse
// Canvas handoff a field swap instead of a lifetime puzzle, and they let the
// public API (PaneHandle) stay numeric and comparable.

package wm

import "github.com/vimwm/corewm/canvas"

// Orientation is the axis a splitter divides its rectangle along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction is a focus-neighbor query direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Point is a cursor position in the cross-axis coordinate space used by
// FocusNeighbor to pick a descendant when the chosen sibling is itself a
// splitter.
type Point struct {
	Row, Col int
}

// handle addresses a single node (pane or splitter) in a Tree's arena.
type handle int32

const nilHandle handle = 0

// PaneHandle is the externally visible identity of a pane (leaf node). It
// shares handle's numeric space but is only ever valid for leaves.
type PaneHandle handle

// Pane describes a leaf before it is handed to a Tree. The tree itself
// allocates the pane's Canvas (a subregion of its containing splitter's
// Canvas, or the caller-supplied root Canvas for the tree's first pane) —
// see NewTree and Tree.Split. This mirrors wm_splitter_split's derwin(...,
// 1, 1, 0, 0) placeholder allocation in the C original: a freshly split pane
// starts with a 1x1 Canvas that the next layout pass immediately resizes.
type Pane struct {
	// MinSize returns the pane's minimum (height, width). If nil, the pane
	// has no minimum beyond (1, 1).
	MinSize func() (minHeight, minWidth int)
	// ShowStatusBar mirrors the Data Model's pane attribute; it carries no
	// behavior in this package (drawing a status bar is the paint
	// callback's business). The tree stores it with the pane; no Tree
	// method returns it.
	ShowStatusBar bool
	// Paint renders the pane's content into its Canvas. Called by
	// Tree.Redraw for every leaf. May be nil for a pane with no content
	// yet.
	Paint func(c canvas.Canvas)
}

func (p Pane) minSize() (int, int) {
	if p.MinSize == nil {
		return 1, 1
	}
	return p.MinSize()
}

type kind int

const (
	kindPane kind = iota
	kindSplitter
)

// node is the tagged variant backing both panes and splitters. Only the
// fields relevant to its kind are meaningful; see Data Model invariants in
// the spec for which fields pair with which kind.
type node struct {
	self   handle
	parent handle
	kind   kind

	canvas canvas.Canvas
	top, left, height, width int

	// pane fields
	pane Pane

	// splitter fields
	orientation    Orientation
	children       []handle
	separatorAttrs canvas.Attr
}

func (n *node) isPane() bool     { return n.kind == kindPane }
func (n *node) isSplitter() bool { return n.kind == kindSplitter }

// minDimension returns the node's minimum size along the given axis.
func (n *node) minDimension(t *Tree, axis Orientation) int {
	h, w := t.minSize(n)
	if axis == Horizontal {
		return h
	}
	return w
}

// dimension returns the node's current size along the given axis.
func (n *node) dimension(axis Orientation) int {
	if axis == Horizontal {
		return n.height
	}
	return n.width
}

func (n *node) setDimension(axis Orientation, v int) {
	if axis == Horizontal {
		n.height = v
	} else {
		n.width = v
	}
}

// position returns the node's current top-left coordinate along the given
// axis (top for Horizontal, left for Vertical — the axis a splitter divides
// along).
func (n *node) position(axis Orientation) int {
	if axis == Horizontal {
		return n.top
	}
	return n.left
}

func (n *node) setPosition(axis Orientation, v int) {
	if axis == Horizontal {
		n.top = v
	} else {
		n.left = v
	}
}
