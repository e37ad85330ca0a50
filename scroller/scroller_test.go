// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroller

import (
	"strings"
	"testing"

	"github.com/vimwm/corewm/canvas"
)

func TestAddTextSplitsOnNewline(t *testing.T) {
	s := New(5, 20)
	s.AddText("hello\nworld")

	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "hello" || lines[1] != "world" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestAddTextBackspace(t *testing.T) {
	s := New(5, 20)
	s.AddText("hello\x08\x08world")

	lines := s.Lines()
	if lines[0] != "helworld" {
		t.Fatalf("expected backspaces to erase, got %q", lines[0])
	}
}

func TestAddTextTabExpandsToNextStop(t *testing.T) {
	s := New(5, 20)
	s.AddText("a\tb")

	want := "a" + strings.Repeat(" ", 7) + "b"
	if lines := s.Lines(); lines[0] != want {
		t.Fatalf("expected tab to expand to column 8, got %q want %q", lines[0], want)
	}
}

func TestAddTextCarriageReturnResetsCaret(t *testing.T) {
	s := New(5, 20)
	s.AddText("hello\rHi")

	if lines := s.Lines(); lines[0] != "Hillo" {
		t.Fatalf("expected CR to move caret to column 0, got %q", lines[0])
	}
}

// The caret persists across AddText calls instead of resetting to the end
// of the line, matching cgdb's parse() resuming from scr->current.pos: a
// backspace sequence that stops short of the line's end leaves the caret
// there, so a later call overwrites mid-line rather than appending.
func TestAddTextCaretPersistsAcrossCalls(t *testing.T) {
	s := New(5, 20)
	s.AddText("hello")
	s.AddText("\b\b\bXYZ\b\b")

	if got := s.Lines()[0]; got != "heXYZ" {
		t.Fatalf("expected %q after the backspace/overwrite sequence, got %q", "heXYZ", got)
	}
	if s.cur.Pos != 3 {
		t.Fatalf("expected caret to persist at 3, got %d", s.cur.Pos)
	}

	s.AddText("Q")
	if got := s.Lines()[0]; got != "heXQZ" {
		t.Fatalf("expected the third call to overwrite at the persisted caret, got %q want %q", got, "heXQZ")
	}
}

// Testable property: appending across calls is equivalent to appending the
// concatenation in one call (idempotence of chunking).
func TestAddTextIdempotentAcrossChunking(t *testing.T) {
	a := New(5, 20)
	a.AddText("hello world\nsecond line")

	b := New(5, 20)
	b.AddText("hello ")
	b.AddText("world\nsecond ")
	b.AddText("line")

	if strings.Join(a.Lines(), "\n") != strings.Join(b.Lines(), "\n") {
		t.Fatalf("chunked append diverged: %v vs %v", a.Lines(), b.Lines())
	}
}

func TestScrollHomeAndEnd(t *testing.T) {
	s := New(3, 10)
	s.AddText("one\ntwo\nthree")

	s.ScrollHome()
	if s.cur.Row != 0 {
		t.Fatalf("expected ScrollHome to land on row 0, got %d", s.cur.Row)
	}

	s.ScrollEnd()
	if s.cur.Row != len(s.lines)-1 {
		t.Fatalf("expected ScrollEnd to land on the last row")
	}
}

func TestScrollUpThenDownReturnsToStart(t *testing.T) {
	s := New(3, 10)
	for i := 0; i < 10; i++ {
		s.AddText("line\n")
	}
	s.ScrollEnd()
	startRow := s.cur.Row

	s.ScrollUp(3)
	s.ScrollDown(3)

	if s.cur.Row != startRow {
		t.Fatalf("expected scroll up/down to be reversible, got row %d want %d", s.cur.Row, startRow)
	}
}

// Testable property: Render does not mutate the buffer.
func TestRenderDoesNotMutateBuffer(t *testing.T) {
	s := New(4, 10)
	s.AddText("alpha\nbeta\ngamma")
	before := append([]string(nil), s.Lines()...)

	fake := canvas.NewFake(4, 10)
	s.Render(fake, true)

	after := s.Lines()
	if len(before) != len(after) {
		t.Fatalf("line count changed after render")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("line %d mutated by render: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestRenderPaintsVisibleText(t *testing.T) {
	s := New(2, 10)
	s.AddText("hi")

	fake := canvas.NewFake(2, 10)
	s.Render(fake, false)

	if !strings.Contains(fake.Row(1), "hi") {
		t.Fatalf("expected bottom row to contain %q, got %q", "hi", fake.Row(1))
	}
}

func TestRenderShowsCursorOnlyOnLastLineWhenFocused(t *testing.T) {
	s := New(2, 10)
	s.AddText("hi")

	fake := canvas.NewFake(2, 10)
	s.Render(fake, true)
	if !fake.CursorVisible {
		t.Fatalf("expected cursor visible when focused on the last line")
	}

	fake2 := canvas.NewFake(2, 10)
	s.Render(fake2, false)
	if fake2.CursorVisible {
		t.Fatalf("expected cursor hidden when not focused")
	}
}

func TestSGRSegmentParsing(t *testing.T) {
	segs := splitSegments("plain[31mred[0mplain2")
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].text != "plain" || segs[0].fg != canvas.ColorDefault {
		t.Fatalf("expected first segment plain with default color, got %+v", segs[0])
	}
	if segs[1].text != "red" || segs[1].fg != canvas.Color(1) {
		t.Fatalf("expected second segment red (code 31 -> color 1), got %+v", segs[1])
	}
	if segs[2].text != "plain2" || segs[2].fg != canvas.ColorDefault {
		t.Fatalf("expected color reset before third segment, got %+v", segs[2])
	}
}

func TestSGRMalformedSequenceFallsBackToLiteral(t *testing.T) {
	segs := splitSegments("a[not-a-codeb")
	joined := ""
	for _, seg := range segs {
		joined += seg.text
	}
	if joined != "a[not-a-codeb" {
		t.Fatalf("expected malformed sequence preserved literally, got %q", joined)
	}
}

func TestLineHeightWraps(t *testing.T) {
	if h := lineHeight("0123456789", 5); h != 2 {
		t.Fatalf("expected a 10-char line at width 5 to take 2 rows, got %d", h)
	}
	if h := lineHeight("short", 20); h != 1 {
		t.Fatalf("expected a short line to take 1 row, got %d", h)
	}
}

func TestLineHeightIgnoresEscapeSequences(t *testing.T) {
	plain := lineHeight("0123456789", 5)
	colored := lineHeight("[31m0123456789[0m", 5)
	if plain != colored {
		t.Fatalf("expected escape sequences to not count toward wrap width: %d vs %d", plain, colored)
	}
}
