// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/corewm-demo/main.go
// Summary: Thin demonstration CLI exercising wm/scroller/optstore/config
// against a real terminal.
// Usage: Grounded on the teacher's cmd/texelation main.go for the
// tcell-init / defer-Fini / event-loop shape, and on
// golang.org/x/term for the initial terminal size probe before the
// tcell.Screen takes over raw mode.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/vimwm/corewm/canvas"
	"github.com/vimwm/corewm/canvas/tcellcanvas"
	"github.com/vimwm/corewm/config"
	"github.com/vimwm/corewm/scroller"
	"github.com/vimwm/corewm/scroller/format"
	"github.com/vimwm/corewm/wm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("corewm-demo: %v", err)
	}
}

func run() error {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		log.Printf("corewm-demo: controlling terminal reports %dx%d before screen init", w, h)
	}

	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	root := tcellcanvas.New(screen)
	_, _, rootHeight, rootWidth := root.Bounds()

	sc := scroller.New(rootHeight, rootWidth)
	sc.SetContentClassifier(format.New("monokai"))
	sc.AddText("corewm demo scroller\npress q to quit\n")

	tree, _ := wm.NewTree(root, wm.Pane{
		Paint: func(c canvas.Canvas) {
			sc.Render(c, true)
		},
	})

	tree.Redraw()

	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			if e.Key() == tcell.KeyRune && e.Rune() == 'q' {
				return nil
			}
		case *tcell.EventResize:
			w, h := e.Size()
			_ = root.Resize(h, w)
			sc.Resize(h, w)
			tree.Redraw()
		}
	}
}
