// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: optstore/optstore.go
// Summary: Typed key -> value option store for layout-affecting options.
// Usage: Process-wide singleton seeded at startup by config.Load (see
// config/config.go). The wm package does not read it: split, close and
// resize take no option from this store into account.

// Package optstore is a small typed key/value store for the ten
// Vim-style window options the split tree consults (§4.3 of the spec this
// module backs). It is a process-wide singleton with explicit Init/Shutdown
// lifecycle, matching the "init-at-startup / teardown-at-shutdown" model
// the spec calls for, rather than lazy initialization: Get needs a
// well-defined "nothing loaded yet" state so a caller can tell unknown
// options apart from zero-valued ones.
package optstore

import (
	"fmt"
	"log"
	"sync"
)

// Option names the fixed set of options the window manager understands.
type Option string

const (
	CmdHeight    Option = "cmdheight"
	EADirection  Option = "eadirection"
	EqualAlways  Option = "equalalways"
	SplitBelow   Option = "splitbelow"
	SplitRight   Option = "splitright"
	WinFixHeight Option = "winfixheight"
	WinMinHeight Option = "winminheight"
	WinMinWidth  Option = "winminwidth"
	WinHeight    Option = "winheight"
	WinWidth     Option = "winwidth"
)

// shorthands maps the abbreviated spellings from §4.3 to their full Option.
var shorthands = map[string]Option{
	"ch":  CmdHeight,
	"ead": EADirection,
	"ea":  EqualAlways,
	"sb":  SplitBelow,
	"spr": SplitRight,
	"wfh": WinFixHeight,
	"wmh": WinMinHeight,
	"wmw": WinMinWidth,
	"wh":  WinHeight,
	"wiw": WinWidth,
}

// Resolve maps a full name or shorthand to its canonical Option. The second
// return value is false if name is neither.
func Resolve(name string) (Option, bool) {
	if _, ok := declaredTypes[Option(name)]; ok {
		return Option(name), true
	}
	if opt, ok := shorthands[name]; ok {
		return opt, true
	}
	return "", false
}

// Type is the declared value type of an option.
type Type int

const (
	TypeInt Type = iota
	TypeBool
	TypeEADirection
)

// EADir is the axis set affected by equalalways.
type EADir int

const (
	EADirHorizontal EADir = iota
	EADirVertical
	EADirBoth
)

var declaredTypes = map[Option]Type{
	CmdHeight:    TypeInt,
	EADirection:  TypeEADirection,
	EqualAlways:  TypeBool,
	SplitBelow:   TypeBool,
	SplitRight:   TypeBool,
	WinFixHeight: TypeBool,
	WinMinHeight: TypeInt,
	WinMinWidth:  TypeInt,
	WinHeight:    TypeInt,
	WinWidth:     TypeInt,
}

// Value is a typed option value. Exactly one of Int, Bool, EADir is
// meaningful, selected by Type.
type Value struct {
	Type  Type
	Int   int
	Bool  bool
	EADir EADir
}

// ErrTypeMismatch is returned by Set when value.Type disagrees with the
// option's declared type.
type ErrTypeMismatch struct {
	Option   Option
	Declared Type
	Got      Type
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("optstore: option %q declared type %d, got %d", e.Option, e.Declared, e.Got)
}

// ErrUnknownOption is returned by Set for a name not in declaredTypes.
type ErrUnknownOption struct{ Option Option }

func (e *ErrUnknownOption) Error() string {
	return fmt.Sprintf("optstore: unknown option %q", e.Option)
}

var (
	mu          sync.RWMutex
	values      map[Option]Value
	initialized bool
)

// Defaults returns the built-in default value for every declared option,
// matching cgdb's Vim-like defaults (80x24 terminal assumptions aside).
func Defaults() map[Option]Value {
	return map[Option]Value{
		CmdHeight:    {Type: TypeInt, Int: 1},
		EADirection:  {Type: TypeEADirection, EADir: EADirBoth},
		EqualAlways:  {Type: TypeBool, Bool: true},
		SplitBelow:   {Type: TypeBool, Bool: false},
		SplitRight:   {Type: TypeBool, Bool: false},
		WinFixHeight: {Type: TypeBool, Bool: false},
		WinMinHeight: {Type: TypeInt, Int: 1},
		WinMinWidth:  {Type: TypeInt, Int: 1},
		WinHeight:    {Type: TypeInt, Int: 0},
		WinWidth:     {Type: TypeInt, Int: 0},
	}
}

// Init establishes the process-wide store with the built-in defaults. It is
// idempotent; calling it again after Shutdown reinitializes cleanly.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return
	}
	values = Defaults()
	initialized = true
	log.Printf("optstore: initialized with %d defaults", len(values))
}

// Shutdown discards the store's state. Safe to call even if Init was never
// called.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	values = nil
	initialized = false
}

// Get returns the current value of option and true, or a zero Value and
// false if the option is unknown to the store (per §4.3: "unknown option on
// get returns unknown").
func Get(option Option) (Value, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return Value{}, false
	}
	v, ok := values[option]
	return v, ok
}

// Set assigns value to option. It returns ErrUnknownOption for a name
// outside the fixed set, and ErrTypeMismatch if value.Type disagrees with
// the option's declared type. Set auto-initializes the store on first use
// so a caller that only ever calls Set (e.g. a test) need not call Init.
func Set(option Option, value Value) error {
	declared, known := declaredTypes[option]
	if !known {
		return &ErrUnknownOption{Option: option}
	}
	if declared != value.Type {
		return &ErrTypeMismatch{Option: option, Declared: declared, Got: value.Type}
	}

	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		values = Defaults()
		initialized = true
	}
	values[option] = value
	return nil
}
