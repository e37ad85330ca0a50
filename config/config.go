// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Operator option overrides loaded from
// ~/.config/corewm/options.json.
// Usage: Grounded on the (now superseded) teacher config/config.go's
// os.UserConfigDir + encoding/json Load/Save idiom, trimmed to the single
// flat file this module needs: persisted overrides for optstore's ten
// options, rather than the teacher's nested per-app Section tree.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/vimwm/corewm/optstore"
)

const (
	configDirName  = "corewm"
	configFileName = "options.json"
)

// Overrides is the on-disk shape: option name (its canonical string, or a
// shorthand optstore.Resolve accepts) to a raw JSON value, since an option
// may be an int, a bool, or an EADirection string.
type Overrides map[string]json.RawMessage

// Path returns ~/.config/corewm/options.json (or the platform equivalent
// os.UserConfigDir resolves to).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load seeds optstore with its declared defaults, then applies any
// overrides found at Path(). A missing file is not an error: optstore is
// left holding its defaults. optstore.Init must not have been called
// already; Load calls it.
func Load() error {
	optstore.Init()
	for opt, val := range optstore.Defaults() {
		if err := optstore.Set(opt, val); err != nil {
			return err
		}
	}

	path, err := Path()
	if err != nil {
		log.Printf("config: failed to resolve config dir: %v", err)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config: no override file at %s, using defaults", path)
			return nil
		}
		return err
	}

	var overrides Overrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		return err
	}

	for name, raw := range overrides {
		opt, ok := optstore.Resolve(name)
		if !ok {
			log.Printf("config: ignoring unknown option %q in %s", name, path)
			continue
		}
		if err := applyOverride(opt, raw); err != nil {
			log.Printf("config: ignoring malformed value for %q: %v", name, err)
		}
	}

	log.Printf("config: loaded overrides from %s", path)
	return nil
}

func applyOverride(opt optstore.Option, raw json.RawMessage) error {
	current, ok := optstore.Get(opt)
	if !ok {
		return nil
	}

	switch current.Type {
	case optstore.TypeInt:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		return optstore.Set(opt, optstore.Value{Type: optstore.TypeInt, Int: n})
	case optstore.TypeBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return err
		}
		return optstore.Set(opt, optstore.Value{Type: optstore.TypeBool, Bool: b})
	case optstore.TypeEADirection:
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return err
		}
		dir, ok := parseEADir(name)
		if !ok {
			return nil
		}
		return optstore.Set(opt, optstore.Value{Type: optstore.TypeEADirection, EADir: dir})
	}
	return nil
}

func parseEADir(name string) (optstore.EADir, bool) {
	switch name {
	case "horizontal":
		return optstore.EADirHorizontal, true
	case "vertical":
		return optstore.EADirVertical, true
	case "both":
		return optstore.EADirBoth, true
	}
	return 0, false
}

// Save persists the current contents of optstore to Path(), creating the
// containing directory if needed.
func Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	out := make(map[string]any)
	for opt, val := range optstore.Defaults() {
		current, ok := optstore.Get(opt)
		if !ok {
			current = val
		}
		switch current.Type {
		case optstore.TypeInt:
			out[string(opt)] = current.Int
		case optstore.TypeBool:
			out[string(opt)] = current.Bool
		case optstore.TypeEADirection:
			out[string(opt)] = eadirName(current.EADir)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func eadirName(d optstore.EADir) string {
	switch d {
	case optstore.EADirHorizontal:
		return "horizontal"
	case optstore.EADirVertical:
		return "vertical"
	default:
		return "both"
	}
}
