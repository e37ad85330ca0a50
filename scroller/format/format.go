// Copyright © 2026 corewm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroller/format/format.go
// Summary: Optional syntax-highlighting ContentClassifier for scroller.
// Usage: Grounded on
// _examples/framegrace-texelation/apps/texelterm/txfmt/{txfmt.go,chroma.go}:
// the same go-enry language-detection tiers and Chroma tokenizer, adapted
// to emit the bare-'['-prefixed SGR subset scroller/render.go parses
// instead of writing into a cell grid directly.

package format

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	enry "github.com/go-enry/go-enry/v2"
)

// commonLanguages curates the classifier's candidate set the way the
// teacher does, to avoid false positives from obscure languages sharing
// keywords with common ones.
var commonLanguages = []string{
	"C", "C++", "C#", "CSS", "Dart", "Elixir", "Erlang",
	"Go", "Groovy", "HTML", "Haskell", "Java", "JavaScript",
	"Kotlin", "Lua", "Markdown", "Objective-C",
	"PHP", "Perl", "PowerShell", "Python", "R", "Ruby",
	"Rust", "Scala", "Shell", "Swift", "TypeScript", "Zig",
}

var enryToChromaMap = map[string]string{
	"Shell": "bash",
}

func enryToChroma(name string) string {
	if alias, ok := enryToChromaMap[name]; ok {
		return alias
	}
	return strings.ToLower(name)
}

// Classifier implements scroller.ContentClassifier: it accumulates plain
// text across calls, infers a language once it has enough signal, and
// rewrites each AddText payload with SGR sequences describing Chroma's
// tokenization under the chosen style.
type Classifier struct {
	style   *chroma.Style
	lexName string
	locked  bool

	history []string
}

// New builds a Classifier using the named Chroma style (falling back to
// "monokai" when name is empty or unknown).
func New(styleName string) *Classifier {
	style, ok := styles.Registry[styleName]
	if !ok || style == nil {
		style = styles.Get("monokai")
	}
	return &Classifier{style: style}
}

// Classify detects the language from text (and up to 50 lines of prior
// history, mirroring the teacher's maxChromaContext), tokenizes it, and
// returns text with each distinctly-colored token wrapped in an SGR
// sequence this package's sibling scroller/render.go understands.
func (c *Classifier) Classify(text string) string {
	c.remember(text)

	if !c.locked {
		c.lexName = c.infer()
		c.locked = c.lexName != ""
	}

	lexer := lexers.Get(c.lexName)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return text
	}
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return text
	}

	base := c.style.Get(chroma.Text).Colour

	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			continue
		}
		entry := c.style.Get(tok.Type)
		code, ok := sgrCode(entry, base)
		if !ok {
			sb.WriteString(tok.Value)
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(code)
		sb.WriteByte('m')
		sb.WriteString(tok.Value)
		sb.WriteString("[0m")
	}
	return sb.String()
}

const maxHistoryLines = 50

func (c *Classifier) remember(text string) {
	c.history = append(c.history, strings.Split(text, "\n")...)
	if len(c.history) > maxHistoryLines {
		c.history = c.history[len(c.history)-maxHistoryLines:]
	}
}

// infer runs the same shebang -> modeline -> Go heuristic -> classifier
// tiers the teacher's inferLanguage does.
func (c *Classifier) infer() string {
	content := []byte(strings.Join(c.history, "\n") + "\n")

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return enryToChroma(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return enryToChroma(lang)
	}
	text := string(content)
	if strings.Contains(text, "package ") && strings.Contains(text, "func ") {
		return "go"
	}
	if lang, _ := enry.GetLanguageByClassifier(content, commonLanguages); lang != "" {
		return enryToChroma(lang)
	}
	return ""
}

// sgrCode quantizes a Chroma style entry down to the 8-color/bold SGR
// subset scroller/render.go parses. Tokens whose color matches the
// style's base text color are left unstyled, mirroring the teacher's
// "only cells with default FG are modified" rule.
func sgrCode(entry chroma.StyleEntry, base chroma.Colour) (string, bool) {
	if !entry.Colour.IsSet() || entry.Colour == base {
		if entry.Bold == chroma.Yes {
			return "1", true
		}
		return "", false
	}

	fg := 30 + nearestANSI(entry.Colour)
	if entry.Bold == chroma.Yes {
		fg += 60 // 90-97 bold-foreground range
	}
	return strconv.Itoa(fg), true
}

// nearestANSI maps an RGB color to the closest of the 8 basic ANSI
// indices (0 black .. 7 white) by nearest channel-dominance, the same
// coarse quantization a curses 8-color terminal would apply.
func nearestANSI(c chroma.Colour) int {
	r, g, b := int(c.Red()), int(c.Green()), int(c.Blue())
	threshold := 128
	idx := 0
	if r >= threshold {
		idx |= 1
	}
	if g >= threshold {
		idx |= 2
	}
	if b >= threshold {
		idx |= 4
	}
	return idx
}
