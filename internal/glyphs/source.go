// Package glyphs owns the session-wide style data for the decorative layer:
// the character pool, the optional display font list, and the per-count style
// assignments derived from them. Everything is loaded at most once per session.
package glyphs

import (
	"context"
	_ "embed"
	"os"
	"strings"
)

//go:embed kanji.txt
var embeddedKanji string

// Font names a decorative display face. Class is the token the renderer uses
// to pick a display variant; an empty class renders in the default face.
type Font struct {
	Name  string
	Class string
}

// CharLoader fetches the glyph pool: a flat list of single characters.
type CharLoader func(ctx context.Context) ([]string, error)

// FontLoader fetches the display font list.
type FontLoader func(ctx context.Context) ([]Font, error)

// EmbeddedChars serves the built-in kanji set.
func EmbeddedChars() CharLoader {
	return func(ctx context.Context) ([]string, error) {
		return splitChars(embeddedKanji), nil
	}
}

// FileChars reads a newline-separated glyph file from a fixed path.
func FileChars(path string) CharLoader {
	return func(ctx context.Context) ([]string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return splitChars(string(data)), nil
	}
}

var defaultFonts = []Font{
	{Name: "Shippori Mincho", Class: "shippori-mincho"},
	{Name: "Kaisei Decol", Class: "kaisei-decol"},
	{Name: "Zen Old Mincho", Class: "zen-old-mincho"},
	{Name: "Yuji Syuku", Class: "yuji-syuku"},
}

// DefaultFonts serves the built-in display font list.
func DefaultFonts() FontLoader {
	return func(ctx context.Context) ([]Font, error) {
		fonts := make([]Font, len(defaultFonts))
		copy(fonts, defaultFonts)
		return fonts, nil
	}
}

func splitChars(raw string) []string {
	var chars []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		chars = append(chars, line)
	}
	return chars
}
