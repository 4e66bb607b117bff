// Copyright © 2025 The failtrace authors

// Package layout arranges resolved values beneath a source line using
// column-aligned connector glyphs.
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/quillsoft/failtrace/inspect"
)

// Default connector glyphs.  ASCIIPipe and ASCIICap substitute when output
// must stay within ASCII.
const (
	Pipe = "│"
	Cap  = "└"

	ASCIIPipe = "|"
	ASCIICap  = "->"
)

// Annotate lays out values beneath line.  The first returned element is the
// source line itself; each following line renders one value, rightmost
// first, prefixed with a pipe glyph at the display column of every value
// still open to its left and terminated by the cap glyph, a space, and the
// value text.  Multi-line value text continues on subsequent lines aligned
// under the text start.  With no values only the source line is returned.
func Annotate(line string, values []inspect.Value, pipeGlyph, capGlyph string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, line)
	pipeWidth := runewidth.StringWidth(pipeGlyph)
	capWidth := runewidth.StringWidth(capGlyph)
	for i := len(values) - 1; i >= 0; i-- {
		var prefix strings.Builder
		cursor := 0
		for _, open := range values[:i] {
			col := displayCol(line, open.Col)
			prefix.WriteString(pad(col - cursor))
			prefix.WriteString(pipeGlyph)
			cursor = col + pipeWidth
		}
		col := displayCol(line, values[i].Col)
		prefix.WriteString(pad(col - cursor))

		text := strings.Split(values[i].Text, "\n")
		out = append(out, prefix.String()+capGlyph+" "+text[0])
		for _, cont := range text[1:] {
			out = append(out, prefix.String()+pad(capWidth+1)+cont)
		}
	}
	return out
}

// displayCol converts a byte offset in line to a display column, accounting
// for wide runes.  Offsets beyond the line are taken at face value.
func displayCol(line string, byteCol int) int {
	if byteCol < 0 {
		return 0
	}
	if byteCol > len(line) {
		return byteCol
	}
	return runewidth.StringWidth(line[:byteCol])
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
