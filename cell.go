package tundra

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Cell is one terminal column. A glyph cell holds a short run of characters
// (one base glyph of display width 1 or 2, followed by zero or more
// zero-width combining marks) plus the style it is written with. The second
// column of a double-width glyph is occupied by a continuation cell, which
// has no content of its own.
type Cell struct {
	// Content is the base glyph followed by any combining marks.
	// Empty for continuation cells, never empty otherwise.
	Content string
	// Double reports whether the base glyph occupies two columns.
	// A double cell is always followed by a continuation cell in its Line.
	Double bool
	// Style is the style the cell is rendered with.
	Style Style
}

// Continuation is the placeholder cell occupying the second column of a
// double-width glyph.
var Continuation = Cell{}

// newBlankCell returns a single-space cell with the given style.
func newBlankCell(style Style) Cell {
	return Cell{Content: " ", Style: style}
}

// IsContinuation returns true if this cell is the second column of a
// double-width glyph.
func (c Cell) IsContinuation() bool {
	return c.Content == ""
}

// Width returns the number of columns the cell's glyph spans: 2 for double
// cells, 0 for continuations, and 1 otherwise.
func (c Cell) Width() int {
	switch {
	case c.IsContinuation():
		return 0
	case c.Double:
		return 2
	default:
		return 1
	}
}

// Equal returns true if both cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Content == other.Content && c.Double == other.Double && c.Style.Equal(other.Style)
}

// runeClass classifies a rune for cell writes.
type runeClass int8

const (
	classControl runeClass = iota // no printable width, ignored entirely
	classZero                     // combining/zero-width mark
	classSingle                   // one column
	classDouble                   // two columns
)

// classifyRune determines how a rune participates in the cell grid.
func classifyRune(r rune) runeClass {
	if r == 0 || unicode.IsControl(r) {
		return classControl
	}
	switch runewidth.RuneWidth(r) {
	case 0:
		return classZero
	case 2:
		return classDouble
	default:
		return classSingle
	}
}
