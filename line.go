package tundra

// maxExtent bounds line length and grid height. Coordinates are plain ints
// at the API surface; resizes clamp to this.
const maxExtent = 65535

// Line is a fixed-length row of cells. Every position is always populated,
// and two invariants hold after any sequence of writes and resizes: each
// continuation cell is immediately preceded by a double cell, and the last
// cell is never a double (its continuation would fall outside the line).
type Line struct {
	cells []Cell
}

// NewLine creates a line of the given length filled with blank cells.
func NewLine(length int) Line {
	var l Line
	l.Resize(length)
	return l
}

// Len returns the number of cells in the line.
func (l *Line) Len() int {
	return len(l.cells)
}

// Cells returns the cells in the line. The slice must not be mutated.
func (l *Line) Cells() []Cell {
	return l.cells
}

// Cell returns the cell at column x, or a blank cell if x is out of range.
func (l *Line) Cell(x int) Cell {
	if x < 0 || x >= len(l.cells) {
		return newBlankCell(NewStyle())
	}
	return l.cells[x]
}

// WriteRune writes one rune at column x.
//
// Control characters are ignored. Zero-width marks are appended to the
// glyph cell already at x (dropped on a continuation cell or out of range;
// their style is discarded). Width-1 and width-2 runes replace the cells
// they cover; any double-width glyph partially overwritten is demoted to a
// single space keeping its old style, so the erased glyph's background
// survives. A width-2 rune whose second column would fall outside the line
// is dropped entirely.
func (l *Line) WriteRune(x int, r rune, style Style) {
	switch classifyRune(r) {
	case classControl:
		return

	case classZero:
		if x < 0 || x >= len(l.cells) {
			return
		}
		if cell := &l.cells[x]; !cell.IsContinuation() {
			cell.Content += string(r)
		}

	case classSingle:
		if x < 0 || x >= len(l.cells) {
			return
		}
		old := l.cells[x]
		l.cells[x] = Cell{Content: string(r), Style: style}
		l.repairAround(x, old)

	case classDouble:
		if x < 0 || x+1 >= len(l.cells) {
			return
		}
		oldSecond := l.cells[x+1]
		oldFirst := l.cells[x]
		l.cells[x] = Cell{Content: string(r), Double: true, Style: style}
		l.cells[x+1] = Continuation
		l.repairAround(x, oldFirst)
		// The old occupant of the second column may itself have been a
		// double whose continuation at x+2 is now orphaned.
		if oldSecond.Double {
			l.cells[x+2] = newBlankCell(oldSecond.Style)
		}
	}
}

// repairAround restores the double/continuation pairing after the cell at x
// (previously old) was overwritten.
func (l *Line) repairAround(x int, old Cell) {
	if old.Double {
		// The old glyph's continuation at x+1 is orphaned unless the write
		// covered it too.
		if x+1 < len(l.cells) && l.cells[x+1].IsContinuation() && !l.cells[x].Double {
			l.cells[x+1] = newBlankCell(old.Style)
		}
	}
	if old.IsContinuation() {
		// The double glyph owning this continuation starts at x-1.
		owner := &l.cells[x-1]
		owner.Content = " "
		owner.Double = false
	}
}

// Resize changes the line's length. New cells are blank; shrinking
// truncates from the end and demotes a double cell left dangling at the
// new last position.
func (l *Line) Resize(length int) {
	if length < 0 {
		length = 0
	}
	if length > maxExtent {
		length = maxExtent
	}

	switch {
	case length < len(l.cells):
		l.cells = l.cells[:length]
	case length > len(l.cells):
		for len(l.cells) < length {
			l.cells = append(l.cells, newBlankCell(NewStyle()))
		}
	}

	if n := len(l.cells); n > 0 && l.cells[n-1].Double {
		l.cells[n-1] = newBlankCell(l.cells[n-1].Style)
	}
}

// clear resets every cell to a blank default-styled space in place.
func (l *Line) clear() {
	for i := range l.cells {
		l.cells[i] = newBlankCell(NewStyle())
	}
}

// String renders the line's visible content for debugging. Continuation
// cells contribute nothing.
func (l *Line) String() string {
	var out []byte
	for _, c := range l.cells {
		out = append(out, c.Content...)
	}
	return string(out)
}
