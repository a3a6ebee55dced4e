package tundra

// Grid is a fixed-width stack of lines. All lines share one width; height
// and width are bounded the same way as Line length.
type Grid struct {
	width int
	lines []Line
}

// NewGrid creates a grid of the given dimensions with all blank cells.
func NewGrid(width, height int) Grid {
	var g Grid
	g.ResizeWidth(width)
	g.ResizeHeight(height)
	return g
}

// Width returns the number of columns in the grid.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid.
func (g *Grid) Height() int {
	return len(g.lines)
}

// Lines returns the rows of the grid. The slice must not be mutated.
func (g *Grid) Lines() []Line {
	return g.lines
}

// Line returns a pointer to the row at index y, or nil if out of range.
func (g *Grid) Line(y int) *Line {
	if y < 0 || y >= len(g.lines) {
		return nil
	}
	return &g.lines[y]
}

// WriteRune writes one rune at (x, y) following the Line write rules.
// Writes outside the grid are dropped.
func (g *Grid) WriteRune(x, y int, r rune, style Style) {
	if line := g.Line(y); line != nil {
		line.WriteRune(x, r, style)
	}
}

// ResizeWidth resizes every row to the new width.
func (g *Grid) ResizeWidth(width int) {
	if width < 0 {
		width = 0
	}
	if width > maxExtent {
		width = maxExtent
	}
	g.width = width
	for i := range g.lines {
		g.lines[i].Resize(width)
	}
}

// ResizeHeight grows the grid by appending blank rows at the bottom and
// shrinks it by truncating from the bottom.
func (g *Grid) ResizeHeight(height int) {
	if height < 0 {
		height = 0
	}
	if height > maxExtent {
		height = maxExtent
	}

	switch {
	case height < len(g.lines):
		g.lines = g.lines[:height]
	case height > len(g.lines):
		for len(g.lines) < height {
			g.lines = append(g.lines, NewLine(g.width))
		}
	}
}

// ResizeHeightAnchored resizes the grid's height keeping the anchor row
// visible. Growing behaves as ResizeHeight. When shrinking, rows are taken
// from the bottom as long as the anchor survives; otherwise everything
// after the anchor is dropped first, then rows from the top, so the anchor
// becomes the new last row.
//
// Used on live terminal resizes with the anchor at the cursor's row, so
// the line the user was looking at stays on screen.
func (g *Grid) ResizeHeightAnchored(height, anchor int) {
	if height >= len(g.lines) || anchor < height {
		g.ResizeHeight(height)
		return
	}
	if height < 0 {
		height = 0
	}
	if anchor >= len(g.lines) {
		anchor = len(g.lines) - 1
	}

	// Keep rows [0, anchor], then drop from the top until the anchor is
	// the last of exactly height rows.
	kept := g.lines[: anchor+1 : anchor+1]
	g.lines = kept[len(kept)-height:]
}

// Clear resets every cell in every row to a blank default-styled space,
// reusing the existing allocation.
func (g *Grid) Clear() {
	for i := range g.lines {
		g.lines[i].clear()
	}
}

// Equal returns true if both grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || len(g.lines) != len(other.lines) {
		return false
	}
	for y := range g.lines {
		a, b := g.lines[y].cells, other.lines[y].cells
		if len(a) != len(b) {
			return false
		}
		for x := range a {
			if !a[x].Equal(b[x]) {
				return false
			}
		}
	}
	return true
}
