package tundra

import "github.com/mattn/go-runewidth"

// Surface is the drawing sink widgets write cells through. Buffer
// implements it directly; Area wraps any Surface to offset and clip the
// coordinate space. Writes outside a surface are silently dropped.
//
// A Surface is lent to a widget for the duration of one draw call and must
// not be retained past it.
type Surface interface {
	// Size returns the drawable dimensions.
	Size() (width, height int)

	// WriteRune writes one styled rune at a zero-indexed position,
	// following the Line write rules for widths and combining marks.
	WriteRune(x, y int, r rune, style Style)

	// SetTitle sets the terminal title. The last call per frame wins.
	SetTitle(title string)

	// SetCursor sets the cursor descriptor, or hides it with nil.
	// The last call per frame wins.
	SetCursor(c *Cursor)
}

// Area is a Surface that draws to a sub-rectangle of another Surface.
// Positions are translated by the area's origin, writes outside the
// clipped size are dropped, and a cursor placed outside the area is
// treated as hidden. The origin may be negative so that content can be
// scrolled through a fixed viewport.
//
// This is the sole mechanism by which a layout layer composes nested
// regions: the engine itself knows nothing about layout policy.
type Area struct {
	inner         Surface
	x, y          int
	width, height int
}

var _ Surface = Area{}

// NewArea wraps inner with an offset of (x, y) and a clipped size. The
// rectangle may extend beyond inner's bounds; the out-of-bounds part is
// simply never visible.
func NewArea(inner Surface, x, y, width, height int) Area {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Area{inner: inner, x: x, y: y, width: width, height: height}
}

// Size returns the area's clipped dimensions.
func (a Area) Size() (width, height int) {
	return a.width, a.height
}

// WriteRune writes a rune at a position relative to the area's origin.
// A double-width rune whose second column would fall outside the area is
// dropped in its entirety rather than partially drawn.
func (a Area) WriteRune(x, y int, r rune, style Style) {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return
	}
	if x == a.width-1 && runewidth.RuneWidth(r) == 2 {
		return
	}
	a.inner.WriteRune(x+a.x, y+a.y, r, style)
}

// SetTitle forwards the title to the inner surface.
func (a Area) SetTitle(title string) {
	a.inner.SetTitle(title)
}

// SetCursor forwards the cursor, translated into the inner surface's
// coordinates. A cursor outside the area is forwarded as hidden.
func (a Area) SetCursor(c *Cursor) {
	if c == nil || c.X < 0 || c.X >= a.width || c.Y < 0 || c.Y >= a.height {
		a.inner.SetCursor(nil)
		return
	}
	moved := *c
	moved.X += a.x
	moved.Y += a.y
	a.inner.SetCursor(&moved)
}

// WriteString writes a string starting at (x, y), advancing by each rune's
// display width. Control characters are skipped and the string is clipped
// at the surface's right edge without wrapping. Returns the total display
// width consumed.
func WriteString(dst Surface, x, y int, s string, style Style) int {
	width, _ := dst.Size()
	total := 0
	base := -1 // column of the last written base glyph

	for _, r := range s {
		switch classifyRune(r) {
		case classControl:
			continue
		case classZero:
			// Combining marks attach to the preceding base glyph.
			if base >= 0 {
				dst.WriteRune(base, y, r, style)
			}
			continue
		}

		w := runewidth.RuneWidth(r)
		if x+total+w > width {
			break
		}
		dst.WriteRune(x+total, y, r, style)
		base = x + total
		total += w
	}

	return total
}

// Fill writes the rune into every position of the surface. Useful for
// painting a background color before drawing content.
func Fill(dst Surface, r rune, style Style) {
	width, height := dst.Size()
	step := runewidth.RuneWidth(r)
	if step < 1 {
		return
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x += step {
			dst.WriteRune(x, y, r, style)
		}
	}
}
