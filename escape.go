package tundra

import "strconv"

// escBuilder efficiently builds ANSI escape sequences.
// It uses a pre-allocated buffer to minimize allocations.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt writes an integer to the buffer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SetTitle sets the terminal title via OSC 2.
func (e *escBuilder) SetTitle(title string) {
	e.buf = append(e.buf, '\x1b', ']', '2', ';')
	// Control characters would terminate or corrupt the OSC string.
	for _, b := range []byte(title) {
		if b >= 0x20 && b != 0x7f {
			e.buf = append(e.buf, b)
		}
	}
	e.buf = append(e.buf, '\x07')
}

// SetCursorStyle emits DECSCUSR for the given shape/blink combination.
func (e *escBuilder) SetCursorStyle(shape CursorShape, blinking bool) {
	var n int
	switch shape {
	case CursorBlock:
		n = 2
	case CursorUnderline:
		n = 4
	case CursorBar:
		n = 6
	}
	if blinking {
		n--
	}
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, ' ', 'q')
}

// SetIntensity emits the SGR for a text intensity.
func (e *escBuilder) SetIntensity(i Intensity) {
	e.writeCSI()
	switch i {
	case IntensityBold:
		e.buf = append(e.buf, '1')
	case IntensityDim:
		e.buf = append(e.buf, '2')
	default:
		e.buf = append(e.buf, '2', '2')
	}
	e.buf = append(e.buf, 'm')
}

// SetAttr emits the SGR pair toggling one text attribute.
// on emits the set code; off emits its 2x reset counterpart.
func (e *escBuilder) SetAttr(code int, on bool) {
	e.writeCSI()
	if !on {
		e.buf = append(e.buf, '2')
	}
	e.writeInt(code)
	e.buf = append(e.buf, 'm')
}

// SGR attribute set codes; their reset forms are 2x (23, 24, 25, 29).
const (
	sgrItalic        = 3
	sgrUnderline     = 4
	sgrBlink         = 5
	sgrStrikethrough = 9
)

// SetForeground emits the SGR selecting a foreground color, downgrading
// it to what the terminal's capabilities can express.
func (e *escBuilder) SetForeground(c Color, caps Capabilities) {
	e.setColor(c, true, caps)
}

// SetBackground emits the SGR selecting a background color, downgrading
// it to what the terminal's capabilities can express.
func (e *escBuilder) SetBackground(c Color, caps Capabilities) {
	e.setColor(c, false, caps)
}

// setColor appends the appropriate escape sequence for a color.
// fg indicates whether this is a foreground or background color.
func (e *escBuilder) setColor(c Color, fg bool, caps Capabilities) {
	// Downgrade to what the terminal can express: RGB to a 256-palette
	// approximation, then that to one of the 16 basic colors.
	if c.Type() == ColorRGB && !caps.TrueColor {
		c = c.ToANSI()
	}
	if c.Type() == ColorANSI && caps.Colors < Color256 {
		c = c.To16()
	}

	e.writeCSI()

	// Color code base: 38 selects foreground, 48 background.
	base := 38
	if !fg {
		base = 48
	}

	switch c.Type() {
	case ColorDefault:
		e.writeInt(base + 1) // 39 / 49
	case ColorANSI:
		idx := c.ANSI()
		switch {
		case idx < 8:
			// Basic color codes: 30-37 foreground, 40-47 background
			e.writeInt(base - 8 + int(idx))
		case idx < 16:
			// Bright variants: 90-97 foreground, 100-107 background
			e.writeInt(base + 52 + int(idx) - 8)
		default:
			// 256-color mode: ESC[38;5;{n}m
			e.writeInt(base)
			e.buf = append(e.buf, ';', '5', ';')
			e.writeInt(int(idx))
		}
	case ColorRGB:
		// True color: ESC[38;2;{r};{g};{b}m
		r, g, b := c.RGB()
		e.writeInt(base)
		e.buf = append(e.buf, ';', '2', ';')
		e.writeInt(int(r))
		e.buf = append(e.buf, ';')
		e.writeInt(int(g))
		e.buf = append(e.buf, ';')
		e.writeInt(int(b))
	}

	e.buf = append(e.buf, 'm')
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
