package tundra

// CursorShape is the visual form of the terminal cursor.
type CursorShape uint8

const (
	// CursorBlock is a full block over the character.
	CursorBlock CursorShape = iota
	// CursorBar is a thin bar to the left of the character.
	CursorBar
	// CursorUnderline is a line under the character.
	CursorUnderline
)

// Cursor describes a visible terminal cursor: its shape, whether it blinks,
// and its zero-indexed position. A nil *Cursor means the cursor is hidden.
type Cursor struct {
	Shape    CursorShape
	Blinking bool
	X, Y     int
}

// Equal returns true if both cursors are identical. Two nil cursors are
// equal; a nil cursor never equals a visible one.
func (c *Cursor) Equal(other *Cursor) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}
