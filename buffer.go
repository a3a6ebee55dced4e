package tundra

// Buffer is one full frame of terminal state: a grid of cells, an optional
// cursor, and the terminal title. It is the sink widgets draw into.
//
// The Renderer owns two Buffers for its entire lifetime, recycling them
// between frames with Reset rather than reallocating.
type Buffer struct {
	Title  string
	Grid   Grid
	Cursor *Cursor
}

// NewBuffer creates a blank buffer of the given dimensions with no cursor.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{Grid: NewGrid(width, height)}
}

var _ Surface = (*Buffer)(nil)

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.Grid.Width(), b.Grid.Height()
}

// WriteRune writes one styled rune at (x, y) following the Line write
// rules. Writes outside the grid are dropped.
func (b *Buffer) WriteRune(x, y int, r rune, style Style) {
	b.Grid.WriteRune(x, y, r, style)
}

// SetTitle sets the terminal title tracked by the buffer.
func (b *Buffer) SetTitle(title string) {
	b.Title = title
}

// SetCursor sets the buffer's cursor descriptor. nil hides the cursor.
func (b *Buffer) SetCursor(c *Cursor) {
	b.Cursor = c
}

// Reset returns the buffer to a blank frame in place: all cells cleared,
// title emptied, cursor hidden. The grid keeps its dimensions and storage.
func (b *Buffer) Reset() {
	b.Grid.Clear()
	b.Title = ""
	b.Cursor = nil
}

// Resize resizes the buffer's grid, anchoring the height change at the
// given row and clamping the cursor into the new bounds.
func (b *Buffer) Resize(width, height, anchor int) {
	b.Grid.ResizeWidth(width)
	b.Grid.ResizeHeightAnchored(height, anchor)

	if b.Cursor != nil {
		b.Cursor.X = max(min(b.Cursor.X, b.Grid.Width()-1), 0)
		b.Cursor.Y = max(min(b.Cursor.Y, b.Grid.Height()-1), 0)
	}
}

// Equal returns true if both buffers describe the same frame.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.Title == other.Title &&
		b.Cursor.Equal(other.Cursor) &&
		b.Grid.Equal(&other.Grid)
}
