package tundra

import "testing"

func TestBuffer_Reset(t *testing.T) {
	b := NewBuffer(4, 3)
	b.SetTitle("scratch")
	b.WriteRune(1, 1, 'x', NewStyle().Bold())
	b.SetCursor(&Cursor{Shape: CursorBar, X: 1, Y: 1})

	b.Reset()

	if b.Title != "" {
		t.Errorf("Title = %q after Reset, want empty", b.Title)
	}
	if b.Cursor != nil {
		t.Errorf("Cursor = %+v after Reset, want nil", b.Cursor)
	}
	if c := b.Grid.Line(1).Cell(1); c.Content != " " || !c.Style.Equal(NewStyle()) {
		t.Errorf("cell (1,1) = %+v after Reset, want default blank", c)
	}
}

func TestBuffer_Reset_KeepsDimensions(t *testing.T) {
	b := NewBuffer(7, 4)
	b.Reset()

	w, h := b.Size()
	if w != 7 || h != 4 {
		t.Errorf("Size() = (%d, %d) after Reset, want (7, 4)", w, h)
	}
}

func TestBuffer_Resize_ClampsCursor(t *testing.T) {
	b := NewBuffer(10, 10)
	b.SetCursor(&Cursor{X: 9, Y: 9})

	b.Resize(4, 3, 9)

	if b.Cursor.X != 3 || b.Cursor.Y != 2 {
		t.Errorf("Cursor = (%d, %d) after resize, want (3, 2)", b.Cursor.X, b.Cursor.Y)
	}
}

func TestBuffer_Equal(t *testing.T) {
	a := NewBuffer(4, 3)
	b := NewBuffer(4, 3)
	if !a.Equal(b) {
		t.Error("identical buffers reported unequal")
	}

	b.SetTitle("other")
	if a.Equal(b) {
		t.Error("buffers with differing titles reported equal")
	}
}
