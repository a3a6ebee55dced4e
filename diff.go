package tundra

// diffState is the backend state the differ assumes, carried across
// frames by the Renderer: the style the backend was last told to use
// and where its cursor landed. It is deliberately not reset between
// frames; unchanged cells then cost zero style calls even across frame
// boundaries.
type diffState struct {
	style Style
	x, y  int
}

// diffFrames emits the backend calls that turn a terminal showing prev
// into one showing next. Both buffers must have identical dimensions.
// With full set, every cell is repainted regardless of prev — the
// recovery path when the screen contents are no longer trusted.
// Any failing backend call aborts the pass immediately and is returned
// unchanged; the screen is then partially updated and st may no longer
// match the backend's true state, so callers recover with a full
// repaint.
func diffFrames(backend Backend, prev, next *Buffer, st *diffState, full bool) error {
	if full || next.Title != prev.Title {
		if err := backend.SetTitle(next.Title); err != nil {
			return err
		}
	}

	width := next.Grid.Width()
	height := next.Grid.Height()
	for y := 0; y < height; y++ {
		oldLine := prev.Grid.Line(y)
		newLine := next.Grid.Line(y)
		for x := 0; x < width; x++ {
			newCell := newLine.Cell(x)
			if !full && newCell.Equal(oldLine.Cell(x)) {
				continue
			}
			// A continuation is repainted by the double cell owning it.
			if newCell.IsContinuation() {
				continue
			}

			if err := diffStyle(backend, st.style, newCell.Style); err != nil {
				return err
			}

			if st.x != x || st.y != y {
				if err := backend.SetCursorPos(x, y); err != nil {
					return err
				}
			}

			if err := backend.Write(newCell.Content); err != nil {
				return err
			}

			st.style = newCell.Style

			// Terminals clamp cursor advance at the right edge.
			st.x = min(x+newCell.Width(), width-1)
			st.y = y
		}
	}

	// Some terminals fill space exposed by a resize with the cursor's
	// current background color, so never leave it off the default
	// between frames.
	if !st.style.Bg.IsDefault() {
		if err := backend.SetBackground(DefaultColor()); err != nil {
			return err
		}
		st.style.Bg = DefaultColor()
	}

	newCursor, oldCursor := next.Cursor, prev.Cursor
	if full {
		oldCursor = nil
	}
	switch {
	case newCursor != nil:
		if oldCursor == nil {
			if err := backend.ShowCursor(); err != nil {
				return err
			}
		}
		if oldCursor == nil || oldCursor.Shape != newCursor.Shape {
			if err := backend.SetCursorShape(newCursor.Shape); err != nil {
				return err
			}
		}
		if oldCursor == nil || oldCursor.Blinking != newCursor.Blinking {
			if err := backend.SetCursorBlink(newCursor.Blinking); err != nil {
				return err
			}
		}
		if st.x != newCursor.X || st.y != newCursor.Y {
			if err := backend.SetCursorPos(newCursor.X, newCursor.Y); err != nil {
				return err
			}
		}
		st.x, st.y = newCursor.X, newCursor.Y
	case oldCursor != nil || full:
		if err := backend.HideCursor(); err != nil {
			return err
		}
	}

	return nil
}

// diffStyle emits setter calls for exactly the fields of next that
// differ from what the backend is already using.
func diffStyle(backend Backend, active, next Style) error {
	if !active.Fg.Equal(next.Fg) {
		if err := backend.SetForeground(next.Fg); err != nil {
			return err
		}
	}
	if !active.Bg.Equal(next.Bg) {
		if err := backend.SetBackground(next.Bg); err != nil {
			return err
		}
	}
	if active.Intensity != next.Intensity {
		if err := backend.SetIntensity(next.Intensity); err != nil {
			return err
		}
	}
	if active.Italic != next.Italic {
		if err := backend.SetItalic(next.Italic); err != nil {
			return err
		}
	}
	if active.Underline != next.Underline {
		if err := backend.SetUnderline(next.Underline); err != nil {
			return err
		}
	}
	if active.Blink != next.Blink {
		if err := backend.SetBlink(next.Blink); err != nil {
			return err
		}
	}
	if active.Strikethrough != next.Strikethrough {
		if err := backend.SetStrikethrough(next.Strikethrough); err != nil {
			return err
		}
	}
	return nil
}
