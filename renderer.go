package tundra

import (
	"context"
	"fmt"
)

// Widget is something drawable that turns terminal events into
// outputs of the client's own event type E.
//
// Draw writes the widget's current appearance into the sink; it is
// called once per frame and must draw the whole widget (frames start
// blank). Handle reacts to one terminal input event and returns any
// outputs it produced. Widgets never see resize events; the Renderer
// absorbs them and redraws.
type Widget[E any] interface {
	Draw(dst Surface)
	Handle(ev Event) []E
}

// WidgetFunc adapts a bare draw function into a Widget that produces
// no outputs, useful for static screens.
type WidgetFunc[E any] func(dst Surface)

func (f WidgetFunc[E]) Draw(dst Surface) { f(dst) }

func (f WidgetFunc[E]) Handle(Event) []E { return nil }

// Renderer owns a Backend and drives the draw, diff, wait loop.
// It keeps two frame buffers, the one currently on screen and the one
// being drawn, and on each frame emits only the backend calls needed
// to turn the former into the latter.
//
// A Renderer is a single logical thread of control: no method may be
// called concurrently with another. The only blocking point is the
// backend's event wait inside Draw, which is abandoned cleanly when
// the context is cancelled; the Renderer then remains re-enterable.
type Renderer[E any] struct {
	backend Backend

	prev *Buffer // what the terminal is showing
	next *Buffer // what the current frame draws into

	st   diffState
	full bool // repaint everything on the next frame

	closed bool
}

// NewRenderer creates a Renderer on the given backend, sizing the frame
// buffers to the terminal and driving the backend to a known state:
// cursor hidden at the origin, default style.
func NewRenderer[E any](backend Backend) (*Renderer[E], error) {
	width, height, err := backend.Size()
	if err != nil {
		return nil, fmt.Errorf("querying terminal size: %w", err)
	}

	r := &Renderer[E]{
		backend: backend,
		prev:    NewBuffer(width, height),
		next:    NewBuffer(width, height),
	}
	if err := r.syncBackend(); err != nil {
		return nil, err
	}
	return r, nil
}

// syncBackend drives the backend into the state the zero diffState
// assumes, so the register and reality agree.
func (r *Renderer[E]) syncBackend() error {
	b := r.backend
	calls := []func() error{
		b.HideCursor,
		func() error { return b.SetCursorPos(0, 0) },
		func() error { return b.SetForeground(DefaultColor()) },
		func() error { return b.SetBackground(DefaultColor()) },
		func() error { return b.SetIntensity(IntensityNormal) },
		func() error { return b.SetItalic(false) },
		func() error { return b.SetUnderline(false) },
		func() error { return b.SetBlink(false) },
		func() error { return b.SetStrikethrough(false) },
		b.Flush,
	}
	for _, call := range calls {
		if err := call(); err != nil {
			return err
		}
	}
	r.st = diffState{}
	return nil
}

// Size returns the current frame dimensions in cells.
func (r *Renderer[E]) Size() (width, height int) {
	return r.next.Size()
}

// Draw renders the widget and blocks until it produces output.
//
// Each pass draws the widget into a blank frame, diffs it against the
// frame on screen, flushes, and waits for the next event. Input events
// go to the widget's Handle; Draw returns as soon as a pass yields at
// least one output. Resizes are absorbed: both frame buffers resize
// together, anchored at the row holding the cursor, and the widget is
// redrawn at the new size.
//
// A failing backend call aborts immediately with that error, possibly
// leaving the screen partially updated; the next successful Draw after
// Refresh repairs it. Cancelling ctx abandons the wait and returns
// ctx.Err() with the Renderer state intact, so Draw can be re-entered.
func (r *Renderer[E]) Draw(ctx context.Context, w Widget[E]) ([]E, error) {
	for {
		w.Draw(r.next)

		if err := diffFrames(r.backend, r.prev, r.next, &r.st, r.full); err != nil {
			return nil, err
		}
		if err := r.backend.Flush(); err != nil {
			return nil, err
		}
		r.full = false

		r.prev.Reset()
		r.prev, r.next = r.next, r.prev

	wait:
		for {
			ev, err := r.backend.WaitEvent(ctx)
			if err != nil {
				return nil, err
			}

			switch ev := ev.(type) {
			case ResizeEvent:
				if r.resize(ev.Width, ev.Height) {
					break wait
				}
			default:
				outputs := w.Handle(ev)
				if len(outputs) > 0 {
					return outputs, nil
				}
			}
		}
	}
}

// resize brings both frame buffers to the new terminal size, anchored
// at the row the cursor is on, and reports whether anything changed.
func (r *Renderer[E]) resize(width, height int) bool {
	curW, curH := r.next.Size()
	if width == curW && height == curH {
		return false
	}

	anchor := r.st.y
	r.prev.Resize(width, height, anchor)
	r.next.Resize(width, height, anchor)

	r.st.x = max(min(r.st.x, width-1), 0)
	r.st.y = max(min(r.st.y, height-1), 0)
	return true
}

// Refresh forces the next frame to repaint every cell and re-syncs the
// backend's style and cursor registers. Call it after a Draw returned
// a backend error, when the screen contents can no longer be trusted.
func (r *Renderer[E]) Refresh() error {
	r.full = true
	// An aborted diff can leave a half-drawn frame behind.
	r.next.Reset()
	return r.syncBackend()
}

// Close resets the backend, restoring the terminal, and surfaces any
// reset failure. Closing twice is a no-op.
func (r *Renderer[E]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.backend.Reset()
}
