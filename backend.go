package tundra

import (
	"context"
	"errors"
	"sync/atomic"
)

// Backend is the terminal the Renderer draws to. Implementations buffer
// the state-changing calls and apply them on Flush.
//
// Write is only ever given text free of control characters that fits in
// the current row, so implementations never need to handle wrapping.
// Any call may fail; the Renderer aborts the operation in progress and
// surfaces the error unchanged.
type Backend interface {
	// Size returns the terminal dimensions in cells.
	Size() (width, height int, err error)

	// SetTitle sets the terminal title.
	SetTitle(title string) error

	// ShowCursor makes the cursor visible.
	ShowCursor() error

	// HideCursor makes the cursor invisible.
	HideCursor() error

	// SetCursorShape sets the cursor shape.
	SetCursorShape(shape CursorShape) error

	// SetCursorBlink sets whether the cursor blinks.
	SetCursorBlink(blinking bool) error

	// SetCursorPos moves the cursor to a zero-indexed position.
	SetCursorPos(x, y int) error

	// SetForeground sets the foreground color text is written with.
	SetForeground(c Color) error

	// SetBackground sets the background color text is written with.
	SetBackground(c Color) error

	// SetIntensity sets the text intensity.
	SetIntensity(i Intensity) error

	// SetItalic sets whether text is written italic.
	SetItalic(on bool) error

	// SetUnderline sets whether text is underlined.
	SetUnderline(on bool) error

	// SetBlink sets whether text blinks.
	SetBlink(on bool) error

	// SetStrikethrough sets whether text is crossed out.
	SetStrikethrough(on bool) error

	// Write writes text at the cursor position, advancing the cursor by
	// the text's display width.
	Write(text string) error

	// Flush applies all buffered calls to the terminal.
	Flush() error

	// Reset restores the terminal to the state it was in before the
	// backend touched it.
	Reset() error

	// WaitEvent blocks until the next terminal event: a decoded input
	// event or a resize. Cancelling the context abandons the wait with
	// no side effects and returns ctx.Err().
	WaitEvent(ctx context.Context) (Event, error)
}

// ErrDeviceClaimed is returned by ClaimDevice while another claim is live.
var ErrDeviceClaimed = errors.New("terminal device already claimed")

// deviceClaimed guards process-wide exclusive ownership of the terminal.
var deviceClaimed atomic.Bool

// DeviceClaim is the capability to own the process's terminal device.
// Only one claim exists at a time; backends that drive the real terminal
// consume one, which is how the engine guarantees two Renderers never
// fight over the device. Release it (or Close the backend holding it)
// before claiming again.
type DeviceClaim struct {
	released atomic.Bool
}

// ClaimDevice claims exclusive ownership of the terminal device.
// It fails with ErrDeviceClaimed if the device is already claimed.
func ClaimDevice() (*DeviceClaim, error) {
	if deviceClaimed.Swap(true) {
		return nil, ErrDeviceClaimed
	}
	return &DeviceClaim{}, nil
}

// Release returns the claim, making the device claimable again.
// Releasing twice is a no-op.
func (c *DeviceClaim) Release() {
	if c != nil && !c.released.Swap(true) {
		deviceClaimed.Store(false)
	}
}
