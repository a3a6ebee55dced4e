//go:build unix

package tundra

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// TermBackend drives a real terminal with ANSI escape sequences.
// It puts the terminal into raw mode and, when supported, the alternate
// screen, and restores both on Reset. Escape sequences accumulate in a
// buffer and hit the terminal only on Flush.
type TermBackend struct {
	claim *DeviceClaim
	in    *os.File
	out   *os.File
	caps  Capabilities

	useAltScreen bool
	capsSet      bool

	esc      *escBuilder
	reader   *eventReader
	oldState *term.State

	cursorShape CursorShape
	cursorBlink bool

	closed bool
}

var _ Backend = (*TermBackend)(nil)

// TermOption configures a TermBackend.
type TermOption func(*TermBackend)

// WithCaps overrides environment-based capability detection.
func WithCaps(caps Capabilities) TermOption {
	return func(b *TermBackend) {
		b.caps = caps
		b.capsSet = true
	}
}

// WithoutAltScreen keeps the backend on the main screen buffer, leaving
// output in the scrollback after Reset.
func WithoutAltScreen() TermOption {
	return func(b *TermBackend) {
		b.useAltScreen = false
	}
}

// WithTTY uses the given file for terminal input and output instead of
// stdin/stdout.
func WithTTY(tty *os.File) TermOption {
	return func(b *TermBackend) {
		b.in = tty
		b.out = tty
	}
}

// NewTermBackend creates a backend for the process's terminal, consuming
// the device claim. The terminal enters raw mode immediately; on any
// setup failure it is restored and the claim released.
func NewTermBackend(claim *DeviceClaim, opts ...TermOption) (*TermBackend, error) {
	if claim == nil {
		return nil, errors.New("nil device claim")
	}

	b := &TermBackend{
		claim:        claim,
		in:           os.Stdin,
		out:          os.Stdout,
		useAltScreen: true,
		esc:          newEscBuilder(4096),
		cursorShape:  CursorBlock,
		cursorBlink:  true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if !b.capsSet {
		b.caps = DetectCapabilities()
	}

	oldState, err := term.MakeRaw(int(b.in.Fd()))
	if err != nil {
		claim.Release()
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}
	b.oldState = oldState

	reader, err := newEventReader(b.in)
	if err != nil {
		_ = term.Restore(int(b.in.Fd()), oldState)
		claim.Release()
		return nil, fmt.Errorf("creating event reader: %w", err)
	}
	b.reader = reader

	if b.useAltScreen && b.caps.AltScreen {
		b.esc.EnterAltScreen()
	} else {
		b.useAltScreen = false
	}
	b.esc.HideCursor()
	b.esc.ClearScreen()
	b.esc.MoveTo(0, 0)
	b.esc.ResetStyle()
	if err := b.Flush(); err != nil {
		_ = term.Restore(int(b.in.Fd()), oldState)
		_ = reader.Close()
		claim.Release()
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	return b, nil
}

// Caps returns the capabilities the backend is emitting for.
func (b *TermBackend) Caps() Capabilities {
	return b.caps
}

func (b *TermBackend) Size() (width, height int, err error) {
	return term.GetSize(int(b.out.Fd()))
}

func (b *TermBackend) SetTitle(title string) error {
	b.esc.SetTitle(title)
	return nil
}

func (b *TermBackend) ShowCursor() error {
	b.esc.ShowCursor()
	return nil
}

func (b *TermBackend) HideCursor() error {
	b.esc.HideCursor()
	return nil
}

func (b *TermBackend) SetCursorShape(shape CursorShape) error {
	b.cursorShape = shape
	b.esc.SetCursorStyle(b.cursorShape, b.cursorBlink)
	return nil
}

func (b *TermBackend) SetCursorBlink(blinking bool) error {
	b.cursorBlink = blinking
	b.esc.SetCursorStyle(b.cursorShape, b.cursorBlink)
	return nil
}

func (b *TermBackend) SetCursorPos(x, y int) error {
	b.esc.MoveTo(x, y)
	return nil
}

func (b *TermBackend) SetForeground(c Color) error {
	b.esc.SetForeground(c, b.caps)
	return nil
}

func (b *TermBackend) SetBackground(c Color) error {
	b.esc.SetBackground(c, b.caps)
	return nil
}

func (b *TermBackend) SetIntensity(i Intensity) error {
	b.esc.SetIntensity(i)
	return nil
}

func (b *TermBackend) SetItalic(on bool) error {
	b.esc.SetAttr(sgrItalic, on)
	return nil
}

func (b *TermBackend) SetUnderline(on bool) error {
	b.esc.SetAttr(sgrUnderline, on)
	return nil
}

func (b *TermBackend) SetBlink(on bool) error {
	b.esc.SetAttr(sgrBlink, on)
	return nil
}

func (b *TermBackend) SetStrikethrough(on bool) error {
	b.esc.SetAttr(sgrStrikethrough, on)
	return nil
}

func (b *TermBackend) Write(text string) error {
	b.esc.WriteString(text)
	return nil
}

// Flush writes all buffered escape sequences to the terminal in one
// syscall, then clears the buffer.
func (b *TermBackend) Flush() error {
	if b.esc.Len() == 0 {
		return nil
	}
	_, err := b.out.Write(b.esc.Bytes())
	b.esc.Reset()
	if err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Reset restores the terminal: default style and cursor, main screen,
// cooked mode. The device claim is released so the terminal can be
// claimed again. Reset is idempotent; the first error encountered is
// returned after the remaining restoration steps have run.
func (b *TermBackend) Reset() error {
	if b.closed {
		return nil
	}
	b.closed = true

	b.esc.Reset()
	b.esc.ResetStyle()
	b.esc.SetCursorStyle(CursorBlock, true)
	b.esc.ShowCursor()
	if b.useAltScreen {
		b.esc.ExitAltScreen()
	}
	err := b.Flush()

	if rerr := term.Restore(int(b.in.Fd()), b.oldState); err == nil {
		err = rerr
	}
	if cerr := b.reader.Close(); err == nil {
		err = cerr
	}
	b.claim.Release()
	return err
}

// Close restores the terminal, discarding any errors. Use Reset when
// restoration failures matter.
func (b *TermBackend) Close() {
	_ = b.Reset()
}

func (b *TermBackend) WaitEvent(ctx context.Context) (Event, error) {
	return b.reader.WaitEvent(ctx)
}
