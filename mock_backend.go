package tundra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// MockBackend is a Backend for testing. It records every call in a
// human-readable log and replays the calls against an internal Buffer,
// so tests can assert both the exact call sequence and the terminal
// contents it produces.
type MockBackend struct {
	width, height int

	// Calls is the op log, one formatted entry per backend call.
	Calls []string

	// Events feeds WaitEvent. Tests push decoded input or resizes here.
	Events chan Event

	// FailCall makes the named call fail, for testing mid-frame error
	// propagation. Empty means never fail.
	FailCall string

	model         *Buffer
	x, y          int
	style         Style
	cursorVisible bool
	cursorShape   CursorShape
	cursorBlink   bool
	flushCount    int
	resetCount    int
}

var _ Backend = (*MockBackend)(nil)

// errInjected is returned from the call named by FailCall.
var errInjected = errors.New("injected backend failure")

// NewMockBackend creates a mock terminal with the given dimensions.
func NewMockBackend(width, height int) *MockBackend {
	return &MockBackend{
		width:       width,
		height:      height,
		Events:      make(chan Event, 16),
		model:       NewBuffer(width, height),
		cursorShape: CursorBlock,
		cursorBlink: true,
	}
}

// Model returns the buffer the recorded calls have been replayed into.
func (m *MockBackend) Model() *Buffer {
	return m.model
}

// ModelCursor returns the cursor descriptor the calls produced, nil when
// hidden.
func (m *MockBackend) ModelCursor() *Cursor {
	if !m.cursorVisible {
		return nil
	}
	return &Cursor{Shape: m.cursorShape, Blinking: m.cursorBlink, X: m.x, Y: m.y}
}

// FlushCount returns how many times Flush has been called.
func (m *MockBackend) FlushCount() int {
	return m.flushCount
}

// ResetCount returns how many times Reset has been called.
func (m *MockBackend) ResetCount() int {
	return m.resetCount
}

// ClearCalls empties the op log without touching the model. Tests call
// it after setup frames so assertions only see the calls under test.
func (m *MockBackend) ClearCalls() {
	m.Calls = nil
}

// SetSize changes the dimensions reported by Size and resizes the model
// to match. Tests pair it with a pushed ResizeEvent the way a real
// terminal delivers one.
func (m *MockBackend) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.model.Resize(width, height, 0)
}

// record logs a call and returns the injected error when the call is the
// one set up to fail.
func (m *MockBackend) record(call string) error {
	m.Calls = append(m.Calls, call)
	name := call
	if i := strings.IndexByte(call, '('); i >= 0 {
		name = call[:i]
	}
	if m.FailCall != "" && name == m.FailCall {
		return errInjected
	}
	return nil
}

func (m *MockBackend) Size() (width, height int, err error) {
	if err := m.record("Size()"); err != nil {
		return 0, 0, err
	}
	return m.width, m.height, nil
}

func (m *MockBackend) SetTitle(title string) error {
	if err := m.record(fmt.Sprintf("SetTitle(%q)", title)); err != nil {
		return err
	}
	m.model.SetTitle(title)
	return nil
}

func (m *MockBackend) ShowCursor() error {
	if err := m.record("ShowCursor()"); err != nil {
		return err
	}
	m.cursorVisible = true
	return nil
}

func (m *MockBackend) HideCursor() error {
	if err := m.record("HideCursor()"); err != nil {
		return err
	}
	m.cursorVisible = false
	return nil
}

func (m *MockBackend) SetCursorShape(shape CursorShape) error {
	if err := m.record(fmt.Sprintf("SetCursorShape(%d)", shape)); err != nil {
		return err
	}
	m.cursorShape = shape
	return nil
}

func (m *MockBackend) SetCursorBlink(blinking bool) error {
	if err := m.record(fmt.Sprintf("SetCursorBlink(%t)", blinking)); err != nil {
		return err
	}
	m.cursorBlink = blinking
	return nil
}

func (m *MockBackend) SetCursorPos(x, y int) error {
	if err := m.record(fmt.Sprintf("SetCursorPos(%d,%d)", x, y)); err != nil {
		return err
	}
	m.x, m.y = x, y
	return nil
}

func (m *MockBackend) SetForeground(c Color) error {
	if err := m.record(fmt.Sprintf("SetForeground(%s)", c)); err != nil {
		return err
	}
	m.style.Fg = c
	return nil
}

func (m *MockBackend) SetBackground(c Color) error {
	if err := m.record(fmt.Sprintf("SetBackground(%s)", c)); err != nil {
		return err
	}
	m.style.Bg = c
	return nil
}

func (m *MockBackend) SetIntensity(i Intensity) error {
	if err := m.record(fmt.Sprintf("SetIntensity(%d)", i)); err != nil {
		return err
	}
	m.style.Intensity = i
	return nil
}

func (m *MockBackend) SetItalic(on bool) error {
	if err := m.record(fmt.Sprintf("SetItalic(%t)", on)); err != nil {
		return err
	}
	m.style.Italic = on
	return nil
}

func (m *MockBackend) SetUnderline(on bool) error {
	if err := m.record(fmt.Sprintf("SetUnderline(%t)", on)); err != nil {
		return err
	}
	m.style.Underline = on
	return nil
}

func (m *MockBackend) SetBlink(on bool) error {
	if err := m.record(fmt.Sprintf("SetBlink(%t)", on)); err != nil {
		return err
	}
	m.style.Blink = on
	return nil
}

func (m *MockBackend) SetStrikethrough(on bool) error {
	if err := m.record(fmt.Sprintf("SetStrikethrough(%t)", on)); err != nil {
		return err
	}
	m.style.Strikethrough = on
	return nil
}

// Write replays text into the model cluster by cluster, keeping
// combining marks on their base cell, and advances the write position
// by display width.
func (m *MockBackend) Write(text string) error {
	if err := m.record(fmt.Sprintf("Write(%q)", text)); err != nil {
		return err
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		for _, r := range runes {
			m.model.WriteRune(m.x, m.y, r, m.style)
		}
		// Real terminals clamp cursor advance at the right edge; the
		// differ relies on that when it elides moves.
		m.x = max(min(m.x+g.Width(), m.width-1), 0)
	}
	return nil
}

func (m *MockBackend) Flush() error {
	if err := m.record("Flush()"); err != nil {
		return err
	}
	m.flushCount++
	return nil
}

func (m *MockBackend) Reset() error {
	if err := m.record("Reset()"); err != nil {
		return err
	}
	m.resetCount++
	return nil
}

func (m *MockBackend) WaitEvent(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-m.Events:
		return ev, nil
	}
}
