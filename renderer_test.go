package tundra

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptWidget is a Widget[string] driven by test-provided functions.
type scriptWidget struct {
	draw   func(dst Surface)
	handle func(ev Event) []string

	sizes   [][2]int
	handled int
}

func (w *scriptWidget) Draw(dst Surface) {
	width, height := dst.Size()
	w.sizes = append(w.sizes, [2]int{width, height})
	if w.draw != nil {
		w.draw(dst)
	}
}

func (w *scriptWidget) Handle(ev Event) []string {
	w.handled++
	if w.handle != nil {
		return w.handle(ev)
	}
	return nil
}

// quitOnQ returns "quit" for the q key and nothing otherwise.
func quitOnQ(ev Event) []string {
	if key, ok := ev.(KeyEvent); ok && key.IsRune() && key.Rune == 'q' {
		return []string{"quit"}
	}
	return nil
}

func newTestRenderer(t *testing.T, width, height int) (*Renderer[string], *MockBackend) {
	t.Helper()
	mock := NewMockBackend(width, height)
	r, err := NewRenderer[string](mock)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	mock.ClearCalls()
	return r, mock
}

func TestRenderer_Draw_ReturnsOutputs(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{
		draw:   func(dst Surface) { WriteString(dst, 0, 0, "hi", NewStyle()) },
		handle: quitOnQ,
	}

	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}

	outputs, err := r.Draw(context.Background(), w)
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "quit" {
		t.Errorf("outputs = %v, want [quit]", outputs)
	}
	if got := mock.Model().Grid.Line(0).Cell(0).Content; got != "h" {
		t.Errorf("model cell (0,0) = %q, want \"h\"", got)
	}
	// One flush from renderer construction, one from the frame.
	if mock.FlushCount() != 2 {
		t.Errorf("FlushCount() = %d, want 2", mock.FlushCount())
	}
}

func TestRenderer_Draw_WaitsForOutput(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{handle: quitOnQ}

	// The first event produces no output, so Draw keeps waiting
	// without redrawing.
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'x'}
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}

	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if w.handled != 2 {
		t.Errorf("widget handled %d events, want 2", w.handled)
	}
	if len(w.sizes) != 1 {
		t.Errorf("widget drawn %d times, want 1", len(w.sizes))
	}
}

func TestRenderer_Draw_ContextCancelled(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{
		draw:   func(dst Surface) { WriteString(dst, 0, 0, "stable", NewStyle()) },
		handle: quitOnQ,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Draw(ctx, w); !errors.Is(err, context.Canceled) {
		t.Fatalf("Draw error = %v, want context.Canceled", err)
	}

	// The renderer is re-enterable: the next Draw finds the frame
	// unchanged and writes nothing.
	mock.ClearCalls()
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}
	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw after cancel failed: %v", err)
	}
	for _, call := range mock.Calls {
		if strings.HasPrefix(call, "Write(") {
			t.Errorf("unchanged frame emitted %s", call)
		}
	}
}

func TestRenderer_Draw_Resize(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{handle: quitOnQ}

	mock.SetSize(6, 4)
	mock.Events <- ResizeEvent{Width: 6, Height: 4}
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}

	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := [][2]int{{10, 2}, {6, 4}}
	if len(w.sizes) != 2 || w.sizes[0] != want[0] || w.sizes[1] != want[1] {
		t.Errorf("draw sizes = %v, want %v", w.sizes, want)
	}
	if width, height := r.Size(); width != 6 || height != 4 {
		t.Errorf("Size() = (%d, %d), want (6, 4)", width, height)
	}
}

func TestRenderer_Draw_ResizeToSameSizeIgnored(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{handle: quitOnQ}

	mock.Events <- ResizeEvent{Width: 10, Height: 2}
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}

	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(w.sizes) != 1 {
		t.Errorf("widget drawn %d times, want 1", len(w.sizes))
	}
}

func TestRenderer_StyleRegisterPersists(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	red := NewStyle().Foreground(Red)

	first := &scriptWidget{
		draw:   func(dst Surface) { dst.WriteRune(0, 0, 'x', red) },
		handle: quitOnQ,
	}
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}
	if _, err := r.Draw(context.Background(), first); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// The next frame writes the same color; the register carried across
	// frames makes the foreground call unnecessary.
	mock.ClearCalls()
	second := &scriptWidget{
		draw:   func(dst Surface) { dst.WriteRune(0, 0, 'y', red) },
		handle: quitOnQ,
	}
	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}
	if _, err := r.Draw(context.Background(), second); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	for _, call := range mock.Calls {
		if strings.HasPrefix(call, "SetForeground(") {
			t.Errorf("repeated style emitted %s", call)
		}
	}
}

func TestRenderer_BackendErrorMidFrame(t *testing.T) {
	r, mock := newTestRenderer(t, 4, 1)
	w := &scriptWidget{
		draw:   func(dst Surface) { WriteString(dst, 0, 0, "ab", NewStyle()) },
		handle: quitOnQ,
	}

	mock.FailCall = "Write"
	if _, err := r.Draw(context.Background(), w); !errors.Is(err, errInjected) {
		t.Fatalf("Draw error = %v, want the injected failure", err)
	}

	// Recovery: Refresh re-syncs the backend and forces a full repaint.
	mock.FailCall = ""
	if err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	mock.ClearCalls()

	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}
	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw after Refresh failed: %v", err)
	}

	writes := 0
	for _, call := range mock.Calls {
		if strings.HasPrefix(call, "Write(") {
			writes++
		}
	}
	if writes != 4 {
		t.Errorf("full repaint wrote %d cells, want 4", writes)
	}
	if got := mock.Model().Grid.Line(0).String(); got != "ab  " {
		t.Errorf("model row = %q, want \"ab  \"", got)
	}
}

func TestRenderer_Close(t *testing.T) {
	r, mock := newTestRenderer(t, 4, 1)

	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if mock.ResetCount() != 1 {
		t.Errorf("ResetCount() = %d, want 1", mock.ResetCount())
	}
}

func TestRenderer_Draw_TitleAndCursor(t *testing.T) {
	r, mock := newTestRenderer(t, 10, 2)
	w := &scriptWidget{
		draw: func(dst Surface) {
			dst.SetTitle("demo")
			dst.SetCursor(&Cursor{Shape: CursorBar, X: 2, Y: 1})
		},
		handle: quitOnQ,
	}

	mock.Events <- KeyEvent{Key: KeyRune, Rune: 'q'}
	if _, err := r.Draw(context.Background(), w); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if got := mock.Model().Title; got != "demo" {
		t.Errorf("model title = %q, want \"demo\"", got)
	}
	cur := mock.ModelCursor()
	if cur == nil || cur.X != 2 || cur.Y != 1 || cur.Shape != CursorBar {
		t.Errorf("model cursor = %+v, want bar at (2,1)", cur)
	}
}
