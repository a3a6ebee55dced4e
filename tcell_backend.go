package tundra

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// TcellBackend adapts a tcell.Screen to the Backend interface. It is an
// alternative to TermBackend for programs already embedded in a tcell
// environment, and it powers deterministic tests via tcell's
// SimulationScreen.
//
// tcell keeps its own cell buffer, so the backend tracks the write
// position and active style itself and maps Write onto SetContent.
type TcellBackend struct {
	screen  tcell.Screen
	owned   bool   // whether Reset should Fini the screen
	release func() // returns the device claim, when the backend holds one

	x, y  int
	style tcell.Style

	cursorVisible bool
	cursorShape   CursorShape
	cursorBlink   bool

	events chan tcell.Event
	quit   chan struct{}
	closed bool
}

var _ Backend = (*TcellBackend)(nil)

// NewTcellBackend creates a backend for the default tcell screen,
// consuming the device claim.
func NewTcellBackend(claim *DeviceClaim) (*TcellBackend, error) {
	if claim == nil {
		return nil, errors.New("nil device claim")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		claim.Release()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		claim.Release()
		return nil, err
	}
	b := newTcellBackend(screen)
	b.owned = true
	b.release = claim.Release
	return b, nil
}

// WrapTcellScreen adapts an already initialized screen. The caller
// remains responsible for calling Fini; Reset only stops event
// delivery. No device claim is needed since the caller already owns
// the screen.
func WrapTcellScreen(screen tcell.Screen) *TcellBackend {
	return newTcellBackend(screen)
}

func newTcellBackend(screen tcell.Screen) *TcellBackend {
	b := &TcellBackend{
		screen:      screen,
		style:       tcell.StyleDefault,
		cursorShape: CursorBlock,
		cursorBlink: true,
		events:      make(chan tcell.Event, 16),
		quit:        make(chan struct{}),
	}
	screen.HideCursor()
	go screen.ChannelEvents(b.events, b.quit)
	return b
}

func (b *TcellBackend) Size() (width, height int, err error) {
	w, h := b.screen.Size()
	return w, h, nil
}

func (b *TcellBackend) SetTitle(title string) error {
	b.screen.SetTitle(title)
	return nil
}

func (b *TcellBackend) ShowCursor() error {
	b.cursorVisible = true
	return nil
}

func (b *TcellBackend) HideCursor() error {
	b.cursorVisible = false
	return nil
}

func (b *TcellBackend) SetCursorShape(shape CursorShape) error {
	b.cursorShape = shape
	return nil
}

func (b *TcellBackend) SetCursorBlink(blinking bool) error {
	b.cursorBlink = blinking
	return nil
}

func (b *TcellBackend) SetCursorPos(x, y int) error {
	b.x, b.y = x, y
	return nil
}

func (b *TcellBackend) SetForeground(c Color) error {
	b.style = b.style.Foreground(toTcellColor(c))
	return nil
}

func (b *TcellBackend) SetBackground(c Color) error {
	b.style = b.style.Background(toTcellColor(c))
	return nil
}

func (b *TcellBackend) SetIntensity(i Intensity) error {
	b.style = b.style.Bold(i == IntensityBold).Dim(i == IntensityDim)
	return nil
}

func (b *TcellBackend) SetItalic(on bool) error {
	b.style = b.style.Italic(on)
	return nil
}

func (b *TcellBackend) SetUnderline(on bool) error {
	b.style = b.style.Underline(on)
	return nil
}

func (b *TcellBackend) SetBlink(on bool) error {
	b.style = b.style.Blink(on)
	return nil
}

func (b *TcellBackend) SetStrikethrough(on bool) error {
	b.style = b.style.StrikeThrough(on)
	return nil
}

// Write places text at the write position cluster by cluster, combining
// marks riding along with their base rune, and advances by display width.
func (b *TcellBackend) Write(text string) error {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		b.screen.SetContent(b.x, b.y, runes[0], runes[1:], b.style)
		b.x += g.Width()
	}
	return nil
}

func (b *TcellBackend) Flush() error {
	if b.cursorVisible {
		b.screen.SetCursorStyle(toTcellCursorStyle(b.cursorShape, b.cursorBlink))
		b.screen.ShowCursor(b.x, b.y)
	} else {
		b.screen.HideCursor()
	}
	b.screen.Show()
	return nil
}

// Reset stops event delivery and, for screens the backend created,
// finalizes them and releases the device claim.
func (b *TcellBackend) Reset() error {
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.quit)
	if b.owned {
		b.screen.Fini()
	}
	if b.release != nil {
		b.release()
	}
	return nil
}

func (b *TcellBackend) WaitEvent(ctx context.Context) (Event, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-b.events:
			if !ok {
				return nil, errors.New("screen closed")
			}
			if converted := convertTcellEvent(ev); converted != nil {
				return converted, nil
			}
		}
	}
}

// convertTcellEvent maps a tcell event to an engine Event, or nil for
// event types the engine does not surface (mouse, paste, interrupts).
func convertTcellEvent(ev tcell.Event) Event {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		w, h := tev.Size()
		return ResizeEvent{Width: w, Height: h}
	case *tcell.EventKey:
		return convertTcellKey(tev)
	}
	return nil
}

func convertTcellKey(ev *tcell.EventKey) Event {
	var mod Modifier
	if ev.Modifiers()&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}

	if ev.Key() == tcell.KeyRune {
		return KeyEvent{Key: KeyRune, Rune: ev.Rune(), Mod: mod}
	}

	key, ok := tcellKeyNames[ev.Key()]
	if !ok {
		return nil
	}
	return KeyEvent{Key: key, Mod: mod}
}

var tcellKeyNames = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlSpace:  KeyCtrlSpace,
	tcell.KeyCtrlA:      KeyCtrlA,
	tcell.KeyCtrlB:      KeyCtrlB,
	tcell.KeyCtrlC:      KeyCtrlC,
	tcell.KeyCtrlD:      KeyCtrlD,
	tcell.KeyCtrlE:      KeyCtrlE,
	tcell.KeyCtrlF:      KeyCtrlF,
	tcell.KeyCtrlG:      KeyCtrlG,
	tcell.KeyCtrlJ:      KeyCtrlJ,
	tcell.KeyCtrlK:      KeyCtrlK,
	tcell.KeyCtrlL:      KeyCtrlL,
	tcell.KeyCtrlN:      KeyCtrlN,
	tcell.KeyCtrlO:      KeyCtrlO,
	tcell.KeyCtrlP:      KeyCtrlP,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlR:      KeyCtrlR,
	tcell.KeyCtrlS:      KeyCtrlS,
	tcell.KeyCtrlT:      KeyCtrlT,
	tcell.KeyCtrlU:      KeyCtrlU,
	tcell.KeyCtrlV:      KeyCtrlV,
	tcell.KeyCtrlW:      KeyCtrlW,
	tcell.KeyCtrlX:      KeyCtrlX,
	tcell.KeyCtrlY:      KeyCtrlY,
	tcell.KeyCtrlZ:      KeyCtrlZ,
}

func toTcellColor(c Color) tcell.Color {
	switch c.Type() {
	case ColorANSI:
		return tcell.PaletteColor(int(c.ANSI()))
	case ColorRGB:
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.ColorDefault
}

func toTcellCursorStyle(shape CursorShape, blinking bool) tcell.CursorStyle {
	switch shape {
	case CursorBar:
		if blinking {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	case CursorUnderline:
		if blinking {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	default:
		if blinking {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	}
}
