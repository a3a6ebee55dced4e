package tundra

import "testing"

var trueColorCaps = Capabilities{Colors: ColorTrue, TrueColor: true, Unicode: true, AltScreen: true}

func builderOutput(build func(e *escBuilder)) string {
	e := newEscBuilder(64)
	build(e)
	return string(e.Bytes())
}

func TestEscBuilder_MoveTo(t *testing.T) {
	got := builderOutput(func(e *escBuilder) { e.MoveTo(0, 0) })
	if got != "\x1b[1;1H" {
		t.Errorf("MoveTo(0,0) = %q, want CSI 1;1H", got)
	}

	got = builderOutput(func(e *escBuilder) { e.MoveTo(7, 2) })
	if got != "\x1b[3;8H" {
		t.Errorf("MoveTo(7,2) = %q, want CSI 3;8H", got)
	}
}

func TestEscBuilder_CursorVisibility(t *testing.T) {
	if got := builderOutput(func(e *escBuilder) { e.HideCursor() }); got != "\x1b[?25l" {
		t.Errorf("HideCursor = %q", got)
	}
	if got := builderOutput(func(e *escBuilder) { e.ShowCursor() }); got != "\x1b[?25h" {
		t.Errorf("ShowCursor = %q", got)
	}
}

func TestEscBuilder_AltScreen(t *testing.T) {
	if got := builderOutput(func(e *escBuilder) { e.EnterAltScreen() }); got != "\x1b[?1049h" {
		t.Errorf("EnterAltScreen = %q", got)
	}
	if got := builderOutput(func(e *escBuilder) { e.ExitAltScreen() }); got != "\x1b[?1049l" {
		t.Errorf("ExitAltScreen = %q", got)
	}
}

func TestEscBuilder_SetForeground(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		caps Capabilities
		want string
	}{
		{"default", DefaultColor(), trueColorCaps, "\x1b[39m"},
		{"basic", ANSIColor(1), trueColorCaps, "\x1b[31m"},
		{"bright", ANSIColor(9), trueColorCaps, "\x1b[91m"},
		{"palette", ANSIColor(100), trueColorCaps, "\x1b[38;5;100m"},
		{"rgb", RGBColor(1, 2, 3), trueColorCaps, "\x1b[38;2;1;2;3m"},
		{
			"rgb downgraded without truecolor",
			RGBColor(255, 0, 0),
			Capabilities{Colors: Color256},
			"\x1b[38;5;196m",
		},
		{
			"palette downgraded on a 16-color terminal",
			ANSIColor(196),
			Capabilities{Colors: Color16},
			"\x1b[91m",
		},
		{
			"rgb downgraded on a 16-color terminal",
			RGBColor(0, 0, 255),
			Capabilities{Colors: Color16},
			"\x1b[34m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := builderOutput(func(e *escBuilder) { e.SetForeground(tt.c, tt.caps) })
			if got != tt.want {
				t.Errorf("SetForeground(%v) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}

func TestEscBuilder_SetBackground(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{DefaultColor(), "\x1b[49m"},
		{ANSIColor(4), "\x1b[44m"},
		{ANSIColor(12), "\x1b[104m"},
		{ANSIColor(200), "\x1b[48;5;200m"},
		{RGBColor(10, 20, 30), "\x1b[48;2;10;20;30m"},
	}

	for _, tt := range tests {
		got := builderOutput(func(e *escBuilder) { e.SetBackground(tt.c, trueColorCaps) })
		if got != tt.want {
			t.Errorf("SetBackground(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestEscBuilder_SetIntensity(t *testing.T) {
	if got := builderOutput(func(e *escBuilder) { e.SetIntensity(IntensityBold) }); got != "\x1b[1m" {
		t.Errorf("bold = %q", got)
	}
	if got := builderOutput(func(e *escBuilder) { e.SetIntensity(IntensityDim) }); got != "\x1b[2m" {
		t.Errorf("dim = %q", got)
	}
	if got := builderOutput(func(e *escBuilder) { e.SetIntensity(IntensityNormal) }); got != "\x1b[22m" {
		t.Errorf("normal = %q", got)
	}
}

func TestEscBuilder_SetAttr(t *testing.T) {
	tests := []struct {
		code int
		on   bool
		want string
	}{
		{sgrItalic, true, "\x1b[3m"},
		{sgrItalic, false, "\x1b[23m"},
		{sgrUnderline, true, "\x1b[4m"},
		{sgrBlink, false, "\x1b[25m"},
		{sgrStrikethrough, true, "\x1b[9m"},
		{sgrStrikethrough, false, "\x1b[29m"},
	}

	for _, tt := range tests {
		got := builderOutput(func(e *escBuilder) { e.SetAttr(tt.code, tt.on) })
		if got != tt.want {
			t.Errorf("SetAttr(%d, %t) = %q, want %q", tt.code, tt.on, got, tt.want)
		}
	}
}

func TestEscBuilder_SetTitle(t *testing.T) {
	got := builderOutput(func(e *escBuilder) { e.SetTitle("hello") })
	if got != "\x1b]2;hello\x07" {
		t.Errorf("SetTitle = %q", got)
	}

	// Control characters are stripped so they cannot break the OSC
	// string.
	got = builderOutput(func(e *escBuilder) { e.SetTitle("a\x07b\x1bc") })
	if got != "\x1b]2;abc\x07" {
		t.Errorf("SetTitle with controls = %q", got)
	}
}

func TestEscBuilder_SetCursorStyle(t *testing.T) {
	tests := []struct {
		shape    CursorShape
		blinking bool
		want     string
	}{
		{CursorBlock, true, "\x1b[1 q"},
		{CursorBlock, false, "\x1b[2 q"},
		{CursorUnderline, true, "\x1b[3 q"},
		{CursorUnderline, false, "\x1b[4 q"},
		{CursorBar, true, "\x1b[5 q"},
		{CursorBar, false, "\x1b[6 q"},
	}

	for _, tt := range tests {
		got := builderOutput(func(e *escBuilder) { e.SetCursorStyle(tt.shape, tt.blinking) })
		if got != tt.want {
			t.Errorf("SetCursorStyle(%d, %t) = %q, want %q", tt.shape, tt.blinking, got, tt.want)
		}
	}
}

func TestEscBuilder_Reset(t *testing.T) {
	e := newEscBuilder(16)
	e.MoveTo(1, 1)
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", e.Len())
	}
}
