package tundra

import (
	"bytes"
	"testing"
)

func TestParseInput_Runes(t *testing.T) {
	events := parseInput([]byte("aé世"))

	want := []rune{'a', 'é', '世'}
	if len(events) != len(want) {
		t.Fatalf("parseInput returned %d events, want %d", len(events), len(want))
	}
	for i, r := range want {
		ev, ok := events[i].(KeyEvent)
		if !ok || ev.Key != KeyRune || ev.Rune != r {
			t.Errorf("event %d = %+v, want rune %q", i, events[i], r)
		}
	}
}

func TestParseInput_ControlKeys(t *testing.T) {
	tests := []struct {
		b    byte
		want Key
	}{
		{0x00, KeyCtrlSpace},
		{0x01, KeyCtrlA},
		{0x03, KeyCtrlC},
		{0x07, KeyCtrlG},
		{0x08, KeyBackspace},
		{0x09, KeyTab},
		{0x0a, KeyCtrlJ},
		{0x0d, KeyEnter},
		{0x0e, KeyCtrlN},
		{0x1a, KeyCtrlZ},
		{0x7f, KeyBackspace},
	}

	for _, tt := range tests {
		events := parseInput([]byte{tt.b})
		if len(events) != 1 {
			t.Errorf("parseInput(0x%02x) returned %d events, want 1", tt.b, len(events))
			continue
		}
		if ev := events[0].(KeyEvent); ev.Key != tt.want {
			t.Errorf("parseInput(0x%02x) = key %d, want %d", tt.b, ev.Key, tt.want)
		}
	}
}

func TestParseInput_CSISequences(t *testing.T) {
	tests := []struct {
		input   string
		want    Key
		wantMod Modifier
	}{
		{"\x1b[A", KeyUp, ModNone},
		{"\x1b[D", KeyLeft, ModNone},
		{"\x1b[H", KeyHome, ModNone},
		{"\x1b[1;5A", KeyUp, ModCtrl},
		{"\x1b[1;2C", KeyRight, ModShift},
		{"\x1b[1;3B", KeyDown, ModAlt},
		{"\x1b[3~", KeyDelete, ModNone},
		{"\x1b[5~", KeyPageUp, ModNone},
		{"\x1b[15~", KeyF5, ModNone},
		{"\x1b[24~", KeyF12, ModNone},
	}

	for _, tt := range tests {
		events := parseInput([]byte(tt.input))
		if len(events) != 1 {
			t.Errorf("parseInput(%q) returned %d events, want 1", tt.input, len(events))
			continue
		}
		ev := events[0].(KeyEvent)
		if ev.Key != tt.want || ev.Mod != tt.wantMod {
			t.Errorf("parseInput(%q) = key %d mod %d, want key %d mod %d",
				tt.input, ev.Key, ev.Mod, tt.want, tt.wantMod)
		}
	}
}

func TestParseInput_SS3FunctionKeys(t *testing.T) {
	tests := []struct {
		input string
		want  Key
	}{
		{"\x1bOP", KeyF1},
		{"\x1bOS", KeyF4},
		{"\x1bOA", KeyUp},
	}

	for _, tt := range tests {
		events := parseInput([]byte(tt.input))
		if len(events) != 1 {
			t.Errorf("parseInput(%q) returned %d events, want 1", tt.input, len(events))
			continue
		}
		if ev := events[0].(KeyEvent); ev.Key != tt.want {
			t.Errorf("parseInput(%q) = key %d, want %d", tt.input, ev.Key, tt.want)
		}
	}
}

func TestParseInput_AltKey(t *testing.T) {
	events := parseInput([]byte("\x1bx"))
	if len(events) != 1 {
		t.Fatalf("parseInput returned %d events, want 1", len(events))
	}
	ev := events[0].(KeyEvent)
	if ev.Key != KeyRune || ev.Rune != 'x' || ev.Mod != ModAlt {
		t.Errorf("event = %+v, want Alt+x", ev)
	}
}

func TestParseInput_LoneEscape(t *testing.T) {
	events := parseInput([]byte{0x1b})
	if len(events) != 1 {
		t.Fatalf("parseInput returned %d events, want 1", len(events))
	}
	if ev := events[0].(KeyEvent); ev.Key != KeyEscape {
		t.Errorf("event = %+v, want escape", ev)
	}
}

func TestParseInput_MixedSequence(t *testing.T) {
	events := parseInput([]byte("a\x1b[Ab"))
	if len(events) != 3 {
		t.Fatalf("parseInput returned %d events, want 3", len(events))
	}
	if ev := events[0].(KeyEvent); ev.Rune != 'a' {
		t.Errorf("event 0 = %+v, want 'a'", ev)
	}
	if ev := events[1].(KeyEvent); ev.Key != KeyUp {
		t.Errorf("event 1 = %+v, want up", ev)
	}
	if ev := events[2].(KeyEvent); ev.Rune != 'b' {
		t.Errorf("event 2 = %+v, want 'b'", ev)
	}
}

func TestParseInputWithRemainder_PartialUTF8(t *testing.T) {
	full := []byte("a世")

	// Split mid-rune: the trailing partial sequence is returned for the
	// next read to complete.
	events, remaining := parseInputWithRemainder(full[:2])
	if len(events) != 1 {
		t.Fatalf("parseInputWithRemainder returned %d events, want 1", len(events))
	}
	if !bytes.Equal(remaining, full[1:2]) {
		t.Errorf("remaining = % x, want % x", remaining, full[1:2])
	}

	events, remaining = parseInputWithRemainder(append(remaining, full[2:]...))
	if len(remaining) != 0 {
		t.Errorf("remaining = % x after completing the rune, want none", remaining)
	}
	if len(events) != 1 {
		t.Fatalf("parseInputWithRemainder returned %d events, want 1", len(events))
	}
	if ev := events[0].(KeyEvent); ev.Rune != '世' {
		t.Errorf("event = %+v, want '世'", ev)
	}
}

func TestParseInputWithRemainder_CompleteInput(t *testing.T) {
	events, remaining := parseInputWithRemainder([]byte("ab"))
	if len(remaining) != 0 {
		t.Errorf("remaining = % x, want none", remaining)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}
