package tundra

import "unicode/utf8"

// parseInput decodes raw terminal bytes into key events: printable
// runes, control characters, CSI and SS3 escape sequences (arrows,
// function keys, xterm modifiers), and Alt+key as ESC followed by a
// printable. Bytes that decode to nothing are dropped.
func parseInput(data []byte) []Event {
	var events []Event
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				// Lone trailing ESC is the escape key itself.
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}

			next := data[i+1]
			switch next {
			case '[':
				key, mod, consumed := parseCSISequence(data[i:])
				if consumed > 0 {
					if key != KeyNone {
						events = append(events, KeyEvent{Key: key, Mod: mod})
					}
					i += consumed
					continue
				}
				// Malformed CSI; report the ESC and resync.
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue

			case 'O':
				if i+2 < len(data) {
					key := parseSS3(data[i+2])
					if key != KeyNone {
						events = append(events, KeyEvent{Key: key})
						i += 3
						continue
					}
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue

			default:
				// ESC followed by a printable is Alt+key.
				if next >= 0x20 && next < 0x7f {
					events = append(events, KeyEvent{Key: KeyRune, Rune: rune(next), Mod: ModAlt})
					i += 2
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}
		}

		if b < 0x20 {
			if key := controlToKey(b); key != KeyNone {
				events = append(events, KeyEvent{Key: key})
			}
			i++
			continue
		}

		// Most terminals send DEL for the backspace key.
		if b == 0x7f {
			events = append(events, KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		events = append(events, KeyEvent{Key: KeyRune, Rune: r})
		i += size
	}

	return events
}

// controlToKey maps a control byte to its key. The bytes Ctrl+H, Ctrl+I
// and Ctrl+M are what the backspace, tab and enter keys actually send,
// so those win over the letter form.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08:
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}

	// Remaining Ctrl+letter keys map contiguously around the gaps above.
	switch {
	case b >= 0x01 && b <= 0x07: // Ctrl+A .. Ctrl+G
		return KeyCtrlA + Key(b-0x01)
	case b >= 0x0a && b <= 0x0c: // Ctrl+J .. Ctrl+L
		return KeyCtrlJ + Key(b-0x0a)
	case b >= 0x0e && b <= 0x1a: // Ctrl+N .. Ctrl+Z
		return KeyCtrlN + Key(b-0x0e)
	}
	return KeyNone
}

// parseCSISequence decodes one CSI sequence from the start of data,
// returning the key, its modifiers, and how many bytes it consumed.
// A consumed count of zero means the bytes are not a valid sequence.
func parseCSISequence(data []byte) (Key, Modifier, int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		return KeyNone, ModNone, 0
	}

	// Numeric parameters separated by ';', then a final byte naming
	// the key.
	var params []int
	param := 0
	hasParam := false
	i := 2

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			param = param*10 + int(b-'0')
			hasParam = true
			i++
			continue
		}

		if b == ';' {
			params = append(params, param)
			param = 0
			hasParam = false
			i++
			continue
		}

		if b >= 0x40 && b <= 0x7e {
			if hasParam {
				params = append(params, param)
			}
			key, mod := parseCSI(params, b)
			return key, mod, i + 1
		}

		return KeyNone, ModNone, 0
	}

	return KeyNone, ModNone, 0
}

// parseCSI resolves a complete CSI sequence's parameters and final byte
// into a key.
func parseCSI(params []int, final byte) (Key, Modifier) {
	mod := ModNone

	// xterm encodes modifiers as the second parameter: CSI 1;mod X.
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case '~':
		// vt-style keys select by the first parameter: CSI n ~.
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		switch params[0] {
		case 1:
			return KeyHome, mod
		case 2:
			return KeyInsert, mod
		case 3:
			return KeyDelete, mod
		case 4:
			return KeyEnd, mod
		case 5:
			return KeyPageUp, mod
		case 6:
			return KeyPageDown, mod
		case 11:
			return KeyF1, mod
		case 12:
			return KeyF2, mod
		case 13:
			return KeyF3, mod
		case 14:
			return KeyF4, mod
		case 15:
			return KeyF5, mod
		case 17:
			return KeyF6, mod
		case 18:
			return KeyF7, mod
		case 19:
			return KeyF8, mod
		case 20:
			return KeyF9, mod
		case 21:
			return KeyF10, mod
		case 23:
			return KeyF11, mod
		case 24:
			return KeyF12, mod
		}
	}

	return KeyNone, ModNone
}

// parseSS3 maps the byte following ESC O, sent for function and arrow
// keys in application mode.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier unpacks an xterm modifier parameter: one plus a bitmask
// of shift (1), alt (2) and ctrl (4).
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}

	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseInputWithRemainder decodes input, holding back an incomplete
// UTF-8 sequence at the end of data so a rune split across two reads
// survives intact.
func parseInputWithRemainder(data []byte) ([]Event, []byte) {
	remaining := findIncompleteUTF8Suffix(data)
	if len(remaining) > 0 {
		data = data[:len(data)-len(remaining)]
	}

	events := parseInput(data)
	return events, remaining
}

// findIncompleteUTF8Suffix returns the trailing bytes of data that form
// the start of an unfinished UTF-8 sequence, or nil when data ends on a
// rune boundary. A lead byte can sit at most three bytes from the end.
func findIncompleteUTF8Suffix(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]

		if b >= 0xC0 {
			// Lead byte: its high bits encode the sequence length.
			var want int
			switch {
			case b < 0xE0:
				want = 2
			case b < 0xF0:
				want = 3
			default:
				want = 4
			}

			if i < want {
				return data[len(data)-i:]
			}
			return nil
		}

		if b >= 0x80 {
			// Continuation byte, keep looking for its lead.
			continue
		}

		return nil
	}

	return nil
}
