package tundra

import (
	"errors"
	"fmt"
	"strings"
)

// ColorType distinguishes the color representations.
type ColorType uint8

const (
	// ColorDefault is the terminal's own default color.
	ColorDefault ColorType = iota
	// ColorANSI is a 256-palette index.
	ColorANSI
	// ColorRGB is a 24-bit true color.
	ColorRGB
)

// Color is a terminal color: the default, a 256-palette index, or a
// 24-bit RGB value. The 16 named colors are palette indices 0-15. The
// zero value is the terminal default.
type Color struct {
	typ ColorType
	// ANSI colors keep the palette index in r; RGB uses all three.
	r, g, b uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{typ: ColorDefault}
}

// ANSIColor returns the color at a 256-palette index.
func ANSIColor(index uint8) Color {
	return Color{typ: ColorANSI, r: index}
}

// RGBColor returns a 24-bit true color.
func RGBColor(r, g, b uint8) Color {
	return Color{typ: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses "#RRGGBB" or "#RGB" into an RGB color.
func HexColor(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	switch len(hex) {
	case 6:
		r, err := parseHexByte(hex[0:2])
		if err != nil {
			return Color{}, err
		}
		g, err := parseHexByte(hex[2:4])
		if err != nil {
			return Color{}, err
		}
		b, err := parseHexByte(hex[4:6])
		if err != nil {
			return Color{}, err
		}
		return RGBColor(r, g, b), nil
	case 3:
		r, err := parseHexNibble(hex[0])
		if err != nil {
			return Color{}, err
		}
		g, err := parseHexNibble(hex[1])
		if err != nil {
			return Color{}, err
		}
		b, err := parseHexNibble(hex[2])
		if err != nil {
			return Color{}, err
		}
		// Short form doubles each nibble: #f00 is #ff0000.
		return RGBColor(r<<4|r, g<<4|g, b<<4|b), nil
	default:
		return Color{}, errors.New("invalid hex color format: expected #RGB or #RRGGBB")
	}
}

func parseHexByte(s string) (uint8, error) {
	if len(s) != 2 {
		return 0, errors.New("invalid hex byte")
	}
	high, err := parseHexNibble(s[0])
	if err != nil {
		return 0, err
	}
	low, err := parseHexNibble(s[1])
	if err != nil {
		return 0, err
	}
	return high<<4 | low, nil
}

func parseHexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errors.New("invalid hex character")
	}
}

// Type returns the color's representation.
func (c Color) Type() ColorType {
	return c.typ
}

// IsDefault reports whether this is the terminal's default color.
func (c Color) IsDefault() bool {
	return c.typ == ColorDefault
}

// ANSI returns the palette index. It panics on a non-ANSI color.
func (c Color) ANSI() uint8 {
	if c.typ != ColorANSI {
		panic("Color.ANSI() called on non-ANSI color")
	}
	return c.r
}

// RGB returns the color channels. It panics on a non-RGB color.
func (c Color) RGB() (r, g, b uint8) {
	if c.typ != ColorRGB {
		panic("Color.RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// Equal returns true if both colors are identical.
func (c Color) Equal(other Color) bool {
	if c.typ != other.typ {
		return false
	}
	switch c.typ {
	case ColorDefault:
		return true
	case ColorANSI:
		return c.r == other.r
	case ColorRGB:
		return c.r == other.r && c.g == other.g && c.b == other.b
	}
	return false
}

// String returns a human-readable form of the color.
func (c Color) String() string {
	switch c.typ {
	case ColorANSI:
		return fmt.Sprintf("ansi(%d)", c.r)
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	}
	return "default"
}

// ToANSI approximates an RGB color by a 256-palette entry, mapping
// grays onto the grayscale ramp (232-255) and everything else into the
// 6x6x6 color cube (16-231). Non-RGB colors are returned unchanged.
func (c Color) ToANSI() Color {
	if c.typ != ColorRGB {
		return c
	}

	r, g, b := c.r, c.g, c.b

	if r == g && g == b {
		// The ramp runs 8..238; the cube corners cover the extremes.
		if r < 8 {
			return ANSIColor(16)
		}
		if r > 248 {
			return ANSIColor(231)
		}
		gray := uint8(232 + (int(r)-8)*24/240)
		return ANSIColor(gray)
	}

	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255

	return ANSIColor(uint8(16 + 36*ri + 6*gi + bi))
}

// To16 approximates a 256-palette color to the nearest of the 16 basic
// colors, for terminals without 256-color support. Indices 0-15, RGB,
// and default colors are returned unchanged.
func (c Color) To16() Color {
	if c.typ != ColorANSI || c.r < 16 {
		return c
	}

	r, g, b := palette256RGB(c.r)
	best, bestDist := uint8(0), 1<<31
	for i, base := range base16RGB {
		dr := int(r) - int(base[0])
		dg := int(g) - int(base[1])
		db := int(b) - int(base[2])
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = uint8(i), d
		}
	}
	return ANSIColor(best)
}

// base16RGB holds the xterm defaults for the 16 basic colors.
var base16RGB = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// cubeLevels are the channel values of the 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// palette256RGB returns the RGB value of a color-cube or grayscale
// palette index (16-255).
func palette256RGB(index uint8) (r, g, b uint8) {
	if index >= 232 {
		gray := 8 + 10*(index-232)
		return gray, gray, gray
	}
	i := index - 16
	return cubeLevels[i/36], cubeLevels[i/6%6], cubeLevels[i%6]
}

// The eight standard ANSI colors.
var (
	Black   = ANSIColor(0)
	Red     = ANSIColor(1)
	Green   = ANSIColor(2)
	Yellow  = ANSIColor(3)
	Blue    = ANSIColor(4)
	Magenta = ANSIColor(5)
	Cyan    = ANSIColor(6)
	White   = ANSIColor(7)
)

// Their high-intensity variants.
var (
	BrightBlack   = ANSIColor(8)
	BrightRed     = ANSIColor(9)
	BrightGreen   = ANSIColor(10)
	BrightYellow  = ANSIColor(11)
	BrightBlue    = ANSIColor(12)
	BrightMagenta = ANSIColor(13)
	BrightCyan    = ANSIColor(14)
	BrightWhite   = ANSIColor(15)
)
