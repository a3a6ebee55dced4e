package tundra

import (
	"os"
	"strings"
)

// ColorSupport indicates the color depth a terminal can display.
type ColorSupport int

const (
	// ColorNone indicates no color support.
	ColorNone ColorSupport = iota
	// Color16 indicates basic 16-color ANSI support.
	Color16
	// Color256 indicates 256-color palette support.
	Color256
	// ColorTrue indicates 24-bit true color support.
	ColorTrue
)

// Capabilities describes what a terminal can do.
type Capabilities struct {
	Colors    ColorSupport
	TrueColor bool
	Unicode   bool
	AltScreen bool
}

// DetectCapabilities determines terminal capabilities from environment variables.
// Returns conservative defaults when detection fails.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		Colors:    Color16, // Safe default for most terminals
		Unicode:   true,    // Assume modern terminal
		TrueColor: false,
		AltScreen: true,
	}

	// Explicit true color indicators override everything else.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorTrue
		caps.TrueColor = true
	}

	// Terminal emulators known to support true color without advertising it.
	for _, env := range []string{
		"WT_SESSION",       // Windows Terminal
		"ITERM_SESSION_ID", // iTerm2
		"KITTY_WINDOW_ID",  // Kitty
		"KONSOLE_VERSION",  // Konsole
		"VTE_VERSION",      // VTE-based (GNOME Terminal, Tilix, ...)
	} {
		if os.Getenv(env) != "" {
			caps.Colors = ColorTrue
			caps.TrueColor = true
		}
	}

	if caps.TrueColor {
		return caps
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		caps.Colors = ColorNone
		caps.Unicode = false
		caps.AltScreen = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorTrue
		caps.TrueColor = true
	case strings.Contains(term, "256color"):
		caps.Colors = Color256
	}

	return caps
}

// SupportsColor reports whether the terminal can display the given color.
func (c Capabilities) SupportsColor(color Color) bool {
	switch color.Type() {
	case ColorDefault:
		return true
	case ColorANSI:
		return c.Colors >= Color16
	case ColorRGB:
		return c.TrueColor
	}
	return false
}

// String returns a human-readable description of the capabilities.
func (c Capabilities) String() string {
	var parts []string

	switch c.Colors {
	case ColorNone:
		parts = append(parts, "no-color")
	case Color16:
		parts = append(parts, "16-color")
	case Color256:
		parts = append(parts, "256-color")
	case ColorTrue:
		parts = append(parts, "true-color")
	}

	if c.Unicode {
		parts = append(parts, "unicode")
	} else {
		parts = append(parts, "ascii")
	}

	if c.AltScreen {
		parts = append(parts, "altscreen")
	}

	return strings.Join(parts, ", ")
}
