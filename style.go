package tundra

// Intensity is the weight text is written with.
type Intensity uint8

const (
	// IntensityNormal is normal text weight.
	IntensityNormal Intensity = iota
	// IntensityBold is heavier text. Widely supported.
	IntensityBold
	// IntensityDim is fainter text. Not supported everywhere.
	IntensityDim
)

// Style describes how a cell's glyph is written: foreground and background
// colors plus independently toggleable text attributes. The zero value is
// default colors, normal intensity, and no attributes set.
type Style struct {
	Fg            Color
	Bg            Color
	Intensity     Intensity
	Italic        bool
	Underline     bool
	Blink         bool
	Strikethrough bool
}

// NewStyle returns a Style with default colors and no attributes.
func NewStyle() Style {
	return Style{}
}

// Foreground returns a new Style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a new Style with the given background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// Bold returns a new Style with bold intensity.
func (s Style) Bold() Style {
	s.Intensity = IntensityBold
	return s
}

// Dim returns a new Style with dim intensity.
func (s Style) Dim() Style {
	s.Intensity = IntensityDim
	return s
}

// WithItalic returns a new Style with the italic attribute set.
func (s Style) WithItalic() Style {
	s.Italic = true
	return s
}

// WithUnderline returns a new Style with the underline attribute set.
func (s Style) WithUnderline() Style {
	s.Underline = true
	return s
}

// WithBlink returns a new Style with the blink attribute set.
func (s Style) WithBlink() Style {
	s.Blink = true
	return s
}

// WithStrikethrough returns a new Style with the strikethrough attribute set.
func (s Style) WithStrikethrough() Style {
	s.Strikethrough = true
	return s
}

// Equal returns true if both styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) &&
		s.Bg.Equal(other.Bg) &&
		s.Intensity == other.Intensity &&
		s.Italic == other.Italic &&
		s.Underline == other.Underline &&
		s.Blink == other.Blink &&
		s.Strikethrough == other.Strikethrough
}
