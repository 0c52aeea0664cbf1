package cvpdf

import "fmt"

// Style is a semantic style tag. Renderers resolve it through a StyleTable.
type Style int

// Style tags. StyleDefault means "use the section kind's default".
const (
	StyleDefault Style = iota
	StyleTitle
	StyleSubtitle
	StyleHeading
	StyleStrong
	StyleBody
	StyleMuted
	StyleSmall
	StyleFooter
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleDefault:
		return "default"
	case StyleTitle:
		return "title"
	case StyleSubtitle:
		return "subtitle"
	case StyleHeading:
		return "heading"
	case StyleStrong:
		return "strong"
	case StyleBody:
		return "body"
	case StyleMuted:
		return "muted"
	case StyleSmall:
		return "small"
	case StyleFooter:
		return "footer"
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette colours.
var (
	ColorPrimary   = RGB{14, 165, 233}  // sky-500
	ColorText      = RGB{31, 41, 55}    // gray-800
	ColorLightText = RGB{107, 114, 128} // gray-500
)

// StyleSpec is the font size (pt), weight, colour and line advance (mm) of a style.
type StyleSpec struct {
	FontSize   float64
	Bold       bool
	Color      RGB
	LineHeight float64
}

// StyleTable maps every style tag to its spec.
type StyleTable map[Style]StyleSpec

// DefaultStyleTable returns the built-in style table.
func DefaultStyleTable() StyleTable {
	return StyleTable{
		StyleTitle:    {FontSize: 24, Bold: true, Color: ColorText, LineHeight: 8},
		StyleSubtitle: {FontSize: 14, Color: ColorPrimary, LineHeight: 6},
		StyleHeading:  {FontSize: 14, Bold: true, Color: ColorPrimary, LineHeight: 8},
		StyleStrong:   {FontSize: 11, Bold: true, Color: ColorText, LineHeight: 5},
		StyleBody:     {FontSize: 10, Color: ColorText, LineHeight: 5},
		StyleMuted:    {FontSize: 10, Color: ColorLightText, LineHeight: 5},
		StyleSmall:    {FontSize: 9, Color: ColorText, LineHeight: 4.5},
		StyleFooter:   {FontSize: 8, Color: ColorLightText, LineHeight: 4},
	}
}

// Spec returns the spec for s, falling back to StyleBody for unknown tags.
func (t StyleTable) Spec(s Style) StyleSpec {
	if spec, ok := t[s]; ok {
		return spec
	}
	return t[StyleBody]
}

// validate checks that every concrete style has a positive size and line height.
func (t StyleTable) validate() error {
	for s := StyleTitle; s <= StyleFooter; s++ {
		spec, ok := t[s]
		if !ok {
			return fmt.Errorf("%w: style table missing %s", ErrInvalidGeometry, s)
		}
		if spec.FontSize <= 0 || spec.LineHeight <= 0 {
			return fmt.Errorf("%w: style %s needs positive size and line height", ErrInvalidGeometry, s)
		}
	}
	return nil
}

// defaultStyle returns the style used by a kind when the section does not override it.
func defaultStyle(k SectionKind) Style {
	switch k {
	case KindTitle:
		return StyleTitle
	case KindSubtitle:
		return StyleSubtitle
	case KindLabeledLine:
		return StyleMuted
	case KindBulletList, KindCategoryBlock:
		return StyleSmall
	}
	return StyleBody
}

// resolveStyle returns the style a section's body text is set in.
func resolveStyle(sec Section) Style {
	if sec.Style != StyleDefault {
		return sec.Style
	}
	return defaultStyle(sec.Kind)
}
