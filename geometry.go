package cvpdf

import "fmt"

// A4 page dimensions in millimetres.
const (
	a4Width  = 210.0
	a4Height = 297.0
)

// Default layout values in millimetres.
const (
	DefaultMargin         = 20.0
	DefaultMarginBottom   = 12.0
	DefaultBreakY         = 270.0
	DefaultSectionReserve = 30.0
)

// PageGeometry describes the page and its content area in millimetres.
// It is fixed for a whole document.
type PageGeometry struct {
	Width          float64
	Height         float64
	MarginLeft     float64
	MarginRight    float64
	MarginTop      float64
	MarginBottom   float64 // Distance from the page bottom to the footer baseline
	BreakY         float64 // Content placed past this baseline moves to a new page
	SectionReserve float64 // Free space required before a section heading
}

// A4 returns portrait A4 geometry with the default margins.
func A4() PageGeometry {
	return PageGeometry{
		Width:          a4Width,
		Height:         a4Height,
		MarginLeft:     DefaultMargin,
		MarginRight:    DefaultMargin,
		MarginTop:      DefaultMargin,
		MarginBottom:   DefaultMarginBottom,
		BreakY:         DefaultBreakY,
		SectionReserve: DefaultSectionReserve,
	}
}

// UsableWidth is the width available for text.
func (g PageGeometry) UsableWidth() float64 {
	return g.Width - g.MarginLeft - g.MarginRight
}

// UsableHeight is the vertical space between the top margin and the break line.
func (g PageGeometry) UsableHeight() float64 {
	return g.BreakY - g.MarginTop
}

// FooterY is the baseline of the footer run.
func (g PageGeometry) FooterY() float64 {
	return g.Height - g.MarginBottom
}

// Validate reports geometry that cannot hold any content.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: page size %.2fx%.2f", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.MarginLeft < 0 || g.MarginRight < 0 || g.MarginTop < 0 || g.MarginBottom < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidGeometry)
	}
	if g.UsableWidth() <= 0 {
		return fmt.Errorf("%w: usable width %.2f must be positive", ErrInvalidGeometry, g.UsableWidth())
	}
	if g.UsableHeight() <= 0 {
		return fmt.Errorf("%w: usable height %.2f must be positive", ErrInvalidGeometry, g.UsableHeight())
	}
	if g.BreakY > g.FooterY() {
		return fmt.Errorf("%w: break line %.2f below footer baseline %.2f", ErrInvalidGeometry, g.BreakY, g.FooterY())
	}
	if g.SectionReserve < 0 {
		return fmt.Errorf("%w: negative section reserve", ErrInvalidGeometry)
	}
	return nil
}
