package cvpdf

import (
	"fmt"
	"strings"
)

// Layout constants in millimetres.
const (
	headingLeadBefore = 10.0 // Space added above a section heading
	ruleOffset        = 1.0  // Rule distance below the heading baseline
	ruleWidth         = 0.5
	itemIndent        = 5.0 // Indent of bullets and category items
	categoryGap       = 2.0 // Space after each category
	bulletMarker      = "• "
	itemSeparator     = ", "
)

// Default profile image anchor on page 1, in millimetres.
const (
	DefaultImageX    = 160.0
	DefaultImageY    = 15.0
	DefaultImageSize = 40.0
)

// ProfileImage is a decoded, circle-masked profile photo encoded as PNG.
type ProfileImage struct {
	PNG    []byte
	Width  int // Pixels
	Height int // Pixels
}

// ComposeInput holds everything one composition needs.
// Strings must already be localized.
type ComposeInput struct {
	Sections  []Section
	Image     *ProfileImage // nil when no image is available
	Footer    string        // Placed on the last page; empty for none
	Subject   string        // Person the résumé belongs to
	Language  string        // Active language code
	Year      int           // Used in the file name
	Extension string        // File name extension, without dot
	Metadata  Metadata
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithStyleTable replaces the built-in style table.
func WithStyleTable(t StyleTable) ComposerOption {
	return func(c *Composer) {
		c.styles = t
	}
}

// WithImageAnchor places the profile image at (x, y) with the given side length.
func WithImageAnchor(x, y, size float64) ComposerOption {
	return func(c *Composer) {
		c.imageX, c.imageY, c.imageSize = x, y, size
	}
}

// Composer lays sections out onto pages. It holds no per-document state
// and may be shared across goroutines.
type Composer struct {
	geo       PageGeometry
	measurer  Measurer
	styles    StyleTable
	imageX    float64
	imageY    float64
	imageSize float64
}

// NewComposer validates geo and returns a Composer measuring text with m.
func NewComposer(geo PageGeometry, m Measurer, opts ...ComposerOption) (*Composer, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil measurer", ErrInvalidGeometry)
	}

	c := &Composer{
		geo:       geo,
		measurer:  m,
		styles:    DefaultStyleTable(),
		imageX:    DefaultImageX,
		imageY:    DefaultImageY,
		imageSize: DefaultImageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.styles.validate(); err != nil {
		return nil, err
	}
	if c.imageSize <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive", ErrInvalidGeometry)
	}
	return c, nil
}

// Geometry returns the page geometry the composer lays out for.
func (c *Composer) Geometry() PageGeometry {
	return c.geo
}

// Compose places every section onto pages and returns the finished document.
// It performs no I/O and reads no clock.
func (c *Composer) Compose(in ComposeInput) (*Document, error) {
	l := &layout{
		c: c,
		doc: &Document{
			Geometry:     c.geo,
			Styles:       c.styles,
			Metadata:     in.Metadata,
			Filename:     Filename(in.Subject, in.Language, in.Year, in.Extension),
			ImageOmitted: in.Image == nil,
		},
	}
	l.newPage()

	if in.Image != nil {
		l.doc.Pages[0].Images = append(l.doc.Pages[0].Images, PlacedImage{
			X:    c.imageX,
			Y:    c.imageY,
			Size: c.imageSize,
			PNG:  in.Image.PNG,
		})
	}

	for _, sec := range in.Sections {
		l.section(sec)
	}

	if in.Footer != "" {
		last := &l.doc.Pages[len(l.doc.Pages)-1]
		last.Runs = append(last.Runs, TextRun{
			Text:  in.Footer,
			X:     c.geo.Width / 2,
			Y:     c.geo.FooterY(),
			Style: StyleFooter,
			Align: AlignCenter,
		})
	}

	return l.doc, nil
}

// line is one wrapped line waiting to be placed.
type line struct {
	text  string
	x     float64
	style Style
}

// layout is the cursor state of one composition.
type layout struct {
	c   *Composer
	doc *Document
	y   float64
}

// page returns the page currently being filled.
func (l *layout) page() *Page {
	return &l.doc.Pages[len(l.doc.Pages)-1]
}

// newPage starts a page and resets the cursor to the top margin.
func (l *layout) newPage() {
	l.doc.Pages = append(l.doc.Pages, Page{Number: len(l.doc.Pages) + 1})
	l.y = l.c.geo.MarginTop
}

// ensure starts a new page when required mm do not fit above the break line.
// A fresh page is never broken again, so oversized content cannot loop.
func (l *layout) ensure(required float64) {
	if l.y+required > l.c.geo.BreakY && l.y > l.c.geo.MarginTop {
		l.newPage()
	}
}

// place puts a line at the cursor after a break check and advances the cursor.
func (l *layout) place(ln line) {
	spec := l.c.styles.Spec(ln.style)
	l.ensure(spec.LineHeight)
	p := l.page()
	p.Runs = append(p.Runs, TextRun{Text: ln.text, X: ln.x, Y: l.y, Style: ln.style})
	l.y += spec.LineHeight
}

// height returns the vertical space lines take.
func (l *layout) height(lines []line) float64 {
	var h float64
	for _, ln := range lines {
		h += l.c.styles.Spec(ln.style).LineHeight
	}
	return h
}

// keepLines is how many leading lines of a unit are never separated by a page break.
const keepLines = 2

// keepHeight returns the height of the leading lines of unit kept together.
func (l *layout) keepHeight(unit []line) float64 {
	return l.height(unit[:min(len(unit), keepLines)])
}

// section lays out one section, heading first.
func (l *layout) section(sec Section) {
	units := l.units(sec)

	var first float64
	if len(units) > 0 {
		first = l.keepHeight(units[0])
	}

	if sec.Heading != "" {
		l.heading(sec.Heading, first)
	} else {
		l.ensure(first)
	}

	for i, unit := range units {
		if i > 0 {
			l.ensure(l.keepHeight(unit))
		}
		for _, ln := range unit {
			l.place(ln)
		}
		if sec.Kind == KindCategoryBlock {
			l.y += categoryGap
		}
	}

	l.y += sec.SpaceAfter
}

// heading places a section heading and its rule. The heading stays on the
// same page as the first content unit below it.
func (l *layout) heading(text string, firstUnit float64) {
	geo := l.c.geo
	spec := l.c.styles.Spec(StyleHeading)

	required := headingLeadBefore + spec.LineHeight + firstUnit
	if required < geo.SectionReserve {
		required = geo.SectionReserve
	}
	l.ensure(required)

	l.y += headingLeadBefore
	p := l.page()
	p.Runs = append(p.Runs, TextRun{Text: text, X: geo.MarginLeft, Y: l.y, Style: StyleHeading})
	p.Rules = append(p.Rules, Rule{
		X1:    geo.MarginLeft,
		Y1:    l.y + ruleOffset,
		X2:    geo.Width - geo.MarginRight,
		Y2:    l.y + ruleOffset,
		Width: ruleWidth,
		Color: spec.Color,
	})
	l.y += spec.LineHeight
}

// units splits a section into groups of lines: one per paragraph, bullet,
// or category. Page breaks never separate the first lines of a group.
func (l *layout) units(sec Section) [][]line {
	geo := l.c.geo
	left := geo.MarginLeft
	width := geo.UsableWidth()
	style := resolveStyle(sec)

	switch sec.Kind {
	case KindTitle, KindSubtitle:
		if sec.Text == "" {
			return nil
		}
		return [][]line{{{text: sec.Text, x: left, style: style}}}

	case KindLabeledLine:
		text := sec.Text
		if sec.Label != "" {
			text = sec.Label + ": " + sec.Text
		}
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return [][]line{{{text: text, x: left, style: style}}}

	case KindBodyParagraph:
		var unit []line
		for _, t := range l.wrap(sec.Text, width, style) {
			unit = append(unit, line{text: t, x: left, style: style})
		}
		if len(unit) == 0 {
			return nil
		}
		return [][]line{unit}

	case KindBulletList:
		var units [][]line
		if sec.Label != "" {
			units = append(units, []line{{text: sec.Label, x: left, style: StyleStrong}})
		}
		markerWidth := l.c.measurer.TextWidth(bulletMarker, l.c.styles.Spec(style))
		for _, item := range sec.Items {
			wrapped := l.wrap(item, width-itemIndent-markerWidth, style)
			var unit []line
			for i, t := range wrapped {
				if i == 0 {
					unit = append(unit, line{text: bulletMarker + t, x: left + itemIndent, style: style})
					continue
				}
				unit = append(unit, line{text: t, x: left + itemIndent + markerWidth, style: style})
			}
			if len(unit) > 0 {
				units = append(units, unit)
			}
		}
		// The label travels with the first bullet.
		if sec.Label != "" && len(units) > 1 {
			units = append([][]line{append(units[0], units[1]...)}, units[2:]...)
		}
		return units

	case KindCategoryBlock:
		var units [][]line
		for _, cat := range sec.Categories {
			unit := []line{{text: cat.Label + ":", x: left, style: StyleStrong}}
			for _, t := range l.wrap(strings.Join(cat.Items, itemSeparator), width-itemIndent, style) {
				unit = append(unit, line{text: t, x: left + itemIndent, style: style})
			}
			units = append(units, unit)
		}
		return units
	}
	return nil
}

// wrap wraps text for style.
func (l *layout) wrap(text string, width float64, style Style) []string {
	return Wrap(text, width, l.c.styles.Spec(style), l.c.measurer)
}
