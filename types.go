package cvpdf

import (
	"fmt"
	"strings"
)

// SectionKind selects how a Section is laid out.
type SectionKind int

// Section kinds.
const (
	KindTitle SectionKind = iota
	KindSubtitle
	KindBodyParagraph
	KindLabeledLine
	KindBulletList
	KindCategoryBlock
)

// String returns the kind name.
func (k SectionKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindSubtitle:
		return "subtitle"
	case KindBodyParagraph:
		return "paragraph"
	case KindLabeledLine:
		return "labeled-line"
	case KindBulletList:
		return "bullet-list"
	case KindCategoryBlock:
		return "category-block"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Section is one block of résumé content. Sections are laid out in the
// order they are given and are not modified by the composer.
type Section struct {
	Kind       SectionKind
	Heading    string     // Optional section heading drawn with a rule above the content
	Label      string     // LabeledLine prefix or BulletList label
	Text       string     // Title, Subtitle, LabeledLine, BodyParagraph
	Items      []string   // BulletList items
	Categories []Category // CategoryBlock entries
	Style      Style      // StyleDefault uses the kind's default
	SpaceAfter float64    // Extra leading after the section, in mm
}

// Category is one labeled group of a CategoryBlock.
type Category struct {
	Label string
	Items []string
}

// Align controls horizontal anchoring of a text run.
type Align int

// Alignment values.
const (
	AlignLeft Align = iota
	AlignCenter
)

// TextRun is a single placed line of text. Y is the baseline.
type TextRun struct {
	Text  string
	X     float64
	Y     float64
	Style Style
	Align Align
}

// Rule is a horizontal separator drawn under a section heading.
type Rule struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          RGB
}

// PlacedImage is the profile photo, already masked and encoded as PNG.
type PlacedImage struct {
	X, Y, Size float64
	PNG        []byte
}

// Page holds the content placed on one page.
type Page struct {
	Number int
	Runs   []TextRun
	Rules  []Rule
	Images []PlacedImage
}

// Metadata holds document properties written by renderers that support them.
type Metadata struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
	Creator  string
	Language string
}

// Document is the paginated result of a composition.
type Document struct {
	Geometry     PageGeometry
	Styles       StyleTable
	Pages        []Page
	Metadata     Metadata
	Filename     string
	ImageOmitted bool
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PlacedRun is a TextRun together with the page it sits on.
type PlacedRun struct {
	Page int
	TextRun
}

// Runs returns every text run in page order.
func (d *Document) Runs() []PlacedRun {
	var runs []PlacedRun
	for _, p := range d.Pages {
		for _, r := range p.Runs {
			runs = append(runs, PlacedRun{Page: p.Number, TextRun: r})
		}
	}
	return runs
}

// Text returns the document text, one run per line, pages separated by a form feed.
func (d *Document) Text() string {
	var b strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			b.WriteString("\f")
		}
		for _, r := range p.Runs {
			b.WriteString(r.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
