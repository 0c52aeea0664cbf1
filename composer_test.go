package cvpdf

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// runeMeasurer gives every rune the same advance, so line widths are
// predictable: a line fits when len([]rune(text))*perRune <= width.
type runeMeasurer struct {
	perRune float64
}

func (m runeMeasurer) TextWidth(text string, _ StyleSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * m.perRune
}

// testMeasurer is 2mm per rune: 85 runes fill the A4 usable width.
var testMeasurer = runeMeasurer{perRune: 2}

func newTestComposer(t *testing.T, opts ...ComposerOption) *Composer {
	t.Helper()
	c, err := NewComposer(A4(), testMeasurer, opts...)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	return c
}

// longWords returns n words that each need a line of their own.
func longWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = strings.Repeat("a", 60)
	}
	return strings.Join(words, " ")
}

// runsByText indexes placed runs by their text; later duplicates win.
func runsByText(doc *Document) map[string]PlacedRun {
	m := make(map[string]PlacedRun)
	for _, r := range doc.Runs() {
		m[r.Text] = r
	}
	return m
}

// assertWithinPage checks that every run except the footer sits between the
// top margin and the break line.
func assertWithinPage(t *testing.T, doc *Document) {
	t.Helper()
	geo := doc.Geometry
	for _, r := range doc.Runs() {
		if r.Style == StyleFooter {
			continue
		}
		if r.Y > geo.BreakY || r.Y < geo.MarginTop {
			t.Errorf("run %q on page %d at y=%.2f outside [%.2f, %.2f]", r.Text, r.Page, r.Y, geo.MarginTop, geo.BreakY)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewComposer
// ---------------------------------------------------------------------------

func TestNewComposer(t *testing.T) {
	t.Parallel()

	badStyles := DefaultStyleTable()
	badStyles[StyleBody] = StyleSpec{FontSize: 10}
	missingStyles := DefaultStyleTable()
	delete(missingStyles, StyleFooter)

	narrow := A4()
	narrow.MarginLeft = 150
	narrow.MarginRight = 60

	tests := []struct {
		name string
		geo  PageGeometry
		m    Measurer
		opts []ComposerOption
	}{
		{name: "invalid geometry", geo: narrow, m: testMeasurer},
		{name: "nil measurer", geo: A4(), m: nil},
		{name: "zero line height", geo: A4(), m: testMeasurer, opts: []ComposerOption{WithStyleTable(badStyles)}},
		{name: "missing style", geo: A4(), m: testMeasurer, opts: []ComposerOption{WithStyleTable(missingStyles)}},
		{name: "zero image size", geo: A4(), m: testMeasurer, opts: []ComposerOption{WithImageAnchor(0, 0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewComposer(tt.geo, tt.m, tt.opts...)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("NewComposer() error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCompose - Placement
// ---------------------------------------------------------------------------

func TestCompose_Header(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindTitle, Text: "Jasson Gómez"},
			{Kind: KindSubtitle, Text: "Full Stack Developer"},
			{Kind: KindLabeledLine, Label: "Email", Text: "dev@example.com"},
			{Kind: KindLabeledLine, Text: "El Salvador"},
			{Kind: KindLabeledLine, Label: "Phone"},
		},
		Image:     &ProfileImage{PNG: []byte("png"), Width: 160, Height: 160},
		Subject:   "Jasson Gómez",
		Language:  "es",
		Year:      2025,
		Extension: "pdf",
		Metadata:  Metadata{Title: "CV", Language: "es"},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if doc.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1", doc.PageCount())
	}
	if doc.Filename != "Jasson_Gomez_CV_ES_2025.pdf" {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if doc.ImageOmitted {
		t.Error("ImageOmitted = true with an image")
	}
	if doc.Metadata.Title != "CV" {
		t.Errorf("Metadata = %+v", doc.Metadata)
	}

	want := []TextRun{
		{Text: "Jasson Gómez", X: 20, Y: 20, Style: StyleTitle},
		{Text: "Full Stack Developer", X: 20, Y: 28, Style: StyleSubtitle},
		{Text: "Email: dev@example.com", X: 20, Y: 34, Style: StyleMuted},
		{Text: "El Salvador", X: 20, Y: 39, Style: StyleMuted},
		{Text: "Phone: ", X: 20, Y: 44, Style: StyleMuted},
	}
	if got := doc.Pages[0].Runs; !reflect.DeepEqual(got, want) {
		t.Errorf("Runs =\n%+v\nwant\n%+v", got, want)
	}

	images := doc.Pages[0].Images
	if len(images) != 1 {
		t.Fatalf("Images = %d, want 1", len(images))
	}
	if img := images[0]; img.X != DefaultImageX || img.Y != DefaultImageY || img.Size != DefaultImageSize {
		t.Errorf("image placed at (%.0f, %.0f) size %.0f", img.X, img.Y, img.Size)
	}
}

func TestCompose_NoImage(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{{Kind: KindTitle, Text: "Name"}},
		Subject:  "Name",
		Language: "en",
		Year:     2024,
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !doc.ImageOmitted {
		t.Error("ImageOmitted = false without an image")
	}
	if len(doc.Pages[0].Images) != 0 {
		t.Error("image placed without an image")
	}
	if doc.Filename != "Name_CV_EN_2024" {
		t.Errorf("Filename = %q", doc.Filename)
	}
}

func TestCompose_ImageAnchor(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t, WithImageAnchor(150, 10, 30))
	doc, err := c.Compose(ComposeInput{
		Image:    &ProfileImage{PNG: []byte("png")},
		Subject:  "Name",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	want := PlacedImage{X: 150, Y: 10, Size: 30, PNG: []byte("png")}
	if got := doc.Pages[0].Images[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("image = %+v, want %+v", got, want)
	}
}

func TestCompose_Heading(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBodyParagraph, Heading: "About Me", Text: "Short text."},
		},
		Subject:  "Name",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	page := doc.Pages[0]
	if len(page.Runs) != 2 {
		t.Fatalf("Runs = %+v", page.Runs)
	}
	heading, body := page.Runs[0], page.Runs[1]
	if heading.Style != StyleHeading || heading.Y != 30 {
		t.Errorf("heading = %+v, want heading style at y=30", heading)
	}
	if body.Y != 38 {
		t.Errorf("body y = %.2f, want 38", body.Y)
	}

	if len(page.Rules) != 1 {
		t.Fatalf("Rules = %d, want 1", len(page.Rules))
	}
	rule := page.Rules[0]
	if rule.X1 != 20 || rule.X2 != 190 || rule.Y1 != 31 || rule.Y1 != rule.Y2 {
		t.Errorf("rule = %+v", rule)
	}
	if rule.Color != ColorPrimary {
		t.Errorf("rule colour = %v, want primary", rule.Color)
	}
}

func TestCompose_BulletsAndCategories(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBulletList, Label: "Acme", Items: []string{"Built things", "", "Shipped"}},
			{Kind: KindCategoryBlock, Categories: []Category{
				{Label: "Frontend", Items: []string{"React", "Vue"}},
				{Label: "Backend", Items: []string{"Go"}},
			}},
		},
		Subject:  "Name",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	runs := runsByText(doc)

	if r := runs["Acme"]; r.Style != StyleStrong || r.X != 20 {
		t.Errorf("label = %+v", r)
	}
	if r := runs["• Built things"]; r.X != 20+itemIndent || r.Style != StyleSmall {
		t.Errorf("bullet = %+v", r)
	}
	if _, ok := runs["• "]; ok {
		t.Error("empty bullet item was placed")
	}
	if r := runs["Frontend:"]; r.Style != StyleStrong {
		t.Errorf("category label = %+v", r)
	}
	if r := runs["React, Vue"]; r.X != 20+itemIndent {
		t.Errorf("category items = %+v", r)
	}
	if gap := runs["Backend:"].Y - runs["React, Vue"].Y; gap != 4.5+categoryGap {
		t.Errorf("gap between categories = %.2f, want %.2f", gap, 4.5+categoryGap)
	}
}

func TestCompose_BulletContinuationIndent(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	item := strings.Repeat("word ", 40)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{{Kind: KindBulletList, Items: []string{item}}},
		Subject:  "Name",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	runs := doc.Pages[0].Runs
	if len(runs) < 2 {
		t.Fatalf("expected a wrapped bullet, got %d run(s)", len(runs))
	}
	marker := testMeasurer.TextWidth(bulletMarker, StyleSpec{})
	if !strings.HasPrefix(runs[0].Text, bulletMarker) {
		t.Errorf("first line %q lacks the marker", runs[0].Text)
	}
	for _, r := range runs[1:] {
		if strings.HasPrefix(r.Text, bulletMarker) {
			t.Errorf("continuation %q repeats the marker", r.Text)
		}
		if r.X != 20+itemIndent+marker {
			t.Errorf("continuation x = %.2f, want %.2f", r.X, 20+itemIndent+marker)
		}
	}
	for _, r := range runs {
		if right := r.X + testMeasurer.TextWidth(r.Text, StyleSpec{}); right > 190 {
			t.Errorf("line %q ends at %.2f past the right margin", r.Text, right)
		}
	}
}

func TestCompose_InputNotModified(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{Kind: KindBulletList, Heading: "Experience", Label: "Acme", Items: []string{"a", "b"}},
		{Kind: KindCategoryBlock, Categories: []Category{{Label: "Go", Items: []string{"x"}}}},
	}
	before := make([]Section, len(sections))
	for i, s := range sections {
		before[i] = s
		before[i].Items = append([]string(nil), s.Items...)
		before[i].Categories = append([]Category(nil), s.Categories...)
	}

	c := newTestComposer(t)
	if _, err := c.Compose(ComposeInput{Sections: sections, Subject: "N", Language: "en"}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !reflect.DeepEqual(sections, before) {
		t.Errorf("sections modified:\n%+v\nwant\n%+v", sections, before)
	}
}

// ---------------------------------------------------------------------------
// TestCompose - Pagination
// ---------------------------------------------------------------------------

func TestCompose_PageBreaks(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBodyParagraph, Text: longWords(120)},
		},
		Footer:   "Generated from portfolio website",
		Subject:  "Name",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	// 50 body lines fit: baselines 20 through 265.
	if doc.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", doc.PageCount())
	}
	for i, p := range doc.Pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i+1, p.Number)
		}
		if p.Runs[0].Y != 20 {
			t.Errorf("page %d starts at y=%.2f, want top margin", p.Number, p.Runs[0].Y)
		}
	}
	if got := len(doc.Pages[0].Runs); got != 50 {
		t.Errorf("page 1 holds %d lines, want 50", got)
	}
	assertWithinPage(t, doc)
}

func TestCompose_Footer(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)

	t.Run("last page only", func(t *testing.T) {
		t.Parallel()

		doc, err := c.Compose(ComposeInput{
			Sections: []Section{{Kind: KindBodyParagraph, Text: longWords(60)}},
			Footer:   "footer",
			Subject:  "N",
			Language: "en",
		})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}

		var footers []PlacedRun
		for _, r := range doc.Runs() {
			if r.Style == StyleFooter {
				footers = append(footers, r)
			}
		}
		if len(footers) != 1 {
			t.Fatalf("found %d footer runs, want 1", len(footers))
		}
		f := footers[0]
		if f.Page != doc.PageCount() {
			t.Errorf("footer on page %d, want last page %d", f.Page, doc.PageCount())
		}
		if f.Y != A4().FooterY() || f.X != 105 || f.Align != AlignCenter {
			t.Errorf("footer = %+v", f)
		}
	})

	t.Run("empty footer", func(t *testing.T) {
		t.Parallel()

		doc, err := c.Compose(ComposeInput{
			Sections: []Section{{Kind: KindTitle, Text: "Name"}},
			Subject:  "N",
			Language: "en",
		})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		for _, r := range doc.Runs() {
			if r.Style == StyleFooter {
				t.Errorf("unexpected footer run %+v", r)
			}
		}
	})
}

func TestCompose_HeadingKeptWithContent(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	// 48 lines leave the cursor at y=260, too low for a heading.
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBodyParagraph, Text: longWords(48)},
			{Kind: KindBulletList, Heading: "Experience", Items: []string{"First bullet"}},
		},
		Subject:  "N",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	runs := runsByText(doc)
	heading, bullet := runs["Experience"], runs["• First bullet"]
	if heading.Page != 2 || bullet.Page != 2 {
		t.Fatalf("heading on page %d, bullet on page %d, want both on 2", heading.Page, bullet.Page)
	}
	if heading.Y != 30 {
		t.Errorf("heading y = %.2f, want 30", heading.Y)
	}
	if len(doc.Pages[1].Rules) != 1 || len(doc.Pages[0].Rules) != 0 {
		t.Error("heading rule not on the heading's page")
	}
}

func TestCompose_SectionReserve(t *testing.T) {
	t.Parallel()

	// 44 lines leave y=240: a heading plus one line needs 22.5mm and fits,
	// but the 40mm reserve does not.
	geo := A4()
	geo.SectionReserve = 40
	c, err := NewComposer(geo, testMeasurer)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBodyParagraph, Text: longWords(44)},
			{Kind: KindBulletList, Heading: "Skills", Items: []string{"Go"}},
		},
		Subject:  "N",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if p := runsByText(doc)["Skills"].Page; p != 2 {
		t.Errorf("heading on page %d, want 2", p)
	}

	// With the default 30mm reserve it stays on page 1.
	doc, err = newTestComposer(t).Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindBodyParagraph, Text: longWords(44)},
			{Kind: KindBulletList, Heading: "Skills", Items: []string{"Go"}},
		},
		Subject:  "N",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if p := runsByText(doc)["Skills"].Page; p != 1 {
		t.Errorf("heading on page %d, want 1", p)
	}
}

func TestCompose_KeepLinesTogether(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	items := make([]string, 40)
	for i := range items {
		// Three lines each at 85 runes per line minus the indent.
		items[i] = longWords(3)
	}
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindTitle, Text: "Name"},
			{Kind: KindBulletList, Heading: "Experience", Label: "Acme", Items: items},
		},
		Subject:  "N",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if doc.PageCount() < 2 {
		t.Fatalf("PageCount() = %d, want several pages", doc.PageCount())
	}

	runs := doc.Runs()
	for i, r := range runs {
		if !strings.HasPrefix(r.Text, bulletMarker) || i+1 >= len(runs) {
			continue
		}
		if next := runs[i+1]; next.Page != r.Page {
			t.Errorf("bullet %d split after its first line (page %d -> %d)", i, r.Page, next.Page)
		}
	}
	if label := runsByText(doc)["Acme"]; label.Page != 1 {
		t.Errorf("label on page %d, want 1", label.Page)
	}
	assertWithinPage(t, doc)
}

func TestCompose_OversizedUnitTerminates(t *testing.T) {
	t.Parallel()

	// A single category far taller than a page must still be laid out.
	items := make([]string, 400)
	for i := range items {
		items[i] = strings.Repeat("z", 30)
	}
	c := newTestComposer(t)
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{{Kind: KindCategoryBlock, Heading: "Everything", Categories: []Category{{Label: "All", Items: items}}}},
		Subject:  "N",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if doc.PageCount() < 3 {
		t.Errorf("PageCount() = %d, want at least 3", doc.PageCount())
	}
	assertWithinPage(t, doc)
}

func TestCompose_ResumeScenario(t *testing.T) {
	t.Parallel()

	c := newTestComposer(t)
	bullets := []string{
		"Developed and maintained a corporate ERP system",
		"Implemented REST APIs and microservices",
		"Led the migration to containerized deployments",
	}
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindTitle, Text: "Jasson Gómez"},
			{Kind: KindSubtitle, Text: "Full Stack Developer", SpaceAfter: 2},
			{Kind: KindLabeledLine, Label: "Email", Text: "dev@example.com"},
			{Kind: KindBodyParagraph, Heading: "About Me", Text: longWords(3)},
			{Kind: KindBulletList, Heading: "Experience", Label: "Acme, 2021 - Present", Items: bullets},
			{Kind: KindBulletList, Label: "Globex, 2019 - 2021", Items: bullets},
			{Kind: KindCategoryBlock, Heading: "Technical Skills", Categories: []Category{
				{Label: "Frontend", Items: []string{"React", "Vue.js", "Next.js"}},
				{Label: "Backend", Items: []string{"Node.js", "Go", "Laravel"}},
			}},
			{Kind: KindBulletList, Heading: "Languages", Items: []string{"Spanish: Native", "English: Intermediate"}},
			{Kind: KindBodyParagraph, Heading: "Education", Text: "Systems Engineering"},
		},
		Footer:    "Generated from portfolio website • October 5, 2025",
		Image:     &ProfileImage{PNG: []byte("png")},
		Subject:   "Jasson Gómez",
		Language:  "en",
		Year:      2025,
		Extension: "pdf",
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	assertWithinPage(t, doc)

	// Headings appear in section order.
	var headings []string
	for _, r := range doc.Runs() {
		if r.Style == StyleHeading {
			headings = append(headings, r.Text)
		}
	}
	want := []string{"About Me", "Experience", "Technical Skills", "Languages", "Education"}
	if !reflect.DeepEqual(headings, want) {
		t.Errorf("headings = %v, want %v", headings, want)
	}

	// Runs advance down each page.
	for _, p := range doc.Pages {
		for i := 1; i < len(p.Runs); i++ {
			if p.Runs[i].Y < p.Runs[i-1].Y {
				t.Errorf("page %d: run %q above its predecessor", p.Number, p.Runs[i].Text)
			}
		}
	}

	text := doc.Text()
	if !strings.Contains(text, "Email: dev@example.com") || !strings.Contains(text, "• Led the migration") {
		t.Errorf("Text() missing content:\n%s", text)
	}
	if doc.Filename != "Jasson_Gomez_CV_EN_2025.pdf" {
		t.Errorf("Filename = %q", doc.Filename)
	}
}

// ---------------------------------------------------------------------------
// TestDocument
// ---------------------------------------------------------------------------

func TestDocument_Text(t *testing.T) {
	t.Parallel()

	doc := &Document{Pages: []Page{
		{Number: 1, Runs: []TextRun{{Text: "a"}, {Text: "b"}}},
		{Number: 2, Runs: []TextRun{{Text: "c"}}},
	}}
	if got, want := doc.Text(), "a\nb\n\fc\n"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	runs := doc.Runs()
	if len(runs) != 3 || runs[2].Page != 2 {
		t.Errorf("Runs() = %+v", runs)
	}
}

func TestKindAndStyleNames(t *testing.T) {
	t.Parallel()

	if got := KindCategoryBlock.String(); got != "category-block" {
		t.Errorf("KindCategoryBlock.String() = %q", got)
	}
	if got := SectionKind(42).String(); got != "kind(42)" {
		t.Errorf("SectionKind(42).String() = %q", got)
	}
	if got := StyleFooter.String(); got != "footer" {
		t.Errorf("StyleFooter.String() = %q", got)
	}
	if got := ColorPrimary.Hex(); got != "#0ea5e9" {
		t.Errorf("ColorPrimary.Hex() = %q", got)
	}
	if got := DefaultStyleTable().Spec(Style(99)); got != DefaultStyleTable()[StyleBody] {
		t.Errorf("unknown style spec = %+v, want body", got)
	}
}

func TestCompose_SixSectionBreak(t *testing.T) {
	t.Parallel()

	// The bullet list ends at y=118. The skills heading needs 30mm, so a
	// 140mm break line forces exactly one break, right before it.
	geo := A4()
	geo.BreakY = 140
	c, err := NewComposer(geo, testMeasurer)
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}

	categories := make([]Category, 6)
	for i := range categories {
		categories[i] = Category{Label: "Category " + string(rune('A'+i)), Items: []string{"Go", "SQL"}}
	}
	doc, err := c.Compose(ComposeInput{
		Sections: []Section{
			{Kind: KindTitle, Text: "Jasson Gómez"},
			{Kind: KindSubtitle, Text: "Full Stack Developer"},
			{Kind: KindBodyParagraph, Heading: "About Me", Text: strings.Repeat("word ", 80)},
			{Kind: KindBulletList, Heading: "Experience", Label: "Acme", Items: []string{"one", "two", "three", "four"}},
			{Kind: KindCategoryBlock, Heading: "Technical Skills", Categories: categories},
		},
		Footer:   "Generated from portfolio website",
		Subject:  "Jasson Gómez",
		Language: "en",
		Year:     2025,
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want exactly one break", doc.PageCount())
	}
	runs := runsByText(doc)
	for _, text := range []string{"Experience", "Acme", "• one", "• two", "• three", "• four"} {
		if runs[text].Page != 1 {
			t.Errorf("%q on page %d, want 1", text, runs[text].Page)
		}
	}
	if h := runs["Technical Skills"]; h.Page != 2 || h.Y != 30 {
		t.Errorf("skills heading = page %d y=%.2f, want top of page 2", h.Page, h.Y)
	}
	if f := runs["Generated from portfolio website"]; f.Page != 2 {
		t.Errorf("footer on page %d, want 2", f.Page)
	}
	assertWithinPage(t, doc)
}

func TestCompose_Deterministic(t *testing.T) {
	t.Parallel()

	in := ComposeInput{
		Sections: []Section{
			{Kind: KindTitle, Text: "Name"},
			{Kind: KindBodyParagraph, Heading: "About", Text: longWords(70)},
			{Kind: KindCategoryBlock, Heading: "Skills", Categories: []Category{{Label: "Go", Items: []string{"a", "b"}}}},
		},
		Footer:   "footer",
		Subject:  "Name",
		Language: "en",
		Year:     2025,
	}
	c := newTestComposer(t)

	first, err := c.Compose(in)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	second, err := c.Compose(in)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("composing the same input twice gave different documents")
	}
}

func TestCompose_EmptySections(t *testing.T) {
	t.Parallel()

	doc, err := newTestComposer(t).Compose(ComposeInput{Subject: "Name", Language: "en", Year: 2025})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if doc.PageCount() != 1 || len(doc.Pages[0].Runs) != 0 {
		t.Errorf("empty input gave %d page(s) with %d run(s)", doc.PageCount(), len(doc.Pages[0].Runs))
	}
}
