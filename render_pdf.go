package cvpdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// fpdfRenderer writes documents with go-pdf/fpdf using the Helvetica core
// font, the same metrics NewCoreFontMeasurer lays text out with.
type fpdfRenderer struct {
	now func() time.Time
}

// NewPDFRenderer returns a Renderer producing PDF without external processes.
func NewPDFRenderer() Renderer {
	return &fpdfRenderer{now: time.Now}
}

func (r *fpdfRenderer) Extension() string   { return "pdf" }
func (r *fpdfRenderer) ContentType() string { return "application/pdf" }
func (r *fpdfRenderer) Close() error        { return nil }

// Render draws every page of doc and returns the PDF bytes.
func (r *fpdfRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrRender)
	}

	geo := doc.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(geo.MarginLeft, geo.MarginTop, geo.MarginRight)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.now())
	pdf.SetCompression(true)

	meta := doc.Metadata
	pdf.SetTitle(meta.Title, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetKeywords(meta.Keywords, true)
	pdf.SetCreator(meta.Creator, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	styles := doc.Styles
	if styles == nil {
		styles = DefaultStyleTable()
	}

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.AddPage()

		for i, img := range page.Images {
			name := fmt.Sprintf("profile-%d-%d", page.Number, i)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
			pdf.ImageOptions(name, img.X, img.Y, img.Size, img.Size, false, opts, 0, "")
		}

		for _, rule := range page.Rules {
			pdf.SetDrawColor(int(rule.Color.R), int(rule.Color.G), int(rule.Color.B))
			pdf.SetLineWidth(rule.Width)
			pdf.Line(rule.X1, rule.Y1, rule.X2, rule.Y2)
		}

		for _, run := range page.Runs {
			spec := styles.Spec(run.Style)
			pdf.SetFont(coreFontFamily, fontStyle(spec), spec.FontSize)
			pdf.SetTextColor(int(spec.Color.R), int(spec.Color.G), int(spec.Color.B))
			text := tr(run.Text)
			x := run.X
			if run.Align == AlignCenter {
				x -= pdf.GetStringWidth(text) / 2
			}
			pdf.Text(x, run.Y, text)
		}

		if pdf.Err() {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRender, page.Number, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
