package cvpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
)

// DefaultPreviewDPI is the raster density of PNG previews.
const DefaultPreviewDPI = 96.0

// previewPageGap separates stacked pages in the preview, in pixels.
const previewPageGap = 16

// previewBackground fills the gap between pages.
var previewBackground = color.RGBA{R: 229, G: 231, B: 235, A: 255}

// previewRenderer rasterises documents to a single PNG with pages stacked
// vertically. Text is drawn with the Go fonts, so compose with
// NewTrueTypeMeasurer for matching line widths.
type previewRenderer struct {
	dpi float64
}

// NewPreviewRenderer returns a Renderer producing a PNG preview.
// A non-positive dpi selects DefaultPreviewDPI.
func NewPreviewRenderer(dpi float64) Renderer {
	if dpi <= 0 {
		dpi = DefaultPreviewDPI
	}
	return &previewRenderer{dpi: dpi}
}

func (r *previewRenderer) Extension() string   { return "png" }
func (r *previewRenderer) ContentType() string { return "image/png" }
func (r *previewRenderer) Close() error        { return nil }

// px converts millimetres to pixels at the renderer's density.
func (r *previewRenderer) px(v float64) float64 {
	return v / mmPerInch * r.dpi
}

// Render draws every page and returns the encoded PNG.
func (r *previewRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: nothing to preview", ErrRender)
	}

	fonts, err := loadGoFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	styles := doc.Styles
	if styles == nil {
		styles = DefaultStyleTable()
	}

	pageW := int(r.px(doc.Geometry.Width) + 0.5)
	pageH := int(r.px(doc.Geometry.Height) + 0.5)
	n := len(doc.Pages)
	canvas := gg.NewContext(pageW, n*pageH+(n-1)*previewPageGap)
	canvas.SetColor(previewBackground)
	canvas.Clear()

	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := r.page(page, pageW, pageH, styles, fonts)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrRender, page.Number, err)
		}
		canvas.DrawImage(img, 0, i*(pageH+previewPageGap))
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// page rasterises one page onto a white canvas.
func (r *previewRenderer) page(p Page, w, h int, styles StyleTable, fonts *goFonts) (image.Image, error) {
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, img := range p.Images {
		decoded, err := png.Decode(bytes.NewReader(img.PNG))
		if err != nil {
			return nil, fmt.Errorf("decoding profile image: %w", err)
		}
		side := int(r.px(img.Size) + 0.5)
		dc.Push()
		dc.Translate(r.px(img.X), r.px(img.Y))
		b := decoded.Bounds()
		dc.Scale(float64(side)/float64(b.Dx()), float64(side)/float64(b.Dy()))
		dc.DrawImage(decoded, 0, 0)
		dc.Pop()
	}

	for _, rule := range p.Rules {
		dc.SetRGB255(int(rule.Color.R), int(rule.Color.G), int(rule.Color.B))
		dc.SetLineWidth(r.px(rule.Width))
		dc.DrawLine(r.px(rule.X1), r.px(rule.Y1), r.px(rule.X2), r.px(rule.Y2))
		dc.Stroke()
	}

	for _, run := range p.Runs {
		spec := styles.Spec(run.Style)
		dc.SetFontFace(fonts.face(spec, r.dpi))
		dc.SetRGB255(int(spec.Color.R), int(spec.Color.G), int(spec.Color.B))
		ax := 0.0
		if run.Align == AlignCenter {
			ax = 0.5
		}
		dc.DrawStringAnchored(run.Text, r.px(run.X), r.px(run.Y), ax, 0)
	}

	return dc.Image(), nil
}
