package cvpdf

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Renderer turns a composed Document into a binary artifact.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
	Extension() string   // File extension without dot
	ContentType() string // MIME type of the artifact
	Close() error
}

// Compile-time interface checks.
var (
	_ Renderer = (*fpdfRenderer)(nil)
	_ Renderer = (*chromeRenderer)(nil)
	_ Renderer = (*previewRenderer)(nil)
)

// Renderer names accepted by NewRenderer.
const (
	RendererPDF     = "pdf"
	RendererChrome  = "chrome"
	RendererPreview = "png"
)

// RendererOptions tunes renderers that need it. Zero values select defaults.
type RendererOptions struct {
	Timeout time.Duration // Browser timeout for the Chrome renderer
	DPI     float64       // Raster density for the PNG preview
}

// RendererNames lists the accepted renderer names.
var RendererNames = []string{RendererPDF, RendererChrome, RendererPreview}

// NewRenderer returns the renderer registered under name (case-insensitive).
// An empty name selects the PDF renderer.
func NewRenderer(name string, opts RendererOptions) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", RendererPDF:
		return NewPDFRenderer(), nil
	case RendererChrome:
		return NewChromeRenderer(opts.Timeout), nil
	case RendererPreview:
		return NewPreviewRenderer(opts.DPI), nil
	}
	return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownRenderer, name, strings.Join(RendererNames, ", "))
}

// MeasurerFor returns the measurer whose metrics match the named renderer.
func MeasurerFor(name string) (Measurer, error) {
	if strings.EqualFold(name, RendererPreview) {
		return NewTrueTypeMeasurer()
	}
	return NewCoreFontMeasurer(), nil
}
