package cvpdf

import (
	"fmt"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Measurer reports the rendered width of a string in millimetres.
// Implementations must be safe for concurrent use.
type Measurer interface {
	TextWidth(text string, spec StyleSpec) float64
}

// Compile-time interface checks.
var (
	_ Measurer = (*coreFontMeasurer)(nil)
	_ Measurer = (*trueTypeMeasurer)(nil)
)

// pointsToMM converts typographic points to millimetres.
const pointsToMM = 25.4 / 72

// coreFontFamily is the PDF base-14 font used by the PDF renderer.
const coreFontFamily = "Helvetica"

// coreFontMeasurer measures with the Helvetica AFM metrics shipped in fpdf,
// which are exactly the metrics the PDF renderer lays text out with.
type coreFontMeasurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewCoreFontMeasurer returns a Measurer matching NewPDFRenderer output.
func NewCoreFontMeasurer() Measurer {
	pdf := fpdf.New("P", "mm", "A4", "")
	return &coreFontMeasurer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (m *coreFontMeasurer) TextWidth(text string, spec StyleSpec) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(coreFontFamily, fontStyle(spec), spec.FontSize)
	return m.pdf.GetStringWidth(m.tr(text))
}

// fontStyle returns the fpdf style string for spec.
func fontStyle(spec StyleSpec) string {
	if spec.Bold {
		return "B"
	}
	return ""
}

// goFonts holds the parsed Go font family, shared by the TrueType measurer
// and the PNG preview renderer.
type goFonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var (
	goFontsOnce sync.Once
	goFontsVal  *goFonts
	goFontsErr  error
)

// loadGoFonts parses the embedded Go fonts once.
func loadGoFonts() (*goFonts, error) {
	goFontsOnce.Do(func() {
		regular, err := truetype.Parse(goregular.TTF)
		if err != nil {
			goFontsErr = fmt.Errorf("parsing Go Regular: %w", err)
			return
		}
		bold, err := truetype.Parse(gobold.TTF)
		if err != nil {
			goFontsErr = fmt.Errorf("parsing Go Bold: %w", err)
			return
		}
		goFontsVal = &goFonts{regular: regular, bold: bold}
	})
	return goFontsVal, goFontsErr
}

// face returns a font face for spec at the given DPI.
func (f *goFonts) face(spec StyleSpec, dpi float64) font.Face {
	ttf := f.regular
	if spec.Bold {
		ttf = f.bold
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    spec.FontSize,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
}

// faceKey identifies a cached face.
type faceKey struct {
	size float64
	bold bool
}

// trueTypeMeasurer measures with the Go fonts used by the PNG preview.
type trueTypeMeasurer struct {
	mu    sync.Mutex
	fonts *goFonts
	faces map[faceKey]font.Face
}

// NewTrueTypeMeasurer returns a Measurer matching NewPreviewRenderer output.
func NewTrueTypeMeasurer() (Measurer, error) {
	fonts, err := loadGoFonts()
	if err != nil {
		return nil, err
	}
	return &trueTypeMeasurer{fonts: fonts, faces: make(map[faceKey]font.Face)}, nil
}

func (m *trueTypeMeasurer) TextWidth(text string, spec StyleSpec) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{size: spec.FontSize, bold: spec.Bold}
	face, ok := m.faces[key]
	if !ok {
		// At 72 DPI one pixel is one point.
		face = m.fonts.face(spec, 72)
		m.faces[key] = face
	}
	advance := font.MeasureString(face, text)
	return float64(advance) / 64 * pointsToMM
}
