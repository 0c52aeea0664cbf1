package cvpdf

import (
	"errors"
	"testing"
)

func TestA4(t *testing.T) {
	t.Parallel()

	geo := A4()
	if err := geo.Validate(); err != nil {
		t.Fatalf("A4().Validate() error = %v", err)
	}
	if got := geo.UsableWidth(); got != 170 {
		t.Errorf("UsableWidth() = %v, want 170", got)
	}
	if got := geo.UsableHeight(); got != 250 {
		t.Errorf("UsableHeight() = %v, want 250", got)
	}
	if got := geo.FooterY(); got != 285 {
		t.Errorf("FooterY() = %v, want 285", got)
	}
}

func TestPageGeometry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*PageGeometry)
	}{
		{name: "zero width", modify: func(g *PageGeometry) { g.Width = 0 }},
		{name: "negative height", modify: func(g *PageGeometry) { g.Height = -1 }},
		{name: "negative margin", modify: func(g *PageGeometry) { g.MarginTop = -5 }},
		{name: "margins eat the width", modify: func(g *PageGeometry) { g.MarginLeft, g.MarginRight = 105, 105 }},
		{name: "break above top margin", modify: func(g *PageGeometry) { g.BreakY = 10 }},
		{name: "break below footer", modify: func(g *PageGeometry) { g.BreakY = 290 }},
		{name: "negative reserve", modify: func(g *PageGeometry) { g.SectionReserve = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			geo := A4()
			tt.modify(&geo)
			if err := geo.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Validate() error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
