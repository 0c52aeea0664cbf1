package cvpdf

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	// 2mm per rune: width 20 holds 10 runes.
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{
			name:  "empty",
			text:  "",
			width: 20,
			want:  nil,
		},
		{
			name:  "whitespace only",
			text:  " \t\n ",
			width: 20,
			want:  nil,
		},
		{
			name:  "fits on one line",
			text:  "go is fun",
			width: 20,
			want:  []string{"go is fun"},
		},
		{
			name:  "exact fit",
			text:  "abcde fghi",
			width: 20,
			want:  []string{"abcde fghi"},
		},
		{
			name:  "greedy break",
			text:  "one two three four",
			width: 20,
			want:  []string{"one two", "three four"},
		},
		{
			name:  "whitespace collapses",
			text:  "one\n\ntwo   three",
			width: 20,
			want:  []string{"one two", "three"},
		},
		{
			name:  "oversized word is split",
			text:  "abcdefghijklmnopqrstuvwxyz",
			width: 20,
			want:  []string{"abcdefghij", "klmnopqrst", "uvwxyz"},
		},
		{
			name:  "oversized word after short word",
			text:  "hi abcdefghijkl end",
			width: 20,
			want:  []string{"hi", "abcdefghij", "kl end"},
		},
		{
			name:  "multibyte runes split whole",
			text:  "ñññññññññññññ",
			width: 20,
			want:  []string{"ññññññññññ", "ñññ"},
		},
		{
			name:  "width narrower than a glyph",
			text:  "abc",
			width: 1,
			want:  []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Wrap(tt.text, tt.width, StyleSpec{}, testMeasurer)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrap_NoLineOverflows(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 20) + strings.Repeat("x", 200)
	measurers := map[string]Measurer{
		"fixed":     testMeasurer,
		"helvetica": NewCoreFontMeasurer(),
	}
	spec := DefaultStyleTable().Spec(StyleBody)

	for name, m := range measurers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lines := Wrap(text, 60, spec, m)
			if len(lines) < 2 {
				t.Fatalf("Wrap() = %d line(s), want several", len(lines))
			}
			for _, line := range lines {
				if w := m.TextWidth(line, spec); w > 60 {
					t.Errorf("line %q is %.2fmm wide, limit 60", line, w)
				}
			}
			got := strings.ReplaceAll(strings.Join(lines, ""), " ", "")
			if want := strings.ReplaceAll(text, " ", ""); got != want {
				t.Error("wrapping lost or reordered characters")
			}
		})
	}
}
