package cvpdf

import "strings"

// Wrap splits text into lines no wider than width when set in spec.
// Words are added greedily; a word that alone exceeds width is split
// between characters so that no returned line overflows.
// Whitespace runs collapse to a single space. Empty text yields no lines.
func Wrap(text string, width float64, spec StyleSpec, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string
	for _, word := range words {
		if current == "" {
			current = word
		} else if candidate := current + " " + word; m.TextWidth(candidate, spec) <= width {
			current = candidate
			continue
		} else {
			lines = append(lines, current)
			current = word
		}

		// current holds a single word here; split it if it cannot fit alone.
		for m.TextWidth(current, spec) > width {
			head, tail := splitWord(current, width, spec, m)
			lines = append(lines, head)
			current = tail
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits width and the rest.
// At least one rune is always taken so progress is guaranteed; a single
// glyph wider than width is therefore emitted on its own line.
func splitWord(word string, width float64, spec StyleSpec, m Measurer) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.TextWidth(string(runes[:n+1]), spec) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
