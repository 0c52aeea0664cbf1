package cvpdf

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename builds the suggested file name for a generated résumé:
// <Subject>_CV_<LANG>_<year>.<ext>. Diacritics are stripped from the
// subject and every run of characters other than ASCII letters and digits
// becomes a single underscore. An empty ext yields no extension.
func Filename(subject, lang string, year int, ext string) string {
	parts := []string{}
	if s := asciiToken(subject); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, "CV")
	if l := asciiToken(lang); l != "" {
		parts = append(parts, strings.ToUpper(l))
	}
	parts = append(parts, strconv.Itoa(year))

	name := strings.Join(parts, "_")
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return name
}

// asciiToken folds s to ASCII letters and digits joined by underscores.
func asciiToken(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
