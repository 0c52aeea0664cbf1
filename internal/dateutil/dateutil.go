// Package dateutil formats dates with localized month names.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// FallbackLanguage is used for languages without month names.
const FallbackLanguage = "en"

// LongFormats are the long date formats per language, matching the
// "long" style of en-US and es-ES.
var LongFormats = map[string]string{
	"en": "MMMM D, YYYY",
	"es": "D [de] MMMM [de] YYYY",
}

// monthNames holds full month names per language, January first.
var monthNames = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

// token kinds recognised in a format string.
type token int

const (
	tokLiteral token = iota
	tokYear4
	tokYear2
	tokMonthLong
	tokMonthShort
	tokMonth2
	tokMonth
	tokDay2
	tokDay
)

// dateTokens is ordered by length descending for greedy matching.
var dateTokens = []struct {
	text string
	kind token
}{
	{"YYYY", tokYear4},
	{"MMMM", tokMonthLong},
	{"MMM", tokMonthShort},
	{"YY", tokYear2},
	{"MM", tokMonth2},
	{"DD", tokDay2},
	{"M", tokMonth},
	{"D", tokDay},
}

// part is one parsed piece of a format.
type part struct {
	kind    token
	literal string
}

// parse splits format into tokens and literals.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [de] preserves "de" literally.
func parse(format string) ([]part, error) {
	if format == "" {
		return nil, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return nil, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var parts []part
	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			parts = append(parts, part{kind: tokLiteral, literal: format[i+1 : i+1+end]})
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.text) {
				parts = append(parts, part{kind: t.kind})
				i += len(t.text)
				matched = true
				break
			}
		}

		if !matched {
			parts = append(parts, part{kind: tokLiteral, literal: format[i : i+1]})
			i++
		}
	}
	return parts, nil
}

// Format renders t with format using the month names of lang.
// Unknown languages use English month names.
func Format(t time.Time, format, lang string) (string, error) {
	parts, err := parse(format)
	if err != nil {
		return "", err
	}

	months, ok := monthNames[baseLanguage(lang)]
	if !ok {
		months = monthNames[FallbackLanguage]
	}
	month := months[t.Month()-1]

	var b strings.Builder
	for _, p := range parts {
		switch p.kind {
		case tokLiteral:
			b.WriteString(p.literal)
		case tokYear4:
			b.WriteString(strconv.Itoa(t.Year()))
		case tokYear2:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case tokMonthLong:
			b.WriteString(month)
		case tokMonthShort:
			b.WriteString(string([]rune(month)[:3]))
		case tokMonth2:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case tokMonth:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case tokDay2:
			fmt.Fprintf(&b, "%02d", t.Day())
		case tokDay:
			b.WriteString(strconv.Itoa(t.Day()))
		}
	}
	return b.String(), nil
}

// FormatLong renders t in the long style of lang, for example
// "October 17, 2026" or "17 de octubre de 2026".
func FormatLong(t time.Time, lang string) string {
	format, ok := LongFormats[baseLanguage(lang)]
	if !ok {
		format = LongFormats[FallbackLanguage]
	}
	// Built-in formats always parse.
	s, _ := Format(t, format, lang)
	return s
}

// baseLanguage reduces "es-ES" or "en_US" to "es" or "en".
func baseLanguage(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
