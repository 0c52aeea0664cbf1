// Package resume turns the translation catalog and a profile into the
// sections the composer lays out.
package resume

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/jason7337/go-cvpdf/internal/yamlutil"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// FallbackLanguage is consulted when a key is missing in the active language.
const FallbackLanguage = "en"

// Sentinel errors for catalog operations.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoLocales           = errors.New("no locale files found")
)

// Catalog holds flattened translation strings per language.
// It is read-only after loading and safe for concurrent use.
type Catalog struct {
	strings map[string]map[string]string
	langs   []string
	matcher language.Matcher
}

// DefaultCatalog loads the embedded English and Spanish catalogs.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(localeFS, "locales")
}

// LoadCatalog reads every <lang>.yaml file in dir of fsys.
// Nested maps and lists become dotted keys (experience.speedygo.achievements.0).
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing locales: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLocales, dir)
	}

	c := &Catalog{strings: make(map[string]map[string]string, len(files))}
	for _, f := range files {
		lang := strings.TrimSuffix(path.Base(f), ".yaml")
		if _, err := language.ParseBase(lang); err != nil {
			return nil, fmt.Errorf("locale file %s: %w", f, err)
		}

		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("reading locale %s: %w", f, err)
		}
		var tree map[string]any
		if err := yamlutil.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parsing locale %s: %w", f, err)
		}
		c.strings[lang] = yamlutil.Flatten(tree)
		c.langs = append(c.langs, lang)
	}
	sort.Strings(c.langs)

	// The fallback language is preferred when Accept-Language matches nothing.
	tags := []language.Tag{language.Make(FallbackLanguage)}
	for _, l := range c.langs {
		if l != FallbackLanguage {
			tags = append(tags, language.Make(l))
		}
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Languages returns the catalog languages in sorted order.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.langs...)
}

// Supports reports whether lang has a catalog.
func (c *Catalog) Supports(lang string) bool {
	_, ok := c.strings[lang]
	return ok
}

// T returns the string for key in lang, then in FallbackLanguage,
// then the key itself.
func (c *Catalog) T(lang, key string) string {
	if s, ok := c.strings[lang][key]; ok {
		return s
	}
	if s, ok := c.strings[FallbackLanguage][key]; ok {
		return s
	}
	return key
}

// Text is T rendered from inline Markdown to plain text.
func (c *Catalog) Text(lang, key string) string {
	return PlainText(c.T(lang, key))
}

// List returns prefix.0, prefix.1, ... for as long as the keys exist.
func (c *Catalog) List(lang, prefix string) []string {
	var items []string
	for i := 0; ; i++ {
		key := prefix + "." + strconv.Itoa(i)
		s := c.T(lang, key)
		if s == key {
			return items
		}
		items = append(items, PlainText(s))
	}
}

// NormalizeLanguage reduces a BCP 47 tag such as "es-SV" or "EN_us" to a
// catalog language. Unknown languages return ErrUnsupportedLanguage.
func (c *Catalog) NormalizeLanguage(s string) (string, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	if !c.Supports(base.String()) {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedLanguage, s, strings.Join(c.langs, ", "))
	}
	return base.String(), nil
}

// MatchAcceptLanguage picks the best catalog language for an
// Accept-Language header, falling back to FallbackLanguage.
func (c *Catalog) MatchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return FallbackLanguage
	}
	tag, _, _ := c.matcher.Match(tags...)
	base, _ := tag.Base()
	if c.Supports(base.String()) {
		return base.String()
	}
	return FallbackLanguage
}
