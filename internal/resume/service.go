package resume

import (
	"context"
	"time"

	cvpdf "github.com/jason7337/go-cvpdf"
)

// Request assembles the generator input for one language. date stamps the
// footer.
func Request(cat *Catalog, p *Profile, lang string, date time.Time) cvpdf.Request {
	return cvpdf.Request{
		Sections: Build(cat, p, lang),
		Subject:  p.Name,
		Language: lang,
		Footer:   Footer(cat, lang, date),
		Metadata: Metadata(p, lang),
	}
}

// Generator is the part of cvpdf.Generator the service drives.
type Generator interface {
	Generate(ctx context.Context, req cvpdf.Request) (*cvpdf.Result, error)
}

// GeneratorSource hands out generators, typically a *cvpdf.GeneratorPool.
type GeneratorSource interface {
	Acquire() (*cvpdf.Generator, error)
	Release(*cvpdf.Generator)
}

// Service generates résumés by language code. Safe for concurrent use when
// the source is.
type Service struct {
	catalog *Catalog
	profile *Profile
	acquire func() (Generator, func(), error)
	now     func() time.Time
	noImage bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces the clock used for the footer date.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithoutImage skips the profile photo.
func WithoutImage() ServiceOption {
	return func(s *Service) {
		s.noImage = true
	}
}

// NewService returns a Service drawing generators from src.
func NewService(cat *Catalog, p *Profile, src GeneratorSource, opts ...ServiceOption) *Service {
	s := newService(cat, p, func() (Generator, func(), error) {
		g, err := src.Acquire()
		if err != nil {
			return nil, nil, err
		}
		return g, func() { src.Release(g) }, nil
	}, opts...)
	return s
}

// NewSingleService returns a Service that always uses g. Calls are not
// serialized, so g must tolerate concurrent use.
func NewSingleService(cat *Catalog, p *Profile, g Generator, opts ...ServiceOption) *Service {
	return newService(cat, p, func() (Generator, func(), error) {
		return g, func() {}, nil
	}, opts...)
}

func newService(cat *Catalog, p *Profile, acquire func() (Generator, func(), error), opts ...ServiceOption) *Service {
	s := &Service{
		catalog: cat,
		profile: p,
		acquire: acquire,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the service localizes with.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Generate renders the résumé for lang, which may be any tag
// NormalizeLanguage accepts.
func (s *Service) Generate(ctx context.Context, lang string) (*cvpdf.Result, error) {
	lang, err := s.catalog.NormalizeLanguage(lang)
	if err != nil {
		return nil, err
	}

	g, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	req := Request(s.catalog, s.profile, lang, s.now())
	req.NoImage = s.noImage
	return g.Generate(ctx, req)
}
