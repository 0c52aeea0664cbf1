package cvpdf

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// defaultTimeout bounds one Generate call when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout      time.Duration
	imageTimeout time.Duration
	geometry     PageGeometry
	layout       []ComposerOption
	rendererName string
	rendererOpts RendererOptions
}

// WithTimeout sets the overall generation timeout.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cvpdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithImageTimeout bounds profile image acquisition.
// Default is DefaultImageTimeout.
func WithImageTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("cvpdf: WithImageTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.imageTimeout = d
	}
}

// WithGeometry replaces the A4 page geometry.
func WithGeometry(geo PageGeometry) Option {
	return func(g *Generator) {
		g.cfg.geometry = geo
	}
}

// WithLayout passes options to the underlying Composer.
func WithLayout(opts ...ComposerOption) Option {
	return func(g *Generator) {
		g.cfg.layout = append(g.cfg.layout, opts...)
	}
}

// WithRendererName selects a renderer by name and the measurer matching it.
// Each Generator built with this option owns its renderer, which makes it
// the right choice for pools.
func WithRendererName(name string, opts RendererOptions) Option {
	return func(g *Generator) {
		g.cfg.rendererName = name
		g.cfg.rendererOpts = opts
	}
}

// WithRenderer injects a renderer. It takes precedence over WithRendererName.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithMeasurer injects the text measurer used for line wrapping.
func WithMeasurer(m Measurer) Option {
	return func(g *Generator) {
		g.measurer = m
	}
}

// WithImageSource sets where the profile photo comes from.
// Without a source documents are generated without a photo.
func WithImageSource(src ImageSource) Option {
	return func(g *Generator) {
		g.source = src
	}
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithNow replaces the clock used for the file name year.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator runs image acquisition, composition and rendering for one
// résumé at a time. Create with NewGenerator and call Close when done.
type Generator struct {
	cfg      generatorConfig
	composer *Composer
	measurer Measurer
	renderer Renderer
	source   ImageSource
	logger   *zap.Logger
	now      func() time.Time
}

// Request is the localized content of one résumé.
type Request struct {
	Sections []Section
	Subject  string // Person the résumé belongs to
	Language string // Active language code
	Footer   string
	Metadata Metadata
	NoImage  bool // Skip the profile photo even when a source is configured
}

// Result is a rendered résumé.
type Result struct {
	Document    *Document
	Data        []byte
	Filename    string
	ContentType string
	Duration    time.Duration
}

// NewGenerator creates a Generator with default configuration: A4 geometry,
// the fpdf renderer and Helvetica metrics.
// Returns an error when the geometry or renderer name is invalid.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout:      defaultTimeout,
			imageTimeout: DefaultImageTimeout,
			geometry:     A4(),
		},
		logger: zap.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.measurer == nil {
		m, err := MeasurerFor(g.cfg.rendererName)
		if err != nil {
			return nil, fmt.Errorf("initializing measurer: %w", err)
		}
		g.measurer = m
	}

	composer, err := NewComposer(g.cfg.geometry, g.measurer, g.cfg.layout...)
	if err != nil {
		return nil, err
	}
	g.composer = composer

	// Create renderer if not injected (e.g., by tests)
	if g.renderer == nil {
		r, err := NewRenderer(g.cfg.rendererName, g.cfg.rendererOpts)
		if err != nil {
			return nil, err
		}
		g.renderer = r
	}

	return g, nil
}

// Generate builds and renders one résumé.
// A missing or broken profile photo is logged and skipped, never returned.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := g.now()
	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	var photo *ProfileImage
	if g.source != nil && !req.NoImage {
		photo, err = LoadProfileImage(ctx, g.source, g.cfg.imageTimeout, g.composer.imageSize)
		if err != nil {
			g.logger.Warn("profile image unavailable, continuing without it",
				zap.String("language", req.Language),
				zap.Error(err),
			)
			photo = nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := g.composer.Compose(ComposeInput{
		Sections:  req.Sections,
		Image:     photo,
		Footer:    req.Footer,
		Subject:   req.Subject,
		Language:  req.Language,
		Year:      start.Year(),
		Extension: g.renderer.Extension(),
		Metadata:  req.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("composing document: %w", err)
	}

	data, err := g.renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	result = &Result{
		Document:    doc,
		Data:        data,
		Filename:    doc.Filename,
		ContentType: g.renderer.ContentType(),
		Duration:    g.now().Sub(start),
	}
	g.logger.Debug("resume generated",
		zap.String("language", req.Language),
		zap.String("filename", result.Filename),
		zap.Int("pages", doc.PageCount()),
		zap.Bool("image_omitted", doc.ImageOmitted),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// ContentType returns the MIME type of generated artifacts.
func (g *Generator) ContentType() string {
	return g.renderer.ContentType()
}

// Close releases renderer resources (headless Chrome for the chrome renderer).
func (g *Generator) Close() error {
	if g.renderer != nil {
		return g.renderer.Close()
	}
	return nil
}

// validateRequest checks that required fields are present.
func validateRequest(req Request) error {
	if req.Language == "" {
		return ErrEmptyLanguage
	}
	if req.Subject == "" {
		return ErrEmptySubject
	}
	return nil
}
