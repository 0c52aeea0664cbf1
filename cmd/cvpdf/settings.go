package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/config"
	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/hints"
	"github.com/jason7337/go-cvpdf/internal/resume"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlag = errors.New("invalid flag value")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrLoadProfile = errors.New("failed to load profile")
)

// settings is the merged result of config file, environment and flags.
// Flags win over the environment, which wins over the file.
type settings struct {
	cfg     *config.Config
	catalog *resume.Catalog
	profile *resume.Profile
	level   string
	timeout time.Duration
	dpi     float64
	workers int
}

// loadSettings resolves configuration and content for a command.
func loadSettings(common commonFlags, content contentFlags, render renderFlags, env *Environment) (*settings, error) {
	if common.envFile != "" {
		if !fileutil.FileExists(common.envFile) {
			return nil, fmt.Errorf("%w: --env-file %s does not exist", ErrInvalidFlag, common.envFile)
		}
		if err := config.LoadDotEnv(common.envFile); err != nil {
			return nil, err
		}
	} else if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if common.config != "" {
		loaded, err := config.LoadConfig(common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(env.Getenv); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	mergeFlags(content, render, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{
		cfg:     cfg,
		level:   logLevel(common),
		dpi:     render.dpi,
		workers: render.workers,
	}
	if render.workers < 0 {
		return nil, fmt.Errorf("%w: --workers must not be negative, got %d", ErrInvalidFlag, render.workers)
	}
	if render.dpi < 0 {
		return nil, fmt.Errorf("%w: --dpi must not be negative, got %g", ErrInvalidFlag, render.dpi)
	}
	if render.timeout != "" {
		d, err := time.ParseDuration(render.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: --timeout %q must be a positive duration", ErrInvalidFlag, render.timeout)
		}
		s.timeout = d
	}

	cat, err := resume.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	s.catalog = cat

	profile, err := loadProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}
	s.profile = profile

	return s, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(content contentFlags, render renderFlags, cfg *config.Config) {
	if content.profile != "" {
		cfg.Profile.Path = content.profile
	}
	if content.image != "" {
		cfg.Image.Source = content.image
	}
	if content.noImage {
		cfg.Image.Disabled = true
	}
	if content.imageTimeout != "" {
		cfg.Image.Timeout = content.imageTimeout
	}
	if render.renderer != "" {
		cfg.Output.Renderer = render.renderer
	}
}

// loadProfile reads the configured profile and applies contact overrides.
func loadProfile(pc config.ProfileConfig) (*resume.Profile, error) {
	var (
		p   *resume.Profile
		err error
	)
	if pc.Path != "" {
		p, err = resume.LoadProfile(pc.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadProfile, err)
		}
	} else {
		p, err = resume.DefaultProfile()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadProfile, err)
		}
	}

	p.Merge(resume.Profile{
		Name:      pc.Name,
		Emails:    pc.Emails,
		Phone:     pc.Phone,
		Location:  pc.Location,
		Portfolio: pc.Portfolio,
		GitHub:    pc.GitHub,
		LinkedIn:  pc.LinkedIn,
	})
	return p, nil
}

// logLevel maps output flags to a zap level name.
func logLevel(common commonFlags) string {
	switch {
	case common.quiet:
		return "error"
	case common.verbose:
		return "debug"
	}
	return "info"
}

// photoEnabled reports whether a photo should be placed. A local photo that
// does not exist is reported once here instead of once per language.
func (s *settings) photoEnabled(log *zap.Logger) bool {
	if s.cfg.Image.Disabled {
		return false
	}
	src := s.cfg.ImageSource()
	if !fileutil.IsURL(src) && !fileutil.FileExists(src) {
		log.Warn("profile photo not found, continuing without it",
			zap.String("source", src),
			zap.String("hint", strings.TrimPrefix(hints.ForImageSource(src), "\n  hint: ")),
		)
		return false
	}
	return true
}

// generatorOptions builds the options every pooled generator is created with.
func (s *settings) generatorOptions(log *zap.Logger, photo bool, env *Environment) []cvpdf.Option {
	geo := cvpdf.A4()
	if s.cfg.Page.SectionReserve > 0 {
		geo.SectionReserve = s.cfg.Page.SectionReserve
	}
	if s.cfg.Page.BreakY > 0 {
		geo.BreakY = s.cfg.Page.BreakY
	}

	opts := []cvpdf.Option{
		cvpdf.WithGeometry(geo),
		cvpdf.WithRendererName(s.cfg.Output.Renderer, cvpdf.RendererOptions{Timeout: s.timeout, DPI: s.dpi}),
		cvpdf.WithImageTimeout(s.cfg.ImageTimeout()),
		cvpdf.WithLogger(log),
		cvpdf.WithNow(env.Now),
	}
	if s.timeout > 0 {
		opts = append(opts, cvpdf.WithTimeout(s.timeout))
	}
	if photo {
		opts = append(opts, cvpdf.WithImageSource(cvpdf.NewImageSource(s.cfg.ImageSource())))
	}
	return append(opts, env.GeneratorOptions...)
}

// resolveLanguages expands a --lang value into catalog languages.
// "all" selects output.languages from config, or every catalog language.
func (s *settings) resolveLanguages(lang string) ([]string, error) {
	var requested []string
	switch strings.TrimSpace(lang) {
	case "", langAll:
		requested = s.cfg.Output.Languages
		if len(requested) == 0 {
			return s.catalog.Languages(), nil
		}
	default:
		requested = strings.Split(lang, ",")
	}

	seen := make(map[string]bool, len(requested))
	var langs []string
	for _, r := range requested {
		l, err := s.catalog.NormalizeLanguage(r)
		if err != nil {
			return nil, err
		}
		if !seen[l] {
			seen[l] = true
			langs = append(langs, l)
		}
	}
	return langs, nil
}
