package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxNameLength     = 100  // Full name
	MaxEmailLength    = 254  // RFC 5321
	MaxPhoneLength    = 30   // "+503 7502 5302"
	MaxLocationLength = 100  // "El Salvador"
	MaxURLLength      = 2048 // Browser limit
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxAddrLength     = 255  // "host:port"
	MaxDurationLength = 20   // "30s", "1m30s"
)

// Renderer names accepted by output.renderer.
var rendererNames = []string{"pdf", "chrome", "png"}

// Log modes accepted by log.mode.
var logModes = []string{"development", "production"}

// Config holds all configuration for résumé generation and serving.
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Image   ImageConfig   `yaml:"image"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// ProfileConfig overrides fields of the built-in profile.
// Empty fields keep the built-in value.
type ProfileConfig struct {
	Path      string   `yaml:"path"` // YAML profile replacing the built-in one
	Name      string   `yaml:"name"`
	Emails    []string `yaml:"emails"`
	Phone     string   `yaml:"phone"`
	Location  string   `yaml:"location"`
	Portfolio string   `yaml:"portfolio"`
	GitHub    string   `yaml:"github"`
	LinkedIn  string   `yaml:"linkedin"`
}

// ImageConfig defines where the profile photo comes from.
type ImageConfig struct {
	Source   string `yaml:"source"`   // URL or file path (empty = <distDir>/images/profile.jpg)
	Disabled bool   `yaml:"disabled"` // Never place a photo
	Timeout  string `yaml:"timeout"`  // Go duration (default: 5s)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir       string   `yaml:"dir"`       // Output directory (empty = current directory)
	Renderer  string   `yaml:"renderer"`  // "pdf", "chrome", "png" (default: "pdf")
	Languages []string `yaml:"languages"` // Languages generated by --lang all (default: every catalog language)
}

// PageConfig tunes pagination. Zero values keep the A4 defaults.
type PageConfig struct {
	SectionReserve float64 `yaml:"sectionReserve"` // mm of free space required before a heading
	BreakY         float64 `yaml:"breakY"`         // mm from the top where content stops
}

// ServerConfig defines the HTTP server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`            // Listen address (default: ":3000")
	DistDir         string `yaml:"distDir"`         // Built site directory (default: "dist")
	ShutdownTimeout string `yaml:"shutdownTimeout"` // Go duration (default: 10s)
}

// LogConfig defines logging.
type LogConfig struct {
	Mode string `yaml:"mode"` // "development" or "production" (default: "development")
}

// Defaults applied by DefaultConfig and the accessors below.
const (
	DefaultAddr            = ":3000"
	DefaultDistDir         = "dist"
	DefaultRenderer        = "pdf"
	DefaultLogMode         = "development"
	DefaultImageTimeout    = 5 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Validate profile fields
	if err := validateFieldLength("profile.path", c.Profile.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("profile.name", c.Profile.Name, MaxNameLength); err != nil {
		return err
	}
	for i, email := range c.Profile.Emails {
		if err := validateFieldLength(fmt.Sprintf("profile.emails[%d]", i), email, MaxEmailLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("profile.phone", c.Profile.Phone, MaxPhoneLength); err != nil {
		return err
	}
	if err := validateFieldLength("profile.location", c.Profile.Location, MaxLocationLength); err != nil {
		return err
	}
	for field, value := range map[string]string{
		"profile.portfolio": c.Profile.Portfolio,
		"profile.github":    c.Profile.GitHub,
		"profile.linkedin":  c.Profile.LinkedIn,
	} {
		if err := validateFieldLength(field, value, MaxURLLength); err != nil {
			return err
		}
	}

	// Validate image fields
	if err := validateFieldLength("image.source", c.Image.Source, MaxURLLength); err != nil {
		return err
	}
	if _, err := parseDuration("image.timeout", c.Image.Timeout); err != nil {
		return err
	}

	// Validate output fields
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateOneOf("output.renderer", c.Output.Renderer, rendererNames); err != nil {
		return err
	}

	// Validate page fields
	if c.Page.SectionReserve < 0 {
		return fmt.Errorf("%w: page.sectionReserve must not be negative, got %.2f", ErrInvalidValue, c.Page.SectionReserve)
	}
	if c.Page.BreakY < 0 {
		return fmt.Errorf("%w: page.breakY must not be negative, got %.2f", ErrInvalidValue, c.Page.BreakY)
	}

	// Validate server fields
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.distDir", c.Server.DistDir, MaxPathLength); err != nil {
		return err
	}
	if _, err := parseDuration("server.shutdownTimeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}

	return validateOneOf("log.mode", c.Log.Mode, logModes)
}

// ImageTimeout returns image.timeout or DefaultImageTimeout.
func (c *Config) ImageTimeout() time.Duration {
	d, err := parseDuration("image.timeout", c.Image.Timeout)
	if err != nil || d == 0 {
		return DefaultImageTimeout
	}
	return d
}

// ShutdownTimeout returns server.shutdownTimeout or DefaultShutdownTimeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := parseDuration("server.shutdownTimeout", c.Server.ShutdownTimeout)
	if err != nil || d == 0 {
		return DefaultShutdownTimeout
	}
	return d
}

// ImageSource returns the configured photo location. Without an explicit
// source the photo served by the site is used.
func (c *Config) ImageSource() string {
	if c.Image.Source != "" {
		return c.Image.Source
	}
	dist := c.Server.DistDir
	if dist == "" {
		dist = DefaultDistDir
	}
	return filepath.Join(dist, "images", "profile.jpg")
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOneOf accepts an empty value or one of allowed (case-insensitive).
func validateOneOf(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// parseDuration parses an optional Go duration. Empty yields zero.
func parseDuration(fieldName, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	if len(value) > MaxDurationLength {
		return 0, fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), MaxDurationLength)
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, fieldName)
	}
	return d, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Renderer: DefaultRenderer},
		Server: ServerConfig{Addr: DefaultAddr, DistDir: DefaultDistDir},
		Log:    LogConfig{Mode: DefaultLogMode},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Unset fields are filled from DefaultConfig.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if fileutil.FileExists(f) {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvPort           = "PORT"
	EnvDistDir        = "CVPDF_DIST_DIR"
	EnvImageSource    = "CVPDF_IMAGE_SOURCE"
	EnvLogMode        = "CVPDF_LOG_MODE"
	EnvRenderer       = "CVPDF_RENDERER"
	EnvSectionReserve = "CVPDF_SECTION_RESERVE"
)

// ApplyEnv overlays environment variables onto c. getenv is usually os.Getenv.
// The result is validated again.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if port := getenv(EnvPort); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("%w: %s: %q is not a port number", ErrInvalidValue, EnvPort, port)
		}
		c.Server.Addr = ":" + port
	}
	if v := getenv(EnvDistDir); v != "" {
		c.Server.DistDir = v
	}
	if v := getenv(EnvImageSource); v != "" {
		c.Image.Source = v
	}
	if v := getenv(EnvLogMode); v != "" {
		c.Log.Mode = v
	}
	if v := getenv(EnvRenderer); v != "" {
		c.Output.Renderer = v
	}
	if v := getenv(EnvSectionReserve); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, EnvSectionReserve, err)
		}
		c.Page.SectionReserve = f
	}
	return c.Validate()
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-cvpdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-cvpdf", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
