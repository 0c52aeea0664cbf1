package main

import (
	"context"
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	cvpdf "github.com/jason7337/go-cvpdf"
	"github.com/jason7337/go-cvpdf/internal/config"
	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/hints"
	"github.com/jason7337/go-cvpdf/internal/resume"
)

// Exit codes for the cvpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, cvpdf.ErrBrowserConnect) ||
		errors.Is(err, cvpdf.ErrPageCreate) ||
		errors.Is(err, cvpdf.ErrPageLoad) ||
		errors.Is(err, cvpdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrLoadProfile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, resume.ErrUnsupportedLanguage) ||
		errors.Is(err, cvpdf.ErrInvalidGeometry) ||
		errors.Is(err, cvpdf.ErrUnknownRenderer) ||
		errors.Is(err, fileutil.ErrUnsafeFilename) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, flag.ErrHelp) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, cvpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, cvpdf.ErrUnknownRenderer):
		return hints.ForUnknownChoice(cvpdf.RendererNames)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
