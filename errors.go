package cvpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyLanguage   = errors.New("language cannot be empty")
	ErrEmptySubject    = errors.New("subject name cannot be empty")
	ErrRender          = errors.New("document rendering failed")
	ErrUnknownRenderer = errors.New("unknown renderer")
	ErrPoolClosed      = errors.New("generator pool is closed")

	// Geometry validation errors.
	ErrInvalidGeometry = errors.New("invalid page geometry")

	// Profile image errors. Never fatal to generation.
	ErrImageFetch  = errors.New("profile image fetch failed")
	ErrImageDecode = errors.New("profile image decode failed")

	// Browser backend errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)
