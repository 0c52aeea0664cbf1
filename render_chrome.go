package cvpdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/jason7337/go-cvpdf/internal/fileutil"
	"github.com/jason7337/go-cvpdf/internal/process"
)

// browserRenderer abstracts printing an HTML file so the Chrome renderer
// can be tested without a browser.
type browserRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, paper paperSize) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ browserRenderer = (*rodRenderer)(nil)

// defaultBrowserTimeout is used when no timeout is specified.
const defaultBrowserTimeout = 30 * time.Second

// mmPerInch converts page geometry to Chrome's paper units.
const mmPerInch = 25.4

// paperSize is the printed page size in inches.
type paperSize struct {
	Width  float64
	Height float64
}

// rodRenderer implements browserRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		stopLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// stopLauncher kills Chrome and its helper processes, then removes the
// temporary user data directory.
func stopLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		stopLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, paper paperSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        floatPtr(paper.Width),
		PaperHeight:       floatPtr(paper.Height),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// chromeRenderer prints the HTML form of a document with headless Chrome.
type chromeRenderer struct {
	browser browserRenderer
}

// NewChromeRenderer returns a Renderer printing through headless Chrome.
// The browser is launched on first use; call Close to release it.
func NewChromeRenderer(timeout time.Duration) Renderer {
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}
	return &chromeRenderer{browser: newRodRenderer(timeout)}
}

func (c *chromeRenderer) Extension() string   { return "pdf" }
func (c *chromeRenderer) ContentType() string { return "application/pdf" }

// Render writes the document HTML to a temp file and prints it to PDF.
func (c *chromeRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	htmlContent, err := HTML(doc)
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	paper := paperSize{
		Width:  doc.Geometry.Width / mmPerInch,
		Height: doc.Geometry.Height / mmPerInch,
	}
	return c.browser.RenderFromFile(ctx, tmpPath, paper)
}

// Close releases browser resources.
func (c *chromeRenderer) Close() error {
	if c.browser != nil {
		return c.browser.Close()
	}
	return nil
}
