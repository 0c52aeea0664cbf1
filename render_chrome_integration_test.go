//go:build integration

package cvpdf

// Notes:
// - Requires Chrome/Chromium or network access for rod to download one
// - Run with: go test -tags integration ./...

import (
	"bytes"
	"context"
	"testing"
	"time"
)

// testTimeout is the standard timeout for browser operations.
const testTimeout = 60 * time.Second

func TestChromeRenderer_Integration(t *testing.T) {
	r := NewChromeRenderer(testTimeout)
	t.Cleanup(func() { _ = r.Close() })

	doc := composeTestDocument(t, NewCoreFontMeasurer())
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	data, err := r.Render(ctx, doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
}

func TestGeneratorPool_ChromeIntegration(t *testing.T) {
	pool := NewGeneratorPool(2, WithRendererName(RendererChrome, RendererOptions{Timeout: testTimeout}))
	t.Cleanup(func() { _ = pool.Close() })

	g, err := pool.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer pool.Release(g)

	res, err := g.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !bytes.HasPrefix(res.Data, []byte("%PDF-")) {
		t.Error("chrome generator did not produce a PDF")
	}
}
