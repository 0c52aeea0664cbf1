package cvpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"time"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/jason7337/go-cvpdf/internal/fileutil"
)

// MaxImageBytes caps the size of a fetched profile image (10 MiB).
const MaxImageBytes = 10 << 20

// DefaultImageTimeout bounds the fetch-and-decode step.
const DefaultImageTimeout = 5 * time.Second

// imageOversample is the pixel density of the masked image relative to its
// size in millimetres, so a 40 mm photo is rasterised at 160x160 px.
const imageOversample = 4

// ImageSource provides raw profile image bytes.
type ImageSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ ImageSource = (*URLSource)(nil)
	_ ImageSource = FileSource("")
)

// URLSource fetches an image over HTTP(S).
type URLSource struct {
	URL    string
	Client *http.Client // nil uses http.DefaultClient
}

// Fetch downloads the image. Non-2xx responses are errors.
func (s *URLSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrImageFetch, s.URL, resp.Status)
	}
	return readLimited(resp.Body)
}

// FileSource reads an image from a local path.
type FileSource string

// Fetch reads the file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(string(s)) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	defer f.Close()
	return readLimited(f)
}

// NewImageSource returns a URLSource for http(s) locations and a FileSource
// for everything else.
func NewImageSource(location string) ImageSource {
	if fileutil.IsURL(location) {
		return &URLSource{URL: location}
	}
	return FileSource(location)
}

// readLimited reads at most MaxImageBytes and rejects larger inputs.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrImageFetch, MaxImageBytes)
	}
	return data, nil
}

// LoadProfileImage fetches, decodes and circle-masks a profile photo in one
// awaited step bounded by timeout. sizeMM is the side length the image will
// be placed at.
func LoadProfileImage(ctx context.Context, src ImageSource, timeout time.Duration, sizeMM float64) (*ProfileImage, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no image source", ErrImageFetch)
	}
	if timeout <= 0 {
		timeout = DefaultImageTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		img *ProfileImage
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		raw, err := src.Fetch(ctx)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		img, err := MaskCircle(raw, int(sizeMM*imageOversample))
		done <- outcome{img: img, err: err}
	}()

	// Sources that ignore ctx still cannot hold the caller past the timeout.
	select {
	case o := <-done:
		return o.img, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrImageFetch, ctx.Err())
	}
}

// MaskCircle decodes raw, centre-crops it to a square, scales it to
// size x size pixels and clips it to a circle. The result is a PNG with a
// transparent background.
func MaskCircle(raw []byte, size int) (*ProfileImage, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive", ErrImageDecode)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	if side == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, image.Rect(x0, y0, x0+side, y0+side), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(scaled, 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ErrImageDecode, err)
	}
	return &ProfileImage{PNG: buf.Bytes(), Width: size, Height: size}, nil
}
