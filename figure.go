package pubpage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pubpage/internal/fileutil"
)

// FigureFormat is the file format of a chart, chosen by extension.
type FigureFormat string

const (
	FigureSVG  FigureFormat = "svg"
	FigurePNG  FigureFormat = "png"
	FigureJPEG FigureFormat = "jpeg"
	FigureWebP FigureFormat = "webp"
)

// FigureFormatFor maps a figure path to its format. Unknown extensions are
// written as PNG.
func FigureFormatFor(path string) FigureFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FigureSVG
	case ".jpg", ".jpeg":
		return FigureJPEG
	case ".webp":
		return FigureWebP
	default:
		return FigurePNG
	}
}

// NeedsBrowser reports whether writing this format requires headless Chrome.
func (f FigureFormat) NeedsBrowser() bool {
	return f != FigureSVG
}

// rasterizer turns a chart host page into image bytes.
type rasterizer interface {
	Rasterize(ctx context.Context, hostHTML []byte, opts *rasterOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ rasterizer = (*rodRasterizer)(nil)

// rasterOptions sizes the screenshot.
type rasterOptions struct {
	Width  int     // CSS px
	Height int     // CSS px
	Scale  float64 // device pixels per CSS px
	Format FigureFormat
}

// rodRasterizer screenshots pages in headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRasterizer struct {
	browser *rod.Browser
	timeout time.Duration
}

func newRodRasterizer(timeout time.Duration) *rodRasterizer {
	return &rodRasterizer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRasterizer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Sandboxing is unavailable in most CI runners and containers
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRasterizer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// Rasterize loads hostHTML from a temp file and captures the viewport.
func (r *rodRasterizer) Rasterize(ctx context.Context, hostHTML []byte, opts *rasterOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(hostHTML), "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChartRender, err)
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: opts.Scale,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %w", ErrChartRender, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: screenshotFormat(opts.Format),
		Clip: &proto.PageViewport{
			Width:  float64(opts.Width),
			Height: float64(opts.Height),
			Scale:  1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChartRender, err)
	}
	return img, nil
}

func screenshotFormat(f FigureFormat) proto.PageCaptureScreenshotFormat {
	switch f {
	case FigureJPEG:
		return proto.PageCaptureScreenshotFormatJpeg
	case FigureWebP:
		return proto.PageCaptureScreenshotFormatWebp
	default:
		return proto.PageCaptureScreenshotFormatPng
	}
}
