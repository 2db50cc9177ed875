package chrome

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Format selects the output of a render.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

const (
	defaultTimeout = 30 * time.Second

	viewportWidth  = 1280
	viewportHeight = 800
	deviceScale    = 2.0

	a4WidthMM  = 210.0
	a4HeightMM = 297.0
	marginMM   = 10.0
)

// Config controls how Chrome is reached.
type Config struct {
	// RemoteURL points at a running Chrome DevTools endpoint. Empty launches a local browser.
	RemoteURL string
	NoSandbox bool
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Renderer rasterizes HTML documents with headless Chrome.
type Renderer struct {
	config Config
	logger *zap.Logger
}

// NewRenderer builds a Renderer. No browser is started until Render is called.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{config: cfg, logger: logger}
}

// Render converts markup to format. Each call owns its browser and releases it before returning.
func (r *Renderer) Render(ctx context.Context, markup string, format Format) ([]byte, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if format != FormatPNG && format != FormatPDF {
		return nil, NewRenderError(ErrCodeRenderFailed, fmt.Sprintf("unsupported format %q", format), nil)
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	allocCtx, allocCancel := r.allocate(ctx)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(f string, args ...any) {
			r.logger.Debug(fmt.Sprintf(f, args...))
		}),
	)
	defer browserCancel()

	var out []byte
	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
	}
	if format == FormatPNG {
		actions = append(actions, chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(deviceScale)))
	}
	actions = append(actions,
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)

	switch format {
	case FormatPNG:
		actions = append(actions, chromedp.FullScreenshot(&out, 100))
	case FormatPDF:
		params := pdfParams()
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(params.printBackground).
				WithPaperWidth(params.paperWidth).
				WithPaperHeight(params.paperHeight).
				WithMarginTop(params.margin).
				WithMarginRight(params.margin).
				WithMarginBottom(params.margin).
				WithMarginLeft(params.margin).
				Do(ctx)
			if err != nil {
				return err
			}
			out = data
			return nil
		}))
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("rendering timed out after %v", r.config.Timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "rendering was cancelled", err)
		}
		r.logger.Error("chromedp rendering failed", zap.String("format", string(format)), zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}

	if len(out) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "rendered output is empty", nil)
	}

	r.logger.Info("document rendered",
		zap.String("format", string(format)),
		zap.Int("bytes", len(out)),
		zap.Duration("duration", time.Since(start)))

	return out, nil
}

func (r *Renderer) allocate(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, r.config.RemoteURL)
	}
	return chromedp.NewExecAllocator(ctx, r.execOptions()...)
}

func (r *Renderer) execOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

type printParams struct {
	paperWidth      float64
	paperHeight     float64
	margin          float64
	printBackground bool
}

// pdfParams returns A4 portrait with uniform margins, in inches.
func pdfParams() printParams {
	return printParams{
		paperWidth:      mmToInches(a4WidthMM),
		paperHeight:     mmToInches(a4HeightMM),
		margin:          mmToInches(marginMM),
		printBackground: true,
	}
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}
