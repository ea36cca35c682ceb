package pdfscan

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// pdfLoadTimeout bounds the wait for a PDF document to finish loading in
// the viewer. Large documents over slow links can take a while.
const pdfLoadTimeout = 60 * time.Second

// ViewerKind identifies the kind of PDF viewer found in the tab.
type ViewerKind int

const (
	// ViewerGeneric is any tab displaying a PDF without recognizable
	// viewer chrome. Page count and geometry cannot be read; navigation
	// falls back to keyboard paging.
	ViewerGeneric ViewerKind = iota

	// ViewerPDFJS is a PDF.js based viewer (Firefox's built-in viewer
	// and many embedded web viewers). Its toolbar exposes the page
	// count, page geometry, and zoom controls.
	ViewerPDFJS
)

// String returns a short name for the viewer kind.
func (k ViewerKind) String() string {
	if k == ViewerPDFJS {
		return "pdfjs"
	}
	return "generic"
}

// Viewer is a handle to the browser tab displaying the target PDF,
// obtained from [Scanner.LocatePDF]. Its methods wrap the viewer DOM and
// browser window operations needed to prepare and page through the
// document. All operations are bounded by the scanner's action timeout.
type Viewer struct {
	ctx     context.Context
	cancel  context.CancelFunc
	url     string
	title   string
	kind    ViewerKind
	timeout time.Duration
	logger  *slog.Logger
}

// Title returns the tab title at the time the PDF tab was located.
func (v *Viewer) Title() string { return v.title }

// URL returns the tab URL at the time the PDF tab was located.
func (v *Viewer) URL() string { return v.url }

// Kind returns the detected viewer kind.
func (v *Viewer) Kind() ViewerKind { return v.kind }

// run executes browser actions against the tab, bounded by the action
// timeout.
func (v *Viewer) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(v.ctx, v.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// detectKind probes the tab for PDF.js viewer chrome.
func (v *Viewer) detectKind() ViewerKind {
	var isPDFJS bool
	err := v.run(chromedp.Evaluate(
		`document.getElementById('viewerContainer') !== null && document.getElementById('numPages') !== null`,
		&isPDFJS,
	))
	if err != nil {
		v.logger.Debug("viewer probe failed, assuming generic viewer", "error", err)
		return ViewerGeneric
	}
	if isPDFJS {
		return ViewerPDFJS
	}
	return ViewerGeneric
}

// WaitLoaded blocks until the document has finished loading in the
// viewer: for PDF.js, until the loading bar disappears; otherwise until
// the page body is ready.
func (v *Viewer) WaitLoaded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(v.ctx, pdfLoadTimeout)
	defer cancel()

	var err error
	if v.kind == ViewerPDFJS {
		err = chromedp.Run(waitCtx, chromedp.WaitNotVisible("#loadingBar", chromedp.ByID))
	} else {
		err = chromedp.Run(waitCtx, chromedp.WaitReady("body", chromedp.ByQuery))
	}
	if err != nil {
		return fmt.Errorf("pdfscan: waiting for PDF to load: %w", err)
	}
	return nil
}

// Prepare sizes the window and viewer so one PDF page fills the
// viewport, positions the document on page 1, and returns the page count
// read from the viewer. For generic viewers the window is maximized and
// the count is 0 (unknown); the caller must supply one.
func (v *Viewer) Prepare(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := v.ResetWindow(); err != nil {
		return 0, err
	}

	if v.kind != ViewerPDFJS {
		return 0, nil
	}

	if err := v.FitWidth(); err != nil {
		return 0, err
	}
	count, err := v.PageCount()
	if err != nil {
		return 0, err
	}
	metrics, err := v.Metrics()
	if err != nil {
		return 0, err
	}
	if err := v.FitHeight(metrics); err != nil {
		return 0, err
	}
	if err := v.GoToStart(); err != nil {
		return 0, err
	}
	return count, nil
}

// ResetWindow shakes the browser window out of whatever size the
// operator left it in: minimize, then maximize.
func (v *Viewer) ResetWindow() error {
	err := v.run(
		setWindowState(browser.WindowStateMinimized),
		setWindowState(browser.WindowStateMaximized),
	)
	if err != nil {
		return fmt.Errorf("pdfscan: resetting window: %w", err)
	}
	return nil
}

// FitWidth selects the viewer's page-width zoom so each page spans the
// full viewport width. Viewers without a scale selector are left as-is.
func (v *Viewer) FitWidth() error {
	var ok bool
	err := v.run(chromedp.Evaluate(`(() => {
		const sel = document.getElementById('scaleSelect');
		if (!sel) return false;
		sel.value = 'page-width';
		sel.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, &ok))
	if err != nil {
		return fmt.Errorf("pdfscan: setting page-width zoom: %w", err)
	}
	if !ok {
		v.logger.Debug("viewer has no scale selector, keeping current zoom")
	}
	return nil
}

// PageCount reads the document's page count from the viewer toolbar.
func (v *Viewer) PageCount() (int, error) {
	var label string
	if err := v.run(chromedp.Text("#numPages", &label, chromedp.ByID)); err != nil {
		return 0, fmt.Errorf("pdfscan: reading page count: %w", err)
	}
	count, err := parsePageCount(label)
	if err != nil {
		return 0, fmt.Errorf("pdfscan: reading page count: %w", err)
	}
	return count, nil
}

// Metrics measures the bounding rectangle of the first rendered page.
func (v *Viewer) Metrics() (PageMetrics, error) {
	var m *PageMetrics
	err := v.run(chromedp.Evaluate(`(() => {
		const p = document.querySelector('.page');
		if (!p) return null;
		const r = p.getBoundingClientRect();
		return { x: r.x, y: r.y, width: r.width, height: r.height };
	})()`, &m))
	if err != nil {
		return PageMetrics{}, fmt.Errorf("pdfscan: measuring page: %w", err)
	}
	if m == nil {
		return PageMetrics{}, fmt.Errorf("pdfscan: no rendered page found in viewer")
	}
	return *m, nil
}

// FitHeight resizes the browser window so the viewport ends where the
// first page ends, making one viewport capture equal one page.
func (v *Viewer) FitHeight(m PageMetrics) error {
	height := int64(m.Y + m.Height)
	if height <= 0 {
		return fmt.Errorf("pdfscan: page height %d is not usable", height)
	}
	err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		id, bounds, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return err
		}
		// A maximized window must return to the normal state before its
		// bounds can be changed.
		if err := browser.SetWindowBounds(id, &browser.Bounds{
			WindowState: browser.WindowStateNormal,
		}).Do(ctx); err != nil {
			return err
		}
		return browser.SetWindowBounds(id, &browser.Bounds{
			Left:   bounds.Left,
			Top:    bounds.Top,
			Width:  bounds.Width,
			Height: height,
		}).Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("pdfscan: fitting window to page height: %w", err)
	}
	return nil
}

// GoToStart jumps the viewer back to the first page.
func (v *Viewer) GoToStart() error {
	if err := v.run(chromedp.KeyEvent(kb.Home)); err != nil {
		return fmt.Errorf("pdfscan: jumping to first page: %w", err)
	}
	return nil
}

// GoToPage positions the viewer on the given 1-based page. PDF.js
// viewers jump directly via the page-number box; generic viewers page
// forward from the start one key press at a time.
func (v *Viewer) GoToPage(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("pdfscan: page number must be positive, got %d", n)
	}
	if v.kind == ViewerPDFJS {
		var ok bool
		err := v.run(chromedp.Evaluate(fmt.Sprintf(`(() => {
			const box = document.getElementById('pageNumber');
			if (!box) return false;
			box.value = '%d';
			box.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		})()`, n), &ok))
		if err != nil {
			return fmt.Errorf("pdfscan: jumping to page %d: %w", n, err)
		}
		if ok {
			return nil
		}
		// No page-number box despite PDF.js chrome; fall through to
		// keyboard paging.
	}
	if err := v.GoToStart(); err != nil {
		return err
	}
	for i := 1; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.NextPage(ctx); err != nil {
			return err
		}
	}
	return nil
}

// NextPage advances the viewer by one page: the PDF.js next-page button
// when present, a PageDown key event otherwise. A failure here means the
// scan cannot continue and is reported as [ErrPagination].
func (v *Viewer) NextPage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.kind == ViewerPDFJS {
		if err := v.run(chromedp.Click(`button[title="Next Page"]`, chromedp.ByQuery)); err == nil {
			return nil
		}
		// Toolbar button missing or hidden; the keyboard still works.
	}
	if err := v.run(chromedp.KeyEvent(kb.PageDown)); err != nil {
		return fmt.Errorf("%w: %v", ErrPagination, err)
	}
	return nil
}

// Capture takes a screenshot of the tab and returns the encoded image.
func (v *Viewer) Capture(ctx context.Context, opts CaptureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := page.CaptureScreenshotFormatPng
	if opts.Format == JPEG {
		format = page.CaptureScreenshotFormatJpeg
	}

	var buf []byte
	err := v.run(chromedp.ActionFunc(func(ctx context.Context) error {
		params := page.CaptureScreenshot().
			WithFormat(format).
			WithCaptureBeyondViewport(opts.FullPage)
		if opts.Format == JPEG {
			params = params.WithQuality(int64(opts.Quality))
		}
		var err error
		buf, err = params.Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// setWindowState returns an action that puts the tab's window into the
// given state.
func setWindowState(state browser.WindowState) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		id, _, err := browser.GetWindowForTarget().Do(ctx)
		if err != nil {
			return err
		}
		return browser.SetWindowBounds(id, &browser.Bounds{WindowState: state}).Do(ctx)
	})
}

// isPDFURL reports whether the URL's path points at a PDF document.
func isPDFURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// parsePageCount extracts the page count from the viewer's "of N" page
// label. The label's wording varies with the viewer locale, so only the
// trailing number is trusted.
func parsePageCount(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty page count label")
	}
	count, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("page count label %q: %w", label, err)
	}
	if count < 1 {
		return 0, fmt.Errorf("page count label %q: count must be positive", label)
	}
	return count, nil
}
