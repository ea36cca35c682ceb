package pdfscan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// Scanner drives a browser session and captures PDF pages from it.
//
// A Scanner owns one browser instance for its whole lifetime: the
// operator logs in and opens PDFs in that window, and every scan runs
// against it. Call [Scanner.Close] when the Scanner is no longer needed
// to release the browser (and driver, if one was launched).
type Scanner struct {
	cfg    ScanConfig
	logger *slog.Logger

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	driver        *driverProcess

	mu     sync.Mutex
	closed bool
}

// PageSource is the scan loop's view of an open document: something that
// can capture the current page and move to the next one. [*Viewer]
// implements it.
type PageSource interface {
	Capture(ctx context.Context, opts CaptureOptions) ([]byte, error)
	NextPage(ctx context.Context) error
}

// NewScanner validates the configuration, launches the browser (or the
// driver executable, when one is configured) and connects to it.
//
// The browser starts eagerly so launch errors surface at creation time,
// before the operator is prompted for anything.
func NewScanner(cfg ScanConfig, opts ...Option) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scanner{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	if cfg.DriverPath != "" {
		driver, err := startDriver(context.Background(), cfg.DriverPath)
		if err != nil {
			return nil, err
		}
		s.driver = driver
		s.allocCtx, s.allocCancel = chromedp.NewRemoteAllocator(
			context.Background(), driver.wsURL, chromedp.NoModifyURL)
		s.logger.Debug("attached to driver endpoint", "url", driver.wsURL)
	} else {
		browserPath, err := s.resolveBrowserPath()
		if err != nil {
			return nil, err
		}

		allocOpts := append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(browserPath),
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-background-networking", true),
			chromedp.Flag("disable-sync", true),
			chromedp.Flag("no-first-run", true),
		)
		if cfg.NoSandbox {
			allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
		}
		s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)
		s.logger.Debug("launching browser", "path", browserPath, "headless", cfg.Headless)
	}

	s.browserCtx, s.browserCancel = chromedp.NewContext(s.allocCtx)

	if err := chromedp.Run(s.browserCtx); err != nil {
		s.browserCancel()
		s.allocCancel()
		s.driver.stop()
		return nil, fmt.Errorf("pdfscan: starting browser: %w", err)
	}

	return s, nil
}

// resolveBrowserPath picks the browser executable: the configured path,
// an installed browser, or a downloaded Chromium build when permitted.
func (s *Scanner) resolveBrowserPath() (string, error) {
	if s.cfg.BrowserPath != "" {
		return s.cfg.BrowserPath, nil
	}
	if path, err := findBrowser(); err == nil {
		return path, nil
	}
	if s.cfg.AutoDownload {
		s.logger.Info("no installed browser found, downloading Chromium")
		return resolveBrowser()
	}
	return "", ErrBrowserNotFound
}

// Close releases all resources held by the Scanner, including the
// browser process and any driver it launched. Close is idempotent.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.browserCancel()
	s.allocCancel()
	s.driver.stop()
	return nil
}

// LocatePDF searches the open browser tabs for one displaying a PDF
// document (a URL whose path ends in ".pdf") and attaches to it. When
// several PDF tabs are open the most recently opened one wins. Returns
// [ErrNoPDFTab] when no tab qualifies, so the operator can be prompted
// to open one and try again.
func (s *Scanner) LocatePDF(ctx context.Context) (*Viewer, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	infos, err := chromedp.Targets(s.browserCtx)
	if err != nil {
		return nil, fmt.Errorf("pdfscan: listing browser tabs: %w", err)
	}

	var pick *targetInfo
	for _, info := range infos {
		if info.Type != "page" || !isPDFURL(info.URL) {
			continue
		}
		pick = &targetInfo{id: info.TargetID, url: info.URL, title: info.Title}
	}
	if pick == nil {
		return nil, ErrNoPDFTab
	}

	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx, chromedp.WithTargetID(pick.id))
	v := &Viewer{
		ctx:     tabCtx,
		cancel:  tabCancel,
		url:     pick.url,
		title:   pick.title,
		timeout: s.cfg.actionTimeout(),
		logger:  s.logger,
	}
	v.kind = v.detectKind()

	s.logger.Debug("attached to PDF tab", "title", v.title, "url", v.url, "viewer", v.kind)
	return v, nil
}

// Scan captures job.Pages sequential pages from src.
//
// Each iteration waits the configured page settle time, captures the
// current viewport, writes it to the job's output directory, then sends
// the next-page signal. There are no retries: the first capture, write,
// or pagination failure aborts the remaining loop and is returned along
// with the partial [Result]. Cancelling ctx stops the scan the same way,
// leaving already-written files in place.
func (s *Scanner) Scan(ctx context.Context, src PageSource, job Job) (*Result, error) {
	res := &Result{}
	start := time.Now()
	defer func() { res.elapsed = time.Since(start) }()

	if err := s.checkClosed(); err != nil {
		return res, err
	}
	j := job.resolved()
	if j.Pages <= 0 {
		return res, fmt.Errorf("pdfscan: page count must be positive, got %d", j.Pages)
	}
	if j.OutputDir == "" {
		return res, fmt.Errorf("pdfscan: output directory not set")
	}

	if err := os.MkdirAll(j.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("pdfscan: creating output directory: %w", err)
	}

	capture := CaptureOptions{Format: j.Format, FullPage: j.FullPage, Quality: j.Quality}
	pad := padWidth(j.lastPage())

	for i := 0; i < j.Pages; i++ {
		page := j.StartPage + i

		// Let the viewer finish rendering before capturing.
		if err := sleepCtx(ctx, s.cfg.PageWait); err != nil {
			return res, err
		}

		buf, err := src.Capture(ctx, capture)
		if err != nil {
			return res, fmt.Errorf("pdfscan: capturing page %d: %w", page, err)
		}

		path := filepath.Join(j.OutputDir, pageFileName(page, pad, j.Format))
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return res, fmt.Errorf("pdfscan: saving page %d: %w", page, err)
		}

		img := PageImage{Index: page, Path: path}
		res.images = append(res.images, img)
		s.logger.Debug("page captured", "page", page, "path", path, "bytes", len(buf))
		if j.Progress != nil {
			j.Progress(img)
		}

		if err := src.NextPage(ctx); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (s *Scanner) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type targetInfo struct {
	id    target.ID
	url   string
	title string
}
