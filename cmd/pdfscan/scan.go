package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	pdfscan "github.com/porticus-lab/go-pdf-scan"
	"github.com/porticus-lab/go-pdf-scan/internal/session"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [browser-path] [driver-path]",
		Short: "Launch a browser and capture an open PDF page by page",
		Long: `Scan launches a browser window and walks you through an interactive
capture session:

  1. Log in to the site hosting the PDF (if needed).
  2. Open the PDF in a browser tab.
  3. Choose a destination folder.
  4. pdfscan pages through the document, saving one screenshot per page
     as page_001.png, page_002.png, ...

Pages are captured with no retries: the first failure stops the scan
and already-saved pages are kept.

Examples:
  # Use the default installed browser
  pdfscan scan

  # Use a specific browser binary
  pdfscan scan /usr/bin/chromium

  # Attach through a driver executable instead of launching directly
  pdfscan scan "" /usr/local/bin/chromedriver

  # Capture 30 pages, waiting 3 seconds per page
  pdfscan scan --pages 30 --wait 3s

  # Capture pages 10-14 only, as JPEG
  pdfscan scan --range 10-14 --format jpeg`,
		Args: cobra.MaximumNArgs(2),
		RunE: runScanCmd,
	}

	cmd.Flags().DurationP("wait", "w", time.Second,
		"Settle time before each page capture")
	cmd.Flags().IntP("pages", "n", 0,
		"Number of pages to capture (default: detect, or ask)")
	cmd.Flags().StringP("range", "p", "",
		"Page range to capture, e.g. \"12\" or \"10-14\" (mutually exclusive with --pages)")
	cmd.Flags().StringP("out", "o", "",
		"Destination directory proposed for saved pages (default: "+defaultOutputDir()+")")
	cmd.Flags().StringP("format", "f", "png",
		"Image format: png or jpeg")
	cmd.Flags().Int("quality", 90,
		"JPEG quality (1-100, ignored for png)")
	cmd.Flags().Bool("full", false,
		"Capture the full page height instead of the viewport")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second,
		"Timeout for each browser action")
	cmd.Flags().Bool("headless", false,
		"Run the browser without a visible window (login must not be needed)")
	cmd.Flags().Bool("no-sandbox", false,
		"Launch the browser with sandboxing disabled (needed in some containers)")
	cmd.Flags().Bool("auto-download", false,
		"Download a Chromium build when no installed browser is found")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	sc, err := pdfscan.NewScanner(cfg, pdfscan.WithLogger(logger))
	if err != nil {
		return err
	}
	defer sc.Close()

	sess := session.New(&scannerController{sc}, cmd.InOrStdin(), cmd.OutOrStdout(), opts, logger)
	return sess.Run(ctx)
}

// scannerController adapts *pdfscan.Scanner to the session's interface.
type scannerController struct {
	sc *pdfscan.Scanner
}

func (c *scannerController) LocatePDF(ctx context.Context) (session.Document, error) {
	v, err := c.sc.LocatePDF(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *scannerController) Scan(ctx context.Context, src pdfscan.PageSource, job pdfscan.Job) (*pdfscan.Result, error) {
	return c.sc.Scan(ctx, src, job)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates the scanner configuration and session options from
// cobra command flags and positional arguments.
func buildConfig(cmd *cobra.Command, args []string) (pdfscan.ScanConfig, session.Options, error) {
	cfg := pdfscan.DefaultScanConfig()
	var opts session.Options

	if len(args) > 0 {
		cfg.BrowserPath = args[0]
	}
	if len(args) > 1 {
		cfg.DriverPath = args[1]
	}

	var err error
	if cfg.PageWait, err = cmd.Flags().GetDuration("wait"); err != nil {
		return cfg, opts, err
	}
	if cfg.ActionTimeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
		return cfg, opts, err
	}
	if cfg.Headless, err = cmd.Flags().GetBool("headless"); err != nil {
		return cfg, opts, err
	}
	if cfg.NoSandbox, err = cmd.Flags().GetBool("no-sandbox"); err != nil {
		return cfg, opts, err
	}
	if cfg.AutoDownload, err = cmd.Flags().GetBool("auto-download"); err != nil {
		return cfg, opts, err
	}

	if opts.OutputDir, err = cmd.Flags().GetString("out"); err != nil {
		return cfg, opts, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = defaultOutputDir()
	}

	pages, err := cmd.Flags().GetInt("pages")
	if err != nil {
		return cfg, opts, err
	}
	rangeSpec, err := cmd.Flags().GetString("range")
	if err != nil {
		return cfg, opts, err
	}
	if rangeSpec != "" {
		if pages > 0 {
			return cfg, opts, fmt.Errorf("--pages and --range are mutually exclusive")
		}
		start, count, err := parsePageRange(rangeSpec)
		if err != nil {
			return cfg, opts, fmt.Errorf("invalid page range %q: %w", rangeSpec, err)
		}
		opts.StartPage = start
		opts.Pages = count
	} else {
		if pages < 0 {
			return cfg, opts, fmt.Errorf("--pages must be positive, got %d", pages)
		}
		opts.Pages = pages
	}

	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return cfg, opts, err
	}
	switch strings.ToLower(formatName) {
	case "png", "":
		opts.Format = pdfscan.PNG
	case "jpeg", "jpg":
		opts.Format = pdfscan.JPEG
	default:
		return cfg, opts, fmt.Errorf("unknown image format %q (png or jpeg)", formatName)
	}

	if opts.Quality, err = cmd.Flags().GetInt("quality"); err != nil {
		return cfg, opts, err
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return cfg, opts, fmt.Errorf("--quality must be within 1-100, got %d", opts.Quality)
	}
	if opts.FullPage, err = cmd.Flags().GetBool("full"); err != nil {
		return cfg, opts, err
	}

	return cfg, opts, nil
}

// defaultOutputDir returns the directory proposed for saved pages when
// no --out flag is given: a pdfscan folder under the user's pictures
// directory.
func defaultOutputDir() string {
	return filepath.Join(xdg.UserDirs.Pictures, "pdfscan")
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// parsePageRange converts a range spec to a 1-based start page and a
// page count. Supported formats: "12" (single page) and "10-14"
// (inclusive range).
func parsePageRange(spec string) (start, count int, err error) {
	if first, last, found := strings.Cut(spec, "-"); found {
		start, err = strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page number: %s", first)
		}
		end, err := strconv.Atoi(strings.TrimSpace(last))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid page number: %s", last)
		}
		if start < 1 || end < start {
			return 0, 0, fmt.Errorf("range %d-%d is not ascending from 1", start, end)
		}
		return start, end - start + 1, nil
	}

	start, err = strconv.Atoi(strings.TrimSpace(spec))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page number: %s", spec)
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("page %d out of bounds (pages start at 1)", start)
	}
	return start, 1, nil
}
