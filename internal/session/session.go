// Package session drives the interactive scan workflow: it walks the
// operator through logging in, opening a PDF, choosing a destination,
// and then hands the mechanical page capture to the scanner. One
// session can scan several documents against the same browser.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	pdfscan "github.com/porticus-lab/go-pdf-scan"
)

// timePrecision rounds reported durations for display.
const timePrecision = 100 * time.Millisecond

// Document is an open PDF tab the session can prepare and page through.
// It is satisfied by [*pdfscan.Viewer].
type Document interface {
	pdfscan.PageSource
	Title() string
	URL() string
	Kind() pdfscan.ViewerKind
	WaitLoaded(ctx context.Context) error
	Prepare(ctx context.Context) (int, error)
	GoToPage(ctx context.Context, n int) error
}

// Controller is the session's view of the scanner. It is satisfied by
// a thin adapter over [*pdfscan.Scanner].
type Controller interface {
	LocatePDF(ctx context.Context) (Document, error)
	Scan(ctx context.Context, src pdfscan.PageSource, job pdfscan.Job) (*pdfscan.Result, error)
}

// Options preset answers the operator would otherwise be asked for.
// Zero values mean "ask" (or, for the page count, "detect").
type Options struct {
	OutputDir string // proposed destination directory
	Pages     int    // page count, 0 = detect or ask
	StartPage int    // first page to capture, 0 = 1
	Format    pdfscan.Format
	FullPage  bool
	Quality   int
}

// Session runs the interactive workflow on a terminal.
type Session struct {
	ctrl     Controller
	prompter *Prompter
	out      io.Writer
	logger   *slog.Logger
	opts     Options

	scanned int // documents scanned so far, used to vary the default dir
}

// New builds a session reading operator input from in and writing all
// prompts and progress to out.
func New(ctrl Controller, in io.Reader, out io.Writer, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ctrl:     ctrl,
		prompter: NewPrompter(in, out),
		out:      out,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes the workflow until the operator declines to scan another
// document or closes the input stream. A scan failure aborts the
// session and is returned after the partial progress has been reported.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, bannerStyle.Render("pdfscan — interactive PDF page capture"))
	fmt.Fprintln(s.out, infoStyle.Render("A browser window has been opened for you."))
	fmt.Fprintln(s.out)

	fmt.Fprintln(s.out, stepStyle.Render("Step 1: log in"))
	if err := s.prompter.Pause("Log in to the site if needed, then press Enter."); err != nil {
		return quitOnEOF(err)
	}

	for {
		doc, err := s.locate(ctx)
		if err != nil {
			return quitOnEOF(err)
		}
		if doc == nil { // operator chose to quit
			return nil
		}

		if err := s.scanDocument(ctx, doc); err != nil {
			return quitOnEOF(err)
		}

		again, err := s.prompter.Confirm("Scan another PDF?", false)
		if err != nil {
			return quitOnEOF(err)
		}
		if !again {
			return nil
		}
	}
}

// locate prompts until a PDF tab is found. Returns (nil, nil) when the
// operator gives up.
func (s *Session) locate(ctx context.Context) (Document, error) {
	fmt.Fprintln(s.out, stepStyle.Render("Step 2: open the PDF"))
	for {
		if err := s.prompter.Pause("Open the PDF in a browser tab, then press Enter."); err != nil {
			return nil, err
		}

		doc, err := s.ctrl.LocatePDF(ctx)
		if err == nil {
			fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf("Found PDF tab: %s (%s viewer)", describe(doc), doc.Kind())))
			return doc, nil
		}
		if !errors.Is(err, pdfscan.ErrNoPDFTab) {
			return nil, err
		}

		fmt.Fprintln(s.out, warnStyle.Render("No open tab is showing a PDF."))
		retry, err := s.prompter.Confirm("Try again?", true)
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, nil
		}
	}
}

// scanDocument runs steps 3-5 for one document: destination, prepare,
// capture.
func (s *Session) scanDocument(ctx context.Context, doc Document) error {
	if err := doc.WaitLoaded(ctx); err != nil {
		return err
	}

	fmt.Fprintln(s.out, stepStyle.Render("Step 3: choose a destination"))
	outputDir, err := s.prompter.String("Destination directory", s.defaultOutputDir())
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, stepStyle.Render("Step 4: prepare the viewer"))
	detected, err := doc.Prepare(ctx)
	if err != nil {
		return err
	}

	pages := s.opts.Pages
	if pages == 0 {
		if detected > 0 {
			fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf("The viewer reports %d pages.", detected)))
			pages = detected
		} else {
			fmt.Fprintln(s.out, infoStyle.Render("The viewer does not report a page count."))
			pages, err = s.prompter.Int("How many pages should be captured?", 0)
			if err != nil {
				return err
			}
		}
	}

	start := s.opts.StartPage
	if start < 1 {
		start = 1
	}
	if start > 1 {
		if err := doc.GoToPage(ctx, start); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, stepStyle.Render(fmt.Sprintf("Step 5: capturing %d pages", pages)))
	job := pdfscan.Job{
		OutputDir: outputDir,
		Pages:     pages,
		StartPage: start,
		Format:    s.opts.Format,
		FullPage:  s.opts.FullPage,
		Quality:   s.opts.Quality,
		Progress: func(img pdfscan.PageImage) {
			fmt.Fprintln(s.out, progressStyle.Render(fmt.Sprintf("  page %d -> %s", img.Index, img.Path)))
		},
	}

	res, err := s.ctrl.Scan(ctx, doc, job)
	s.scanned++
	if err != nil {
		fmt.Fprintln(s.out, errorStyle.Render(
			fmt.Sprintf("Scan aborted after %d of %d pages: %v", res.Count(), pages, err)))
		if res.Count() > 0 {
			fmt.Fprintln(s.out, infoStyle.Render(fmt.Sprintf("Captured pages are kept in %s.", outputDir)))
		}
		return err
	}

	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Captured %d pages to %s in %s.", res.Count(), outputDir, res.Elapsed().Round(timePrecision))))
	return nil
}

// defaultOutputDir proposes a destination for the next document. The
// first one uses the configured directory as-is, later ones get a
// numbered subdirectory so scans never collide.
func (s *Session) defaultOutputDir() string {
	base := s.opts.OutputDir
	if base == "" {
		base = "pdfscan-out"
	}
	if s.scanned == 0 {
		return base
	}
	return filepath.Join(base, fmt.Sprintf("scan-%d", s.scanned+1))
}

// describe labels a document for the operator: its title when the tab
// has one, otherwise its URL.
func describe(doc Document) string {
	if t := doc.Title(); t != "" {
		return t
	}
	return doc.URL()
}

// quitOnEOF turns a closed input stream into a clean exit.
func quitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
