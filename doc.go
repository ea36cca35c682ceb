// Package pdfscan captures the pages of a PDF document open in a real
// browser, saving one screenshot per page to a destination folder.
//
// It exists for PDFs that can only be viewed behind a login, inside a
// web viewer, with no download button: the operator logs in and opens
// the document by hand, then the library pages through it mechanically.
//
// # Typical flow
//
// Create a [Scanner], which launches (or attaches to) a browser:
//
//	sc, err := pdfscan.NewScanner(pdfscan.DefaultScanConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sc.Close()
//
// Once the operator has opened the PDF in a tab, attach to it and
// prepare the viewer so one viewport equals one page:
//
//	v, err := sc.LocatePDF(ctx)
//	count, err := v.Prepare(ctx) // 0 when the viewer hides its page count
//
// Then capture:
//
//	res, err := sc.Scan(ctx, v, pdfscan.Job{
//	    OutputDir: "out",
//	    Pages:     count,
//	})
//
// Scan writes out/page_01.png .. out/page_NN.png and returns the ordered
// list of saved files. On failure the partial [Result] reports what was
// captured before the error; there are no retries.
//
// # Viewers
//
// PDF.js based viewers (Firefox's built-in viewer and many embedded web
// viewers) expose their page count and geometry, so the scan can size
// the window to the page and detect the count automatically. Any other
// tab displaying a PDF is driven generically: PageDown key events and an
// operator-supplied page count. The loop never detects the end of the
// document — a count larger than the document yields duplicate trailing
// screenshots of the last page.
//
// # Browsers
//
// By default the Scanner launches an installed Chrome/Chromium (or the
// executable given in [ScanConfig.BrowserPath]) with a visible window.
// A driver executable serving a DevTools endpoint can be used instead
// via [ScanConfig.DriverPath], and [ScanConfig.AutoDownload] fetches a
// Chromium build when nothing is installed.
package pdfscan
