package pdfscan

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Scanner].
	ErrClosed = errors.New("pdfscan: scanner is closed")

	// ErrBrowserNotFound is returned when the configured browser executable
	// does not exist and no installed browser could be located.
	ErrBrowserNotFound = errors.New("pdfscan: browser executable not found")

	// ErrDriverNotFound is returned when the configured driver executable
	// does not exist.
	ErrDriverNotFound = errors.New("pdfscan: driver executable not found")

	// ErrNoPDFTab is returned by [Scanner.LocatePDF] when no open browser
	// tab displays a PDF document.
	ErrNoPDFTab = errors.New("pdfscan: no open PDF tab found")

	// ErrPagination is returned when the viewer could not be advanced to
	// the next page. It aborts a running scan; pages captured before the
	// failure are still reported.
	ErrPagination = errors.New("pdfscan: could not advance to next page")
)
