package pdfscan

import (
	"fmt"
	"strconv"
)

// Format is the image format pages are saved as.
type Format string

// Supported capture formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// valid reports whether the format is one the browser can produce.
func (f Format) valid() bool {
	return f == PNG || f == JPEG
}

// ext returns the file extension for the format, including the dot.
func (f Format) ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return ".png"
}

// PageImage is one captured screenshot corresponding to one PDF page.
// Files are written once and never rewritten or deleted by the tool.
type PageImage struct {
	// Index is the 1-based page number within the document.
	Index int

	// Path is the location the image was saved to.
	Path string
}

// CaptureOptions control how a single page screenshot is taken.
type CaptureOptions struct {
	// Format selects the image encoding. Defaults to PNG.
	Format Format

	// FullPage captures content beyond the visible viewport. The default
	// captures the viewport only, which matches one PDF page after the
	// window has been fitted to the page height.
	FullPage bool

	// Quality is the JPEG compression quality (1-100). Ignored for PNG.
	Quality int
}

// PageMetrics describes the on-screen geometry of a rendered PDF page,
// measured from the viewer DOM. Coordinates are CSS pixels relative to
// the viewport.
type PageMetrics struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// pageFileName returns the file name for a captured page, zero-padding
// the page number to pad digits so files sort in page order.
func pageFileName(page, pad int, format Format) string {
	return fmt.Sprintf("page_%0*d%s", pad, page, format.ext())
}

// padWidth returns the number of decimal digits needed to print the
// highest page number of a job.
func padWidth(lastPage int) int {
	if lastPage < 1 {
		return 1
	}
	return len(strconv.Itoa(lastPage))
}
