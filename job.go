package pdfscan

// Job describes one scan of one open PDF document. The interactive
// session may run several jobs against the same browser session, one per
// PDF the operator opens.
//
// A nil or zero-value field uses the documented default.
type Job struct {
	// OutputDir is the directory page images are written to. It is
	// created (including parents) before the first capture.
	OutputDir string

	// Pages is the number of pages to capture. The loop always runs
	// exactly this many iterations; there is no page-boundary detection,
	// so a count larger than the document produces duplicate trailing
	// screenshots of the last page.
	Pages int

	// StartPage is the 1-based page the capture starts from. Defaults
	// to 1. The caller is responsible for positioning the viewer on this
	// page before the scan begins.
	StartPage int

	// Format selects the image encoding. Defaults to PNG.
	Format Format

	// FullPage captures content beyond the visible viewport.
	FullPage bool

	// Quality is the JPEG compression quality (1-100). Defaults to 90.
	// Ignored for PNG.
	Quality int

	// Progress, when non-nil, is called after each page image has been
	// written. It runs on the scanning goroutine; keep it fast.
	Progress func(PageImage)
}

// resolved returns a copy of the job with defaults applied.
func (j Job) resolved() Job {
	if j.StartPage < 1 {
		j.StartPage = 1
	}
	if !j.Format.valid() {
		j.Format = PNG
	}
	if j.Quality <= 0 || j.Quality > 100 {
		j.Quality = 90
	}
	return j
}

// lastPage returns the highest page number the job will capture.
func (j Job) lastPage() int {
	return j.StartPage + j.Pages - 1
}
