package pdfscan

import "time"

// Result holds the outcome of a scan: the ordered list of page images
// written to disk. When a scan fails partway through, [Scanner.Scan]
// returns the partial Result alongside the error so callers can report
// what was captured before the failure.
type Result struct {
	images  []PageImage
	elapsed time.Duration
}

// Images returns the captured pages in page order.
func (r *Result) Images() []PageImage {
	return r.images
}

// Paths returns the saved file paths in page order.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.images))
	for i, img := range r.images {
		paths[i] = img.Path
	}
	return paths
}

// Count returns the number of pages captured.
func (r *Result) Count() int {
	return len(r.images)
}

// Elapsed returns the wall-clock duration of the scan, including the
// per-page settle waits.
func (r *Result) Elapsed() time.Duration {
	return r.elapsed
}
