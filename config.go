package pdfscan

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ScanConfig describes how the browser session is created. It is built
// once from command-line input and not modified afterwards.
type ScanConfig struct {
	// BrowserPath is the path to the browser executable. When empty the
	// library searches standard install locations and PATH, and falls
	// back to downloading a Chromium build if AutoDownload is set.
	BrowserPath string

	// DriverPath is the path to an optional driver executable: a binary
	// that exposes a DevTools (CDP) endpoint for a browser it manages.
	// When set, the driver is launched with --host/--port flags and the
	// scanner attaches to its endpoint instead of launching BrowserPath
	// directly.
	DriverPath string

	// PageWait is how long to pause before capturing each page, giving
	// the viewer time to finish rendering. Must be positive.
	PageWait time.Duration

	// ActionTimeout bounds each individual browser operation (locating
	// elements, capturing, window moves). Defaults to 30 seconds.
	// A zero or negative value uses the default.
	ActionTimeout time.Duration

	// Headless runs the browser without a visible window. The default is
	// a visible window, since the operator must log in and open the PDF
	// by hand before a scan can start.
	Headless bool

	// NoSandbox disables the browser sandbox. Required when running as
	// root, for example inside containers.
	NoSandbox bool

	// AutoDownload permits downloading a Chromium build when no browser
	// is configured or installed.
	AutoDownload bool
}

// DefaultScanConfig returns a ScanConfig with defaults suitable for an
// interactive session: one second of settle time per page and a visible
// browser window.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		PageWait:      time.Second,
		ActionTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration without touching the browser. It is
// called by [NewScanner] and may be called earlier by CLIs that want to
// reject bad paths before any window opens.
func (c ScanConfig) Validate() error {
	if c.BrowserPath != "" {
		if err := checkExecutable(c.BrowserPath); err != nil {
			return fmt.Errorf("%w: %s", ErrBrowserNotFound, c.BrowserPath)
		}
	}
	if c.DriverPath != "" {
		if err := checkExecutable(c.DriverPath); err != nil {
			return fmt.Errorf("%w: %s", ErrDriverNotFound, c.DriverPath)
		}
	}
	if c.PageWait <= 0 {
		return errors.New("pdfscan: page wait must be positive")
	}
	return nil
}

func (c ScanConfig) actionTimeout() time.Duration {
	if c.ActionTimeout <= 0 {
		return 30 * time.Second
	}
	return c.ActionTimeout
}

// checkExecutable reports whether path exists and is a regular file.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("pdfscan: %s is a directory", path)
	}
	return nil
}
