package pdfscan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeFakeExecutable creates a file standing in for a browser or driver
// binary. Validate only checks existence, not executability.
func writeFakeExecutable(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanConfigValidate(t *testing.T) {
	t.Parallel()

	browser := writeFakeExecutable(t, "browser")
	driver := writeFakeExecutable(t, "driver")

	tests := []struct {
		name    string
		cfg     ScanConfig
		wantErr error
	}{
		{
			name: "defaults with no paths",
			cfg:  DefaultScanConfig(),
		},
		{
			name: "existing browser and driver",
			cfg: ScanConfig{
				BrowserPath: browser,
				DriverPath:  driver,
				PageWait:    time.Second,
			},
		},
		{
			name: "missing browser path",
			cfg: ScanConfig{
				BrowserPath: filepath.Join(t.TempDir(), "no-such-browser"),
				PageWait:    time.Second,
			},
			wantErr: ErrBrowserNotFound,
		},
		{
			name: "missing driver path",
			cfg: ScanConfig{
				BrowserPath: browser,
				DriverPath:  filepath.Join(t.TempDir(), "no-such-driver"),
				PageWait:    time.Second,
			},
			wantErr: ErrDriverNotFound,
		},
		{
			name: "browser path is a directory",
			cfg: ScanConfig{
				BrowserPath: t.TempDir(),
				PageWait:    time.Second,
			},
			wantErr: ErrBrowserNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanConfigValidate_PageWait(t *testing.T) {
	t.Parallel()

	for _, wait := range []time.Duration{0, -time.Second} {
		cfg := ScanConfig{PageWait: wait}
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate() with PageWait=%v: want error, got nil", wait)
		}
	}
}

func TestScanConfigActionTimeout(t *testing.T) {
	t.Parallel()

	cfg := ScanConfig{}
	if got := cfg.actionTimeout(); got != 30*time.Second {
		t.Errorf("actionTimeout() default = %v, want 30s", got)
	}

	cfg.ActionTimeout = 5 * time.Second
	if got := cfg.actionTimeout(); got != 5*time.Second {
		t.Errorf("actionTimeout() = %v, want 5s", got)
	}
}
