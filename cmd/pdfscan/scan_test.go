package main

import (
	"testing"
	"time"

	pdfscan "github.com/porticus-lab/go-pdf-scan"
	"github.com/spf13/cobra"
)

func TestParsePageRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec      string
		wantStart int
		wantCount int
		wantErr   bool
	}{
		{spec: "1", wantStart: 1, wantCount: 1},
		{spec: "12", wantStart: 12, wantCount: 1},
		{spec: "10-14", wantStart: 10, wantCount: 5},
		{spec: "3-3", wantStart: 3, wantCount: 1},
		{spec: " 2 - 6 ", wantStart: 2, wantCount: 5},
		{spec: "0", wantErr: true},
		{spec: "-5", wantErr: true},
		{spec: "5-2", wantErr: true},
		{spec: "a-b", wantErr: true},
		{spec: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			start, count, err := parsePageRange(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePageRange(%q) = %d, %d; want error", tt.spec, start, count)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePageRange(%q): %v", tt.spec, err)
			}
			if start != tt.wantStart || count != tt.wantCount {
				t.Errorf("parsePageRange(%q) = %d, %d; want %d, %d",
					tt.spec, start, count, tt.wantStart, tt.wantCount)
			}
		})
	}
}

// scanCmdForTest parses the given command line against a fresh scan
// command without running it.
func scanCmdForTest(t *testing.T, cli ...string) *cobra.Command {
	t.Helper()
	cmd := NewScanCmd()
	if err := cmd.ParseFlags(cli); err != nil {
		t.Fatalf("parsing flags %v: %v", cli, err)
	}
	return cmd
}

func TestBuildConfig_Defaults(t *testing.T) {
	t.Parallel()

	cmd := scanCmdForTest(t)
	cfg, opts, err := buildConfig(cmd, nil)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.PageWait != time.Second {
		t.Errorf("PageWait = %v, want 1s", cfg.PageWait)
	}
	if cfg.Headless {
		t.Error("Headless should default to false (the operator needs the window)")
	}
	if opts.Pages != 0 {
		t.Errorf("Pages = %d, want 0 (detect or ask)", opts.Pages)
	}
	if opts.Format != pdfscan.PNG {
		t.Errorf("Format = %q, want png", opts.Format)
	}
	if opts.OutputDir == "" {
		t.Error("OutputDir should get a default")
	}
}

func TestBuildConfig_PositionalPaths(t *testing.T) {
	t.Parallel()

	cmd := scanCmdForTest(t)
	cfg, _, err := buildConfig(cmd, []string{"/opt/chromium/chrome", "/usr/local/bin/driver"})
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.BrowserPath != "/opt/chromium/chrome" {
		t.Errorf("BrowserPath = %q", cfg.BrowserPath)
	}
	if cfg.DriverPath != "/usr/local/bin/driver" {
		t.Errorf("DriverPath = %q", cfg.DriverPath)
	}
}

func TestBuildConfig_Flags(t *testing.T) {
	t.Parallel()

	cmd := scanCmdForTest(t,
		"--wait", "3s",
		"--range", "10-14",
		"--format", "jpeg",
		"--quality", "75",
		"--out", "/tmp/scans",
		"--no-sandbox",
	)
	cfg, opts, err := buildConfig(cmd, nil)
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}

	if cfg.PageWait != 3*time.Second {
		t.Errorf("PageWait = %v, want 3s", cfg.PageWait)
	}
	if !cfg.NoSandbox {
		t.Error("NoSandbox not set")
	}
	if opts.StartPage != 10 || opts.Pages != 5 {
		t.Errorf("range mapped to StartPage=%d Pages=%d, want 10 and 5", opts.StartPage, opts.Pages)
	}
	if opts.Format != pdfscan.JPEG || opts.Quality != 75 {
		t.Errorf("Format=%q Quality=%d, want jpeg and 75", opts.Format, opts.Quality)
	}
	if opts.OutputDir != "/tmp/scans" {
		t.Errorf("OutputDir = %q, want /tmp/scans", opts.OutputDir)
	}
}

func TestBuildConfig_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cli  []string
	}{
		{name: "pages and range together", cli: []string{"--pages", "5", "--range", "1-3"}},
		{name: "negative pages", cli: []string{"--pages", "-2"}},
		{name: "bad range", cli: []string{"--range", "9-4"}},
		{name: "unknown format", cli: []string{"--format", "webp"}},
		{name: "quality out of bounds", cli: []string{"--quality", "400"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := scanCmdForTest(t, tt.cli...)
			if _, _, err := buildConfig(cmd, nil); err == nil {
				t.Errorf("buildConfig(%v): want error", tt.cli)
			}
		})
	}
}
