package pdfscan

import "testing"

func TestIsPDFURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/docs/report.pdf", true},
		{"https://example.com/docs/report.PDF", true},
		{"https://example.com/viewer?file=report.pdf", false},
		{"https://example.com/report.pdf#page=3", true},
		{"https://example.com/report.pdfx", false},
		{"https://example.com/", false},
		{"file:///home/user/books/manual.pdf", true},
		{"about:blank", false},
		{"", false},
		{"://bad url", false},
	}

	for _, tt := range tests {
		if got := isPDFURL(tt.url); got != tt.want {
			t.Errorf("isPDFURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestParsePageCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{"of 42", 42, false},
		{"de 7", 7, false},
		{"42", 42, false},
		{" of  136 ", 136, false},
		{"of", 0, true},
		{"", 0, true},
		{"of zero", 0, true},
		{"of 0", 0, true},
		{"of -3", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePageCount(tt.label)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePageCount(%q): want error, got %d", tt.label, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePageCount(%q): %v", tt.label, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePageCount(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestViewerKindString(t *testing.T) {
	t.Parallel()

	if got := ViewerPDFJS.String(); got != "pdfjs" {
		t.Errorf("ViewerPDFJS.String() = %q, want pdfjs", got)
	}
	if got := ViewerGeneric.String(); got != "generic" {
		t.Errorf("ViewerGeneric.String() = %q, want generic", got)
	}
}
