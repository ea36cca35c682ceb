package pdfscan

import "testing"

func TestPageFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page   int
		pad    int
		format Format
		want   string
	}{
		{1, 1, PNG, "page_1.png"},
		{1, 2, PNG, "page_01.png"},
		{7, 3, PNG, "page_007.png"},
		{12, 2, PNG, "page_12.png"},
		{3, 2, JPEG, "page_03.jpg"},
	}

	for _, tt := range tests {
		if got := pageFileName(tt.page, tt.pad, tt.format); got != tt.want {
			t.Errorf("pageFileName(%d, %d, %q) = %q, want %q", tt.page, tt.pad, tt.format, got, tt.want)
		}
	}
}

func TestPadWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lastPage int
		want     int
	}{
		{0, 1},
		{1, 1},
		{9, 1},
		{10, 2},
		{99, 2},
		{100, 3},
		{1234, 4},
	}

	for _, tt := range tests {
		if got := padWidth(tt.lastPage); got != tt.want {
			t.Errorf("padWidth(%d) = %d, want %d", tt.lastPage, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if !PNG.valid() || !JPEG.valid() {
		t.Error("PNG and JPEG should be valid formats")
	}
	if Format("webp").valid() {
		t.Error("webp should not be a valid format")
	}
	if got := PNG.ext(); got != ".png" {
		t.Errorf("PNG.ext() = %q, want .png", got)
	}
	if got := JPEG.ext(); got != ".jpg" {
		t.Errorf("JPEG.ext() = %q, want .jpg", got)
	}
}

func TestJobResolved(t *testing.T) {
	t.Parallel()

	j := Job{Pages: 10}.resolved()
	if j.StartPage != 1 {
		t.Errorf("StartPage = %d, want 1", j.StartPage)
	}
	if j.Format != PNG {
		t.Errorf("Format = %q, want png", j.Format)
	}
	if j.Quality != 90 {
		t.Errorf("Quality = %d, want 90", j.Quality)
	}

	j = Job{Pages: 5, StartPage: 3, Format: JPEG, Quality: 70}.resolved()
	if j.StartPage != 3 || j.Format != JPEG || j.Quality != 70 {
		t.Errorf("resolved() overrode explicit values: %+v", j)
	}
	if got := j.lastPage(); got != 7 {
		t.Errorf("lastPage() = %d, want 7", got)
	}
}
