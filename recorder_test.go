package libled

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"plasma-1s", "plasma-1s"},
		{"a/b c", "a_b_c"},
		{"v1.2", "v1.2"},
		{"héllo", "h_llo"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func listPNGs(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestFrameRecorderPacing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	now := int64(0)
	r := NewFrameRecorder(dir, 10)
	r.Clock = ClockFunc(func() int64 { return now })

	c := NewCanvas(4, 2)
	c.Clear(Red)
	if err := r.Record(c); err != nil {
		t.Fatalf("Record: %v", err)
	}
	now = 50
	c.Clear(Green)
	if err := r.Record(c); err != nil {
		t.Fatal(err)
	}
	if r.Written() != 1 {
		t.Fatalf("written = %d, want 1 before the next slot", r.Written())
	}

	now = 300
	c.Clear(Blue)
	if err := r.Record(c); err != nil {
		t.Fatal(err)
	}
	if r.Written() != 4 {
		t.Fatalf("written = %d, want 4", r.Written())
	}
	if n := len(listPNGs(t, dir)); n != 4 {
		t.Errorf("%d files on disk, want 4", n)
	}

	want := []Color{Red, Red, Red, Blue}
	for i, w := range want {
		f, err := os.Open(filepath.Join(dir, fmt.Sprintf("Frame-%08d.png", i)))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, "frame", FromGoColor(img.At(0, 0)), w)
	}

	r.Reset()
	if r.Written() != 0 {
		t.Error("Reset should restart numbering")
	}
}

func TestFrameRecorderDisabled(t *testing.T) {
	r := &FrameRecorder{Dir: t.TempDir()}
	if err := r.Record(NewCanvas(1, 1)); err != nil || r.Written() != 0 {
		t.Errorf("zero rate should not record: %v, %d", err, r.Written())
	}
}

func TestScreenshot(t *testing.T) {
	dir := t.TempDir()
	c := NewCanvas(3, 3)
	c.Clear(Gold)
	path, err := Screenshot(dir, "first shot", c)
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if !strings.HasSuffix(path, "_first_shot.png") || filepath.Dir(path) != dir {
		t.Errorf("path = %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}

func TestScreenshotBadDir(t *testing.T) {
	file := writeFile(t, "plain", "x")
	if _, err := Screenshot(filepath.Join(file, "sub"), "x", NewCanvas(1, 1)); err == nil {
		t.Error("want an error when the directory cannot be created")
	}
}
