package screenshot

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromGL_FlipsRows(t *testing.T) {
	// Two rows: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromGL(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromGL failed: %v", err)
	}
	if img.RGBAAt(0, 0) != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top row: got %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(0, 1) != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom row: got %v", img.RGBAAt(0, 1))
	}
}

func TestFromGL_SizeMismatch(t *testing.T) {
	if _, err := FromGL(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewSaver(dir, "track")
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	path, err := s.SavePixels(make([]byte, 3*2*4), 3, 2)
	if err != nil {
		t.Fatalf("SavePixels failed: %v", err)
	}
	if want := filepath.Join(dir, "track_2024-05-06_07-08-09.000.png"); path != want {
		t.Errorf("path: got %s, want %s", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("size: got %dx%d", cfg.Width, cfg.Height)
	}
}
