package editor

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	c := NewCapture(dir, "shot")

	// 2x2 framebuffer, bottom row red, top row blue, bottom-up order
	// as delivered by glReadPixels.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255, // bottom row
		0, 0, 255, 255, 0, 0, 255, 255, // top row
	}

	path, err := c.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("got path %q, want it under %q", path, dir)
	}
	if !strings.HasPrefix(filepath.Base(path), "shot_") || !strings.HasSuffix(path, ".png") {
		t.Errorf("got filename %q, want shot_*.png", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decoding written PNG: %v", err)
	}

	wantTop := color.RGBA{0, 0, 255, 255}
	wantBottom := color.RGBA{255, 0, 0, 255}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != wantTop {
		t.Errorf("got top-left %v, want %v", got, wantTop)
	}
	if got := color.RGBAModel.Convert(img.At(0, 1)); got != wantBottom {
		t.Errorf("got bottom-left %v, want %v", got, wantBottom)
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	c := NewCapture(t.TempDir(), "shot")
	if _, err := c.SavePixels(make([]byte, 7), 2, 2); err == nil {
		t.Fatal("expected error for wrong pixel buffer size")
	}
}
