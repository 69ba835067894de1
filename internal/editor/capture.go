package editor

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture saves viewport screenshots as timestamped PNG files.
type Capture struct {
	dir    string
	prefix string
}

// NewCapture creates a capture handler writing into dir.
func NewCapture(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix}
}

// SavePixels writes raw RGBA framebuffer pixels to a PNG and returns the
// file path. Rows are flipped during the copy since OpenGL delivers them
// bottom-up.
func (c *Capture) SavePixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	filename := fmt.Sprintf("%s_%s.png", c.prefix, time.Now().Format("2006-01-02_15-04-05"))
	if c.dir != "" {
		filename = filepath.Join(c.dir, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}
