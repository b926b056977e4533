package placeholder

import (
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestCreatePlaceholder(t *testing.T) {
	img, err := CreatePlaceholder(
		1200, 900,
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		"0_3 unavailable",
		true,
	)
	if err != nil {
		t.Fatal(err)
	}

	size := img.Bounds().Size()
	if size.X != 1200 || size.Y != 900 {
		t.Fatalf("Expected 1200x900, got %dx%d", size.X, size.Y)
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("Expected black corner, got %d %d %d", r, g, b)
	}

	frameFile, err := os.Create(filepath.Join(t.TempDir(), "frame.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = frameFile.Close()
	}()

	err = jpeg.Encode(frameFile, img, nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestFontSize(t *testing.T) {
	if fontSize(16, 8) != 8 {
		t.Fatalf("Expected minimum size 8, got %f", fontSize(16, 8))
	}
	if fontSize(900, 9) != 100 {
		t.Fatalf("Expected 100, got %f", fontSize(900, 9))
	}
}
