package lossless

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodeKeepsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	bs, err := (&Encoder{}).Encode(img)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(bytes.NewReader(bs))
	if err != nil {
		t.Fatal(err)
	}

	r, g, b, _ := decoded.At(2, 1).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Fatalf("Expected (1, 2, 3), got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}
