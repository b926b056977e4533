package canvas

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
)

func TestClearUsesBackground(t *testing.T) {
	c := New(4, 3, color.RGBA{R: 255, A: 255})

	size := c.Size()
	if size.X != 4 || size.Y != 3 {
		t.Fatalf("Expected 4x3, got %v", size)
	}

	r, g, b, a := c.Snapshot().At(3, 2).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("Expected red, got %d %d %d %d", r, g, b, a)
	}
}

func TestDrawScaledFillsCanvas(t *testing.T) {
	c := New(40, 30, color.White)

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	c.DrawScaled(src)

	snapshot := c.Snapshot()
	for _, p := range []image.Point{{0, 0}, {39, 0}, {0, 29}, {39, 29}, {20, 15}} {
		r, g, b, _ := snapshot.At(p.X, p.Y).RGBA()
		if r > 0x100 || g > 0x100 || b < 0xff00 {
			t.Fatalf("Expected blue at %v, got %d %d %d", p, r, g, b)
		}
	}

	c.DrawScaled(nil)
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(2, 2, color.Black)
	before := c.Snapshot()

	c.DrawContext(func(dc *gg.Context) {
		dc.SetColor(color.White)
		dc.Clear()
	})

	r, _, _, _ := before.At(0, 0).RGBA()
	if r != 0 {
		t.Fatalf("Expected snapshot to stay black, got %d", r)
	}
	r, _, _, _ = c.Snapshot().At(0, 0).RGBA()
	if r != 0xffff {
		t.Fatalf("Expected canvas to be white, got %d", r)
	}
}
