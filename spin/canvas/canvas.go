package canvas

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
)

// Canvas is an in-memory RGBA surface.
type Canvas struct {
	locker sync.Locker
	rgba   *image.RGBA
	dc     *gg.Context

	Background color.Color
	Scaler     draw.Scaler
}

func New(width, height int, background color.Color) *Canvas {
	if background == nil {
		background = color.White
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	c := &Canvas{
		locker:     &sync.Mutex{},
		rgba:       rgba,
		dc:         gg.NewContextForRGBA(rgba),
		Background: background,
		Scaler:     draw.ApproxBiLinear,
	}
	c.Clear()
	return c
}

func (c *Canvas) Size() image.Point {
	return c.rgba.Bounds().Size()
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	c.locker.Lock()
	defer c.locker.Unlock()

	c.dc.SetColor(c.Background)
	c.dc.Clear()
}

// DrawScaled stretches img over the whole canvas.
func (c *Canvas) DrawScaled(img image.Image) {
	if img == nil {
		return
	}

	c.locker.Lock()
	defer c.locker.Unlock()

	c.Scaler.Scale(c.rgba, c.rgba.Bounds(), img, img.Bounds(), draw.Over, nil)
}

// DrawContext runs fn against the gg context of the canvas.
func (c *Canvas) DrawContext(fn func(dc *gg.Context)) {
	c.locker.Lock()
	defer c.locker.Unlock()
	fn(c.dc)
}

func (c *Canvas) Snapshot() image.Image {
	c.locker.Lock()
	defer c.locker.Unlock()

	dst := image.NewRGBA(c.rgba.Bounds())
	copy(dst.Pix, c.rgba.Pix)
	return dst
}
