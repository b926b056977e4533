package placeholder

import (
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	font     *truetype.Font
	fontErr  error
	fontOnce sync.Once
)

func Font() (*truetype.Font, error) {
	fontOnce.Do(func() {
		font, fontErr = truetype.Parse(goregular.TTF)
	})
	return font, fontErr
}

// CreatePlaceholder
// create a placeholder image for a frame that can not be shown
func CreatePlaceholder(
	width, height int,
	backgroundColor, color color.Color,
	text string,
	timestamp bool, // put current time in YYYY-MM-dd HH:mm:ss pattern at the right bottom corner
) (image.Image, error) {
	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	if err := Draw(dc, color, text, timestamp); err != nil {
		return nil, err
	}

	return dc.Image(), nil
}

// Draw writes text centered on dc, sized relative to the context height.
func Draw(dc *gg.Context, color color.Color, text string, timestamp bool) error {
	f, err := Font()
	if err != nil {
		return err
	}

	width, height := float64(dc.Width()), float64(dc.Height())

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fontSize(height, 8)}))
	dc.SetColor(color)
	dc.DrawStringAnchored(text, width/2, height/2, 0.5, 0.5)

	if timestamp {
		nowStr := time.Now().Format(time.DateTime)
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fontSize(height, 30)}))
		dc.DrawStringAnchored(nowStr, width-height/20, height-height/20, 1, 0)
	}

	return nil
}

func fontSize(height, divisor float64) float64 {
	size := height / divisor
	if size < 8 {
		return 8
	}
	return size
}
