package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/allape/gogger"
	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/codec"
	"github.com/allape/openspin/spin/codec/jpg"
	"github.com/allape/openspin/spin/codec/lossless"
	"github.com/allape/openspin/spin/placeholder"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
)

var l = gogger.New("framegen")

var ErrInvalidGrid = errors.New("invalid grid")

type Options struct {
	Folder    string
	Extension string
	UCount    int
	VCount    int
	Width     int
	Height    int
}

func main() {
	options := Options{}

	flag.StringVar(&options.Folder, "out", "./frames/", "output folder, used as folder_path prefix")
	flag.StringVar(&options.Extension, "ext", "png", "png or jpg")
	flag.IntVar(&options.UCount, "u", 18, "horizontal frame count")
	flag.IntVar(&options.VCount, "v", 1, "vertical frame count")
	flag.IntVar(&options.Width, "width", 1200, "frame width")
	flag.IntVar(&options.Height, "height", 900, "frame height")
	flag.Parse()

	written, err := Generate(options)
	if err != nil {
		l.Error().Println("generate:", err)
		os.Exit(1)
	}

	l.Info().Println("wrote", written, "frame(s) to", options.Folder)
}

func encoderFor(extension string) (codec.Codec, error) {
	switch strings.ToLower(extension) {
	case "png":
		return &lossless.Encoder{}, nil
	case "jpg", "jpeg":
		return &jpg.Encoder{Quality: 90}, nil
	default:
		return nil, fmt.Errorf("unsupported extension: %s", extension)
	}
}

// FrameColor walks the hue wheel with u and darkens with v, so neighbouring frames are easy to tell apart.
func FrameColor(u, v, uCount, vCount int) colorful.Color {
	hue := 360 * float64(u) / float64(uCount)
	value := 0.9
	if vCount > 1 {
		value = 0.9 - 0.5*float64(v)/float64(vCount-1)
	}
	return colorful.Hsv(hue, 0.6, value)
}

func Render(u, v int, options Options) (*gg.Context, error) {
	dc := gg.NewContext(options.Width, options.Height)
	dc.SetColor(FrameColor(u, v, options.UCount, options.VCount))
	dc.Clear()

	// a needle pointing at the current angle
	cx, cy := float64(options.Width)/2, float64(options.Height)/2
	radius := math.Min(cx, cy) * 0.8
	angle := 2 * math.Pi * float64(u) / float64(options.UCount)
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(math.Max(2, radius/40))
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()
	dc.DrawLine(cx, cy, cx+radius*math.Sin(angle), cy-radius*math.Cos(angle))
	dc.Stroke()

	err := placeholder.Draw(dc, colorful.Color{R: 1, G: 1, B: 1}, fmt.Sprintf("%d_%d", v, u), false)
	if err != nil {
		return nil, err
	}

	return dc, nil
}

// Generate writes every frame of the grid and returns how many were written.
func Generate(options Options) (int, error) {
	if options.UCount <= 0 || options.VCount <= 0 || options.Width <= 0 || options.Height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d frames of %dx%d", ErrInvalidGrid, options.UCount, options.VCount, options.Width, options.Height)
	}

	encoder, err := encoderFor(options.Extension)
	if err != nil {
		return 0, err
	}

	folder := options.Folder
	if folder != "" && !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	if folder != "" {
		err = os.MkdirAll(folder, 0755)
		if err != nil {
			return 0, err
		}
	}

	written := 0
	for v := 0; v < options.VCount; v++ {
		for u := 0; u < options.UCount; u++ {
			dc, err := Render(u, v, options)
			if err != nil {
				return written, err
			}

			data, err := encoder.Encode(dc.Image())
			if err != nil {
				return written, err
			}

			framePath := spin.FramePath(folder, options.Extension, u, v)
			err = os.WriteFile(framePath, data, 0644)
			if err != nil {
				return written, err
			}

			l.Verbose().Println("wrote", framePath)
			written++
		}
	}

	return written, nil
}
