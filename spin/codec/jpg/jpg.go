package jpg

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/allape/openspin/spin/codec"
)

const DefaultQuality = 75

type Encoder struct {
	codec.Codec
	Quality int
}

func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	options := &jpeg.Options{Quality: e.Quality}
	if options.Quality == 0 {
		options.Quality = DefaultQuality
	}

	buffer := bytes.NewBuffer(nil)
	err := jpeg.Encode(buffer, img, options)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (e *Encoder) ContentType() string {
	return "image/jpeg"
}
