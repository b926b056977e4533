package lossless

import (
	"bytes"
	"image"
	"image/png"

	"github.com/allape/openspin/spin/codec"
)

// Encoder sends PNG frames, larger than JPEG but without artifacts.
type Encoder struct {
	codec.Codec
	CompressionLevel png.CompressionLevel
}

func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	encoder := &png.Encoder{CompressionLevel: e.CompressionLevel}

	buffer := bytes.NewBuffer(nil)
	err := encoder.Encode(buffer, img)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (e *Encoder) ContentType() string {
	return "image/png"
}
