package codec

import (
	"image"
)

// Codec turns a rendered surface into the bytes sent to clients.
type Codec interface {
	Encode(img image.Image) ([]byte, error)
	ContentType() string
}
