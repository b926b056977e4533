package factory

import (
	"fmt"

	"github.com/allape/openspin/config"
	"github.com/allape/openspin/spin/codec"
	"github.com/allape/openspin/spin/codec/jpg"
	"github.com/allape/openspin/spin/codec/lossless"
)

func CodecFromConfig(conf config.Config) (codec.Codec, error) {
	switch conf.Codec.Type {
	case config.CodecJPEG, "":
		return &jpg.Encoder{Quality: conf.Codec.Quality}, nil
	case config.CodecPNG:
		return &lossless.Encoder{}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", conf.Codec.Type)
	}
}
