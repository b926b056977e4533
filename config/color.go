package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts #rgb, #rrggbb and "transparent". Empty is white.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return color.White, nil
	case "transparent":
		return color.Transparent, nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
