package boundary

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette"
)

// Listed is a fixed list of colors indexed by class. It implements
// palette.Palette.
type Listed []color.Color

var _ palette.Palette = Listed(nil)

func (l Listed) Colors() []color.Color { return l }

// ParseListed builds a Listed palette from "#RRGGBB" strings.
func ParseListed(hex ...string) (Listed, error) {
	l := make(Listed, len(hex))
	for i, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		l[i] = c
	}
	return l, nil
}

// ParseHex parses "#RRGGBB" (the leading '#' is optional) into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// LightPalette colors the predicted regions.
func LightPalette() Listed {
	return Listed{
		color.RGBA{R: 0xFF, G: 0xAA, B: 0xAA, A: 0xFF},
		color.RGBA{R: 0xAA, G: 0xFF, B: 0xAA, A: 0xFF},
		color.RGBA{R: 0xAA, G: 0xAA, B: 0xFF, A: 0xFF},
	}
}

// BoldPalette colors the training points.
func BoldPalette() Listed {
	return Listed{
		color.RGBA{R: 0xFF, A: 0xFF},
		color.RGBA{G: 0xFF, A: 0xFF},
		color.RGBA{B: 0xFF, A: 0xFF},
	}
}

var outlineGray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
