package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// FallbackColor is used when a bean carries no usable background colour.
const FallbackColor = "#9CA3AF"

// ParseHexColor parses "#RGB" or "#RRGGBB" (leading # optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ColorOrFallback parses s, returning FallbackColor when s is not a valid hex colour
func ColorOrFallback(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		c, _ = ParseHexColor(FallbackColor)
	}
	return c
}
