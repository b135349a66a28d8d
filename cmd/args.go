package cmd

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/rm-hull/lanczos-resizer/internal/lanczos"
)

// ParseSizeArgs reads the positional <width> <height> [radius] arguments.
func ParseSizeArgs(args []string) (width, height, radius int, err error) {
	if len(args) < 2 || len(args) > 3 {
		return 0, 0, 0, fmt.Errorf("expected <width> <height> [radius], got %d arguments", len(args))
	}

	width, err = positiveInt("width", args[0])
	if err != nil {
		return 0, 0, 0, err
	}
	height, err = positiveInt("height", args[1])
	if err != nil {
		return 0, 0, 0, err
	}

	radius = lanczos.DefaultKernelRadius
	if len(args) == 3 {
		radius, err = positiveInt("radius", args[2])
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return width, height, radius, nil
}

func positiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid %s %d: must be at least 1", name, n)
	}
	return n, nil
}

// ParseHexColor accepts "#rrggbb" or "rrggbb". An empty string yields nil.
func ParseHexColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid colour %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
