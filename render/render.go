// Package render draws an exported planner map as a PNG image.
//
// Each marker character becomes one source pixel; the image is then
// scaled up with nearest-neighbour sampling so every cell is a crisp
// square of Scale×Scale pixels.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

var (
	// ErrEmptyMap indicates there are no rows or columns to draw.
	ErrEmptyMap = errors.New("render: map must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("render: all rows must have the same length")
	// ErrUnknownMarker indicates a character with no palette entry.
	ErrUnknownMarker = errors.New("render: unknown map marker")
)

// Palette maps marker characters to colours.
var Palette = color.Palette{
	color.RGBA{0xf5, 0xf5, 0xf5, 0xff}, // '0' unoccupied
	color.RGBA{0x30, 0x30, 0x30, 0xff}, // '1' occupied
	color.RGBA{0x2e, 0x7d, 0x32, 0xff}, // 'S' start
	color.RGBA{0xc6, 0x28, 0x28, 0xff}, // 'D' destination
	color.RGBA{0x15, 0x65, 0xc0, 0xff}, // '*' best path
}

var paletteIndex = map[byte]uint8{'0': 0, '1': 1, 'S': 2, 'D': 3, '*': 4}

// Options control the rendered image.
type Options struct {
	// Scale is the edge length of one cell in pixels. Values < 1 mean 1.
	Scale int
}

// DefaultOptions returns Options with Scale=8.
func DefaultOptions() Options {
	return Options{Scale: 8}
}

// Image builds the scaled image for the given map lines.
func Image(lines []string, opts Options) (image.Image, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyMap
	}
	cols := len(lines[0])
	src := image.NewPaletted(image.Rect(0, 0, cols, len(lines)), Palette)
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d", ErrNonRectangular, y)
		}
		for x := 0; x < cols; x++ {
			idx, ok := paletteIndex[line[x]]
			if !ok {
				return nil, fmt.Errorf("%w: %q at row %d column %d", ErrUnknownMarker, line[x], y, x)
			}
			src.SetColorIndex(x, y, idx)
		}
	}

	scale := max(opts.Scale, 1)
	if scale == 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols*scale, len(lines)*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// PNG renders the map lines and encodes them to w.
func PNG(w io.Writer, lines []string, opts Options) error {
	img, err := Image(lines, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
