package lanczos

import "fmt"

// PixelBuffer is a row-major image with 4 bytes per pixel in B, G, R, A order
// and no padding between rows.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, 4*width*height),
	}
}

// BGRA returns the channels of the pixel at (x, y).
func (p *PixelBuffer) BGRA(x, y int) (b, g, r, a uint8) {
	i := pixelIndex(x, y, p.Width)
	s := p.Pix[i : i+4 : i+4]
	return s[0], s[1], s[2], s[3]
}

func (p *PixelBuffer) SetBGRA(x, y int, b, g, r, a uint8) {
	i := pixelIndex(x, y, p.Width)
	s := p.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = b, g, r, a
}

func (p *PixelBuffer) validate() error {
	if p == nil || p.Width < 1 || p.Height < 1 {
		return ErrInvalidSource
	}
	if len(p.Pix) != 4*p.Width*p.Height {
		return fmt.Errorf("%w: %d bytes for %dx%d pixels", ErrInvalidSource, len(p.Pix), p.Width, p.Height)
	}
	return nil
}

func pixelIndex(x, y, stride int) int {
	return 4 * (x + stride*y)
}
