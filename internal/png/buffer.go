package png

import (
	"image"
	"image/color"

	"github.com/rm-hull/lanczos-resizer/internal/lanczos"
)

// ToPixelBuffer copies img into a BGRA buffer using non-premultiplied colour.
// The image origin is moved to (0, 0).
func ToPixelBuffer(img image.Image) *lanczos.PixelBuffer {
	bounds := img.Bounds()
	buf := lanczos.NewPixelBuffer(bounds.Dx(), bounds.Dy())

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < buf.Height; y++ {
			i := (y+bounds.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride + (bounds.Min.X-nrgba.Rect.Min.X)*4
			j := y * buf.Width * 4
			for x := 0; x < buf.Width; x++ {
				s := nrgba.Pix[i : i+4 : i+4]
				d := buf.Pix[j : j+4 : j+4]
				d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
				i += 4
				j += 4
			}
		}
		return buf
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			buf.SetBGRA(x, y, c.B, c.G, c.R, c.A)
		}
	}
	return buf
}

func FromPixelBuffer(buf *lanczos.PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for i := 0; i < len(buf.Pix); i += 4 {
		s := buf.Pix[i : i+4 : i+4]
		d := img.Pix[i : i+4 : i+4]
		d[0], d[1], d[2], d[3] = s[2], s[1], s[0], s[3]
	}
	return img
}
