package stage

import (
	"image"
	"image/color"

	"github.com/rm-hull/lanczos-resizer/internal/png"
)

type GreyscaleStage struct{}

// Process converts the image to greyscale using luminance calculation.
// Alpha is carried over unchanged.
func (s *GreyscaleStage) Process(p *png.Image) error {
	gs := image.NewNRGBA(image.Rect(0, 0, p.Bounds.Dx(), p.Bounds.Dy()))
	for y := p.Bounds.Min.Y; y < p.Bounds.Max.Y; y++ {
		for x := p.Bounds.Min.X; x < p.Bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(p.Img.At(x, y)).(color.NRGBA)
			// Reference: https://en.wikipedia.org/wiki/Grayscale#Luma_coding_in_video_systems
			lum := uint8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B) + 0.5)
			gs.SetNRGBA(x-p.Bounds.Min.X, y-p.Bounds.Min.Y, color.NRGBA{lum, lum, lum, c.A})
		}
	}
	p.Replace(gs)
	return nil
}
