package stage

import (
	"image"
	"image/color"

	"github.com/rm-hull/lanczos-resizer/internal/png"
	"golang.org/x/image/draw"
)

type FlattenStage struct {
	Background color.Color
}

// Process composites the image over a solid Background so that transparent
// regions have a defined colour before the resampler discards alpha.
func (s *FlattenStage) Process(p *png.Image) error {
	bg := s.Background
	if bg == nil {
		bg = color.White
	}

	rect := image.Rect(0, 0, p.Bounds.Dx(), p.Bounds.Dy())
	out := image.NewNRGBA(rect)
	draw.Draw(out, rect, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, rect, p.Img, p.Bounds.Min, draw.Over)
	p.Replace(out)
	return nil
}
