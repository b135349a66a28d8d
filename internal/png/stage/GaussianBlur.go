package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/rm-hull/lanczos-resizer/internal/png"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur to the image using the specified Sigma value.
// Used ahead of a large downscale to suppress aliasing; a Sigma of zero or
// less leaves the image unchanged.
func (s *GaussianBlurStage) Process(p *png.Image) error {
	if s.Sigma <= 0 {
		return nil
	}
	p.Replace(blur.Gaussian(p.Img, s.Sigma))
	return nil
}
