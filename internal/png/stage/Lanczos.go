package stage

import (
	"fmt"

	"github.com/rm-hull/lanczos-resizer/internal/lanczos"
	"github.com/rm-hull/lanczos-resizer/internal/png"
)

type LanczosStage struct {
	Width        int
	Height       int
	KernelRadius int
	Workers      int
}

// Process resamples the image to Width x Height with a Lanczos kernel of the
// given radius. The result is always opaque; source alpha is ignored.
func (s *LanczosStage) Process(p *png.Image) error {
	radius := s.KernelRadius
	if radius == 0 {
		radius = lanczos.DefaultKernelRadius
	}

	dst, err := lanczos.NewResampler(s.Workers).Resize(png.ToPixelBuffer(p.Img), lanczos.ResizeRequest{
		Width:        s.Width,
		Height:       s.Height,
		KernelRadius: radius,
	})
	if err != nil {
		return fmt.Errorf("failed to resample image: %w", err)
	}

	p.Replace(png.FromPixelBuffer(dst))
	return nil
}
