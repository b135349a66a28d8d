package stage

import (
	"fmt"
	"image"
	"maps"
	"slices"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/gift"
	"github.com/kovidgoyal/imaging"
	"github.com/nfnt/resize"
	"github.com/rm-hull/lanczos-resizer/internal/png"
	"golang.org/x/image/draw"
)

// ResizeFunc scales img to exactly width x height.
type ResizeFunc func(img image.Image, width, height int) image.Image

// References are third-party resizers the Lanczos stage can be compared
// against. None of them share its tap layout or border handling.
var References = map[string]ResizeFunc{
	"xdraw-catmullrom": func(img image.Image, width, height int) image.Image {
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		return dst
	},
	"bild-lanczos": func(img image.Image, width, height int) image.Image {
		return transform.Resize(img, width, height, transform.Lanczos)
	},
	"imaging-lanczos": func(img image.Image, width, height int) image.Image {
		return imaging.Resize(img, width, height, imaging.Lanczos)
	},
	"nfnt-lanczos3": func(img image.Image, width, height int) image.Image {
		return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	},
	"gift-lanczos": func(img image.Image, width, height int) image.Image {
		g := gift.New(gift.Resize(width, height, gift.LanczosResampling))
		dst := image.NewNRGBA(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		return dst
	},
}

func ReferenceNames() []string {
	return slices.Sorted(maps.Keys(References))
}

type ReferenceStage struct {
	Engine string
	Width  int
	Height int
}

// Process resizes with one of the References instead of the Lanczos kernel.
func (s *ReferenceStage) Process(p *png.Image) error {
	fn, ok := References[s.Engine]
	if !ok {
		return fmt.Errorf("unknown resize engine %q", s.Engine)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid target size %dx%d", s.Width, s.Height)
	}
	p.Replace(fn(p.Img, s.Width, s.Height))
	return nil
}

// LanczosEngine names the built-in resampler in engine selections.
const LanczosEngine = "lanczos"

// NewResizeStage returns the stage for engine, which is either LanczosEngine
// (or empty) or one of the References.
func NewResizeStage(engine string, width, height, kernelRadius, workers int) (png.PipelineStage, error) {
	if engine == "" || engine == LanczosEngine {
		return &LanczosStage{Width: width, Height: height, KernelRadius: kernelRadius, Workers: workers}, nil
	}
	if _, ok := References[engine]; !ok {
		return nil, fmt.Errorf("unknown resize engine %q (available: %s, %v)", engine, LanczosEngine, ReferenceNames())
	}
	return &ReferenceStage{Engine: engine, Width: width, Height: height}, nil
}
