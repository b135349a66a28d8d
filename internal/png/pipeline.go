package png

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Image struct {
	Img    image.Image
	Bounds image.Rectangle
	Format string
}

type PipelineStage interface {
	Process(img *Image) error
}

// NewImageFromReader decodes any registered format: PNG, JPEG, GIF, BMP, TIFF
// or WebP.
func NewImageFromReader(r io.Reader) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &Image{
		Img:    img,
		Bounds: img.Bounds(),
		Format: format,
	}, nil
}

// Write always encodes as PNG, whatever the input format was.
func (p *Image) Write(w io.Writer) error {
	return png.Encode(w, p.Img)
}

func (p *Image) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(p); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps in the output of a stage.
func (p *Image) Replace(img image.Image) {
	p.Img = img
	p.Bounds = img.Bounds()
}
