package internal

import (
	"fmt"
	"image/color"
	"io"

	"github.com/rm-hull/lanczos-resizer/internal/png"
	"github.com/rm-hull/lanczos-resizer/internal/png/stage"
)

// ResizeOptions describes one resize, shared by the CLI, the batch processor
// and the API server.
type ResizeOptions struct {
	Width        int
	Height       int
	KernelRadius int
	Workers      int
	Engine       string
	Blur         float64
	Greyscale    bool
	Background   color.Color
}

// Stages builds the pipeline: optional flatten, greyscale and blur, then the
// resize itself.
func (o ResizeOptions) Stages() ([]png.PipelineStage, error) {
	resize, err := stage.NewResizeStage(o.Engine, o.Width, o.Height, o.KernelRadius, o.Workers)
	if err != nil {
		return nil, err
	}

	stages := make([]png.PipelineStage, 0, 4)
	if o.Background != nil {
		stages = append(stages, &stage.FlattenStage{Background: o.Background})
	}
	if o.Greyscale {
		stages = append(stages, &stage.GreyscaleStage{})
	}
	if o.Blur > 0 {
		stages = append(stages, &stage.GaussianBlurStage{Sigma: o.Blur})
	}
	return append(stages, resize), nil
}

// ResizeStream decodes an image from r, runs it through the pipeline and
// writes the result to w as PNG.
func ResizeStream(r io.Reader, w io.Writer, opts ResizeOptions) error {
	stages, err := opts.Stages()
	if err != nil {
		return err
	}

	img, err := png.NewImageFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if err := img.Pipeline(stages...); err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	if err := img.Write(w); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
