package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rm-hull/lanczos-resizer/internal"
	"github.com/rm-hull/lanczos-resizer/internal/models/resize"
	"github.com/rm-hull/lanczos-resizer/internal/png"
	"github.com/rm-hull/lanczos-resizer/internal/png/stage"
)

// Compare resizes source with the Lanczos kernel and with every reference
// engine, then reports how far each reference strays from the kernel.
func Compare(source string, opts internal.ResizeOptions, apngPath string, frameDelay float64, asJSON bool, w io.Writer) error {
	if apngPath != "" {
		if err := png.ValidateFrameDelay(frameDelay); err != nil {
			return err
		}
	}

	client := internal.NewSourceClient("lanczos-resizer/" + internal.Version())
	inFile, err := internal.OpenSource(client, source)
	if err != nil {
		return err
	}
	src, err := png.NewImageFromReader(inFile)
	_ = inFile.Close()
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	report, frames, err := CompareImage(src.Img, opts)
	if err != nil {
		return err
	}

	if apngPath != "" {
		data, err := png.Animate(frames, frameDelay)
		if err != nil {
			return fmt.Errorf("failed to build animation: %w", err)
		}
		if err := os.WriteFile(apngPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write animation: %w", err)
		}
		log.Printf("Wrote %d frame animation to %s", len(frames), apngPath)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ENGINE\tMAE\tPSNR (dB)\tTIME\n")
	fmt.Fprintf(tw, "%s\t-\t-\t%dms\n", stage.LanczosEngine, report.Elapsed)
	for _, c := range report.Comparisons {
		fmt.Fprintf(tw, "%s\t%.3f\t%.2f\t%dms\n", c.Engine, c.MeanAbsoluteError, c.PSNR, c.ElapsedMillis)
	}
	return tw.Flush()
}

// CompareImage returns the report and the resized frames, the Lanczos result
// first followed by each reference in name order.
func CompareImage(img image.Image, opts internal.ResizeOptions) (*resize.CompareReport, []image.Image, error) {
	bounds := img.Bounds()
	report := &resize.CompareReport{
		Source:       resize.Size{Width: bounds.Dx(), Height: bounds.Dy()},
		Target:       resize.Size{Width: opts.Width, Height: opts.Height},
		KernelRadius: opts.KernelRadius,
	}

	start := time.Now()
	core := &png.Image{Img: img, Bounds: bounds}
	lanczosStage := &stage.LanczosStage{Width: opts.Width, Height: opts.Height, KernelRadius: opts.KernelRadius, Workers: opts.Workers}
	if err := core.Pipeline(lanczosStage); err != nil {
		return nil, nil, err
	}
	report.Elapsed = time.Since(start).Milliseconds()

	frames := []image.Image{core.Img}
	for _, name := range stage.ReferenceNames() {
		start := time.Now()
		ref := &png.Image{Img: img, Bounds: bounds}
		if err := ref.Pipeline(&stage.ReferenceStage{Engine: name, Width: opts.Width, Height: opts.Height}); err != nil {
			return nil, nil, fmt.Errorf("failed to resize with %s: %w", name, err)
		}
		elapsed := time.Since(start).Milliseconds()

		mae, psnr, err := png.Difference(core.Img, ref.Img)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compare with %s: %w", name, err)
		}

		report.Comparisons = append(report.Comparisons, resize.Comparison{
			Engine:            name,
			MeanAbsoluteError: mae,
			PSNR:              psnr,
			ElapsedMillis:     elapsed,
		})
		frames = append(frames, ref.Img)
	}

	return report, frames, nil
}
