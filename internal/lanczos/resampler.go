package lanczos

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
)

const DefaultKernelRadius = 3

// MaxPixels bounds the destination size so its buffer length always fits in
// an int, even on 32-bit platforms.
const MaxPixels = 1 << 28

var (
	ErrInvalidDimensions   = errors.New("target width and height must be positive")
	ErrInvalidKernelRadius = errors.New("kernel radius must be at least 1")
	ErrInvalidSource       = errors.New("source buffer is empty or malformed")
)

// ResizeRequest is valid when both dimensions are positive, their product is
// at most MaxPixels and the kernel radius is at least 1.
type ResizeRequest struct {
	Width        int
	Height       int
	KernelRadius int
}

func (req ResizeRequest) Validate() error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, req.Width, req.Height)
	}
	if req.Width > MaxPixels/req.Height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, req.Width, req.Height, MaxPixels)
	}
	if req.KernelRadius <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidKernelRadius, req.KernelRadius)
	}
	return nil
}

// Resampler fills destination rows on a fixed pool of workers. It holds no
// per-resize state and may be shared. The zero value uses GOMAXPROCS workers.
type Resampler struct {
	workers int
}

// NewResampler returns a resampler using the given number of workers, or
// GOMAXPROCS workers when workers is less than 1.
func NewResampler(workers int) *Resampler {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Resampler{workers: workers}
}

// Resize resamples src with the default worker pool.
func Resize(src *PixelBuffer, width, height, kernelRadius int) (*PixelBuffer, error) {
	return NewResampler(0).Resize(src, ResizeRequest{
		Width:        width,
		Height:       height,
		KernelRadius: kernelRadius,
	})
}

// Resize returns a new opaque buffer of the requested size. Taps falling
// outside src are dropped and the remaining weights are not renormalised, so
// pixels near the border see a smaller window than interior ones.
func (rs *Resampler) Resize(src *PixelBuffer, req ResizeRequest) (*PixelBuffer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}

	dst := NewPixelBuffer(req.Width, req.Height)
	k := kernel{
		src:          src,
		dst:          dst,
		radius:       req.KernelRadius,
		widthFactor:  float64(src.Width) / float64(req.Width),
		heightFactor: float64(src.Height) / float64(req.Height),
	}

	workers := rs.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, req.Height)
	rows := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < dst.Width; x++ {
					k.setTargetPixel(x, y)
				}
			}
		}()
	}

	for y := 0; y < dst.Height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	return dst, nil
}

type kernel struct {
	src          *PixelBuffer
	dst          *PixelBuffer
	radius       int
	widthFactor  float64
	heightFactor float64
}

func (k *kernel) setTargetPixel(dstX, dstY int) {
	srcX := float64(dstX) * k.widthFactor
	srcY := float64(dstY) * k.heightFactor

	centreX := int(math.RoundToEven(srcX))
	centreY := int(math.RoundToEven(srcY))

	var r, g, b float64
	for y := 1; y < k.radius*2; y++ {
		sampleY := centreY - k.radius + y
		if sampleY < 0 || sampleY >= k.src.Height {
			continue
		}
		weightY := Weight(srcY-float64(sampleY), k.radius)
		if weightY == 0 {
			continue
		}

		for x := 1; x < k.radius*2; x++ {
			sampleX := centreX - k.radius + x
			if sampleX < 0 || sampleX >= k.src.Width {
				continue
			}
			weight := Weight(srcX-float64(sampleX), k.radius) * weightY
			if weight == 0 {
				continue
			}

			i := pixelIndex(sampleX, sampleY, k.src.Width)
			s := k.src.Pix[i : i+4 : i+4]
			b += float64(s[0]) * weight
			g += float64(s[1]) * weight
			r += float64(s[2]) * weight
		}
	}

	k.dst.SetBGRA(dstX, dstY, colorByte(b), colorByte(g), colorByte(r), 0xff)
}
