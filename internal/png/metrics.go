package png

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// MaxPSNR is reported for identical images, where the true PSNR is infinite.
const MaxPSNR = 100.0

// Difference compares the colour channels of two equally sized images,
// ignoring alpha, and returns the mean absolute error per channel and the
// peak signal-to-noise ratio in dB.
func Difference(a, b image.Image) (mae float64, psnr float64, err error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, 0, fmt.Errorf("size mismatch: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	var absSum, sqSum float64
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ca := color.NRGBAModel.Convert(a.At(ab.Min.X+x, ab.Min.Y+y)).(color.NRGBA)
			cb := color.NRGBAModel.Convert(b.At(bb.Min.X+x, bb.Min.Y+y)).(color.NRGBA)
			for _, d := range [3]float64{
				float64(ca.R) - float64(cb.R),
				float64(ca.G) - float64(cb.G),
				float64(ca.B) - float64(cb.B),
			} {
				absSum += math.Abs(d)
				sqSum += d * d
			}
		}
	}

	n := float64(3 * ab.Dx() * ab.Dy())
	if n == 0 {
		return 0, MaxPSNR, nil
	}
	mae = absSum / n
	mse := sqSum / n
	if mse == 0 {
		return mae, MaxPSNR, nil
	}
	return mae, min(MaxPSNR, 10*math.Log10(255*255/mse)), nil
}
