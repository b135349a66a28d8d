package lanczos

import "math"

func sinc(x float64) float64 {
	return math.Sin(x*math.Pi) / (x * math.Pi)
}

// Weight is the Lanczos kernel with window radius a, evaluated at offset x.
func Weight(x float64, a int) float64 {
	if x == 0 {
		return 1
	}
	if math.Abs(x) < float64(a) {
		return sinc(x) * sinc(x/float64(a))
	}
	return 0
}

// colorByte rounds half to even before clamping into a byte.
func colorByte(x float64) uint8 {
	return uint8(math.Min(math.Max(0, math.RoundToEven(x)), 255))
}
