package png

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/kettek/apng"
)

// MaxFrameDelay is the longest per-frame delay, in seconds, an APNG frame
// can carry with a millisecond denominator.
const MaxFrameDelay = math.MaxUint16 / 1000.0

var ErrInvalidFrameDelay = fmt.Errorf("frame delay must be between 0 and %.3f seconds", MaxFrameDelay)

// ValidateFrameDelay rejects delays that do not fit an APNG frame header.
func ValidateFrameDelay(frameDelay float64) error {
	if math.IsNaN(frameDelay) || frameDelay < 0 || frameDelay > MaxFrameDelay {
		return fmt.Errorf("%w: got %g", ErrInvalidFrameDelay, frameDelay)
	}
	return nil
}

// Animate builds a looping APNG showing each frame for frameDelay seconds.
func Animate(frames []image.Image, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}
	if err := ValidateFrameDelay(frameDelay); err != nil {
		return nil, err
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, img := range frames {
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(math.Round(frameDelay * 1000)),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
