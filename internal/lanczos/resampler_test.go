package lanczos

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(width, height int, b, g, r uint8) *PixelBuffer {
	p := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.SetBGRA(x, y, b, g, r, 0xff)
		}
	}
	return p
}

func checkerboard(width, height int) *PixelBuffer {
	p := NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c uint8
			if (x+y)%2 == 0 {
				c = 0xff
			}
			p.SetBGRA(x, y, c, c, c, 0xff)
		}
	}
	return p
}

func noise(width, height int, seed int64) *PixelBuffer {
	rng := rand.New(rand.NewSource(seed))
	p := NewPixelBuffer(width, height)
	rng.Read(p.Pix)
	return p
}

func TestResizeRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  ResizeRequest
		err  error
	}{
		{"valid", ResizeRequest{Width: 10, Height: 10, KernelRadius: 3}, nil},
		{"zero width", ResizeRequest{Width: 0, Height: 10, KernelRadius: 3}, ErrInvalidDimensions},
		{"negative height", ResizeRequest{Width: 10, Height: -1, KernelRadius: 3}, ErrInvalidDimensions},
		{"zero radius", ResizeRequest{Width: 10, Height: 10, KernelRadius: 0}, ErrInvalidKernelRadius},
		{"largest allowed", ResizeRequest{Width: MaxPixels, Height: 1, KernelRadius: 3}, nil},
		{"too many pixels", ResizeRequest{Width: 1 << 14, Height: 1<<14 + 1, KernelRadius: 3}, ErrInvalidDimensions},
		{"product overflows int", ResizeRequest{Width: math.MaxInt, Height: math.MaxInt, KernelRadius: 1}, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestResize_InvalidInput(t *testing.T) {
	t.Run("bad request", func(t *testing.T) {
		dst, err := Resize(solid(4, 4, 1, 2, 3), 0, 4, 3)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.Nil(t, dst)
	})

	t.Run("huge target", func(t *testing.T) {
		dst, err := Resize(solid(1, 1, 1, 2, 3), math.MaxInt, math.MaxInt, 1)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.Nil(t, dst)
	})

	t.Run("nil source", func(t *testing.T) {
		dst, err := Resize(nil, 4, 4, 3)
		assert.ErrorIs(t, err, ErrInvalidSource)
		assert.Nil(t, dst)
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := Resize(&PixelBuffer{}, 4, 4, 3)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("short pixel slice", func(t *testing.T) {
		_, err := Resize(&PixelBuffer{Width: 2, Height: 2, Pix: make([]byte, 12)}, 4, 4, 3)
		assert.ErrorIs(t, err, ErrInvalidSource)
		assert.Contains(t, err.Error(), "12 bytes for 2x2 pixels")
	})
}

func TestResize_Dimensions(t *testing.T) {
	src := noise(23, 17, 1)
	sizes := [][2]int{{1, 1}, {5, 3}, {23, 17}, {40, 9}, {64, 64}}

	for _, size := range sizes {
		for radius := 1; radius <= 4; radius++ {
			dst, err := NewResampler(3).Resize(src, ResizeRequest{Width: size[0], Height: size[1], KernelRadius: radius})
			require.NoError(t, err)
			assert.Equal(t, size[0], dst.Width)
			assert.Equal(t, size[1], dst.Height)
			require.Len(t, dst.Pix, 4*size[0]*size[1])

			for y := 0; y < dst.Height; y++ {
				for x := 0; x < dst.Width; x++ {
					_, _, _, a := dst.BGRA(x, y)
					assert.Equal(t, uint8(0xff), a, "alpha at (%d,%d)", x, y)
				}
			}
		}
	}
}

func TestResize_SourceUntouched(t *testing.T) {
	src := noise(12, 12, 7)
	before := append([]byte(nil), src.Pix...)

	_, err := Resize(src, 5, 30, 3)
	require.NoError(t, err)
	assert.Equal(t, before, src.Pix)
}

func TestResize_Identity(t *testing.T) {
	src := noise(19, 11, 42)

	for _, radius := range []int{1, 2, 3} {
		dst, err := Resize(src, src.Width, src.Height, radius)
		require.NoError(t, err)

		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				sb, sg, sr, _ := src.BGRA(x, y)
				db, dg, dr, da := dst.BGRA(x, y)
				assert.Equal(t, []uint8{sb, sg, sr, 0xff}, []uint8{db, dg, dr, da}, "radius %d at (%d,%d)", radius, x, y)
			}
		}
	}
}

func TestResize_WorkerCountDoesNotChangeResult(t *testing.T) {
	src := noise(31, 27, 3)
	req := ResizeRequest{Width: 13, Height: 41, KernelRadius: 3}

	single, err := NewResampler(1).Resize(src, req)
	require.NoError(t, err)
	many, err := NewResampler(16).Resize(src, req)
	require.NoError(t, err)

	assert.Equal(t, single.Pix, many.Pix)
}

func TestResize_ZeroValueResampler(t *testing.T) {
	src := noise(9, 7, 5)
	req := ResizeRequest{Width: 4, Height: 6, KernelRadius: 2}

	done := make(chan *PixelBuffer, 1)
	go func() {
		var rs Resampler
		dst, err := rs.Resize(src, req)
		assert.NoError(t, err)
		done <- dst
	}()

	select {
	case dst := <-done:
		expected, err := NewResampler(1).Resize(src, req)
		require.NoError(t, err)
		assert.Equal(t, expected.Pix, dst.Pix)
	case <-time.After(5 * time.Second):
		t.Fatal("Resize did not return")
	}
}

func TestResize_Downscale(t *testing.T) {
	t.Run("non-integer factor blends several taps", func(t *testing.T) {
		dst, err := Resize(checkerboard(4, 4), 3, 3, 2)
		require.NoError(t, err)

		b, g, r, _ := dst.BGRA(1, 1)
		assert.Equal(t, uint8(176), b)
		assert.Equal(t, b, g)
		assert.Equal(t, b, r)

		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				if x == 0 && y == 0 {
					continue
				}
				b, _, _, _ := dst.BGRA(x, y)
				assert.NotEqual(t, uint8(0), b, "(%d,%d)", x, y)
				assert.NotEqual(t, uint8(0xff), b, "(%d,%d)", x, y)
			}
		}
	})

	t.Run("integer factor lands on aligned source pixels", func(t *testing.T) {
		dst, err := Resize(checkerboard(4, 4), 2, 2, 2)
		require.NoError(t, err)

		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				b, g, r, _ := dst.BGRA(x, y)
				assert.Equal(t, []uint8{0xff, 0xff, 0xff}, []uint8{b, g, r})
			}
		}
	})
}

func TestResize_Upscale(t *testing.T) {
	src := solid(2, 2, 200, 100, 50)

	for radius := 1; radius <= 4; radius++ {
		dst, err := Resize(src, 8, 8, radius)
		require.NoError(t, err)

		for y := 0; y < 8; y += 4 {
			for x := 0; x < 8; x += 4 {
				b, g, r, _ := dst.BGRA(x, y)
				assert.Equal(t, []uint8{200, 100, 50}, []uint8{b, g, r}, "radius %d at (%d,%d)", radius, x, y)
			}
		}
	}

	t.Run("single tap never brightens", func(t *testing.T) {
		dst, err := Resize(src, 8, 8, 1)
		require.NoError(t, err)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				b, g, r, _ := dst.BGRA(x, y)
				assert.LessOrEqual(t, b, uint8(200))
				assert.LessOrEqual(t, g, uint8(100))
				assert.LessOrEqual(t, r, uint8(50))
			}
		}
	})
}

func TestResize_BorderTapsAreDropped(t *testing.T) {
	dst, err := Resize(solid(16, 16, 100, 100, 100), 64, 64, 3)
	require.NoError(t, err)

	border, _, _, _ := dst.BGRA(1, 17)
	interior, _, _, _ := dst.BGRA(17, 17)
	corner, _, _, _ := dst.BGRA(0, 0)

	// Both pixels sit a quarter pixel right of a source column; only the
	// border one loses the two taps left of column 0.
	assert.Equal(t, uint8(98), interior)
	assert.Equal(t, uint8(108), border)
	assert.Equal(t, uint8(100), corner)
}

func TestResize_Impulse(t *testing.T) {
	src := NewPixelBuffer(8, 8)
	src.SetBGRA(3, 3, 200, 0, 0, 0xff)

	dst, err := Resize(src, 6, 6, 3)
	require.NoError(t, err)

	offset := 2*8.0/6 - 3
	b, g, r, _ := dst.BGRA(2, 2)
	assert.Equal(t, colorByte(200*Weight(offset, 3)*Weight(offset, 3)), b)
	assert.Equal(t, uint8(131), b)
	assert.Zero(t, g)
	assert.Zero(t, r)
}

func TestResize_ClampsToByteRange(t *testing.T) {
	t.Run("negative lobes clamp to zero", func(t *testing.T) {
		src := NewPixelBuffer(8, 8)
		src.SetBGRA(3, 3, 0xff, 0xff, 0xff, 0xff)

		dst, err := Resize(src, 6, 6, 3)
		require.NoError(t, err)

		raw := 255 * Weight(2*8.0/6-3, 3) * Weight(1*8.0/6-3, 3)
		require.Less(t, raw, 0.0)
		b, g, r, a := dst.BGRA(2, 1)
		assert.Equal(t, []uint8{0, 0, 0, 0xff}, []uint8{b, g, r, a})
	})

	t.Run("overshoot clamps to 255", func(t *testing.T) {
		src := solid(8, 8, 0xff, 0xff, 0xff)
		src.SetBGRA(3, 3, 0, 0, 0, 0xff)

		dst, err := Resize(src, 6, 6, 3)
		require.NoError(t, err)

		b, _, _, _ := dst.BGRA(2, 1)
		assert.Equal(t, uint8(255), b)
		b, _, _, _ = dst.BGRA(5, 5)
		assert.Equal(t, uint8(255), b)
		b, _, _, _ = dst.BGRA(2, 2)
		assert.Equal(t, uint8(79), b)
	})

	t.Run("alpha is always opaque", func(t *testing.T) {
		src := checkerboard(9, 9)
		for radius := 1; radius <= 5; radius++ {
			dst, err := Resize(src, 7, 5, radius)
			require.NoError(t, err)
			for i := 0; i < len(dst.Pix); i += 4 {
				assert.Equal(t, uint8(0xff), dst.Pix[i+3])
			}
		}
	})
}
