package terrainrgb

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gruppe-adler/altimesh/internal/dem"
)

func TestHeightToRgbRoundTrip(t *testing.T) {
	for _, h := range []float64{-10000, -5, 0, 0.1, 372, 4807.5, 1000000} {
		c := HeightToRgb(h)
		assert.Equal(t, uint8(255), c.A)
		assert.InDelta(t, h, RgbToHeight(c), 0.05, "height %g", h)
	}
}

func TestHeightToRgbKnownValues(t *testing.T) {
	// x = 100000 = 0x0186a0
	assert.Equal(t, color.RGBA{R: 0x01, G: 0x86, B: 0xa0, A: 255}, HeightToRgb(0))
	// below the encodable range clamps to 0
	assert.Equal(t, color.RGBA{A: 255}, HeightToRgb(-20000))
	// above clamps to 0xffffff
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, HeightToRgb(1e9))
}

func TestEncode(t *testing.T) {
	grid := dem.NewGrid(2, 3, []int{0, 10, 20, 30, 40, 50})

	img := Encode(grid, 5)

	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.InDelta(t, 15, RgbToHeight(img.RGBAAt(1, 0)), 1e-9)
	assert.InDelta(t, 35, RgbToHeight(img.RGBAAt(0, 1)), 1e-9)
}
