package terrainrgb

import (
	"image"
	"image/color"
	"math"

	"github.com/gruppe-adler/altimesh/internal/dem"
)

/*
	The Mapbox Terrain-RGB Tiles use the following equation to decode
	height values from rgb.

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	To make things easier we'll replace (R * 256 * 256 + G * 256 + B) with x to get the following equation:
	height = -10000 + (x * 0.1)
	now we can solve the equation for x and get:
	x = 10 * height + 100000

	x is then written as a base 256 number: position 2 is r, position 1 is g and position 0 is b.
*/

var maxX = int64(math.Pow(256, 3) - 1)

// HeightToRgb calculates rgb values from height
func HeightToRgb(height float64) color.RGBA {
	x := int64(math.Round(10*height + 100000))
	if x < 0 {
		x = 0
	}
	if x > maxX {
		x = maxX
	}

	return color.RGBA{
		R: uint8(x >> 16),
		G: uint8(x >> 8),
		B: uint8(x),
		A: 255,
	}
}

// RgbToHeight calculates height from given rgb values
func RgbToHeight(c color.RGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)

	return -10000.0 + float64(x)*0.1
}

// Encode returns the Terrain-RGB image of grid. Row 0 of the grid is the
// top row of the image.
func Encode(grid *dem.Grid, elevationOffset float64) *image.RGBA {
	rows, cols := grid.Dims()

	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			img.SetRGBA(col, row, HeightToRgb(float64(grid.At(row, col))+elevationOffset))
		}
	}

	return img
}
