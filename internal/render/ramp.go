package render

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// ControlPoint pins a colour to an attribute value.
type ControlPoint struct {
	Value float64
	Color color.RGBA
}

// ColorRamp maps attribute values to colours by linear interpolation between
// control points sorted by value. Values outside the covered range take the
// colour of the nearest end.
type ColorRamp []ControlPoint

// DefaultRamp returns the altitude bands used for maps: water, dark grass,
// light grass, rock and snow.
func DefaultRamp() ColorRamp {
	return ColorRamp{
		{Value: 0, Color: color.RGBA{0x50, 0x8e, 0xcc, 0xff}},
		{Value: 1, Color: color.RGBA{0x54, 0xa3, 0x39, 0xff}},
		{Value: 550, Color: color.RGBA{0xd2, 0xf0, 0x9c, 0xff}},
		{Value: 900, Color: color.RGBA{0xd4, 0xba, 0x90, 0xff}},
		{Value: 1600, Color: color.RGBA{0xff, 0xff, 0xff, 0xff}},
	}
}

// NewColorRamp sorts points by value and checks that there is at least one
// and that no value is repeated.
func NewColorRamp(points ...ControlPoint) (ColorRamp, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("color ramp needs at least one control point")
	}

	ramp := make(ColorRamp, len(points))
	copy(ramp, points)
	sort.SliceStable(ramp, func(a, b int) bool { return ramp[a].Value < ramp[b].Value })

	for i := 1; i < len(ramp); i++ {
		if ramp[i].Value == ramp[i-1].Value {
			return nil, fmt.Errorf("duplicate control point value %g", ramp[i].Value)
		}
	}

	return ramp, nil
}

// At returns the colour for value.
func (r ColorRamp) At(value float64) color.RGBA {
	if len(r) == 0 {
		return color.RGBA{A: 0xff}
	}
	if value <= r[0].Value {
		return r[0].Color
	}
	last := r[len(r)-1]
	if value >= last.Value {
		return last.Color
	}

	// first control point strictly above value
	i := sort.Search(len(r), func(i int) bool { return r[i].Value > value })
	lo, hi := r[i-1], r[i]
	t := (value - lo.Value) / (hi.Value - lo.Value)

	return color.RGBA{
		R: lerp8(lo.Color.R, hi.Color.R, t),
		G: lerp8(lo.Color.G, hi.Color.G, t),
		B: lerp8(lo.Color.B, hi.Color.B, t),
		A: lerp8(lo.Color.A, hi.Color.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q must have 6 hex digits", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not hex: %w", s, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
