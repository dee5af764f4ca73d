package render

import (
	"fmt"
	"math"

	"github.com/gruppe-adler/altimesh/internal/geo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a perspective camera looking from Position at FocalPoint.
type Camera struct {
	Position   r3.Vec
	FocalPoint r3.Vec
	ViewUp     r3.Vec

	// ViewAngle is the vertical field of view in degrees.
	ViewAngle float64

	// Near and Far clip everything outside this distance range along the
	// view direction.
	Near, Far float64
}

type view struct {
	eye                r3.Vec
	forward, right, up r3.Vec
	focal, aspect      float64
	near, far          float64
	width, height      float64
}

func (c Camera) view(width, height int) (*view, error) {
	d := r3.Sub(c.FocalPoint, c.Position)
	if r3.Norm(d) == 0 {
		return nil, fmt.Errorf("camera position and focal point coincide")
	}
	if c.ViewAngle <= 0 || c.ViewAngle >= 180 {
		return nil, fmt.Errorf("view angle %g out of range (0, 180)", c.ViewAngle)
	}
	if !(c.Near >= 0 && c.Near < c.Far) {
		return nil, fmt.Errorf("invalid clipping range [%g, %g]", c.Near, c.Far)
	}

	forward := r3.Unit(d)

	viewUp := c.ViewUp
	if r3.Norm(viewUp) == 0 {
		viewUp = r3.Vec{Y: 1}
	}

	right := r3.Cross(forward, viewUp)
	if r3.Norm(right) < 1e-9 {
		// view up parallel to the view direction
		right = r3.Cross(forward, r3.Vec{Z: 1})
		if r3.Norm(right) < 1e-9 {
			right = r3.Cross(forward, r3.Vec{X: 1})
		}
	}
	right = r3.Unit(right)

	return &view{
		eye:     c.Position,
		forward: forward,
		right:   right,
		up:      r3.Cross(right, forward),
		focal:   1 / math.Tan(c.ViewAngle*math.Pi/360),
		aspect:  float64(width) / float64(height),
		near:    c.Near,
		far:     c.Far,
		width:   float64(width),
		height:  float64(height),
	}, nil
}

// project returns the pixel position and view depth of p. ok is false when p
// is outside the clipping range.
func (v *view) project(p r3.Vec) (x, y, depth float64, ok bool) {
	d := r3.Sub(p, v.eye)
	depth = r3.Dot(d, v.forward)
	// also rejects NaN
	if !(depth >= v.near && depth <= v.far) {
		return 0, 0, depth, false
	}

	sx := r3.Dot(d, v.right) * v.focal / depth / v.aspect
	sy := r3.Dot(d, v.up) * v.focal / depth

	x = (sx + 1) / 2 * v.width
	y = (1 - sy) / 2 * v.height
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, depth, false
	}
	return x, y, depth, true
}

// OverSphere returns a camera hovering altitude meters above the point
// (lat, lon) (degrees) of a sphere of the given radius, looking straight
// down at it.
func OverSphere(radius, altitude, lat, lon float64) Camera {
	return Camera{
		Position:   geo.ToCartesianDeg(radius+altitude, lat, lon),
		FocalPoint: geo.ToCartesianDeg(radius, lat, lon),
		ViewUp:     r3.Vec{Y: 1},
		ViewAngle:  30,
		Near:       0.1,
		Far:        1000000,
	}
}
