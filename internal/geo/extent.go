package geo

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Extent is the rectangular region covered by a grid, in degrees.
type Extent struct {
	LatMin float64 `json:"latMin"`
	LatMax float64 `json:"latMax"`
	LonMin float64 `json:"lonMin"`
	LonMax float64 `json:"lonMax"`
}

// Validate checks that both ranges are non-empty.
func (e Extent) Validate() error {
	if !(e.LatMin < e.LatMax) {
		return fmt.Errorf("latitude range [%g, %g] is empty", e.LatMin, e.LatMax)
	}
	if !(e.LonMin < e.LonMax) {
		return fmt.Errorf("longitude range [%g, %g] is empty", e.LonMin, e.LonMax)
	}
	return nil
}

// Center returns the midpoint of the extent in degrees.
func (e Extent) Center() (lat, lon float64) {
	return (e.LatMin + e.LatMax) / 2, (e.LonMin + e.LonMax) / 2
}

// Bound returns the extent as an orb.Bound with x = longitude, y = latitude.
func (e Extent) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{e.LonMin, e.LatMin},
		Max: orb.Point{e.LonMax, e.LatMax},
	}
}
