package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func deg2rad(deg float64) float64 { return deg * (math.Pi / 180.0) }

// ToCartesian converts a spherical position to a cartesian point.
// Latitude is treated as the inclination from the +y pole and longitude as
// the azimuth around it, both in radians:
//
//	x = r * sin(lat) * sin(lon)
//	y = r * cos(lat)
//	z = r * sin(lat) * cos(lon)
//
// This is not the geographic convention. Renderings depend on this exact
// axis assignment, keep it as is.
func ToCartesian(radius, latitude, longitude float64) r3.Vec {
	sinLat, cosLat := math.Sincos(latitude)
	sinLon, cosLon := math.Sincos(longitude)
	return r3.Vec{
		X: radius * sinLat * sinLon,
		Y: radius * cosLat,
		Z: radius * sinLat * cosLon,
	}
}

// ToCartesianDeg is ToCartesian with latitude and longitude in degrees.
func ToCartesianDeg(radius, latitude, longitude float64) r3.Vec {
	return ToCartesian(radius, deg2rad(latitude), deg2rad(longitude))
}

// Mapper places the cells of a rows x cols grid over an Extent by linear
// interpolation: row 0 sits at LatMin, row rows-1 at LatMax, and likewise
// for columns and longitude.
type Mapper struct {
	Extent     Extent
	Rows, Cols int

	latStep, lonStep float64
}

// NewMapper returns a Mapper for the given grid dimensions.
func NewMapper(extent Extent, rows, cols int) (*Mapper, error) {
	if rows < 2 || cols < 2 {
		return nil, &DegenerateExtentError{Rows: rows, Cols: cols}
	}

	return &Mapper{
		Extent:  extent,
		Rows:    rows,
		Cols:    cols,
		latStep: (extent.LatMax - extent.LatMin) / float64(rows-1),
		lonStep: (extent.LonMax - extent.LonMin) / float64(cols-1),
	}, nil
}

// LatLonDeg returns the position of cell (i, j) in degrees.
func (m *Mapper) LatLonDeg(i, j int) (lat, lon float64) {
	return m.Extent.LatMin + float64(i)*m.latStep, m.Extent.LonMin + float64(j)*m.lonStep
}

// LatLon returns the position of cell (i, j) in radians.
func (m *Mapper) LatLon(i, j int) (lat, lon float64) {
	lat, lon = m.LatLonDeg(i, j)
	return deg2rad(lat), deg2rad(lon)
}

// Point returns the cartesian point of cell (i, j) at the given radius.
func (m *Mapper) Point(i, j int, radius float64) r3.Vec {
	lat, lon := m.LatLon(i, j)
	return ToCartesian(radius, lat, lon)
}
