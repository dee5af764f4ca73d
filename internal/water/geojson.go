package water

import (
	"io"

	"github.com/gruppe-adler/altimesh/internal/geo"
	"github.com/gruppe-adler/altimesh/internal/utils"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection returns one polygon feature per lake, covering the
// lake's bounding cells in longitude/latitude.
func FeatureCollection(lakes []Lake, mapper *geo.Mapper) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, lake := range lakes {
		latMin, lonMin := mapper.LatLonDeg(lake.MinRow, lake.MinCol)
		latMax, lonMax := mapper.LatLonDeg(lake.MaxRow, lake.MaxCol)

		ring := orb.Ring{
			{lonMin, latMin},
			{lonMax, latMin},
			{lonMax, latMax},
			{lonMin, latMax},
			{lonMin, latMin},
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["id"] = lake.ID
		feature.Properties["elevation"] = lake.Elevation
		feature.Properties["cells"] = lake.Cells

		fc.Append(feature)
	}

	return fc
}

// WriteFeatureCollection writes fc as GeoJSON to path.
func WriteFeatureCollection(path string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
