package water

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/geo"
)

// distinctGrid returns a rows x cols grid where no two cells share a value.
func distinctGrid(rows, cols int) *dem.Grid {
	data := make([]int, rows*cols)
	for k := range data {
		data[k] = 1000 + k
	}
	return dem.NewGrid(rows, cols, data)
}

// flatBlock sets a h x w block starting at the top left corner to value.
func flatBlock(grid *dem.Grid, h, w, value int) {
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			grid.Data[grid.Index(i, j)] = value
		}
	}
}

func defaultOptions() Options {
	return Options{MinLakeSize: DefaultMinLakeSize, SeaLevel: 0}
}

func TestDetectIdentityWithoutWater(t *testing.T) {
	grid := distinctGrid(30, 30)
	// a few small flat patches
	flatBlock(grid, 10, 10, 77)

	result, err := Detect(grid, defaultOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(grid.Data, result.Attributes); diff != "" {
		t.Errorf("attributes differ from elevations (-want +got):\n%s", diff)
	}
	assert.Empty(t, result.Lakes)
	assert.Zero(t, result.WaterCells())
}

func TestDetectLakeSizeThreshold(t *testing.T) {
	t.Run("512 cells become water", func(t *testing.T) {
		grid := distinctGrid(40, 40)
		flatBlock(grid, 16, 32, 50)

		result, err := Detect(grid, defaultOptions())
		require.NoError(t, err)

		require.Len(t, result.Lakes, 1)
		lake := result.Lakes[0]
		assert.Equal(t, 512, lake.Cells)
		assert.Equal(t, 50, lake.Elevation)
		assert.Equal(t, [4]int{0, 15, 0, 31}, [4]int{lake.MinRow, lake.MaxRow, lake.MinCol, lake.MaxCol})

		for i := 0; i < 40; i++ {
			for j := 0; j < 40; j++ {
				k := grid.Index(i, j)
				if i < 16 && j < 32 {
					assert.Zero(t, result.Attributes[k], "cell (%d,%d)", i, j)
				} else {
					assert.Equal(t, grid.Data[k], result.Attributes[k], "cell (%d,%d)", i, j)
				}
			}
		}
		assert.Equal(t, 512, result.LakeCells)
		assert.Equal(t, 512, result.WaterCells())
	})

	t.Run("511 cells are left untouched", func(t *testing.T) {
		grid := distinctGrid(40, 40)
		flatBlock(grid, 16, 32, 50)
		grid.Data[grid.Index(15, 31)] = 99999

		result, err := Detect(grid, defaultOptions())
		require.NoError(t, err)

		assert.Empty(t, result.Lakes)
		assert.Equal(t, grid.Data, result.Attributes)
	})
}

func TestDetectDiagonalCellsDoNotConnect(t *testing.T) {
	grid := dem.NewGrid(2, 2, []int{5, 6, 7, 5})

	labels, components := Label(grid)

	assert.Equal(t, []int{1, 2, 3, 4}, labels)
	assert.Len(t, components, 4)
}

func TestLabel(t *testing.T) {
	grid := dem.NewGrid(3, 4, []int{
		1, 1, 2, 0,
		3, 1, 2, 0,
		1, 1, 0, 9,
	})

	labels, components := Label(grid)

	want := []int{
		1, 1, 2, 0,
		3, 1, 2, 0,
		1, 1, 0, 4,
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, components, 4)
	assert.Equal(t, Lake{ID: 1, Elevation: 1, Cells: 5, MinRow: 0, MaxRow: 2, MinCol: 0, MaxCol: 1}, components[0])
	assert.Equal(t, 2, components[1].Cells)
	assert.Equal(t, 1, components[2].Cells)
	assert.Equal(t, 9, components[3].Elevation)
}

func TestDetectSeaLevel(t *testing.T) {
	grid := distinctGrid(5, 5)
	grid.Data[grid.Index(2, 3)] = -5

	result, err := Detect(grid, defaultOptions())
	require.NoError(t, err)

	for k, v := range result.Attributes {
		if k == grid.Index(2, 3) {
			assert.Zero(t, v)
			continue
		}
		assert.Equal(t, grid.Data[k], v)
	}
	assert.Equal(t, 1, result.BelowSeaCells)
	assert.Equal(t, 1, result.WaterCells())
}

func TestDetectRaisedSeaLevel(t *testing.T) {
	grid := dem.NewGrid(2, 3, []int{-3, 0, 40, 120, 99, 100})

	result, err := Detect(grid, Options{MinLakeSize: DefaultMinLakeSize, SeaLevel: 100})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 120, 0, 100}, result.Attributes)
	assert.Equal(t, 3, result.BelowSeaCells)
	assert.Equal(t, 4, result.WaterCells())
}

func TestDetectLeavesSourceUntouched(t *testing.T) {
	grid := distinctGrid(40, 40)
	flatBlock(grid, 20, 30, 50)
	grid.Data[0] = -20
	original := append([]int(nil), grid.Data...)

	_, err := Detect(grid, Options{MinLakeSize: 10, SeaLevel: 0})
	require.NoError(t, err)

	assert.Equal(t, original, grid.Data)
}

func TestDetectSmallThreshold(t *testing.T) {
	grid := dem.NewGrid(3, 3, []int{
		4, 4, 8,
		4, 7, 8,
		6, 6, 8,
	})

	result, err := Detect(grid, Options{MinLakeSize: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{
		0, 0, 0,
		0, 7, 0,
		6, 6, 0,
	}, result.Attributes)
	assert.Len(t, result.Lakes, 2)
	assert.Equal(t, 6, result.LakeCells)
}

func TestDetectRejectsInvalidThreshold(t *testing.T) {
	_, err := Detect(distinctGrid(2, 2), Options{MinLakeSize: 0})
	assert.Error(t, err)
}

func TestFeatureCollection(t *testing.T) {
	grid := dem.NewGrid(3, 3, []int{
		4, 4, 8,
		4, 7, 8,
		6, 6, 8,
	})
	result, err := Detect(grid, Options{MinLakeSize: 3})
	require.NoError(t, err)

	mapper, err := geo.NewMapper(geo.Extent{LatMin: 45, LatMax: 47, LonMin: 5, LonMax: 7}, 3, 3)
	require.NoError(t, err)

	fc := FeatureCollection(result.Lakes, mapper)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, 4, fc.Features[0].Properties["elevation"])
	assert.Equal(t, 3, fc.Features[0].Properties["cells"])

	path := filepath.Join(t.TempDir(), "lakes.geojson")
	require.NoError(t, WriteFeatureCollection(path, fc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 2)
	assert.Equal(t, "Polygon", decoded.Features[0].Geometry.Type)
	// first lake covers rows 0..1, cols 0..1
	assert.Equal(t, [][][2]float64{{{5, 45}, {6, 45}, {6, 46}, {5, 46}, {5, 45}}}, decoded.Features[0].Geometry.Coordinates)
}
