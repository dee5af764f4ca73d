// Package mesh builds the structured grid that drapes an elevation grid over
// the sphere.
package mesh

import (
	"fmt"

	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/geo"
	"gonum.org/v1/gonum/spatial/r3"
)

// StructuredGrid is a rows x cols x 1 grid of points with one colouring
// attribute per point. Point k and attribute k belong to cell
// (k / cols, k % cols).
type StructuredGrid struct {
	Dims       [3]int
	Points     []r3.Vec
	Attributes []int
}

// Rows returns the number of grid rows.
func (g *StructuredGrid) Rows() int { return g.Dims[0] }

// Cols returns the number of grid columns.
func (g *StructuredGrid) Cols() int { return g.Dims[1] }

// Index returns the point index of cell (i, j).
func (g *StructuredGrid) Index(i, j int) int { return i*g.Dims[1] + j }

// Validate checks the shape invariants.
func (g *StructuredGrid) Validate() error {
	n := g.Dims[0] * g.Dims[1] * g.Dims[2]
	if g.Dims[0] < 1 || g.Dims[1] < 1 || g.Dims[2] != 1 {
		return fmt.Errorf("invalid dimensions %v", g.Dims)
	}
	if len(g.Points) != n {
		return fmt.Errorf("expected %d points, got %d", n, len(g.Points))
	}
	if len(g.Attributes) != n {
		return fmt.Errorf("expected %d attributes, got %d", n, len(g.Attributes))
	}
	return nil
}

// Build places every cell of grid at earthRadius + elevation over the
// mapper's extent. Positions always use the true elevation; attributes are
// taken as given (typically the water-masked copy) and must have one entry
// per cell.
func Build(grid *dem.Grid, mapper *geo.Mapper, earthRadius float64, attributes []int) (*StructuredGrid, error) {
	rows, cols := grid.Dims()
	if mapper.Rows != rows || mapper.Cols != cols {
		return nil, fmt.Errorf("mapper is for %dx%d, grid is %dx%d", mapper.Rows, mapper.Cols, rows, cols)
	}
	if len(attributes) != grid.Len() {
		return nil, fmt.Errorf("expected %d attributes, got %d", grid.Len(), len(attributes))
	}

	points := make([]r3.Vec, 0, grid.Len())
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			points = append(points, mapper.Point(i, j, earthRadius+float64(grid.At(i, j))))
		}
	}

	attrs := make([]int, len(attributes))
	copy(attrs, attributes)

	return &StructuredGrid{
		Dims:       [3]int{rows, cols, 1},
		Points:     points,
		Attributes: attrs,
	}, nil
}
