// Package water flattens lakes and sub-sea-level cells of an elevation grid.
//
// A lake is a 4-connected region of cells sharing exactly the same elevation
// that is at least MinLakeSize cells large. This only finds perfectly flat
// areas, which is how water bodies show up in the source data; it is not a
// hydrological model.
package water

import (
	"fmt"

	"github.com/gruppe-adler/altimesh/internal/dem"
)

// DefaultMinLakeSize is the smallest flat region treated as a lake.
const DefaultMinLakeSize = 512

// Options configure Detect.
type Options struct {
	MinLakeSize int
	SeaLevel    int
}

// Lake is a flat connected region that was flattened to attribute 0.
type Lake struct {
	ID        int
	Elevation int
	Cells     int

	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Result holds the colouring attributes derived from a grid.
type Result struct {
	// Attributes has one value per grid cell in row-major order. Water cells
	// are 0, every other cell carries its elevation.
	Attributes []int
	Lakes      []Lake

	LakeCells     int
	BelowSeaCells int
}

// WaterCells returns how many cells carry the water attribute 0.
func (r *Result) WaterCells() int {
	n := 0
	for _, v := range r.Attributes {
		if v == 0 {
			n++
		}
	}
	return n
}

// Detect computes the attributes of grid. The grid itself is not modified.
func Detect(grid *dem.Grid, opts Options) (*Result, error) {
	if opts.MinLakeSize < 1 {
		return nil, fmt.Errorf("minimum lake size must be at least 1, got %d", opts.MinLakeSize)
	}

	labels, components := Label(grid)

	attributes := make([]int, grid.Len())
	copy(attributes, grid.Data)

	result := &Result{Attributes: attributes}

	// map component label -> lake id (0 = no lake)
	lakeOf := make([]int, len(components)+1)
	for _, c := range components {
		if c.Cells < opts.MinLakeSize {
			continue
		}
		lake := c
		lake.ID = len(result.Lakes) + 1
		result.Lakes = append(result.Lakes, lake)
		lakeOf[c.ID] = lake.ID
	}

	for k, label := range labels {
		if label != 0 && lakeOf[label] != 0 {
			attributes[k] = 0
			result.LakeCells++
		}
	}

	for k, v := range attributes {
		if v < opts.SeaLevel && v != 0 {
			attributes[k] = 0
			result.BelowSeaCells++
		}
	}

	return result, nil
}

// Label assigns a component label to every cell. Two cells share a label when
// they are joined by a path of row- or column-adjacent cells with identical
// elevation. Cells at elevation 0 are background and keep label 0; the other
// labels start at 1 and follow row-major order of each component's first cell.
// The returned components are indexed by label-1.
func Label(grid *dem.Grid) (labels []int, components []Lake) {
	rows, cols := grid.Dims()
	labels = make([]int, grid.Len())
	stack := make([]int, 0, 64)

	for start, value := range grid.Data {
		if value == 0 || labels[start] != 0 {
			continue
		}

		label := len(components) + 1
		c := Lake{
			ID:        label,
			Elevation: value,
			MinRow:    start / cols,
			MaxRow:    start / cols,
			MinCol:    start % cols,
			MaxCol:    start % cols,
		}

		labels[start] = label
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			k := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			c.Cells++

			i, j := k/cols, k%cols
			if i < c.MinRow {
				c.MinRow = i
			}
			if i > c.MaxRow {
				c.MaxRow = i
			}
			if j < c.MinCol {
				c.MinCol = j
			}
			if j > c.MaxCol {
				c.MaxCol = j
			}

			// up, down, left, right
			if i > 0 {
				stack = visit(grid.Data, labels, stack, k-cols, value, label)
			}
			if i < rows-1 {
				stack = visit(grid.Data, labels, stack, k+cols, value, label)
			}
			if j > 0 {
				stack = visit(grid.Data, labels, stack, k-1, value, label)
			}
			if j < cols-1 {
				stack = visit(grid.Data, labels, stack, k+1, value, label)
			}
		}

		components = append(components, c)
	}

	return labels, components
}

func visit(data, labels, stack []int, k, value, label int) []int {
	if labels[k] != 0 || data[k] != value {
		return stack
	}
	labels[k] = label
	return append(stack, k)
}
