package dem

// Grid is a rows x cols matrix of integer elevation samples in meters.
// Samples are stored row-major and must not be modified after loading.
type Grid struct {
	Rows, Cols int
	Data       []int
}

// NewGrid wraps row-major data. It panics if len(data) != rows*cols.
func NewGrid(rows, cols int, data []int) *Grid {
	if len(data) != rows*cols {
		panic("dem: data length does not match dimensions")
	}
	return &Grid{Rows: rows, Cols: cols, Data: data}
}

// Dims returns the dimensions of the grid.
func (g *Grid) Dims() (rows, cols int) {
	return g.Rows, g.Cols
}

// At returns the sample at row i, column j.
// It will panic if i or j are out of bounds for the grid.
func (g *Grid) At(i, j int) int {
	return g.Data[g.Index(i, j)]
}

// Index returns the row-major index of cell (i, j).
func (g *Grid) Index(i, j int) int {
	return i*g.Cols + j
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Data)
}

// MinMax returns the lowest and highest sample.
func (g *Grid) MinMax() (min, max int) {
	if len(g.Data) == 0 {
		return 0, 0
	}
	min, max = g.Data[0], g.Data[0]
	for _, v := range g.Data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
