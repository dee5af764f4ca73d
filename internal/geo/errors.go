package geo

import "fmt"

// DegenerateExtentError indicates a grid too small to interpolate across:
// a single row or column leaves no spacing between samples.
type DegenerateExtentError struct {
	Rows, Cols int
}

func (e *DegenerateExtentError) Error() string {
	return fmt.Sprintf("degenerate extent: grid of %dx%d needs at least 2 rows and 2 columns", e.Rows, e.Cols)
}
