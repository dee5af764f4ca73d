// Package vtk reads and writes structured grids in the legacy VTK ASCII
// format.
package vtk

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/gruppe-adler/altimesh/internal/mesh"
	"github.com/gruppe-adler/altimesh/internal/utils"
)

const (
	headerLine   = "# vtk DataFile Version 3.0"
	defaultTitle = "altitudes"
	scalarsName  = "altitude"
)

// Write serializes grid. Points are written in row-major order, columns
// varying fastest, under DIMENSIONS rows cols 1.
func Write(w io.Writer, grid *mesh.StructuredGrid) error {
	if err := grid.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	n := len(grid.Points)

	fmt.Fprintln(bw, headerLine)
	fmt.Fprintln(bw, defaultTitle)
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET STRUCTURED_GRID")
	fmt.Fprintf(bw, "DIMENSIONS %d %d %d\n", grid.Dims[0], grid.Dims[1], grid.Dims[2])
	fmt.Fprintf(bw, "POINTS %d double\n", n)

	buf := make([]byte, 0, 80)
	for _, p := range grid.Points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Z, 'g', -1, 64)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	fmt.Fprintf(bw, "\nPOINT_DATA %d\n", n)
	fmt.Fprintf(bw, "SCALARS %s int 1\n", scalarsName)
	fmt.Fprintln(bw, "LOOKUP_TABLE default")
	for _, v := range grid.Attributes {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		bw.Write(buf)
	}

	// bufio keeps the first write error and reports it here
	return bw.Flush()
}

// WriteFile writes grid to path. The file only appears once the whole grid
// has been serialized.
func WriteFile(path string, grid *mesh.StructuredGrid) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, grid)
	})
}
