package dem

import (
	"bufio"
	"io"
	"strconv"

	"github.com/gruppe-adler/altimesh/internal/utils"
)

// Write serializes grid in the plain "<rows> <cols>" text format.
func Write(w io.Writer, grid *Grid) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)

	buf = strconv.AppendInt(buf[:0], int64(grid.Rows), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(grid.Cols), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for i := 0; i < grid.Rows; i++ {
		for j := 0; j < grid.Cols; j++ {
			buf = buf[:0]
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(grid.At(i, j)), 10)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes grid to path once it has been fully serialized.
func WriteFile(path string, grid *Grid) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Write(w, grid)
	})
}
