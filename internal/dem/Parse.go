package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads an elevation grid. The plain format starts with a "<rows> <cols>"
// line followed by rows lines of cols integers. Input whose first field is a
// keyword (ncols, nrows, ...) is read as an ESRI ASCII raster instead.
func Parse(reader io.Reader) (*Grid, error) {
	br := bufio.NewReader(reader)

	peek, _ := br.Peek(64)
	if looksLikeEsri(peek) {
		return ParseEsriASCIIRaster(br)
	}

	return parseText(br)
}

func looksLikeEsri(head []byte) bool {
	for _, b := range head {
		r := rune(b)
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsLetter(r)
	}
	return false
}

func parseText(reader io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var grid *Grid
	lineNo := 0
	row := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		// blank lines carry no samples
		if len(fields) == 0 {
			continue
		}

		if grid == nil {
			rows, cols, err := parseHeader(fields, lineNo)
			if err != nil {
				return nil, err
			}
			grid = &Grid{Rows: rows, Cols: cols, Data: allocate(rows, cols)}
			continue
		}

		if row >= grid.Rows {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("more than the declared %d rows", grid.Rows)}
		}

		if len(fields) != grid.Cols {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("expected %d values, got %d", grid.Cols, len(fields))}
		}

		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("value %q is not an integer", field), Err: err}
			}
			grid.Data = append(grid.Data, v)
		}
		row++
	}

	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Line: lineNo, Reason: "read failed", Err: err}
	}

	if grid == nil {
		return nil, &FormatError{Reason: "missing dimensions header"}
	}

	if row != grid.Rows {
		return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("declared %d rows, found %d", grid.Rows, row)}
	}

	return grid, nil
}

func parseHeader(fields []string, lineNo int) (rows, cols int, err error) {
	if len(fields) != 2 {
		return 0, 0, &FormatError{Line: lineNo, Reason: "header line must have exactly two fields"}
	}

	rows, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, &FormatError{Line: lineNo, Reason: fmt.Sprintf("row count %q is not an integer", fields[0]), Err: err}
	}
	cols, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, &FormatError{Line: lineNo, Reason: fmt.Sprintf("column count %q is not an integer", fields[1]), Err: err}
	}

	if rows <= 0 || cols <= 0 {
		return 0, 0, &FormatError{Line: lineNo, Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", rows, cols)}
	}
	if err := checkDims(rows, cols); err != nil {
		return 0, 0, &FormatError{Line: lineNo, Reason: err.Error()}
	}

	return rows, cols, nil
}

// maxPrealloc caps the samples allocated up front; larger grids grow while
// their rows are read, so a bogus header cannot exhaust memory.
const maxPrealloc = 1 << 20

func checkDims(rows, cols int) error {
	if rows > math.MaxInt/cols {
		return fmt.Errorf("dimensions %dx%d are too large", rows, cols)
	}
	return nil
}

func allocate(rows, cols int) []int {
	return make([]int, 0, min(rows*cols, maxPrealloc))
}
