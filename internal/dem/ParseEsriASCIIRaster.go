package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// EsriHeader holds the header values of an ESRI ASCII grid
type EsriHeader struct {
	Ncols, Nrows     int
	Xcenter, Ycenter *float64
	Xcorner, Ycorner *float64
	CellSize         float64
	NoDataValue      *float64
}

// ParseEsriASCIIRaster reads an ESRI ASCII grid into a Grid. Samples are
// rounded to whole meters and NODATA cells become 0.
func ParseEsriASCIIRaster(reader io.Reader) (*Grid, error) {
	header := EsriHeader{}
	seen := map[string]bool{}
	rowIndex := 0
	lineNo := 0
	var grid *Grid

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if grid == nil {
			keyword := strings.ToUpper(fields[0])
			if _, ok := headerKeywords[keyword]; ok {
				if err := parseHeaderLine(keyword, fields, &header); err != nil {
					return nil, &FormatError{Line: lineNo, Reason: err.Error(), Err: err}
				}
				seen[keyword] = true
				continue
			}

			// first data line
			if missing := missingHeaders(seen); len(missing) > 0 {
				return nil, &FormatError{Line: lineNo, Reason: "missing mandatory headers: " + strings.Join(missing, ", ")}
			}
			if err := checkDims(header.Nrows, header.Ncols); err != nil {
				return nil, &FormatError{Line: lineNo, Reason: err.Error()}
			}
			grid = &Grid{Rows: header.Nrows, Cols: header.Ncols, Data: allocate(header.Nrows, header.Ncols)}
		}

		if rowIndex >= grid.Rows {
			return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("more than the declared %d rows", grid.Rows)}
		}

		row, err := parseDataLine(fields, grid.Cols, header.NoDataValue)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Reason: err.Error(), Err: err}
		}
		grid.Data = append(grid.Data, row...)
		rowIndex++
	}

	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Line: lineNo, Reason: "read failed", Err: err}
	}

	if grid == nil {
		return nil, &FormatError{Reason: "raster has no data rows"}
	}
	if rowIndex != grid.Rows {
		return nil, &FormatError{Line: lineNo, Reason: fmt.Sprintf("declared %d rows, found %d", grid.Rows, rowIndex)}
	}

	return grid, nil
}

// headerKeywords maps every header keyword to the keyword it excludes.
// The lower left position is given either as center or as corner.
var headerKeywords = map[string]string{
	"NCOLS":        "",
	"NROWS":        "",
	"XLLCENTER":    "XLLCORNER",
	"YLLCENTER":    "YLLCORNER",
	"XLLCORNER":    "XLLCENTER",
	"YLLCORNER":    "YLLCENTER",
	"CELLSIZE":     "",
	"NODATA_VALUE": "",
}

func missingHeaders(seen map[string]bool) []string {
	var missing []string
	for _, keyword := range []string{"NCOLS", "NROWS", "XLLCENTER", "YLLCENTER", "CELLSIZE"} {
		if seen[keyword] || seen[headerKeywords[keyword]] {
			continue
		}
		missing = append(missing, keyword)
	}
	return missing
}

func parseHeaderLine(keyword string, fields []string, header *EsriHeader) error {
	if len(fields) != 2 {
		return fmt.Errorf("header %s must have exactly one value", keyword)
	}
	value := fields[1]

	if keyword == "NCOLS" || keyword == "NROWS" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", keyword, value)
		}
		if keyword == "NCOLS" {
			header.Ncols = n
		} else {
			header.Nrows = n
		}
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", keyword, value)
	}

	switch keyword {
	case "XLLCENTER":
		header.Xcenter = &f
	case "YLLCENTER":
		header.Ycenter = &f
	case "XLLCORNER":
		header.Xcorner = &f
	case "YLLCORNER":
		header.Ycorner = &f
	case "CELLSIZE":
		if f <= 0 {
			return fmt.Errorf("CELLSIZE must be greater than 0")
		}
		header.CellSize = f
	case "NODATA_VALUE":
		header.NoDataValue = &f
	}

	return nil
}

func parseDataLine(fields []string, cols int, noData *float64) ([]int, error) {
	if len(fields) != cols {
		return nil, fmt.Errorf("expected %d values, got %d", cols, len(fields))
	}

	row := make([]int, cols)
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", field)
		}
		if noData != nil && f == *noData {
			continue
		}
		row[i] = int(math.Round(f))
	}

	return row, nil
}
