package vtk

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gruppe-adler/altimesh/internal/mesh"
	"github.com/gruppe-adler/altimesh/internal/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// ParseError indicates a file that is not a supported VTK structured grid
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid vtk structured grid: %s", e.Reason)
}

func parseErrorf(format string, a ...interface{}) error {
	return &ParseError{Reason: fmt.Sprintf(format, a...)}
}

// tokens walks the whitespace separated words after the two header lines.
type tokens struct {
	scanner *bufio.Scanner
}

func (t *tokens) next(what string) (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", parseErrorf("unexpected end of file, expected %s", what)
	}
	return t.scanner.Text(), nil
}

func (t *tokens) keyword(want string) error {
	tok, err := t.next(want)
	if err != nil {
		return err
	}
	if !strings.EqualFold(tok, want) {
		return parseErrorf("expected %s, got %q", want, tok)
	}
	return nil
}

func (t *tokens) nextInt(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, parseErrorf("%s: %q is not an integer", what, tok)
	}
	return v, nil
}

func (t *tokens) nextFloat(what string) (float64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, parseErrorf("%s: %q is not a number", what, tok)
	}
	return v, nil
}

const maxPrealloc = 1 << 20

// Read parses a legacy ASCII structured grid with one scalar attribute.
func Read(r io.Reader) (*mesh.StructuredGrid, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, parseErrorf("missing header")
	}
	if !strings.HasPrefix(header, "# vtk DataFile") {
		return nil, parseErrorf("bad header %q", strings.TrimSpace(header))
	}
	// title line is free text
	if _, err := br.ReadString('\n'); err != nil {
		return nil, parseErrorf("missing title line")
	}

	scanner := bufio.NewScanner(br)
	scanner.Split(bufio.ScanWords)
	t := &tokens{scanner: scanner}

	format, err := t.next("file format")
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(format, "ASCII") {
		return nil, parseErrorf("unsupported file format %q", format)
	}

	if err := t.keyword("DATASET"); err != nil {
		return nil, err
	}
	if err := t.keyword("STRUCTURED_GRID"); err != nil {
		return nil, err
	}

	if err := t.keyword("DIMENSIONS"); err != nil {
		return nil, err
	}
	var dims [3]int
	for i := range dims {
		if dims[i], err = t.nextInt("dimension"); err != nil {
			return nil, err
		}
	}
	if dims[0] < 1 || dims[1] < 1 || dims[2] != 1 {
		return nil, parseErrorf("unsupported dimensions %v", dims)
	}
	if dims[0] > math.MaxInt/dims[1] {
		return nil, parseErrorf("dimensions %v are too large", dims)
	}
	n := dims[0] * dims[1]

	if err := t.keyword("POINTS"); err != nil {
		return nil, err
	}
	count, err := t.nextInt("point count")
	if err != nil {
		return nil, err
	}
	if count != n {
		return nil, parseErrorf("dimensions %v need %d points, header declares %d", dims, n, count)
	}
	if _, err := t.next("point data type"); err != nil {
		return nil, err
	}

	// grown while reading so a bogus count cannot exhaust memory
	points := make([]r3.Vec, 0, min(n, maxPrealloc))
	for k := 0; k < n; k++ {
		var c [3]float64
		for i := range c {
			if c[i], err = t.nextFloat("point coordinate"); err != nil {
				return nil, err
			}
			if math.IsNaN(c[i]) || math.IsInf(c[i], 0) {
				return nil, parseErrorf("point %d has non-finite coordinate %v", k, c[i])
			}
		}
		points = append(points, r3.Vec{X: c[0], Y: c[1], Z: c[2]})
	}

	if err := t.keyword("POINT_DATA"); err != nil {
		return nil, err
	}
	if count, err = t.nextInt("point data count"); err != nil {
		return nil, err
	}
	if count != n {
		return nil, parseErrorf("expected POINT_DATA %d, got %d", n, count)
	}

	if err := t.keyword("SCALARS"); err != nil {
		return nil, err
	}
	if _, err := t.next("scalars name"); err != nil {
		return nil, err
	}
	if _, err := t.next("scalars type"); err != nil {
		return nil, err
	}
	// component count is optional and must be 1
	tok, err := t.next("LOOKUP_TABLE")
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(tok, "LOOKUP_TABLE") {
		if tok != "1" {
			return nil, parseErrorf("only single component scalars are supported, got %q", tok)
		}
		if err := t.keyword("LOOKUP_TABLE"); err != nil {
			return nil, err
		}
	}
	if _, err := t.next("lookup table name"); err != nil {
		return nil, err
	}

	attributes := make([]int, 0, min(n, maxPrealloc))
	for k := 0; k < n; k++ {
		v, err := t.nextFloat("scalar value")
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, parseErrorf("scalar %d is not finite", k)
		}
		attributes = append(attributes, int(math.Round(v)))
	}

	return &mesh.StructuredGrid{Dims: dims, Points: points, Attributes: attributes}, nil
}

// ReadFile reads a structured grid from path.
func ReadFile(path string) (*mesh.StructuredGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &utils.IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	return Read(file)
}
