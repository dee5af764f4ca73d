package dem

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/gruppe-adler/altimesh/internal/utils"
)

// Read elevation grid from given path. Files ending in .gz are decompressed.
func Read(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &utils.IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	var reader io.Reader = file

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, &utils.IOError{Op: "gunzip", Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}
