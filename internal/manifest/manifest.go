// Package manifest describes the outcome of a build run as manifest.json.
package manifest

import (
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/gruppe-adler/altimesh/internal/geo"
	"github.com/gruppe-adler/altimesh/internal/utils"
)

// FileName is the name of the manifest inside the output directory.
const FileName = "manifest.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Elevation is the range of the source grid.
type Elevation struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Water sums up what the water detector found.
type Water struct {
	SeaLevel      int `json:"seaLevel"`
	MinLakeSize   int `json:"minLakeSize"`
	Lakes         int `json:"lakes"`
	LakeCells     int `json:"lakeCells"`
	BelowSeaCells int `json:"belowSeaCells"`
	WaterCells    int `json:"waterCells"`
}

// Manifest is written next to the outputs of a run.
type Manifest struct {
	RunID     string            `json:"runId"`
	CreatedAt time.Time         `json:"createdAt"`
	Input     string            `json:"input"`
	Rows      int               `json:"rows"`
	Cols      int               `json:"cols"`
	Extent    geo.Extent        `json:"extent"`
	Elevation Elevation         `json:"elevation"`
	Water     Water             `json:"water"`
	Outputs   map[string]string `json:"outputs"`
}

// New returns a manifest with a fresh run id.
func New(input string, rows, cols int, extent geo.Extent) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Rows:      rows,
		Cols:      cols,
		Extent:    extent,
		Outputs:   map[string]string{},
	}
}

// AddOutput records an artifact under kind, e.g. "vtk" or "png".
func (m *Manifest) AddOutput(kind, filePath string) {
	m.Outputs[kind] = filePath
}

// Write a manifest.json into outputDirectory and return its path.
func Write(outputDirectory string, m *Manifest) (string, error) {
	bytes, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(outputDirectory, FileName)
	err = utils.WriteFileAtomic(filePath, func(w io.Writer) error {
		_, err := w.Write(bytes)
		return err
	})
	if err != nil {
		return "", err
	}

	return filePath, nil
}
