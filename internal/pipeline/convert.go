// Package pipeline wires loading, water detection, meshing and rendering
// into a single run.
package pipeline

import (
	"fmt"
	"image"

	"github.com/gruppe-adler/altimesh/internal/config"
	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/geo"
	"github.com/gruppe-adler/altimesh/internal/mesh"
	"github.com/gruppe-adler/altimesh/internal/water"
)

// Conversion is the outcome of Convert.
type Conversion struct {
	Grid   *mesh.StructuredGrid
	Water  *water.Result
	Mapper *geo.Mapper
}

// Convert drapes grid over the configured extent. Point positions come from
// the untouched source elevations, attributes from the water-masked copy.
// The extent is checked before any work is done.
func Convert(grid *dem.Grid, cfg config.Config) (*Conversion, error) {
	mapper, err := geo.NewMapper(cfg.Extent, grid.Rows, grid.Cols)
	if err != nil {
		return nil, err
	}

	result, err := water.Detect(grid, cfg.WaterOptions())
	if err != nil {
		return nil, err
	}

	sg, err := mesh.Build(grid, mapper, cfg.EarthRadius, result.Attributes)
	if err != nil {
		return nil, err
	}

	return &Conversion{Grid: sg, Water: result, Mapper: mapper}, nil
}

// Run converts grid, hands the structured grid to tk and renders it with the
// configured ramp and camera. The returned image has not been saved yet.
func Run(tk Toolkit, grid *dem.Grid, cfg config.Config) (*Conversion, image.Image, error) {
	ramp, err := cfg.Ramp()
	if err != nil {
		return nil, nil, fmt.Errorf("color ramp: %w", err)
	}

	conv, err := Convert(grid, cfg)
	if err != nil {
		return nil, nil, err
	}

	vtkPath, err := tk.WriteStructuredGrid(conv.Grid)
	if err != nil {
		return nil, nil, err
	}

	img, err := tk.Render(vtkPath, ramp, cfg.CameraSpec())
	if err != nil {
		return nil, nil, err
	}

	return conv, img, nil
}

