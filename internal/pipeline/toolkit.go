package pipeline

import (
	"image"

	"github.com/gruppe-adler/altimesh/internal/mesh"
	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/vtk"
)

// Toolkit is everything the pipeline needs from a visualization backend:
// persist a structured grid and turn a persisted grid into an image.
type Toolkit interface {
	WriteStructuredGrid(grid *mesh.StructuredGrid) (string, error)
	Render(path string, ramp render.ColorRamp, cam render.Camera) (image.Image, error)
}

// FileToolkit writes legacy VTK files and renders them with the built-in
// rasterizer.
type FileToolkit struct {
	Path    string
	Options render.Options
}

// NewToolkit returns a FileToolkit writing its grid to path.
func NewToolkit(path string, opts render.Options) *FileToolkit {
	return &FileToolkit{Path: path, Options: opts}
}

// WriteStructuredGrid implements Toolkit.
func (t *FileToolkit) WriteStructuredGrid(grid *mesh.StructuredGrid) (string, error) {
	if err := vtk.WriteFile(t.Path, grid); err != nil {
		return "", err
	}
	return t.Path, nil
}

// Render implements Toolkit.
func (t *FileToolkit) Render(path string, ramp render.ColorRamp, cam render.Camera) (image.Image, error) {
	grid, err := vtk.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return render.Render(grid, ramp, cam, t.Options)
}
