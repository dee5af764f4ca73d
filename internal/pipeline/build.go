package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gruppe-adler/altimesh/internal/config"
	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/hypsometry"
	"github.com/gruppe-adler/altimesh/internal/manifest"
	"github.com/gruppe-adler/altimesh/internal/preview"
	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/terrainrgb"
	"github.com/gruppe-adler/altimesh/internal/water"
)

// Names of the files a build writes into its output directory.
const (
	VTKName        = "altitudes.vtk"
	ImageName      = "rendu.png"
	LakesName      = "lakes.geojson"
	TerrainRGBName = "terrain.png"
	HypsometryName = "hypsometry.png"
	previewName    = "rendu"
)

// BuildOptions configure Build.
type BuildOptions struct {
	Input           string
	OutputDirectory string
	Config          config.Config
	// PreviewSizes are the thumbnail heights, nil disables thumbnails.
	PreviewSizes []uint
	// Progress is called before every stage, may be nil.
	Progress func(stage string)
}

func (o BuildOptions) progress(stage string) {
	if o.Progress != nil {
		o.Progress(stage)
	}
}

// Build runs the whole pipeline for one input grid and writes every artifact
// into the output directory. Each file is only written once its content is
// complete; the manifest comes last.
func Build(opts BuildOptions) (*manifest.Manifest, error) {
	cfg := opts.Config
	out := opts.OutputDirectory

	opts.progress("Loading elevation grid")
	grid, err := dem.Read(opts.Input)
	if err != nil {
		return nil, err
	}

	m := manifest.New(opts.Input, grid.Rows, grid.Cols, cfg.Extent)
	min, max := grid.MinMax()
	m.Elevation = manifest.Elevation{Min: min, Max: max}

	opts.progress("Converting and rendering")
	tk := NewToolkit(filepath.Join(out, VTKName), cfg.RenderOptions())
	conv, img, err := Run(tk, grid, cfg)
	if err != nil {
		return nil, err
	}
	m.AddOutput("vtk", tk.Path)
	m.Water = manifest.Water{
		SeaLevel:      cfg.SeaLevel,
		MinLakeSize:   cfg.MinLakeSize,
		Lakes:         len(conv.Water.Lakes),
		LakeCells:     conv.Water.LakeCells,
		BelowSeaCells: conv.Water.BelowSeaCells,
		WaterCells:    conv.Water.WaterCells(),
	}

	opts.progress("Saving image")
	imagePath := filepath.Join(out, ImageName)
	if err := render.SavePNG(imagePath, img); err != nil {
		return nil, err
	}
	m.AddOutput("png", imagePath)

	opts.progress("Writing lakes")
	lakesPath := filepath.Join(out, LakesName)
	fc := water.FeatureCollection(conv.Water.Lakes, conv.Mapper)
	if err := water.WriteFeatureCollection(lakesPath, fc); err != nil {
		return nil, err
	}
	m.AddOutput("lakes", lakesPath)

	opts.progress("Encoding Terrain-RGB")
	rgbPath := filepath.Join(out, TerrainRGBName)
	if err := render.SavePNG(rgbPath, terrainrgb.Encode(grid, 0)); err != nil {
		return nil, err
	}
	m.AddOutput("terrainrgb", rgbPath)

	opts.progress("Plotting hypsometry")
	hypsoPath := filepath.Join(out, HypsometryName)
	err = hypsometry.Save(hypsoPath, conv.Grid.Attributes, hypsometry.DefaultBins)
	switch {
	case errors.Is(err, hypsometry.ErrNoLand):
		// all water, nothing to plot
	case err != nil:
		return nil, err
	default:
		m.AddOutput("hypsometry", hypsoPath)
	}

	if len(opts.PreviewSizes) > 0 {
		opts.progress("Building previews")
		paths, err := preview.Build(img, out, previewName, opts.PreviewSizes)
		if err != nil {
			return nil, err
		}
		for i, p := range paths {
			m.AddOutput(fmt.Sprintf("preview%d", i), p)
		}
	}

	opts.progress("Writing manifest")
	if _, err := manifest.Write(out, m); err != nil {
		return nil, err
	}

	return m, nil
}
