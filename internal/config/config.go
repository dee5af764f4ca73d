// Package config holds the constants of a conversion run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/gruppe-adler/altimesh/internal/geo"
	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/utils"
	"github.com/gruppe-adler/altimesh/internal/water"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RampPoint is a colour ramp control point with a "#rrggbb" colour.
type RampPoint struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Camera places the camera above the centre of the extent.
type Camera struct {
	Altitude  float64 `json:"altitude"`
	ViewAngle float64 `json:"viewAngle"`
	Near      float64 `json:"near"`
	Far       float64 `json:"far"`
}

// Image describes the rendered raster.
type Image struct {
	Size        int    `json:"size"`
	Supersample int    `json:"supersample"`
	Background  string `json:"background"`
}

// Config is passed by value to every stage and never modified after Load.
type Config struct {
	EarthRadius float64     `json:"earthRadius"`
	SeaLevel    int         `json:"seaLevel"`
	MinLakeSize int         `json:"minLakeSize"`
	Extent      geo.Extent  `json:"extent"`
	Camera      Camera      `json:"camera"`
	Image       Image       `json:"image"`
	ColorRamp   []RampPoint `json:"colorRamp"`
}

// Default returns the built-in configuration: the Alps between 45°N-47.5°N
// and 5°E-7.5°E seen from 400km.
func Default() Config {
	ramp := render.DefaultRamp()
	points := make([]RampPoint, len(ramp))
	for i, p := range ramp {
		points[i] = RampPoint{Value: p.Value, Color: render.HexColor(p.Color)}
	}

	return Config{
		EarthRadius: 6371009,
		SeaLevel:    0,
		MinLakeSize: water.DefaultMinLakeSize,
		Extent:      geo.Extent{LatMin: 45, LatMax: 47.5, LonMin: 5, LonMax: 7.5},
		Camera: Camera{
			Altitude:  400000,
			ViewAngle: 30,
			Near:      0.1,
			Far:       1000000,
		},
		Image: Image{
			Size:        900,
			Supersample: 2,
			Background:  "#000000",
		},
		ColorRamp: points,
	}
}

// Load reads a JSON config from path on top of Default, so omitted fields
// keep their default value. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, &utils.IOError{Op: "read", Path: cleanPath, Err: err}
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration %s: %w", cleanPath, err)
	}

	return cfg, nil
}

// Validate checks every value for plausibility.
func (c Config) Validate() error {
	if c.EarthRadius <= 0 {
		return fmt.Errorf("earthRadius must be positive, got %g", c.EarthRadius)
	}
	if c.MinLakeSize < 1 {
		return fmt.Errorf("minLakeSize must be at least 1, got %d", c.MinLakeSize)
	}
	if err := c.Extent.Validate(); err != nil {
		return fmt.Errorf("extent: %w", err)
	}
	if c.Camera.Altitude <= 0 {
		return fmt.Errorf("camera.altitude must be positive, got %g", c.Camera.Altitude)
	}
	if c.Camera.ViewAngle <= 0 || c.Camera.ViewAngle >= 180 {
		return fmt.Errorf("camera.viewAngle must be in (0, 180), got %g", c.Camera.ViewAngle)
	}
	if c.Camera.Near < 0 || c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("camera clipping range [%g, %g] is invalid", c.Camera.Near, c.Camera.Far)
	}
	if c.Image.Size <= 0 {
		return fmt.Errorf("image.size must be positive, got %d", c.Image.Size)
	}
	if c.Image.Supersample < 1 || c.Image.Supersample > 8 {
		return fmt.Errorf("image.supersample must be between 1 and 8, got %d", c.Image.Supersample)
	}
	if _, err := render.ParseHexColor(c.Image.Background); err != nil {
		return fmt.Errorf("image.background: %w", err)
	}
	if _, err := c.Ramp(); err != nil {
		return fmt.Errorf("colorRamp: %w", err)
	}
	return nil
}

// Ramp converts the configured control points.
func (c Config) Ramp() (render.ColorRamp, error) {
	points := make([]render.ControlPoint, len(c.ColorRamp))
	for i, p := range c.ColorRamp {
		col, err := render.ParseHexColor(p.Color)
		if err != nil {
			return nil, err
		}
		points[i] = render.ControlPoint{Value: p.Value, Color: col}
	}
	return render.NewColorRamp(points...)
}

// CameraSpec returns the camera above the centre of the extent.
func (c Config) CameraSpec() render.Camera {
	lat, lon := c.Extent.Center()
	cam := render.OverSphere(c.EarthRadius, c.Camera.Altitude, lat, lon)
	cam.ViewAngle = c.Camera.ViewAngle
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	return cam
}

// RenderOptions returns the raster options.
func (c Config) RenderOptions() render.Options {
	background, err := render.ParseHexColor(c.Image.Background)
	if err != nil {
		background = render.DefaultOptions().Background
	}
	return render.Options{
		Width:       c.Image.Size,
		Height:      c.Image.Size,
		Supersample: c.Image.Supersample,
		Background:  background,
	}
}

// WaterOptions returns the water detector options.
func (c Config) WaterOptions() water.Options {
	return water.Options{MinLakeSize: c.MinLakeSize, SeaLevel: c.SeaLevel}
}
