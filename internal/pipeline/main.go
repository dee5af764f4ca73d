package pipeline

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gruppe-adler/altimesh/internal/config"
	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/preview"
	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/validate"
	"github.com/gruppe-adler/altimesh/internal/vtk"
	"github.com/gruppe-adler/altimesh/internal/water"
)

// loadConfig reads the -config file and applies the flags the user set
// explicitly on top of it.
func loadConfig(flagSet *flag.FlagSet, configPath string, seaLevel, size int) config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sea-level":
			cfg.SeaLevel = seaLevel
		case "size":
			cfg.Image.Size = size
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// RunConvert is the entrypoint of the convert subcommand: grid to VTK.
func RunConvert(flagSet *flag.FlagSet, args []string) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to elevation grid (altitudes.txt)")
	outputPtr := flagSet.String("out", "", "Path to output structured grid (altitudes.vtk)")
	configPtr := flagSet.String("config", "", "Path to JSON config")
	lakesPtr := flagSet.String("lakes", "", "Optional path to write detected lakes as GeoJSON")
	seaLevelPtr := flagSet.Int("sea-level", 0, "Cells below this elevation become water (meters)")

	flagSet.Parse(args)

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := validate.InputFile(*inputPtr); err != nil {
		log.Fatal(err)
	}
	if err := validate.OutputFile(*outputPtr); err != nil {
		log.Fatal(err)
	}
	if *lakesPtr != "" {
		if err := validate.OutputFile(*lakesPtr); err != nil {
			log.Fatal(err)
		}
	}

	cfg := loadConfig(flagSet, *configPtr, *seaLevelPtr, 0)

	// load grid
	timer = time.Now()
	fmt.Println("▶️  Loading elevation grid")
	grid, err := dem.Read(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded", grid.Rows, "x", grid.Cols, "grid in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Detecting water and building structured grid")
	conv, err := Convert(grid, cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ℹ️  %d lakes, %d water cells\n", len(conv.Water.Lakes), conv.Water.WaterCells())
	fmt.Println("✔️  Built structured grid in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing structured grid")
	if err := vtk.WriteFile(*outputPtr, conv.Grid); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote structured grid in", time.Since(timer).String())

	if *lakesPtr != "" {
		fc := water.FeatureCollection(conv.Water.Lakes, conv.Mapper)
		if err := water.WriteFeatureCollection(*lakesPtr, fc); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✔️  Wrote lakes to", *lakesPtr)
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// RunRender is the entrypoint of the render subcommand: VTK to PNG.
func RunRender(flagSet *flag.FlagSet, args []string) {

	var timer time.Time
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to structured grid (altitudes.vtk)")
	outputPtr := flagSet.String("out", ImageName, "Path to output PNG")
	configPtr := flagSet.String("config", "", "Path to JSON config")
	sizePtr := flagSet.Int("size", 0, "Image width and height in pixels")

	flagSet.Parse(args)

	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := validate.InputFile(*inputPtr); err != nil {
		log.Fatal(err)
	}
	if err := validate.OutputFile(*outputPtr); err != nil {
		log.Fatal(err)
	}

	cfg := loadConfig(flagSet, *configPtr, 0, *sizePtr)
	ramp, err := cfg.Ramp()
	if err != nil {
		log.Fatal(err)
	}

	timer = time.Now()
	fmt.Println("▶️  Rendering structured grid")
	tk := NewToolkit(*inputPtr, cfg.RenderOptions())
	img, err := tk.Render(*inputPtr, ramp, cfg.CameraSpec())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Rendered image in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing image")
	if err := render.SavePNG(*outputPtr, img); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote image in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// RunBuild is the entrypoint of the build subcommand: every artifact plus a
// manifest into one directory.
func RunBuild(flagSet *flag.FlagSet, args []string) {

	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to elevation grid (altitudes.txt)")
	outputPtr := flagSet.String("out", "", "Path to output directory")
	configPtr := flagSet.String("config", "", "Path to JSON config")
	seaLevelPtr := flagSet.Int("sea-level", 0, "Cells below this elevation become water (meters)")
	sizePtr := flagSet.Int("size", 0, "Image width and height in pixels")
	previewsPtr := flagSet.Bool("previews", true, "Also write preview thumbnails")

	flagSet.Parse(args)

	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := validate.InputFile(*inputPtr); err != nil {
		log.Fatal(err)
	}
	if err := validate.OutputDirectory(*outputPtr); err != nil {
		log.Fatal(err)
	}

	cfg := loadConfig(flagSet, *configPtr, *seaLevelPtr, *sizePtr)

	opts := BuildOptions{
		Input:           *inputPtr,
		OutputDirectory: *outputPtr,
		Config:          cfg,
		Progress: func(stage string) {
			fmt.Println("▶️ ", stage)
		},
	}
	if *previewsPtr {
		opts.PreviewSizes = preview.Sizes
	}

	m, err := Build(opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("ℹ️  Run %s: %d lakes, %d water cells, elevation %dm - %dm\n",
		m.RunID, m.Water.Lakes, m.Water.WaterCells, m.Elevation.Min, m.Elevation.Max)

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
