// Package synth generates elevation grids from perlin noise.
package synth

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/validate"
)

const (
	frequency     = 0.02
	zoneFrequency = 0.004
)

// Options shape the generated terrain.
type Options struct {
	// Peak is the height of the highest summits in metres.
	Peak float64
	// LakeLevel flattens every sample between SeaLevel and LakeLevel to
	// LakeLevel, so basins come out as flat plateaus.
	LakeLevel int
	SeaLevel  int
}

// DefaultOptions returns alpine looking terrain.
func DefaultOptions() Options {
	return Options{Peak: 2500, LakeLevel: 300, SeaLevel: 0}
}

// Generator generates a heightmap using perlin noise.
type Generator struct {
	// for smaller/higher frequency details
	hi *perlin.Perlin
	// for larger/lower frequency details
	lo *perlin.Perlin

	opts Options
}

// New creates a new Generator with a seed.
func New(seed int64, opts Options) *Generator {
	return &Generator{
		hi:   perlin.NewPerlin(1.5, 2.0, 4, seed),
		lo:   perlin.NewPerlin(2.5, 3.0, 4, seed+1),
		opts: opts,
	}
}

// Generate returns a rows x cols grid. The same seed always yields the same
// grid.
func (g *Generator) Generate(rows, cols int) *dem.Grid {
	data := make([]int, rows*cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := float64(j)
			y := float64(i)

			h := clamp(g.hi.Noise2D(x*frequency, y*frequency)*0.5+0.5, 0, 1)

			// zone is very low frequency
			zone := clamp(g.lo.Noise2D(x*zoneFrequency, y*zoneFrequency)*2.0+0.6, 0, 1)

			data[i*cols+j] = g.level(int(math.Round(h * zone * g.opts.Peak)))
		}
	}

	return dem.NewGrid(rows, cols, data)
}

func (g *Generator) level(h int) int {
	if h > g.opts.SeaLevel && h < g.opts.LakeLevel {
		return g.opts.LakeLevel
	}
	return h
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet, args []string) {

	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output grid (altitudes.txt)")
	rowsPtr := flagSet.Int("rows", 256, "Number of rows")
	colsPtr := flagSet.Int("cols", 256, "Number of columns")
	seedPtr := flagSet.Int64("seed", 1, "Noise seed")
	peakPtr := flagSet.Float64("peak", DefaultOptions().Peak, "Height of the highest summits (meters)")
	lakePtr := flagSet.Int("lake-level", DefaultOptions().LakeLevel, "Basins below this elevation are flattened to it (meters)")

	flagSet.Parse(args)

	if *outputPtr == "" || *rowsPtr < 1 || *colsPtr < 1 {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if err := validate.OutputFile(*outputPtr); err != nil {
		log.Fatal(err)
	}

	opts := DefaultOptions()
	opts.Peak = *peakPtr
	opts.LakeLevel = *lakePtr

	fmt.Println("▶️  Generating", *rowsPtr, "x", *colsPtr, "grid with seed", *seedPtr)
	grid := New(*seedPtr, opts).Generate(*rowsPtr, *colsPtr)

	min, max := grid.MinMax()
	fmt.Printf("ℹ️  Elevation ranges from %d to %d\n", min, max)

	if err := dem.WriteFile(*outputPtr, grid); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote grid to", *outputPtr)

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
