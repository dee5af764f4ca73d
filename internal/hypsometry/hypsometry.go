// Package hypsometry summarizes and charts the altitude distribution of the
// land cells of a structured grid.
package hypsometry

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gruppe-adler/altimesh/internal/utils"
	"github.com/gruppe-adler/altimesh/internal/validate"
	"github.com/gruppe-adler/altimesh/internal/vtk"
)

// DefaultBins is the histogram bin count.
const DefaultBins = 40

// ErrNoLand is returned when every cell is water.
var ErrNoLand = errors.New("no land cells")

// Summary describes the land cells (attribute != 0).
type Summary struct {
	LandCells int     `json:"landCells"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
}

func landValues(attributes []int) []float64 {
	values := make([]float64, 0, len(attributes))
	for _, v := range attributes {
		if v != 0 {
			values = append(values, float64(v))
		}
	}
	return values
}

// Summarize computes the land cell statistics.
func Summarize(attributes []int) (Summary, error) {
	values := landValues(attributes)
	if len(values) == 0 {
		return Summary{}, ErrNoLand
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		LandCells: len(values),
		Min:       floats.Min(values),
		Max:       floats.Max(values),
		Mean:      stat.Mean(values, nil),
		Median:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}, nil
}

// Plot builds a histogram of the land cell altitudes.
func Plot(attributes []int, bins int) (*plot.Plot, error) {
	values := landValues(attributes)
	if len(values) == 0 {
		return nil, ErrNoLand
	}

	p := plot.New()
	p.Title.Text = "Hypsometry"
	p.X.Label.Text = "Altitude (m)"
	p.Y.Label.Text = "Cells"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = color.RGBA{R: 0x54, G: 0xa3, B: 0x39, A: 0xff}
	p.Add(h)

	return p, nil
}

// Save writes the histogram as PNG to path.
func Save(path string, attributes []int, bins int) error {
	p, err := Plot(attributes, bins)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render hypsometry plot: %w", err)
	}

	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet, args []string) {
	start := time.Now()

	inputPtr := flagSet.String("in", "", "Path to structured grid (.vtk)")
	outputPtr := flagSet.String("out", "", "Path to output PNG")
	binsPtr := flagSet.Int("bins", DefaultBins, "Number of histogram bins")

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

	fmt.Println("▶️  Loading structured grid")
	grid, err := vtk.ReadFile(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded structured grid in", time.Since(start).String())

	summary, err := Summarize(grid.Attributes)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ℹ️  Land cells: %d, altitude %.0fm - %.0fm, mean %.0fm, median %.0fm\n",
		summary.LandCells, summary.Min, summary.Max, summary.Mean, summary.Median)

	timer := time.Now()
	fmt.Println("▶️  Plotting hypsometry")
	if err := Save(*outputPtr, grid.Attributes, *binsPtr); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Plotted hypsometry in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
