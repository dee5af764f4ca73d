package terrainrgb

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/validate"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet, args []string) {

	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output PNG")
	inputPtr := flagSet.String("in", "", "Path to elevation grid")
	offsetPtr := flagSet.Float64("offset", 0, "Elevation offset added to every sample (meters)")

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

	// load grid
	timer = time.Now()
	fmt.Println("▶️  Loading elevation grid")
	grid, err := dem.Read(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded elevation grid in", time.Since(timer).String())

	// calculating image
	timer = time.Now()
	fmt.Println("▶️  Calculating image from grid")
	img := Encode(grid, *offsetPtr)
	fmt.Println("✔️  Calculated image in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing Terrain-RGB image")
	if err := render.SavePNG(*outputPtr, img); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote Terrain-RGB image in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
