package preview

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/gruppe-adler/altimesh/internal/render"
	"github.com/gruppe-adler/altimesh/internal/validate"
)

// Sizes are the heights of the generated thumbnails.
var Sizes = []uint{128, 256, 512}

// Build writes one thumbnail per size smaller than img into outputDirectory
// as <name>_<size>.png and returns the written paths.
func Build(img image.Image, outputDirectory, name string, sizes []uint) ([]string, error) {
	height := uint(img.Bounds().Dy())
	width := uint(img.Bounds().Dx())

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	var paths []string
	for _, size := range sizes {
		// never upscale
		if size >= height {
			continue
		}

		filePath := filepath.Join(outputDirectory, fmt.Sprintf("%s_%d.png", name, size))
		paths = append(paths, filePath)

		size := size
		g.Go(func() error {
			factor := float64(size) / float64(height)
			w := uint(float64(width) * factor)

			thumb := resize.Resize(w, size, img, resize.MitchellNetravali)
			return render.SavePNG(filePath, thumb)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet, args []string) {

	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to rendered PNG")

	flagSet.Parse(args)

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	// make sure given output directory is a valid directory
	if err := validate.OutputDirectory(*outputPtr); err != nil {
		log.Fatal(err)
	}
	if err := validate.InputFile(*inputPtr); err != nil {
		log.Fatal(err)
	}

	timer = time.Now()
	fmt.Println("▶️  Loading image")

	file, err := os.Open(*inputPtr)
	if err != nil {
		log.Fatal(err)
	}
	img, err := png.Decode(file)
	file.Close()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("✔️  Loaded image in", time.Since(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Building thumbnails")
	paths, err := Build(img, *outputPtr, "preview", Sizes)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range paths {
		fmt.Println("    ✔️ ", p)
	}
	fmt.Println("✔️  Built thumbnails in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
