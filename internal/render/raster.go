package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gruppe-adler/altimesh/internal/mesh"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options control the output raster.
type Options struct {
	Width, Height int

	// Supersample renders at Supersample times the output size and scales
	// the result down.
	Supersample int

	Background color.RGBA
}

// DefaultOptions renders a 900x900 image on black.
func DefaultOptions() Options {
	return Options{Width: 900, Height: 900, Supersample: 2, Background: color.RGBA{A: 0xff}}
}

// Render rasterizes grid as a surface, two triangles per grid quad, coloured
// per vertex through ramp and lit by a headlight at the camera.
func Render(grid *mesh.StructuredGrid, ramp ColorRamp, cam Camera, opts Options) (*image.RGBA, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}

	width, height := opts.Width*ss, opts.Height*ss
	v, err := cam.view(width, height)
	if err != nil {
		return nil, err
	}

	r := newRaster(width, height, opts.Background)

	n := len(grid.Points)
	verts := make([]vertex, n)
	for k, p := range grid.Points {
		x, y, depth, ok := v.project(p)
		verts[k] = vertex{
			world:   p,
			x:       x,
			y:       y,
			depth:   depth,
			visible: ok,
			color:   ramp.At(float64(grid.Attributes[k])),
		}
	}

	rows, cols := grid.Rows(), grid.Cols()
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := grid.Index(i, j)
			b := a + 1
			c := a + cols
			d := c + 1
			r.triangle(v, &verts[a], &verts[c], &verts[b])
			r.triangle(v, &verts[b], &verts[c], &verts[d])
		}
	}

	if ss == 1 {
		return r.img, nil
	}

	scaled := resize.Resize(uint(opts.Width), uint(opts.Height), r.img, resize.Lanczos3)
	if rgba, ok := scaled.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(out, out.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return out, nil
}

type vertex struct {
	world       r3.Vec
	x, y, depth float64
	visible     bool
	color       color.RGBA
}

type raster struct {
	img    *image.RGBA
	zbuf   []float64
	width  int
	height int
}

func newRaster(width, height int, background color.RGBA) *raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	zbuf := make([]float64, width*height)
	for k := range zbuf {
		zbuf[k] = math.Inf(1)
	}

	return &raster{img: img, zbuf: zbuf, width: width, height: height}
}

// edge is twice the signed area of the triangle (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func (r *raster) triangle(v *view, p0, p1, p2 *vertex) {
	if !p0.visible || !p1.visible || !p2.visible {
		return
	}

	area := edge(p0.x, p0.y, p1.x, p1.y, p2.x, p2.y)
	if math.Abs(area) < 1e-12 {
		return
	}

	normal := r3.Cross(r3.Sub(p1.world, p0.world), r3.Sub(p2.world, p0.world))
	if r3.Norm(normal) == 0 {
		return
	}
	centroid := r3.Scale(1.0/3, r3.Add(p0.world, r3.Add(p1.world, p2.world)))
	toEye := r3.Sub(v.eye, centroid)
	// two sided headlight
	shade := math.Abs(r3.Dot(r3.Unit(normal), r3.Unit(toEye)))

	minX := int(math.Max(0, math.Floor(math.Min(p0.x, math.Min(p1.x, p2.x)))))
	maxX := int(math.Min(float64(r.width-1), math.Ceil(math.Max(p0.x, math.Max(p1.x, p2.x)))))
	minY := int(math.Max(0, math.Floor(math.Min(p0.y, math.Min(p1.y, p2.y)))))
	maxY := int(math.Min(float64(r.height-1), math.Ceil(math.Max(p0.y, math.Max(p1.y, p2.y)))))

	const eps = -1e-9
	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5

			w0 := edge(p1.x, p1.y, p2.x, p2.y, cx, cy) / area
			w1 := edge(p2.x, p2.y, p0.x, p0.y, cx, cy) / area
			w2 := 1 - w0 - w1
			if w0 < eps || w1 < eps || w2 < eps {
				continue
			}

			depth := w0*p0.depth + w1*p1.depth + w2*p2.depth
			k := py*r.width + px
			if depth >= r.zbuf[k] {
				continue
			}
			r.zbuf[k] = depth

			r.img.SetRGBA(px, py, color.RGBA{
				R: mix(p0.color.R, p1.color.R, p2.color.R, w0, w1, w2, shade),
				G: mix(p0.color.G, p1.color.G, p2.color.G, w0, w1, w2, shade),
				B: mix(p0.color.B, p1.color.B, p2.color.B, w0, w1, w2, shade),
				A: 0xff,
			})
		}
	}
}

func mix(a, b, c uint8, wa, wb, wc, shade float64) uint8 {
	v := (float64(a)*wa + float64(b)*wb + float64(c)*wc) * shade
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
