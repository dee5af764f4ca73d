package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gruppe-adler/altimesh/internal/dem"
	"github.com/gruppe-adler/altimesh/internal/geo"
	"github.com/gruppe-adler/altimesh/internal/mesh"
)

const earthRadius = 6371009.0

func TestDefaultRamp(t *testing.T) {
	ramp := DefaultRamp()

	assert.Equal(t, color.RGBA{0x50, 0x8e, 0xcc, 0xff}, ramp.At(0))
	assert.Equal(t, color.RGBA{0x50, 0x8e, 0xcc, 0xff}, ramp.At(-100))
	assert.Equal(t, color.RGBA{0x54, 0xa3, 0x39, 0xff}, ramp.At(1))
	assert.Equal(t, color.RGBA{0xd4, 0xba, 0x90, 0xff}, ramp.At(900))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, ramp.At(1600))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, ramp.At(4807))
}

func TestRampInterpolates(t *testing.T) {
	ramp, err := NewColorRamp(
		ControlPoint{Value: 100, Color: color.RGBA{200, 0, 100, 255}},
		ControlPoint{Value: 0, Color: color.RGBA{0, 100, 0, 255}},
	)
	require.NoError(t, err)

	assert.Equal(t, 0.0, ramp[0].Value)
	assert.Equal(t, color.RGBA{100, 50, 50, 255}, ramp.At(50))
	assert.Equal(t, color.RGBA{50, 75, 25, 255}, ramp.At(25))
}

func TestNewColorRampErrors(t *testing.T) {
	_, err := NewColorRamp()
	assert.Error(t, err)

	_, err = NewColorRamp(ControlPoint{Value: 1}, ControlPoint{Value: 1})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#508ecc")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x50, 0x8e, 0xcc, 0xff}, c)
	assert.Equal(t, "#508ecc", HexColor(c))

	c, err = ParseHexColor("FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)

	for _, bad := range []string{"", "#123", "#12345g", "1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestCameraProjectsFocalPointToCenter(t *testing.T) {
	cam := OverSphere(earthRadius, 400000, 46.25, 6.25)
	v, err := cam.view(200, 100)
	require.NoError(t, err)

	x, y, depth, ok := v.project(cam.FocalPoint)
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-6)
	assert.InDelta(t, 50, y, 1e-6)
	assert.InDelta(t, 400000, depth, 1e-3)

	// behind the camera
	_, _, _, ok = v.project(geo.ToCartesianDeg(earthRadius+800000, 46.25, 6.25))
	assert.False(t, ok)

	// orthonormal basis
	assert.InDelta(t, 1, r3.Norm(v.up), 1e-12)
	assert.InDelta(t, 0, r3.Dot(v.up, v.forward), 1e-12)
	assert.InDelta(t, 0, r3.Dot(v.right, v.forward), 1e-12)
}

func TestCameraErrors(t *testing.T) {
	good := OverSphere(earthRadius, 400000, 46.25, 6.25)

	same := good
	same.Position = same.FocalPoint
	_, err := same.view(10, 10)
	assert.Error(t, err)

	angle := good
	angle.ViewAngle = 0
	_, err = angle.view(10, 10)
	assert.Error(t, err)

	clip := good
	clip.Near, clip.Far = 10, 5
	_, err = clip.view(10, 10)
	assert.Error(t, err)

	// view up parallel to the view direction still yields a basis
	parallel := good
	parallel.ViewUp = r3.Sub(good.FocalPoint, good.Position)
	v, err := parallel.view(10, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1, r3.Norm(v.right), 1e-12)
}

// flatPatch returns a small grid at constant elevation centred on (lat, lon).
func flatPatch(t *testing.T, n int, elevation int, lat, lon, span float64) *mesh.StructuredGrid {
	t.Helper()

	data := make([]int, n*n)
	for k := range data {
		data[k] = elevation
	}
	grid := dem.NewGrid(n, n, data)

	extent := geo.Extent{LatMin: lat - span, LatMax: lat + span, LonMin: lon - span, LonMax: lon + span}
	mapper, err := geo.NewMapper(extent, n, n)
	require.NoError(t, err)

	sg, err := mesh.Build(grid, mapper, earthRadius, data)
	require.NoError(t, err)
	return sg
}

func TestRender(t *testing.T) {
	sg := flatPatch(t, 9, 100, 46.25, 6.25, 0.3)
	cam := OverSphere(earthRadius, 400000, 46.25, 6.25)
	background := color.RGBA{A: 0xff}

	for _, ss := range []int{1, 2} {
		img, err := Render(sg, DefaultRamp(), cam, Options{Width: 64, Height: 64, Supersample: ss, Background: background})
		require.NoError(t, err)

		assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

		// patch is about 67km across, the view about 200km: corners are empty
		for _, corner := range []image.Point{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
			c := img.RGBAAt(corner.X, corner.Y)
			assert.LessOrEqual(t, int(c.R)+int(c.G)+int(c.B), 6, "supersample %d corner %v", ss, corner)
		}

		want := DefaultRamp().At(100)
		got := img.RGBAAt(32, 32)
		assert.InDelta(t, float64(want.R), float64(got.R), 8, "supersample %d", ss)
		assert.InDelta(t, float64(want.G), float64(got.G), 8, "supersample %d", ss)
		assert.InDelta(t, float64(want.B), float64(got.B), 8, "supersample %d", ss)
	}
}

func TestRenderDepthOrder(t *testing.T) {
	// a low water patch under a higher snow patch seen from above: snow wins
	low := flatPatch(t, 5, 0, 46.25, 6.25, 0.3)
	high := flatPatch(t, 5, 3000, 46.25, 6.25, 0.3)

	combined := &mesh.StructuredGrid{
		Dims:       [3]int{10, 5, 1},
		Points:     append(append([]r3.Vec{}, low.Points...), high.Points...),
		Attributes: append(append([]int{}, low.Attributes...), high.Attributes...),
	}

	cam := OverSphere(earthRadius, 400000, 46.25, 6.25)
	img, err := Render(combined, DefaultRamp(), cam, Options{Width: 64, Height: 64, Supersample: 1})
	require.NoError(t, err)

	got := img.RGBAAt(32, 32)
	assert.Greater(t, int(got.R), 200)
	assert.Greater(t, int(got.G), 200)
	assert.Greater(t, int(got.B), 200)
}

func TestRenderRejectsBadInput(t *testing.T) {
	sg := flatPatch(t, 3, 10, 46.25, 6.25, 0.05)
	cam := OverSphere(earthRadius, 400000, 46.25, 6.25)

	_, err := Render(sg, DefaultRamp(), cam, Options{Width: 0, Height: 10})
	assert.Error(t, err)

	broken := &mesh.StructuredGrid{Dims: [3]int{2, 2, 1}}
	_, err = Render(broken, DefaultRamp(), cam, Options{Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestRenderSkipsNonFinitePoints(t *testing.T) {
	sg := flatPatch(t, 5, 100, 46.25, 6.25, 0.3)
	sg.Points[6] = r3.Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	sg.Points[12] = r3.Vec{X: math.Inf(1), Y: 0, Z: 0}
	cam := OverSphere(earthRadius, 400000, 46.25, 6.25)

	img, err := Render(sg, DefaultRamp(), cam, Options{Width: 32, Height: 32, Supersample: 1})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{1, 2, 3, 255})
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, SavePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{r >> 8, g >> 8, b >> 8})
}
