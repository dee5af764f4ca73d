package render

import (
	"image"
	"image/png"
	"io"

	"github.com/gruppe-adler/altimesh/internal/utils"
)

// SavePNG writes img as PNG to path once it has been fully encoded.
func SavePNG(path string, img image.Image) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}
