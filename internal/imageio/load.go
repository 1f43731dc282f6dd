// Package imageio reads source images into pixel grids and writes frame
// sequences out as animated GIFs.
package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/roach88/sortvis/internal/grid"
)

// Load decodes the image at path. If width is positive and differs from the
// image width, the image is rescaled to that width keeping its aspect ratio.
func Load(path string, width int) (grid.PixelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, width)
}

// Decode is Load for an already open reader.
func Decode(r io.Reader, width int) (grid.PixelGrid, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s image is empty", format)
	}

	if width > 0 && width != img.Bounds().Dx() {
		img = Resize(img, width)
	}
	return grid.FromImage(img), nil
}

// Resize scales img to width pixels wide with Catmull-Rom resampling. The
// height follows the aspect ratio and is at least one pixel.
func Resize(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
