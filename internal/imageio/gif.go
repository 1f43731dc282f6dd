package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/roach88/sortvis/internal/grid"
)

// maxPaletteSize is the GIF colour table limit.
const maxPaletteSize = 256

// GIFOptions controls animation timing.
type GIFOptions struct {
	// DelayCS is the per-frame delay in hundredths of a second.
	DelayCS int

	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int

	// Dither enables Floyd-Steinberg error diffusion. Only useful when the
	// palette does not hold every source colour.
	Dither bool
}

// BuildPalette returns the exact colours of px when there are at most 256 of
// them, and palette.Plan9 otherwise. exact reports which. Sorting only moves
// pixels within a row, so a palette built from the source image covers every
// frame.
func BuildPalette(px grid.PixelGrid) (pal color.Palette, exact bool) {
	seen := make(map[color.RGBA]struct{})
	var p color.Palette
	for _, row := range px {
		for _, c := range row {
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == maxPaletteSize {
				return palette.Plan9, false
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	if len(p) == 0 {
		return color.Palette{color.Black}, true
	}
	return p, true
}

// EncodeGIF writes frames as one animated GIF using pal for every frame.
// Pixels are mapped to their nearest palette entry unless opts.Dither is set.
func EncodeGIF(w io.Writer, frames []grid.PixelGrid, pal color.Palette, opts GIFOptions) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: opts.LoopCount,
	}

	var drawer draw.Drawer = draw.Src
	if opts.Dither {
		drawer = draw.FloydSteinberg
	}

	for _, f := range frames {
		src := f.Image()
		dst := image.NewPaletted(src.Bounds(), pal)
		drawer.Draw(dst, src.Bounds(), src, image.Point{})
		anim.Image = append(anim.Image, dst)
		anim.Delay = append(anim.Delay, opts.DelayCS)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	return nil
}

// SaveGIF builds the palette from the first frame and writes the animation
// to path. Dithering is switched on when the palette is not exact.
func SaveGIF(path string, frames []grid.PixelGrid, opts GIFOptions) (err error) {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output: %w", closeErr)
		}
	}()

	pal, exact := BuildPalette(frames[0])
	opts.Dither = opts.Dither || !exact
	return EncodeGIF(f, frames, pal, opts)
}
