package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/testutil"
)

func writePNG(t *testing.T, px grid.PixelGrid) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, px.Image()))
	require.NoError(t, f.Close())
	return path
}

func TestLoad_PNG(t *testing.T) {
	px := testutil.Gradient(4, 6)
	got, err := Load(writePNG(t, px), 0)
	require.NoError(t, err)
	assert.Equal(t, px, got)
}

func TestLoad_SameWidthIsNotResampled(t *testing.T) {
	px := testutil.Gradient(3, 5)
	got, err := Load(writePNG(t, px), 5)
	require.NoError(t, err)
	assert.Equal(t, px, got)
}

func TestLoad_Resize(t *testing.T) {
	px := testutil.Gradient(10, 20)
	got, err := Load(writePNG(t, px), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Cols())
	assert.Equal(t, 5, got.Rows())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open image")
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image")
}

func TestResize_MinimumHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 1))
	out := Resize(img, 10)
	assert.Equal(t, image.Rect(0, 0, 10, 1), out.Bounds())
}

func TestBuildPalette_Exact(t *testing.T) {
	px := grid.PixelGrid{
		{{R: 1, A: 255}, {G: 2, A: 255}},
		{{G: 2, A: 255}, {B: 3, A: 255}},
	}
	pal, exact := BuildPalette(px)
	assert.True(t, exact)
	assert.Len(t, pal, 3)
}

func TestBuildPalette_FallsBackAboveLimit(t *testing.T) {
	px := grid.NewPixelGrid(1, 300)
	for c := range px[0] {
		px[0][c] = color.RGBA{R: uint8(c), G: uint8(c / 256), A: 255}
	}
	pal, exact := BuildPalette(px)
	assert.False(t, exact)
	assert.Equal(t, color.Palette(palette.Plan9), pal)
}

func TestBuildPalette_Empty(t *testing.T) {
	pal, exact := BuildPalette(grid.PixelGrid{})
	assert.True(t, exact)
	assert.Len(t, pal, 1)
}

func TestEncodeGIF_FramesAndTiming(t *testing.T) {
	px := testutil.Gradient(3, 8)
	reversed := px.Clone()
	for _, row := range reversed {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
	frames := []grid.PixelGrid{reversed, px, px}
	pal, exact := BuildPalette(px)
	require.True(t, exact)

	var buf bytes.Buffer
	require.NoError(t, EncodeGIF(&buf, frames, pal, GIFOptions{DelayCS: 7, LoopCount: -1}))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{7, 7, 7}, anim.Delay)
	assert.Equal(t, -1, anim.LoopCount)

	// Exact palettes reproduce every pixel.
	assert.Equal(t, px, grid.FromImage(anim.Image[1]))
	assert.Equal(t, reversed, grid.FromImage(anim.Image[0]))
}

func TestEncodeGIF_NoFrames(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EncodeGIF(&buf, nil, palette.Plan9, GIFOptions{}))
}

func TestSaveGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	px := testutil.Gradient(2, 4)
	require.NoError(t, SaveGIF(path, []grid.PixelGrid{px, px}, GIFOptions{DelayCS: 5}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
}
