// SPDX-License-Identifier: MIT
package imageio_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockdct/imageio"
	"github.com/katalvlaran/blockdct/matrix"
)

func grayImage(w, h int, f func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}

	return img
}

func TestFromImage_Gray(t *testing.T) {
	t.Parallel()

	img := grayImage(3, 2, func(x, y int) uint8 { return uint8(10*y + x) })
	m, err := imageio.FromImage(img)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	rows, err := matrix.ToRows(m)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 1, 2}, {10, 11, 12}}, rows)
}

func TestFromImage_RGBUsesLuma(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{A: 255})

	m, err := imageio.FromImage(img)
	require.NoError(t, err)
	white, _ := m.At(0, 0)
	black, _ := m.At(0, 1)
	require.Equal(t, 255.0, white)
	require.Equal(t, 0.0, black)
}

func TestToGray_ClampsAndRounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{-4, 0.6, 254.5, 300}})
	require.NoError(t, err)

	img, err := imageio.ToGray(m)
	require.NoError(t, err)
	require.Equal(t, []uint8{0, 1, 255, 255}, img.Pix)
}

func TestFitToBlocks(t *testing.T) {
	t.Parallel()

	aligned := grayImage(16, 8, func(x, y int) uint8 { return 1 })
	got, err := imageio.FitToBlocks(aligned, 8)
	require.NoError(t, err)
	require.Same(t, aligned, got.(*image.Gray))

	odd := grayImage(21, 10, func(x, y int) uint8 { return uint8(x * 10) })
	got, err = imageio.FitToBlocks(odd, 8)
	require.NoError(t, err)
	require.Equal(t, 16, got.Bounds().Dx())
	require.Equal(t, 8, got.Bounds().Dy())

	_, err = imageio.FitToBlocks(grayImage(7, 20, func(x, y int) uint8 { return 0 }), 8)
	require.ErrorIs(t, err, imageio.ErrTooSmall)
	_, err = imageio.FitToBlocks(aligned, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestLoad_PNGAndJPEG(t *testing.T) {
	t.Parallel()

	src := grayImage(20, 12, func(x, y int) uint8 { return 128 })

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	m, err := imageio.Load(&pngBuf, 8)
	require.NoError(t, err)
	require.Equal(t, 8, m.Rows())
	require.Equal(t, 16, m.Cols())
	v, _ := m.At(3, 3)
	require.Equal(t, 128.0, v)

	var jpgBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpgBuf, src, &jpeg.Options{Quality: 95}))
	m, err = imageio.Load(&jpgBuf, 4)
	require.NoError(t, err)
	require.Equal(t, 12, m.Rows())
	require.Equal(t, 20, m.Cols())

	_, err = imageio.Load(bytes.NewReader([]byte("not an image")), 8)
	require.Error(t, err)
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{0, 64}, {128, 255}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, imageio.EncodePNG(&buf, m))

	img, format, err := imageio.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, "png", format)

	back, err := imageio.FromImage(img)
	require.NoError(t, err)
	ok, err := matrix.Equal(m, back)
	require.NoError(t, err)
	require.True(t, ok)
}

// pngHeader returns a PNG signature plus IHDR declaring a w×h grayscale image
// with no pixel data behind it.
func pngHeader(w, h uint32) []byte {
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth; colour type, compression, filter, interlace stay 0

	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&b, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr[:]...)
	b.Write(chunk)
	_ = binary.Write(&b, binary.BigEndian, crc32.ChecksumIEEE(chunk))

	return b.Bytes()
}

func TestDecodeLimited(t *testing.T) {
	t.Parallel()

	_, _, err := imageio.DecodeLimited(bytes.NewReader(pngHeader(30000, 30000)), 4096*4096)
	require.ErrorIs(t, err, imageio.ErrTooLarge)

	_, err = imageio.LoadLimited(bytes.NewReader(pngHeader(30000, 30000)), 8, 1<<20)
	require.ErrorIs(t, err, imageio.ErrTooLarge)

	// under the limit the header bytes are replayed into the full decode
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, grayImage(24, 16, func(x, y int) uint8 { return uint8(x + y) })))
	img, format, err := imageio.DecodeLimited(bytes.NewReader(buf.Bytes()), 24*16)
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())

	_, _, err = imageio.DecodeLimited(bytes.NewReader(buf.Bytes()), 24*16-1)
	require.ErrorIs(t, err, imageio.ErrTooLarge)

	m, err := imageio.LoadLimited(bytes.NewReader(buf.Bytes()), 8, 0)
	require.NoError(t, err)
	v, _ := m.At(1, 2)
	require.Equal(t, 3.0, v)
}
