// SPDX-License-Identifier: MIT

// Package imageio bridges image.Image and the luma matrices the pipeline
// works on: decode PNG/JPEG, convert to an intensity matrix, fit the size to
// whole blocks and encode the reconstruction back to PNG.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoding
	"image/png"
	"io"
	"math"

	"github.com/nfnt/resize"

	"github.com/katalvlaran/blockdct/matrix"
)

var (
	// ErrTooSmall reports an image narrower or shorter than one block.
	ErrTooSmall = errors.New("imageio: image smaller than one block")

	// ErrTooLarge reports an image whose declared size exceeds the pixel limit.
	ErrTooLarge = errors.New("imageio: image exceeds pixel limit")
)

// Decode reads a PNG or JPEG image and reports its format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio.Decode: %w", err)
	}

	return img, format, nil
}

// DecodeLimited is Decode with a cap on width*height. The dimensions are read
// from the image header first, so an oversized image is rejected before any
// pixel buffer is allocated. maxPixels <= 0 disables the check.
func DecodeLimited(r io.Reader, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		return Decode(r)
	}

	// DecodeConfig consumes part of r; head keeps those bytes for the replay.
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, "", fmt.Errorf("imageio.DecodeLimited: %w", err)
	}
	if cfg.Width < 0 || cfg.Height < 0 || (cfg.Height > 0 && cfg.Width > maxPixels/cfg.Height) {
		return nil, "", fmt.Errorf("imageio.DecodeLimited: %s %dx%d over %d pixels: %w",
			format, cfg.Width, cfg.Height, maxPixels, ErrTooLarge)
	}

	return Decode(io.MultiReader(&head, r))
}

// FromImage converts img to a rows×cols matrix of 8-bit luma values
// (color.GrayModel, i.e. ITU-R 601 weights).
func FromImage(img image.Image) (*matrix.Dense, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m, err := matrix.NewDense(h, w)
	if err != nil {
		return nil, fmt.Errorf("imageio.FromImage: %dx%d: %w", w, h, err)
	}

	// *image.Gray avoids the per-pixel color conversion.
	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			row := g.Pix[y*g.Stride : y*g.Stride+w]
			for x, v := range row {
				_ = m.Set(y, x, float64(v))
			}
		}
		return m, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			_ = m.Set(y, x, float64(gray.Y))
		}
	}

	return m, nil
}

// ToGray converts a luma matrix back to an 8-bit grayscale image, rounding
// and clamping every value to [0, 255].
func ToGray(m matrix.Matrix) (*image.Gray, error) {
	rows, err := matrix.ToRows(m)
	if err != nil {
		return nil, fmt.Errorf("imageio.ToGray: %w", err)
	}
	img := image.NewGray(image.Rect(0, 0, m.Cols(), m.Rows()))
	for y, row := range rows {
		for x, v := range row {
			img.Pix[y*img.Stride+x] = clamp8(v)
		}
	}

	return img, nil
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}

	return uint8(v)
}

// FitToBlocks scales img down to the nearest dimensions that are multiples of n.
// Images already aligned are returned unchanged.
// Errors: ErrTooSmall when either side is shorter than n.
func FitToBlocks(img image.Image, n int) (image.Image, error) {
	if err := matrix.ValidateBlockSize(n); err != nil {
		return nil, fmt.Errorf("imageio.FitToBlocks: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < n || h < n {
		return nil, fmt.Errorf("imageio.FitToBlocks: %dx%d with block %d: %w", w, h, n, ErrTooSmall)
	}
	fw, fh := w-w%n, h-h%n
	if fw == w && fh == h {
		return img, nil
	}

	return resize.Resize(uint(fw), uint(fh), img, resize.Bilinear), nil
}

// Load decodes r, fits it to n-sized blocks and returns its luma matrix.
func Load(r io.Reader, n int) (*matrix.Dense, error) {
	return LoadLimited(r, n, 0)
}

// LoadLimited is Load that refuses images over maxPixels before decoding them
// (see DecodeLimited).
func LoadLimited(r io.Reader, n, maxPixels int) (*matrix.Dense, error) {
	img, _, err := DecodeLimited(r, maxPixels)
	if err != nil {
		return nil, err
	}
	if img, err = FitToBlocks(img, n); err != nil {
		return nil, err
	}

	return FromImage(img)
}

// EncodePNG writes m as an 8-bit grayscale PNG.
func EncodePNG(w io.Writer, m matrix.Matrix) error {
	img, err := ToGray(m)
	if err != nil {
		return err
	}
	if err = png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio.EncodePNG: %w", err)
	}

	return nil
}
