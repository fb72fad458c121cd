// SPDX-License-Identifier: MIT

// Package blockdct is a small toolkit for block-DCT compression of grayscale
// images, the lossy core of baseline JPEG without the entropy coder.
//
// What is in the box?
//
//	matrix/   dense row-major matrices, products, block partition and merge
//	dct/      orthonormal DCT-II basis and the forward/inverse 2-D transform
//	quant/    quantization tables, libjpeg quality scaling, round-to-multiple
//	compress/ the per-block pipeline (shift, transform, quantize, reconstruct)
//	quality/  MSE, PSNR and coefficient statistics for a compression run
//	render/   LaTeX and MathML walkthroughs of a single block
//	imageio/  PNG/JPEG decode, luma extraction, block-aligned resize
//
// Two binaries sit on top:
//
//	cmd/dctcompress  file-in, file-out CLI
//	cmd/dctserver    JSON API with SQLite run history
//
// Quick start:
//
//	res, err := compress.CompressRows(rows, width, height, compress.WithQuality(75))
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.QuantizedZeros, "zero coefficients")
//
// Width and height must both be multiples of the block size (8 by default).
// Every error is a wrapped sentinel, so errors.Is works across packages:
// a bad image shape matches both compress.ErrImageDimensions and
// matrix.ErrDimensionMismatch.
package blockdct
