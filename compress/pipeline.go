// SPDX-License-Identifier: MIT

// Package compress runs block-DCT compression over a grayscale image.
//
// For every N×N block A of the image, in raster order:
//
//	B  = A − offset
//	D  = C·B·Cᵀ                (dct.Forward)
//	D1 = round(D/Q)·Q          (quant.Quantize)
//	A1 = round(Cᵀ·D1·C) + offset
//
// A1 is written back at the block's position in the output image, and the
// near-zero coefficients of D and D1 are counted to show how much sparser the
// quantized representation is.
//
// Image dimensions must be exact multiples of N; partial edge blocks are an
// error here, never silently dropped.
package compress

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/katalvlaran/blockdct/dct"
	"github.com/katalvlaran/blockdct/matrix"
	"github.com/katalvlaran/blockdct/quant"
)

// ErrImageDimensions reports an image whose declared or actual shape does not
// tile into whole blocks. It always travels together with
// matrix.ErrDimensionMismatch (or matrix.ErrNilMatrix for a missing image).
var ErrImageDimensions = errors.New("compress: image dimensions do not tile into blocks")

const (
	opCompress     = "compress.Compress"
	opCompressRows = "compress.CompressRows"
)

// isZero reports whether v rounds to zero.
func isZero(v float64) bool { return math.Abs(math.Round(v)) == 0 }

// blockOutput is everything one block contributes to the Result.
type blockOutput struct {
	d, d1, a1     *matrix.Dense
	zeros, zeros1 int
}

// run carries the read-only state shared by every block of one compression.
type run struct {
	pair   *dct.Pair
	table  matrix.Matrix
	offset float64
	n      int
	out    *matrix.Dense
}

// Compress compresses img (height rows × width columns of intensities).
// MAIN DESCRIPTION:
//   - Validates the boundary, computes the basis once, processes every block and
//     reassembles the reconstructed image.
//
// Implementation:
//   - Stage 1: resolve options; validate img, its declared size and the table.
//   - Stage 2: build the basis pair and a zeroed output buffer.
//   - Stage 3: Partition, then process blocks sequentially or on a worker pool.
//   - Stage 4: reduce per-block zero counts into totals.
//
// Errors:
//   - ErrImageDimensions (+ matrix.ErrDimensionMismatch) when width/height disagree
//     with img or are not multiples of the block size.
//   - matrix.ErrDimensionMismatch when the table is not N×N.
//   - quant.ErrInvalidTable for a non-positive divisor.
//   - The first block error (lowest index) aborts the run; no partial Result.
//
// Determinism:
//   - Output is identical for any worker count.
//
// Complexity:
//   - Time O(blocks · N³), Space O(width·height) plus per-block records.
func Compress(img matrix.Matrix, width, height int, opts ...Option) (*Result, error) {
	start := time.Now()
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}
	n := o.blockSize

	if err = validateImage(img, width, height, n); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}
	if err = matrix.ValidateSquareOf(o.table, n); err != nil {
		return nil, fmt.Errorf("%s: table: %w", opCompress, err)
	}
	if err = quant.Validate(o.table); err != nil {
		return nil, fmt.Errorf("%s: table: %w", opCompress, err)
	}

	pair, err := dct.NewPair(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}
	out, err := matrix.ZerosLike(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}
	blocks, err := matrix.Partition(img, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}

	r := &run{pair: pair, table: o.table, offset: o.offset, n: n, out: out}
	outputs := make([]blockOutput, len(blocks))
	if o.workers > 1 && len(blocks) > 1 {
		err = r.parallel(blocks, outputs, o.workers)
	} else {
		err = r.sequential(blocks, outputs)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}

	original, err := toDense(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}
	table, err := toDense(o.table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompress, err)
	}

	res := &Result{
		Original:      original,
		Compressed:    out,
		Coefficients:  make([]*matrix.Dense, len(blocks)),
		Quantized:     make([]*matrix.Dense, len(blocks)),
		Blocks:        blocks,
		Reconstructed: make([]*matrix.Dense, len(blocks)),
		BlockSize:     n,
		Offset:        o.offset,
		Table:         table,
		Basis:         pair.C,
	}
	for i, bo := range outputs {
		res.Coefficients[i] = bo.d
		res.Quantized[i] = bo.d1
		res.Reconstructed[i] = bo.a1
		res.CoefficientZeros += bo.zeros
		res.QuantizedZeros += bo.zeros1
	}

	o.logger.Debug("compressed image",
		"width", width,
		"height", height,
		"block_size", n,
		"blocks", len(blocks),
		"workers", o.workers,
		"dct_zeros", res.CoefficientZeros,
		"quantized_zeros", res.QuantizedZeros,
		"elapsed", time.Since(start),
	)

	return res, nil
}

// CompressRows is Compress for a row-of-rows image.
// Errors from row ingestion (matrix.ErrEmptyMatrix, matrix.ErrBadShape,
// matrix.ErrNaNInf) are returned wrapped.
func CompressRows(rows [][]float64, width, height int, opts ...Option) (*Result, error) {
	img, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompressRows, err)
	}

	return Compress(img, width, height, opts...)
}

func validateImage(img matrix.Matrix, width, height, n int) error {
	if err := matrix.ValidateNotEmpty(img); err != nil {
		return fmt.Errorf("%w: %w", ErrImageDimensions, err)
	}
	if img.Rows() != height || img.Cols() != width {
		return fmt.Errorf("%w: declared %dx%d, got %dx%d: %w",
			ErrImageDimensions, width, height, img.Cols(), img.Rows(), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateTiling(img, n); err != nil {
		return fmt.Errorf("%w: %w", ErrImageDimensions, err)
	}

	return nil
}

// block runs the full per-block chain for block i and merges A1 into r.out.
func (r *run) block(i int, a *matrix.Dense) (blockOutput, error) {
	var bo blockOutput
	b, err := matrix.Shift(a, -r.offset)
	if err != nil {
		return bo, fmt.Errorf("block %d: normalize: %w", i, err)
	}
	if bo.d, err = dct.Forward(r.pair, b); err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}
	if bo.d1, err = quant.Quantize(bo.d, r.table); err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}
	rec, err := dct.Inverse(r.pair, bo.d1)
	if err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}
	if rec, err = matrix.Round(rec); err != nil {
		return bo, fmt.Errorf("block %d: round: %w", i, err)
	}
	if bo.a1, err = matrix.Shift(rec, r.offset); err != nil {
		return bo, fmt.Errorf("block %d: restore: %w", i, err)
	}
	if bo.zeros, err = matrix.CountIf(bo.d, isZero); err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}
	if bo.zeros1, err = matrix.CountIf(bo.d1, isZero); err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}
	if err = matrix.MergeBlock(r.out, bo.a1, i, r.n); err != nil {
		return bo, fmt.Errorf("block %d: %w", i, err)
	}

	return bo, nil
}

func (r *run) sequential(blocks []*matrix.Dense, outputs []blockOutput) error {
	var err error
	for i, a := range blocks {
		if outputs[i], err = r.block(i, a); err != nil {
			return err
		}
	}

	return nil
}

// parallel processes blocks on a fixed pool. Each worker writes only its own
// outputs slot and its own region of r.out. The basis and table are read-only.
func (r *run) parallel(blocks []*matrix.Dense, outputs []blockOutput, workers int) error {
	if workers > len(blocks) {
		workers = len(blocks)
	}

	// Pre-fill the job channel before starting workers.
	jobs := make(chan int, len(blocks))
	for i := range blocks {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, len(blocks))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outputs[i], errs[i] = r.block(i, blocks[i])
			}
		}()
	}
	wg.Wait()

	// First error by block index, matching the sequential run.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

// toDense returns an independent *Dense copy of m.
func toDense(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		return d.Clone().(*matrix.Dense), nil
	}
	rows, err := matrix.ToRows(m)
	if err != nil {
		return nil, err
	}

	return matrix.FromRows(rows)
}
