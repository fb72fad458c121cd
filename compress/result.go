// SPDX-License-Identifier: MIT

package compress

import (
	"fmt"

	"github.com/katalvlaran/blockdct/matrix"
)

// Result is the full record of one compression run. Every per-block slice
// has one entry per block in raster order, so index i in Blocks, Coefficients,
// Quantized and Reconstructed always refers to the same tile.
type Result struct {
	Original   *matrix.Dense `json:"original_image"`
	Compressed *matrix.Dense `json:"compressed_image"`

	Coefficients []*matrix.Dense `json:"dct_matrices"`            // D per block
	Quantized    []*matrix.Dense `json:"compressed_dct_matrices"` // D1 per block

	CoefficientZeros int `json:"dct_zero_count"`
	QuantizedZeros   int `json:"compressed_dct_zero_count"`

	Blocks        []*matrix.Dense `json:"image_submatrices"`            // A per block
	Reconstructed []*matrix.Dense `json:"compressed_image_submatrices"` // A1 per block

	BlockSize int           `json:"block_size"`
	Offset    float64       `json:"offset"`
	Table     *matrix.Dense `json:"quantization_table"`
	Basis     *matrix.Dense `json:"basis"`
}

// BlockSteps is the five-matrix walkthrough of a single block:
// A → B = A − offset → D = C·B·Cᵀ → D1 = quantized D → A1.
type BlockSteps struct {
	Index         int
	Raw           *matrix.Dense // A
	Normalized    *matrix.Dense // B
	Coefficients  *matrix.Dense // D
	Quantized     *matrix.Dense // D1
	Reconstructed *matrix.Dense // A1
}

// Len returns the number of blocks.
func (r *Result) Len() int { return len(r.Blocks) }

// Steps returns the intermediate matrices of block i. The normalized block
// is re-derived from Blocks[i] and Offset rather than stored.
// Errors: matrix.ErrOutOfRange when i is not a valid block index.
func (r *Result) Steps(i int) (BlockSteps, error) {
	if i < 0 || i >= len(r.Blocks) {
		return BlockSteps{}, fmt.Errorf("compress.Steps: block %d of %d: %w", i, len(r.Blocks), matrix.ErrOutOfRange)
	}
	b, err := matrix.Shift(r.Blocks[i], -r.Offset)
	if err != nil {
		return BlockSteps{}, fmt.Errorf("compress.Steps: %w", err)
	}

	return BlockSteps{
		Index:         i,
		Raw:           r.Blocks[i],
		Normalized:    b,
		Coefficients:  r.Coefficients[i],
		Quantized:     r.Quantized[i],
		Reconstructed: r.Reconstructed[i],
	}, nil
}
