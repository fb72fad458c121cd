// SPDX-License-Identifier: MIT

// Package matrix - block tiling: partition a matrix into n×n tiles and merge
// tiles back into a target buffer.
//
// Traversal order (shared by Partition and MergeBlock):
//
//	index → (rowBlock, colBlock) = (index / blocksPerRow, index % blocksPerRow)
//
// i.e. raster scan: block-rows top to bottom, block-columns left to right.
// Partition and MergeBlock derive the origin through BlockOrigin, so the two
// directions cannot drift apart.

package matrix

import "fmt"

const (
	opPartition  = "Partition"
	opMergeBlock = "MergeBlock"
)

// BlockOrigin returns the top-left (row, col) of block index in a matrix with
// cols columns tiled by n×n blocks.
// Errors: ErrInvalidDimensions when n<=0 or cols<n; ErrOutOfRange when index<0.
// Complexity: O(1).
func BlockOrigin(cols, n, index int) (row, col int, err error) {
	if err = ValidateBlockSize(n); err != nil {
		return 0, 0, err
	}
	perRow := cols / n
	if perRow == 0 {
		return 0, 0, fmt.Errorf("BlockOrigin: %d columns hold no %d-wide block: %w", cols, n, ErrInvalidDimensions)
	}
	if index < 0 {
		return 0, 0, fmt.Errorf("BlockOrigin: index %d: %w", index, ErrOutOfRange)
	}

	return (index / perRow) * n, (index % perRow) * n, nil
}

// BlockGrid reports how many complete n×n blocks fit along each axis of m.
// Complexity: O(1).
func BlockGrid(m Matrix, n int) (blockRows, blockCols int, err error) {
	if err = ValidateNotEmpty(m); err != nil {
		return 0, 0, err
	}
	if err = ValidateBlockSize(n); err != nil {
		return 0, 0, err
	}

	return m.Rows() / n, m.Cols() / n, nil
}

// Partition splits m into n×n blocks in raster order.
// MAIN DESCRIPTION:
//   - Scans block-rows top to bottom and block-columns left to right in steps of n,
//     copying each complete tile into its own *Dense.
//
// Implementation:
//   - Stage 1: validate m (non-nil, non-empty) and n>0.
//   - Stage 2: for each complete tile, copy n rows of n values into a new block.
//
// Behavior highlights:
//   - A trailing block-row or block-column with fewer than n elements remaining is
//     DROPPED: no padding, no error. Callers that must not lose data validate with
//     ValidateTiling first (the compression pipeline does).
//   - Blocks are independent copies; mutating them never touches m.
//
// Returns:
//   - []*Dense: (rows/n)*(cols/n) blocks; empty when m is smaller than one block.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrInvalidDimensions.
//
// Determinism:
//   - Fixed raster order; block i sits at BlockOrigin(cols, n, i).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Pass *Dense to copy whole block rows with copy() instead of per-element At.
func Partition(m Matrix, n int) ([]*Dense, error) {
	blockRows, blockCols, err := BlockGrid(m, n)
	if err != nil {
		return nil, matrixErrorf(opPartition, err)
	}

	blocks := make([]*Dense, 0, blockRows*blockCols)
	dm, fast := m.(*Dense)
	var (
		br, bc, i, j int
		r0, c0       int
		v            float64
		blk          *Dense
	)
	for br = 0; br < blockRows; br++ {
		r0 = br * n
		for bc = 0; bc < blockCols; bc++ {
			c0 = bc * n
			if blk, err = NewDense(n, n); err != nil {
				return nil, matrixErrorf(opPartition, err)
			}
			for i = 0; i < n; i++ {
				if fast {
					src := (r0+i)*dm.c + c0
					copy(blk.data[i*n:(i+1)*n], dm.data[src:src+n])
					continue
				}
				for j = 0; j < n; j++ {
					if v, err = m.At(r0+i, c0+j); err != nil {
						return nil, matrixErrorf(opPartition, err)
					}
					blk.data[i*n+j] = v
				}
			}
			blocks = append(blocks, blk)
		}
	}

	return blocks, nil
}

// MergeBlock copies block into dst at the region owned by block index.
// MAIN DESCRIPTION:
//   - Inverse of Partition for a single tile: computes blocksPerRow = dst.Cols/n,
//     origin = ((index / blocksPerRow) * n, (index % blocksPerRow) * n) and writes
//     the n×n block there in place.
//
// Implementation:
//   - Stage 1: validate dst, block (exactly n×n) and the origin (via BlockOrigin).
//   - Stage 2: reject regions that would fall outside dst (ErrOutOfRange).
//   - Stage 3: copy rows (fast path) or Set element-wise (fallback).
//
// Behavior highlights:
//   - Distinct indices own disjoint regions, so concurrent MergeBlock calls on
//     distinct indices of the same *Dense never overlap.
//   - Never panics on malformed input.
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrInvalidDimensions, ErrDimensionMismatch, ErrOutOfRange.
//
// Complexity:
//   - Time O(n²), Space O(1).
func MergeBlock(dst Matrix, block Matrix, index, n int) error {
	if err := ValidateNotEmpty(dst); err != nil {
		return matrixErrorf(opMergeBlock, err)
	}
	if err := ValidateBlockSize(n); err != nil {
		return matrixErrorf(opMergeBlock, err)
	}
	if err := ValidateSquareOf(block, n); err != nil {
		return matrixErrorf(opMergeBlock, err)
	}
	r0, c0, err := BlockOrigin(dst.Cols(), n, index)
	if err != nil {
		return matrixErrorf(opMergeBlock, err)
	}
	if r0+n > dst.Rows() || c0+n > dst.Cols() {
		return matrixErrorf(opMergeBlock,
			fmt.Errorf("block %d at (%d,%d) exceeds %dx%d: %w", index, r0, c0, dst.Rows(), dst.Cols(), ErrOutOfRange))
	}

	dd, okDst := dst.(*Dense)
	db, okBlk := block.(*Dense)
	if okDst && okBlk {
		for i := 0; i < n; i++ {
			off := (r0+i)*dd.c + c0
			copy(dd.data[off:off+n], db.data[i*n:(i+1)*n])
		}
		return nil
	}

	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v, err = block.At(i, j); err != nil {
				return matrixErrorf(opMergeBlock, err)
			}
			if err = dst.Set(r0+i, c0+j, v); err != nil {
				return matrixErrorf(opMergeBlock, err)
			}
		}
	}

	return nil
}
