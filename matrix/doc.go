// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear-algebra kernels behind block
// transform coding.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set, row-of-rows
//     conversion (FromRows, ToRows) and JSON encoding as an array of rows.
//   - Kernels: Mul, MulChain (left-to-right fold), Transpose, plus element-wise
//     Shift, Round, CountIf and AllClose.
//   - Tiling: Partition splits a matrix into n×n blocks in raster order and
//     MergeBlock writes a block back at the region owned by its index; both use
//     BlockOrigin so the traversal order is identical in both directions.
//
// Every kernel validates its operands through validators.go and returns
// package sentinels (ErrEmptyMatrix, ErrDimensionMismatch, ...) wrapped with
// the operation name; nothing panics on malformed input.
package matrix
