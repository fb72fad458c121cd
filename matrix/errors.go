// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap these sentinels with an operation tag
// (see matrixErrorf); callers still match them with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> empty -> shape -> dimension mismatch -> index/NaN.

var (
	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrEmptyMatrix indicates an operand with zero rows or zero columns.
	// Public constructors never produce such matrices; it surfaces from row
	// ingestion (FromRows) and from foreign Matrix implementations.
	ErrEmptyMatrix = errors.New("matrix: operation cannot be performed on empty matrix")

	// ErrBadShape is returned when requested shape is invalid, e.g. ragged rows
	// in FromRows or a window that does not fit its base.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrInvalidDimensions indicates that requested matrix dimensions (or a block
	// size) are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a block that is not n×n.
	ErrDimensionMismatch = errors.New("matrix: incompatible dimensions")

	// ErrOutOfRange indicates that an index (row, column or block) is outside
	// valid bounds. Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
// Keep it as an alias so errors.Is(err, ErrIndexOutOfBounds) remains true.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.
