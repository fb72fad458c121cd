// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/empty/shape/block checks here.
//  - Return plain sentinel errors wrapped with the validator tag so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing beyond the error value.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → NotEmpty → Shape).

package matrix

import (
	"fmt"
)

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateNotEmpty – Composite: NotNil → Rows>0 && Cols>0.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix.
// Complexity: O(1).
func ValidateNotEmpty(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateNotEmpty", err)
	}
	if m.Rows() <= 0 || m.Cols() <= 0 {
		return validatorErrorf("ValidateNotEmpty", ErrEmptyMatrix)
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Return: nil, wrapped ErrNilMatrix, or wrapped ErrDimensionMismatch naming both shapes.
// Complexity: O(1).
// AI-Hints: Use for Quantize and AllClose compatibility guards.
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape",
			fmt.Errorf("%dx%d vs %dx%d: %w", a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotEmpty(a) → NotEmpty(b) → SameShape.
//
// Errors: Combines ErrNilMatrix, ErrEmptyMatrix and ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotEmpty(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotEmpty(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Errors: ErrNilMatrix; ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare",
			fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateSquareOf – Composite: NotEmpty → Rows == Cols == n.
// Used wherever a block, basis or table must be exactly n×n.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquareOf(m Matrix, n int) error {
	if err := ValidateNotEmpty(m); err != nil {
		return validatorErrorf("ValidateSquareOf", err)
	}
	if m.Rows() != n || m.Cols() != n {
		return validatorErrorf("ValidateSquareOf",
			fmt.Errorf("got %dx%d, want %dx%d: %w", m.Rows(), m.Cols(), n, n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateMulCompatible – Ensures a.Cols == b.Rows, inputs non-nil and non-empty.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrDimensionMismatch (detail names both shapes).
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotEmpty(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotEmpty(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible",
			fmt.Errorf("left columns (%d) must match right rows (%d): %w", a.Cols(), b.Rows(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateBlockSize ensures n > 0.
// Complexity: O(1).
func ValidateBlockSize(n int) error {
	if n <= 0 {
		return validatorErrorf("ValidateBlockSize", fmt.Errorf("n=%d: %w", n, ErrInvalidDimensions))
	}

	return nil
}

// ValidateTiling ensures m is non-empty and both of its dimensions are exact
// multiples of the block size n.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrInvalidDimensions, ErrDimensionMismatch.
// Complexity: O(1).
// AI-Hints: Call before Partition when dropping partial edge blocks is not acceptable.
func ValidateTiling(m Matrix, n int) error {
	if err := ValidateNotEmpty(m); err != nil {
		return validatorErrorf("ValidateTiling", err)
	}
	if err := ValidateBlockSize(n); err != nil {
		return validatorErrorf("ValidateTiling", err)
	}
	if m.Rows()%n != 0 || m.Cols()%n != 0 {
		return validatorErrorf("ValidateTiling",
			fmt.Errorf("%dx%d is not tiled by %dx%d blocks: %w", m.Rows(), m.Cols(), n, n, ErrDimensionMismatch))
	}

	return nil
}
