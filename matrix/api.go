// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Each facade delegates to the canonical implementation.
//   - Keep function names explicit and intention-revealing to improve discoverability.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: Reference value for orthogonality checks (C·Cᵀ ≈ I).
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Handy to preallocate an output image buffer shaped like its input.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotEmpty(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// ---------- Element-wise (thin wrappers → ew*) ----------

// Shift returns a copy of m with delta added to every element.
// The pipeline uses Shift(A, -offset) to centre pixel intensities and
// Shift(R, +offset) to restore them.
// Time: O(r*c). Space: O(r*c). Deterministic.
func Shift(m Matrix, delta float64) (*Dense, error) { return ewShift(m, delta) }

// Round returns a copy of m with every element rounded to the nearest integer,
// halves away from zero (math.Round).
// Time: O(r*c). Space: O(r*c). Deterministic.
func Round(m Matrix) (*Dense, error) { return ewRound(m) }

// CountIf returns the number of elements of m for which pred holds.
// Time: O(r*c). Space: O(1).
func CountIf(m Matrix, pred func(v float64) bool) (int, error) { return ewCountIf(m, pred) }

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// Equal reports exact element-wise equality (AllClose with zero tolerances).
func Equal(a, b Matrix) (bool, error) { return ewAllClose(a, b, 0, 0) }
