// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise kernels (ew*) to avoid duplicating
//     tight loops across the public facades in api.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import (
	"math"
)

// ewMap returns out[i,j] = f(X[i,j]) as a new *Dense.
// Shared body of Shift and Round. Time: O(r*c). Space: O(r*c).
func ewMap(tag string, X Matrix, f func(float64) float64) (*Dense, error) {
	if err := ValidateNotEmpty(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	// Dense fast-path: single flat loop.
	if dx, ok := X.(*Dense); ok {
		for idx, v := range dx.data {
			out.data[idx] = f(v)
		}
		return out, nil
	}

	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			out.data[i*c+j] = f(v)
		}
	}

	return out, nil
}

// ewShift computes out[i,j] = X[i,j] + delta.
// Rejects a non-finite delta up front so the result stays finite.
func ewShift(X Matrix, delta float64) (*Dense, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, matrixErrorf("Shift", ErrNaNInf)
	}

	return ewMap("Shift", X, func(v float64) float64 { return v + delta })
}

// ewRound computes out[i,j] = round(X[i,j]) with halves rounded away from zero.
func ewRound(X Matrix) (*Dense, error) {
	return ewMap("Round", X, math.Round)
}

// ewCountIf counts elements for which pred returns true.
// Time: O(r*c). Space: O(1).
func ewCountIf(X Matrix, pred func(v float64) bool) (int, error) {
	if err := ValidateNotEmpty(X); err != nil {
		return 0, matrixErrorf("CountIf", err)
	}

	count := 0
	if dx, ok := X.(*Dense); ok {
		for _, v := range dx.data {
			if pred(v) {
				count++
			}
		}
		return count, nil
	}

	r, c := X.Rows(), X.Cols()
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return 0, matrixErrorf("CountIf", err)
			}
			if pred(v) {
				count++
			}
		}
	}

	return count, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil, non-empty and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf) // invalid tolerance
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	close := func(av, bv float64) bool {
		return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
	}

	// Dense fast-path: operate over flat slices when both are *Dense.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !close(da.data[idx], db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if !close(av, bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
