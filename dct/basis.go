// SPDX-License-Identifier: MIT

// Package dct builds the orthonormal DCT-II basis and applies the separable
// 2-D transform to square blocks.
//
// Basis layout (n×n, row i = frequency, column j = sample):
//
//	C[0][j] = sqrt(2/n) / sqrt(2)
//	C[i][j] = sqrt(2/n) · cos(i · (2(j+1) − 1) · π / (2n))   for i ≥ 1
//
// The forward transform is D = C·B·Cᵀ and the inverse is B = Cᵀ·D·C.
// Because C is orthogonal (C·Cᵀ = I up to rounding), Inverse(Forward(B)) ≈ B.
package dct

import (
	"fmt"
	"math"

	"github.com/katalvlaran/blockdct/matrix"
)

const (
	opBasis   = "dct.Basis"
	opForward = "dct.Forward"
	opInverse = "dct.Inverse"
)

// Basis returns the n×n DCT-II coefficient matrix.
// MAIN DESCRIPTION:
//   - Row 0 is the flat DC vector; rows 1..n-1 sample cosines of increasing frequency.
//
// Implementation:
//   - Stage 1: validate n>0 (matrix.ErrInvalidDimensions).
//   - Stage 2: fill row 0 with sqrt(2/n)/sqrt(2), then rows 1..n-1 with the cosine law.
//
// Determinism:
//   - Pure function of n; identical bits on every call on the same platform.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func Basis(n int) (*matrix.Dense, error) {
	if err := matrix.ValidateBlockSize(n); err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}
	c, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}

	scale := math.Sqrt(2.0 / float64(n))
	dc := scale * (1.0 / math.Sqrt2)
	var i, j int
	for j = 0; j < n; j++ {
		_ = c.Set(0, j, dc)
	}
	for i = 1; i < n; i++ {
		for j = 0; j < n; j++ {
			angle := float64(i) * float64(2*(j+1)-1) * math.Pi / float64(2*n)
			_ = c.Set(i, j, scale*math.Cos(angle))
		}
	}

	return c, nil
}

// Pair holds a basis and its transpose. Both are computed once and shared
// read-only by every block of a run; kernels never mutate their operands.
type Pair struct {
	N  int
	C  *matrix.Dense
	CT *matrix.Dense
}

// NewPair computes Basis(n) and its transpose.
func NewPair(n int) (*Pair, error) {
	c, err := Basis(n)
	if err != nil {
		return nil, err
	}
	ct, err := matrix.Transpose(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}

	return &Pair{N: n, C: c, CT: ct.(*matrix.Dense)}, nil
}

// Forward returns D = C·B·Cᵀ for an n×n block.
// Errors: matrix.ErrDimensionMismatch when b is not n×n.
func Forward(p *Pair, b matrix.Matrix) (*matrix.Dense, error) {
	return p.apply(opForward, p.C, b, p.CT)
}

// Inverse returns B = Cᵀ·D·C for an n×n coefficient block.
func Inverse(p *Pair, d matrix.Matrix) (*matrix.Dense, error) {
	return p.apply(opInverse, p.CT, d, p.C)
}

func (p *Pair) apply(tag string, left, mid, right matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquareOf(mid, p.N); err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	out, err := matrix.MulChain(left, mid, right)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}

	return out.(*matrix.Dense), nil
}
