// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for kernels and tiling.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/blockdct/matrix"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Implementation:
//   - Stage 1: Embed matrix.Matrix to forward all methods.
//   - Stage 2: Use hide{X} in tests to force non-*Dense (fallback) paths.
//
// Notes:
//   - Useful to assert fast-path == fallback bitwise (or via AllClose).
type hide struct{ matrix.Matrix }

// emptyMatrix is a foreign Matrix with a zero dimension. Dense constructors
// refuse such shapes, so this is the only way to reach ErrEmptyMatrix in kernels.
type emptyMatrix struct{ r, c int }

func (e emptyMatrix) Rows() int {
	return e.r
}

func (e emptyMatrix) Cols() int {
	return e.c
}

func (e emptyMatrix) At(int, int) (float64, error) {
	return 0, matrix.ErrOutOfRange
}

func (e emptyMatrix) Set(int, int, float64) error {
	return matrix.ErrOutOfRange
}

func (e emptyMatrix) Clone() matrix.Matrix {
	return e
}

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// MustSet WRITES m[i,j]=v or fails the test.
func MustSet(t testing.TB, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d): %v", i, j, err)
	}
}

// NewFilledDense BUILDS r×c *Dense from a row-major flat slice.
// Implementation:
//   - Stage 1: Validate len(vals)==r*c.
//   - Stage 2: Allocate Dense and Set(i,j, vals[i*c+j]).
func NewFilledDense(t testing.TB, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	if len(vals) != r*c {
		t.Fatalf("NewFilledDense: want %d values, got %d", r*c, len(vals))
	}
	d := MustDense(t, r, c)
	var i, j int // loop iterators
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			MustSet(t, d, i, j, vals[i*c+j])
		}
	}

	return d
}

// Sequence RETURNS an r×c *Dense holding 0,1,2,… in row-major order.
// Each value equals its flat offset, which makes tiling mistakes obvious.
func Sequence(t testing.TB, r, c int) *matrix.Dense {
	t.Helper()
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = float64(i)
	}

	return NewFilledDense(t, r, c, vals)
}

// RandFilledDense RETURNS a new r×c Dense filled with deterministic U(-1,1).
// Determinism:
//   - Deterministic per seed.
//
// AI-Hints:
//   - Use identical seeds across fast vs fallback to isolate path differences.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			MustSet(t, m, i, j, rng.Float64()*2-1) // 0*2-1=-1 || 1*2-1=1
		}
	}

	return m
}

// CompareExact ASSERTS got equals want element-wise with zero tolerance.
func CompareExact(t testing.TB, want [][]float64, got matrix.Matrix) {
	t.Helper()
	if got.Rows() != len(want) || (len(want) > 0 && got.Cols() != len(want[0])) {
		t.Fatalf("shape: got %dx%d, want %dx%d", got.Rows(), got.Cols(), len(want), len(want[0]))
	}
	var i, j int
	var v float64
	for i = 0; i < len(want); i++ {
		for j = 0; j < len(want[i]); j++ {
			v = MustAt(t, got, i, j)
			if v != want[i][j] {
				t.Fatalf("[%d,%d]: got %v, want %v", i, j, v, want[i][j])
			}
		}
	}
}
