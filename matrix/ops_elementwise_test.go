// SPDX-License-Identifier: MIT
// Package matrix_test contains tests for element-wise facades.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/blockdct/matrix"
	"github.com/stretchr/testify/require"
)

func TestShift(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{0, 127, 200, 255})
	got, err := matrix.Shift(m, -127)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-127, 0}, {73, 128}}, got)

	back, err := matrix.Shift(hide{got}, 127)
	require.NoError(t, err)
	ok, err := matrix.Equal(m, back)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = matrix.Shift(m, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.Shift(emptyMatrix{0, 1}, 1)
	require.ErrorIs(t, err, matrix.ErrEmptyMatrix)
}

func TestRound_HalfAwayFromZero(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 1, 6, []float64{0.5, -0.5, 1.49, 36.5, -2.5, 73.99999999999999})
	got, err := matrix.Round(m)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, -1, 1, 37, -3, 74}}, got)

	slow, err := matrix.Round(hide{m})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, -1, 1, 37, -3, 74}}, slow)
}

func TestCountIf(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 3, []float64{0, 0.4, -0.49, 0.5, 3, 0})
	isZero := func(v float64) bool { return math.Round(v) == 0 }

	n, err := matrix.CountIf(m, isZero)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	n, err = matrix.CountIf(hide{m}, isZero)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	_, err = matrix.CountIf(nil, isZero)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 3, []float64{1, 2, 3})
	b := NewFilledDense(t, 1, 3, []float64{1, 2, 3 + 1e-10})

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(hide{a}, b, 0, 1e-12)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.Equal(a, b)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, MustDense(t, 3, 1), 0, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AllClose(a, b, math.Inf(1), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestNewIdentityAndZerosLike(t *testing.T) {
	t.Parallel()

	I, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, I)

	z, err := matrix.ZerosLike(Sequence(t, 2, 5))
	require.NoError(t, err)
	require.Equal(t, 2, z.Rows())
	require.Equal(t, 5, z.Cols())

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
