// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/blockdct/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	// helper matrix implementation
	identity := func(r, c int) matrix.Matrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name    string
		a, b    matrix.Matrix
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, identity(2, 2), matrix.ErrNilMatrix},
		{"second nil", identity(2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", identity(2, 3), identity(2, 3), nil},
		{"row mismatch", identity(2, 3), identity(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", identity(2, 3), identity(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	identity := func(n int) matrix.Matrix {
		m, err := matrix.NewDense(n, n)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", identity(1), nil},
		{"3x3", identity(3), nil},
		{"2x3", func() matrix.Matrix { m, _ := matrix.NewDense(2, 3); return m }(), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateTiling covers exact tilings, remainders on either axis and bad block sizes.
func TestValidateTiling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    matrix.Matrix
		n    int
		want error
	}{
		{"nil", nil, 8, matrix.ErrNilMatrix},
		{"empty", emptyMatrix{0, 8}, 8, matrix.ErrEmptyMatrix},
		{"zero block", MustDense(t, 8, 8), 0, matrix.ErrInvalidDimensions},
		{"16x16 by 8", MustDense(t, 16, 16), 8, nil},
		{"16x24 by 8", MustDense(t, 16, 24), 8, nil},
		{"10x10 by 8", MustDense(t, 10, 10), 8, matrix.ErrDimensionMismatch},
		{"16x10 by 8", MustDense(t, 16, 10), 8, matrix.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateTiling(tc.m, tc.n)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestValidateSquareOf rejects anything that is not exactly n×n.
func TestValidateSquareOf(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateSquareOf(MustDense(t, 4, 4), 4))
	require.ErrorIs(t, matrix.ValidateSquareOf(MustDense(t, 4, 4), 8), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquareOf(MustDense(t, 4, 5), 4), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSquareOf(nil, 4), matrix.ErrNilMatrix)

	var typedNil *matrix.Dense
	require.ErrorIs(t, matrix.ValidateSquareOf(typedNil, 4), matrix.ErrNilMatrix)
}

// TestValidateMulCompatible checks the inner-dimension rule and its message.
func TestValidateMulCompatible(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 4)))

	err := matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "left columns (3) must match right rows (2)")

	require.ErrorIs(t, matrix.ValidateMulCompatible(emptyMatrix{2, 0}, MustDense(t, 2, 2)), matrix.ErrEmptyMatrix)
}
