// SPDX-License-Identifier: MIT
package quant_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockdct/matrix"
	"github.com/katalvlaran/blockdct/quant"
)

func TestQuantize_KnownValues(t *testing.T) {
	t.Parallel()

	d, err := matrix.FromRows([][]float64{{584, -30.2}, {7.9, 0.4}})
	require.NoError(t, err)
	q, err := matrix.FromRows([][]float64{{16, 11}, {12, 12}})
	require.NoError(t, err)

	got, err := quant.Quantize(d, q)
	require.NoError(t, err)
	rows, err := matrix.ToRows(got)
	require.NoError(t, err)
	// 584/16 = 36.5 → 37 (tie away from zero); -30.2/11 ≈ -2.75 → -3
	require.Equal(t, [][]float64{{592, -33}, {12, 0}}, rows)
}

func TestQuantize_Idempotent(t *testing.T) {
	t.Parallel()

	q := quant.Luminance50()
	rows := make([][]float64, 8)
	for i := range rows {
		rows[i] = make([]float64, 8)
		for j := range rows[i] {
			rows[i][j] = math.Sin(float64(i*8+j)) * 300
		}
	}
	d, err := matrix.FromRows(rows)
	require.NoError(t, err)

	once, err := quant.Quantize(d, q)
	require.NoError(t, err)
	twice, err := quant.Quantize(once, q)
	require.NoError(t, err)

	ok, err := matrix.Equal(once, twice)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestQuantize_Errors(t *testing.T) {
	t.Parallel()

	d, _ := matrix.NewDense(8, 8)
	small, _ := matrix.NewDense(4, 4)

	_, err := quant.Quantize(d, small)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	zero := quant.Luminance50()
	require.NoError(t, zero.Set(3, 3, 0))
	_, err = quant.Quantize(d, zero)
	require.ErrorIs(t, err, quant.ErrInvalidTable)

	neg := quant.Luminance50()
	require.NoError(t, neg.Set(0, 0, -16))
	_, err = quant.Quantize(d, neg)
	require.ErrorIs(t, err, quant.ErrInvalidTable)
}

func TestLuminance50_FreshCopy(t *testing.T) {
	t.Parallel()

	a := quant.Luminance50()
	require.NoError(t, a.Set(0, 0, 1))
	b := quant.Luminance50()
	v, _ := b.At(0, 0)
	require.Equal(t, 16.0, v)
	v, _ = b.At(7, 7)
	require.Equal(t, 99.0, v)
}

func TestScaleTable(t *testing.T) {
	t.Parallel()

	base := quant.Luminance50()

	same, err := quant.ScaleTable(base, quant.DefaultQuality)
	require.NoError(t, err)
	ok, err := matrix.Equal(base, same)
	require.NoError(t, err)
	require.True(t, ok, "quality 50 must reproduce the base table")

	best, err := quant.ScaleTable(base, 100)
	require.NoError(t, err)
	best.Do(func(_, _ int, v float64) bool {
		require.Equal(t, 1.0, v)
		return true
	})

	// quality 10: scale 500 → 16*5 = 80, 121*5 = 605 clamps to 255
	low, err := quant.ScaleTable(base, 10)
	require.NoError(t, err)
	v, _ := low.At(0, 0)
	require.Equal(t, 80.0, v)
	v, _ = low.At(6, 5)
	require.Equal(t, 255.0, v)

	// out-of-range qualities clamp
	clamped, err := quant.ScaleTable(base, 0)
	require.NoError(t, err)
	q1, err := quant.ScaleTable(base, 1)
	require.NoError(t, err)
	ok, err = matrix.Equal(clamped, q1)
	require.NoError(t, err)
	require.True(t, ok)
}
