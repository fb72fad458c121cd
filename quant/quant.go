// SPDX-License-Identifier: MIT

// Package quant implements coefficient quantization against a divisor table.
//
// Each coefficient is snapped to the nearest multiple of its divisor:
//
//	D1[i][j] = round(D[i][j] / Q[i][j]) · Q[i][j]
//
// with ties rounded away from zero. Larger divisors zero out more coefficients,
// which is where the compression comes from.
package quant

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/blockdct/matrix"
)

// ErrInvalidTable reports a divisor that is zero, negative or non-finite.
var ErrInvalidTable = errors.New("quant: table entries must be positive and finite")

// Quality bounds accepted by ScaleTable.
const (
	MinQuality     = 1
	MaxQuality     = 100
	DefaultQuality = 50
)

// luminance50 is the standard 8×8 luminance table at quality 50.
var luminance50 = [8][8]float64{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

// Luminance50 returns a fresh copy of the quality-50 luminance table.
// Callers may mutate the result freely.
func Luminance50() *matrix.Dense {
	t, _ := matrix.NewDense(8, 8)
	for i := range luminance50 {
		for j, v := range luminance50[i] {
			_ = t.Set(i, j, v)
		}
	}

	return t
}

// Validate checks that every divisor in q is positive and finite.
func Validate(q matrix.Matrix) error {
	if err := matrix.ValidateNotEmpty(q); err != nil {
		return err
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < q.Rows(); i++ {
		for j = 0; j < q.Cols(); j++ {
			if v, err = q.At(i, j); err != nil {
				return err
			}
			if !(v > 0) || math.IsInf(v, 0) {
				return fmt.Errorf("entry (%d,%d)=%v: %w", i, j, v, ErrInvalidTable)
			}
		}
	}

	return nil
}

// Quantize returns round(d/q)·q element-wise.
// MAIN DESCRIPTION:
//   - Lossy step of the pipeline; idempotent (Quantize(Quantize(d,q),q) == Quantize(d,q)).
//
// Errors:
//   - matrix.ErrDimensionMismatch when shapes differ.
//   - ErrInvalidTable when any divisor is not positive and finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Quantize(d, q matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateBinarySameShape(d, q); err != nil {
		return nil, fmt.Errorf("quant.Quantize: %w", err)
	}
	if err := Validate(q); err != nil {
		return nil, fmt.Errorf("quant.Quantize: %w", err)
	}

	r, c := d.Rows(), d.Cols()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("quant.Quantize: %w", err)
	}
	var i, j int
	var dv, qv float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			dv, _ = d.At(i, j)
			qv, _ = q.At(i, j)
			if err = out.Set(i, j, math.Round(dv/qv)*qv); err != nil {
				return nil, fmt.Errorf("quant.Quantize: %w", err)
			}
		}
	}

	return out, nil
}

// ScaleTable derives a table for the given quality from base using the
// libjpeg scaling curve. quality is clamped to [MinQuality, MaxQuality];
// quality 50 reproduces base. Scaled entries are clamped to [1, 255].
func ScaleTable(base matrix.Matrix, quality int) (*matrix.Dense, error) {
	if err := Validate(base); err != nil {
		return nil, fmt.Errorf("quant.ScaleTable: %w", err)
	}
	if quality < MinQuality {
		quality = MinQuality
	} else if quality > MaxQuality {
		quality = MaxQuality
	}

	var scale int
	if quality < 50 {
		scale = 5000 / quality
	} else {
		scale = 200 - quality*2
	}

	r, c := base.Rows(), base.Cols()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("quant.ScaleTable: %w", err)
	}
	var i, j, x int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, _ = base.At(i, j)
			x = (int(math.Round(v))*scale + 50) / 100
			if x < 1 {
				x = 1
			} else if x > 255 {
				x = 255
			}
			_ = out.Set(i, j, float64(x))
		}
	}

	return out, nil
}
