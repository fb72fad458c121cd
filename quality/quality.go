// SPDX-License-Identifier: MIT

// Package quality measures how faithful and how sparse a compression run is.
package quality

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/blockdct/compress"
	"github.com/katalvlaran/blockdct/matrix"
)

// Peak8Bit is the peak signal value for 8-bit intensities.
const Peak8Bit = 255.0

// Report summarises one compression run.
type Report struct {
	MSE         float64 `json:"mse"`
	PSNR        float64 `json:"psnr"` // dB; +Inf for an exact reconstruction
	MAE         float64 `json:"mae"`
	MaxAbsError float64 `json:"max_abs_error"`

	Coefficients        int     `json:"coefficients"`
	CoefficientSparsity float64 `json:"coefficient_sparsity"` // CoefficientZeros / Coefficients
	QuantizedSparsity   float64 `json:"quantized_sparsity"`   // QuantizedZeros / Coefficients

	// DC terms across blocks, a rough measure of brightness spread.
	DCMean   float64 `json:"dc_mean"`
	DCStdDev float64 `json:"dc_std_dev"`

	// Share of coefficient energy kept after quantization (Σ D1² / Σ D²).
	EnergyRetained float64 `json:"energy_retained"`
}

// MarshalJSON encodes an infinite PSNR as null; JSON has no Inf.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	out := struct {
		plain
		PSNR *float64 `json:"psnr"`
	}{plain: plain(r)}
	if !math.IsInf(r.PSNR, 0) && !math.IsNaN(r.PSNR) {
		p := r.PSNR
		out.PSNR = &p
	}

	return json.Marshal(out)
}

// flatten returns the row-major values of m.
func flatten(m matrix.Matrix) ([]float64, error) {
	rows, err := matrix.ToRows(m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, m.Rows()*m.Cols())
	for _, r := range rows {
		out = append(out, r...)
	}

	return out, nil
}

func pair(op string, a, b matrix.Matrix) ([]float64, []float64, error) {
	if err := matrix.ValidateBinarySameShape(a, b); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	fa, err := flatten(a)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	fb, err := flatten(b)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return fa, fb, nil
}

// MSE returns the mean squared error between a and b.
func MSE(a, b matrix.Matrix) (float64, error) {
	fa, fb, err := pair("quality.MSE", a, b)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(fa, fb, 2)

	return d * d / float64(len(fa)), nil
}

// PSNR returns the peak signal-to-noise ratio in dB. Identical inputs give +Inf.
func PSNR(a, b matrix.Matrix, peak float64) (float64, error) {
	mse, err := MSE(a, b)
	if err != nil {
		return 0, err
	}

	return psnr(mse, peak), nil
}

func psnr(mse, peak float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(peak*peak/mse)
}

// Evaluate builds a Report for res against its own original image.
func Evaluate(res *compress.Result) (Report, error) {
	var r Report
	if res == nil || len(res.Blocks) == 0 {
		return r, fmt.Errorf("quality.Evaluate: %w", matrix.ErrEmptyMatrix)
	}
	fa, fb, err := pair("quality.Evaluate", res.Original, res.Compressed)
	if err != nil {
		return r, err
	}

	n := float64(len(fa))
	l2 := floats.Distance(fa, fb, 2)
	r.MSE = l2 * l2 / n
	r.PSNR = psnr(r.MSE, Peak8Bit)
	r.MAE = floats.Distance(fa, fb, 1) / n
	r.MaxAbsError = floats.Distance(fa, fb, math.Inf(1))

	per := res.BlockSize * res.BlockSize
	r.Coefficients = per * len(res.Blocks)
	r.CoefficientSparsity = float64(res.CoefficientZeros) / float64(r.Coefficients)
	r.QuantizedSparsity = float64(res.QuantizedZeros) / float64(r.Coefficients)

	dc := make([]float64, len(res.Coefficients))
	var before, after float64
	for i := range res.Coefficients {
		d, err := flatten(res.Coefficients[i])
		if err != nil {
			return r, fmt.Errorf("quality.Evaluate: block %d: %w", i, err)
		}
		d1, err := flatten(res.Quantized[i])
		if err != nil {
			return r, fmt.Errorf("quality.Evaluate: block %d: %w", i, err)
		}
		dc[i] = d[0]
		before += floats.Dot(d, d)
		after += floats.Dot(d1, d1)
	}
	r.DCMean, r.DCStdDev = stat.MeanStdDev(dc, nil)
	if math.IsNaN(r.DCStdDev) {
		r.DCStdDev = 0 // single block
	}
	if before > 0 {
		r.EnergyRetained = after / before
	} else {
		r.EnergyRetained = 1
	}

	return r, nil
}
