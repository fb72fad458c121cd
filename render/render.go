// SPDX-License-Identifier: MIT

// Package render turns the matrices of one compressed block into a readable
// step-by-step document, in LaTeX (for MathJax/KaTeX) or MathML.
//
// Numbers are printed with two decimals and a trailing ".00" is dropped, so
// integral values read as integers: 584 → "584", 1.5 → "1.50".
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/blockdct/compress"
	"github.com/katalvlaran/blockdct/matrix"
)

// Format selects the markup.
type Format int

const (
	LaTeX Format = iota
	MathML
)

// ErrUnknownFormat reports an unsupported format name.
var ErrUnknownFormat = errors.New("render: unknown format")

// ParseFormat maps "latex" and "mathml" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latex", "tex":
		return LaTeX, nil
	case "mathml":
		return MathML, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

func (f Format) String() string {
	if f == MathML {
		return "mathml"
	}

	return "latex"
}

// Number formats v with two decimals, trimming a trailing ".00".
// Values that print as "-0.00" render as "0".
func Number(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0"
	}

	return strings.TrimSuffix(s, ".00")
}

// Matrix renders m in the given format. One output row per matrix row.
func Matrix(f Format, m matrix.Matrix) (string, error) {
	rows, err := matrix.ToRows(m)
	if err != nil {
		return "", fmt.Errorf("render.Matrix: %w", err)
	}
	if f == MathML {
		return mathMLMatrix(rows), nil
	}

	return latexMatrix(rows), nil
}

func latexMatrix(rows [][]float64) string {
	var b strings.Builder
	b.WriteString("\\begin{bmatrix}\n")
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(Number(v))
		}
		b.WriteString(" \\\\\n")
	}
	b.WriteString("\\end{bmatrix}")

	return b.String()
}

func mathMLMatrix(rows [][]float64) string {
	var b strings.Builder
	b.WriteString("<mrow><mo>[</mo><mtable>\n")
	for _, row := range rows {
		b.WriteString("<mtr>")
		for _, v := range row {
			b.WriteString("<mtd><mn>")
			b.WriteString(Number(v))
			b.WriteString("</mn></mtd>")
		}
		b.WriteString("</mtr>\n")
	}
	b.WriteString("</mtable><mo>]</mo></mrow>")

	return b.String()
}

// step is one labelled equation of the walkthrough.
type step struct {
	text   string
	latex  string // left-hand side in LaTeX
	mathml string // left-hand side in MathML
	m      *matrix.Dense
}

// Block renders the walkthrough of block i of res:
// A, B = A − offset, the basis C, D = C·B·Cᵀ, the table Q, D1 and A1.
func Block(f Format, res *compress.Result, i int) (string, error) {
	s, err := res.Steps(i)
	if err != nil {
		return "", fmt.Errorf("render.Block: %w", err)
	}
	n := res.BlockSize
	off := Number(res.Offset)

	steps := []step{
		{"Starting from block A:", "A", "<mi>A</mi>", s.Raw},
		{fmt.Sprintf("Subtracting %s centres the intensities around zero:", off),
			"B = A - " + off, "<mi>B</mi><mo>=</mo><mi>A</mi><mo>-</mo><mn>" + off + "</mn>", s.Normalized},
		{"The DCT-II coefficient matrix:", fmt.Sprintf("C_{%d}", n),
			fmt.Sprintf("<msub><mi>C</mi><mn>%d</mn></msub>", n), res.Basis},
		{"Transforming B:", fmt.Sprintf("D = C_{%d} \\times B \\times C_{%d}^{T}", n, n),
			fmt.Sprintf("<mi>D</mi><mo>=</mo><msub><mi>C</mi><mn>%d</mn></msub><mo>⋅</mo><mi>B</mi><mo>⋅</mo><msubsup><mi>C</mi><mn>%d</mn><mi>T</mi></msubsup>", n, n),
			s.Coefficients},
		{"The quantization table:", "Q", "<mi>Q</mi>", res.Table},
		{"Each coefficient rounded to the nearest multiple of its divisor:",
			"D_1 = \\mathrm{round}(D / Q) \\cdot Q", "<msub><mi>D</mi><mn>1</mn></msub>", s.Quantized},
		{"Inverting the transform and restoring the offset:",
			fmt.Sprintf("A_1 = \\mathrm{round}(C_{%d}^{T} \\times D_1 \\times C_{%d}) + %s", n, n, off),
			"<msub><mi>A</mi><mn>1</mn></msub>", s.Reconstructed},
	}

	var b strings.Builder
	for _, st := range steps {
		body, err := Matrix(f, st.m)
		if err != nil {
			return "", fmt.Errorf("render.Block: %w", err)
		}
		b.WriteString("<p>")
		b.WriteString(st.text)
		b.WriteString("</p>\n")
		if f == MathML {
			b.WriteString(`<math xmlns="http://www.w3.org/1998/Math/MathML" display="block"><mrow>`)
			b.WriteString(st.mathml)
			b.WriteString("<mo>=</mo>")
			b.WriteString(body)
			b.WriteString("</mrow></math>\n")
			continue
		}
		b.WriteString("\\[ ")
		b.WriteString(st.latex)
		b.WriteString(" = ")
		b.WriteString(body)
		b.WriteString(" \\]\n")
	}

	return b.String(), nil
}

// All renders every block of res in raster order.
func All(f Format, res *compress.Result) ([]string, error) {
	out := make([]string, res.Len())
	var err error
	for i := range out {
		if out[i], err = Block(f, res, i); err != nil {
			return nil, err
		}
	}

	return out, nil
}
