// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestRun(t *testing.T) {
	in := writePNG(t, 16, 8)
	out := filepath.Join(t.TempDir(), "out.png")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-in", in, "-out", out, "-workers", "2", "-render", "latex"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	report := stdout.String()
	require.Contains(t, report, "16x8 (2 blocks of 8)")
	require.Contains(t, report, "zeros       126 -> 126 of 128 coefficients")
	require.Equal(t, 2*7, strings.Count(report, `\begin{bmatrix}`))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())
}

func writeTable(t *testing.T, n int, v float64) string {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = v
		}
	}
	b, err := json.Marshal(rows)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestRun_CustomBlockWithTable(t *testing.T) {
	in := writePNG(t, 8, 8)
	out := filepath.Join(t.TempDir(), "out.png")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-in", in, "-out", out, "-block", "4", "-table", writeTable(t, 4, 1)}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	require.Contains(t, stdout.String(), "8x8 (4 blocks of 4)")
	require.Contains(t, stdout.String(), "mse         0.0000")
}

func TestRun_BlockNeedsTable(t *testing.T) {
	in := writePNG(t, 8, 8)
	out := filepath.Join(t.TempDir(), "out.png")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-in", in, "-out", out, "-block", "4"}, &stdout, &stderr)
	require.ErrorContains(t, err, "-block 4 needs -table")
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_Errors(t *testing.T) {
	in := writePNG(t, 8, 8)
	out := filepath.Join(t.TempDir(), "out.png")

	for name, args := range map[string][]string{
		"missing flags":   {},
		"bad quality":     {"-in", in, "-out", out, "-quality", "0"},
		"bad block":       {"-in", in, "-out", out, "-block", "0"},
		"bad render":      {"-in", in, "-out", out, "-render", "svg"},
		"missing input":   {"-in", filepath.Join(t.TempDir(), "nope.png"), "-out", out},
		"image too small": {"-in", in, "-out", out, "-block", "16", "-table", writeTable(t, 16, 1)},
		"table size":      {"-in", in, "-out", out, "-block", "4", "-table", writeTable(t, 8, 1)},
		"zero table":      {"-in", in, "-out", out, "-block", "4", "-table", writeTable(t, 4, 0)},
		"missing table":   {"-in", in, "-out", out, "-table", filepath.Join(t.TempDir(), "nope.json")},
	} {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.Error(t, run(args, &stdout, &stderr))
		})
	}
}
