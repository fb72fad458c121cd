// SPDX-License-Identifier: MIT

// Command dctcompress runs the block-DCT pipeline on a PNG or JPEG file and
// writes the reconstruction as a grayscale PNG.
//
//	dctcompress -in photo.jpg -out photo_q50.png [-quality 50] [-block 8] [-workers 4]
//
// Block sizes other than 8 need -table, a JSON array of rows holding an
// N×N quantization table; the built-in luminance table is 8×8.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/blockdct/compress"
	"github.com/katalvlaran/blockdct/imageio"
	"github.com/katalvlaran/blockdct/matrix"
	"github.com/katalvlaran/blockdct/quality"
	"github.com/katalvlaran/blockdct/quant"
	"github.com/katalvlaran/blockdct/render"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "dctcompress:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dctcompress", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input PNG or JPEG (required)")
	out := fs.String("out", "", "output PNG (required)")
	q := fs.Int("quality", quant.DefaultQuality, "quality 1..100 applied to the standard luminance table")
	block := fs.Int("block", compress.DefaultBlockSize, "block edge in pixels")
	workers := fs.Int("workers", compress.DefaultWorkers, "parallel block workers")
	tablePath := fs.String("table", "", "JSON file with an N×N quantization table (overrides -quality)")
	renderFmt := fs.String("render", "", "also print per-block walkthroughs: latex or mathml")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("-in and -out are required")
	}
	if *q < quant.MinQuality || *q > quant.MaxQuality {
		return fmt.Errorf("-quality must be within [%d,%d]", quant.MinQuality, quant.MaxQuality)
	}
	if *block < 1 || *workers < 1 {
		return errors.New("-block and -workers must be positive")
	}
	if *block != compress.DefaultBlockSize && *tablePath == "" {
		return fmt.Errorf("-block %d needs -table: the built-in quality table is %dx%d",
			*block, compress.DefaultBlockSize, compress.DefaultBlockSize)
	}
	tableOpt := compress.WithQuality(*q)
	if *tablePath != "" {
		t, err := readTable(*tablePath, *block)
		if err != nil {
			return err
		}
		tableOpt = compress.WithTable(t)
	}
	var format render.Format
	if *renderFmt != "" {
		f, err := render.ParseFormat(*renderFmt)
		if err != nil {
			return err
		}
		format = f
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	src, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer src.Close()

	img, err := imageio.Load(src, *block)
	if err != nil {
		return err
	}
	res, err := compress.Compress(img, img.Cols(), img.Rows(),
		compress.WithBlockSize(*block),
		tableOpt,
		compress.WithWorkers(*workers),
		compress.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	dst, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err = imageio.EncodePNG(dst, res.Compressed); err != nil {
		dst.Close()
		return err
	}
	if err = dst.Close(); err != nil {
		return err
	}

	rep, err := quality.Evaluate(res)
	if err != nil {
		return err
	}
	printReport(stdout, res, rep)

	if *renderFmt != "" {
		docs, err := render.All(format, res)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, strings.Join(docs, "\n\n"))
	}

	return nil
}

// readTable loads an n×n quantization table stored as a JSON array of rows.
func readTable(path string, n int) (*matrix.Dense, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t matrix.Dense
	if err = json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("-table %s: %w", path, err)
	}
	if err = matrix.ValidateSquareOf(&t, n); err != nil {
		return nil, fmt.Errorf("-table %s: %w", path, err)
	}
	if err = quant.Validate(&t); err != nil {
		return nil, fmt.Errorf("-table %s: %w", path, err)
	}

	return &t, nil
}

func printReport(w io.Writer, res *compress.Result, rep quality.Report) {
	psnr := "inf"
	if !math.IsInf(rep.PSNR, 0) {
		psnr = fmt.Sprintf("%.2f dB", rep.PSNR)
	}
	fmt.Fprintf(w, "size        %dx%d (%d blocks of %d)\n", res.Original.Cols(), res.Original.Rows(), res.Len(), res.BlockSize)
	fmt.Fprintf(w, "zeros       %d -> %d of %d coefficients\n", res.CoefficientZeros, res.QuantizedZeros, rep.Coefficients)
	fmt.Fprintf(w, "mse         %.4f\n", rep.MSE)
	fmt.Fprintf(w, "psnr        %s\n", psnr)
	fmt.Fprintf(w, "max error   %.0f\n", rep.MaxAbsError)
	fmt.Fprintf(w, "energy kept %.2f%%\n", 100*rep.EnergyRetained)
}
