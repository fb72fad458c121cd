// SPDX-License-Identifier: MIT

// Package compress: functional configuration for the block pipeline.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves defaults.
//
// Design goals:
//   - Deterministic behavior: no global state; worker count never changes results.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//     Data-dependent problems (a table that does not match the block size)
//     surface as errors from Compress.
package compress

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/blockdct/matrix"
	"github.com/katalvlaran/blockdct/quant"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultBlockSize is the tile edge N.
	DefaultBlockSize = 8

	// DefaultOffset recentres 8-bit intensities around zero before the transform.
	DefaultOffset = 127.0

	// DefaultWorkers keeps the pipeline sequential.
	DefaultWorkers = 1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicBlockSizeInvalid = "compress: WithBlockSize: n must be > 0"
	panicTableNil         = "compress: WithTable: table must be non-nil"
	panicOffsetInvalid    = "compress: WithOffset: offset must be finite"
	panicWorkersInvalid   = "compress: WithWorkers: k must be > 0"
	panicQualityInvalid   = "compress: WithQuality: quality must be within [1,100]"
	panicLoggerNil        = "compress: WithLogger: logger must be non-nil"
)

// Option mutates internal options. Safe to apply repeatedly (last wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	blockSize int           // DefaultBlockSize
	table     matrix.Matrix // nil ⇒ quant.Luminance50 scaled by quality
	quality   int           // quant.DefaultQuality; ignored when table is set
	offset    float64       // DefaultOffset
	workers   int           // DefaultWorkers
	logger    *slog.Logger  // slog.Default()
}

// WithBlockSize sets the tile edge N.
// Panics when n <= 0. The table must then be n×n (Compress checks it).
func WithBlockSize(n int) Option {
	if n <= 0 {
		panic(panicBlockSizeInvalid)
	}

	return func(o *Options) { o.blockSize = n }
}

// WithTable sets an explicit quantization table. It overrides WithQuality.
// The table is cloned when options are gathered, so later caller mutations
// do not leak into a running compression.
func WithTable(q matrix.Matrix) Option {
	if q == nil {
		panic(panicTableNil)
	}

	return func(o *Options) { o.table = q }
}

// WithQuality derives the default table from quant.Luminance50 with libjpeg
// quality scaling (see quant.ScaleTable). Only meaningful for 8×8 blocks.
func WithQuality(quality int) Option {
	if quality < quant.MinQuality || quality > quant.MaxQuality {
		panic(panicQualityInvalid)
	}

	return func(o *Options) { o.quality = quality }
}

// WithOffset sets the value subtracted before the transform and added back after.
func WithOffset(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(panicOffsetInvalid)
	}

	return func(o *Options) { o.offset = v }
}

// WithWorkers fans blocks out across k goroutines. k == 1 is sequential.
// Results are identical for every k.
func WithWorkers(k int) Option {
	if k <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = k }
}

// WithLogger routes the pipeline's debug summary to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

func defaultOptions() Options {
	return Options{
		blockSize: DefaultBlockSize,
		quality:   quant.DefaultQuality,
		offset:    DefaultOffset,
		workers:   DefaultWorkers,
		logger:    slog.Default(),
	}
}

// gatherOptions applies opts over the defaults and resolves the table.
func gatherOptions(opts ...Option) (Options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.table != nil {
		o.table = o.table.Clone()
		return o, nil
	}
	if o.quality == quant.DefaultQuality {
		o.table = quant.Luminance50()
		return o, nil
	}
	t, err := quant.ScaleTable(quant.Luminance50(), o.quality)
	if err != nil {
		return o, err
	}
	o.table = t

	return o, nil
}
