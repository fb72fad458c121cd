// SPDX-License-Identifier: MIT

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/katalvlaran/blockdct/compress"
	"github.com/katalvlaran/blockdct/imageio"
	"github.com/katalvlaran/blockdct/internal/store"
	"github.com/katalvlaran/blockdct/matrix"
	"github.com/katalvlaran/blockdct/quality"
	"github.com/katalvlaran/blockdct/quant"
	"github.com/katalvlaran/blockdct/render"
)

const (
	sourceMatrix = "matrix"
	sourceImage  = "image"
)

type compressRequest struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Image     [][]float64 `json:"image"`
	BlockSize *int        `json:"blockSize,omitempty"`
	Quality   *int        `json:"quality,omitempty"`
	Offset    *float64    `json:"offset,omitempty"`
	Table     [][]float64 `json:"quantizationTable,omitempty"`
}

type compressResponse struct {
	ID       string          `json:"id"`
	Report   quality.Report  `json:"report"`
	Result   json.RawMessage `json:"result"`
	Format   string          `json:"format,omitempty"`
	Rendered []string        `json:"rendered,omitempty"` // one document per block
}

type summaryResponse struct {
	ID             string         `json:"id"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	BlockSize      int            `json:"block_size"`
	Quality        int            `json:"quality"`
	Blocks         int            `json:"blocks"`
	DCTZeros       int            `json:"dct_zero_count"`
	QuantizedZeros int            `json:"compressed_dct_zero_count"`
	Report         quality.Report `json:"report"`
}

// settings are the validated pipeline knobs of one request.
type settings struct {
	blockSize int
	quality   int // 0 when an explicit table is used
	offset    float64
	table     *matrix.Dense
}

func (s settings) options(h *Handler) []compress.Option {
	opts := []compress.Option{
		compress.WithBlockSize(s.blockSize),
		compress.WithOffset(s.offset),
		compress.WithLogger(h.Log),
	}
	if s.table != nil {
		opts = append(opts, compress.WithTable(s.table))
	} else {
		opts = append(opts, compress.WithQuality(s.quality))
	}
	if h.Cfg.Workers > 1 {
		opts = append(opts, compress.WithWorkers(h.Cfg.Workers))
	}
	return opts
}

// newSettings checks the user-supplied knobs before they reach the option
// constructors, which panic on out-of-range values.
func newSettings(blockSize, q *int, offset *float64, table [][]float64) (settings, error) {
	s := settings{
		blockSize: compress.DefaultBlockSize,
		quality:   quant.DefaultQuality,
		offset:    compress.DefaultOffset,
	}
	if blockSize != nil {
		if *blockSize < 1 {
			return s, fmt.Errorf("blockSize must be positive, got %d", *blockSize)
		}
		s.blockSize = *blockSize
	}
	if q != nil {
		if *q < quant.MinQuality || *q > quant.MaxQuality {
			return s, fmt.Errorf("quality must be within [%d,%d], got %d", quant.MinQuality, quant.MaxQuality, *q)
		}
		s.quality = *q
	}
	if offset != nil {
		if math.IsNaN(*offset) || math.IsInf(*offset, 0) {
			return s, errors.New("offset must be finite")
		}
		s.offset = *offset
	}
	if table != nil {
		t, err := matrix.FromRows(table)
		if err != nil {
			return s, fmt.Errorf("quantizationTable: %w", err)
		}
		s.table = t
		s.quality = 0
	}
	return s, nil
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var bad badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, compress.ErrImageDimensions),
		errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, imageio.ErrTooSmall):
		return http.StatusUnprocessableEntity
	case errors.Is(err, matrix.ErrEmptyMatrix),
		errors.Is(err, matrix.ErrBadShape),
		errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, quant.ErrInvalidTable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.Log.Error(op, "error", err)
		jsonError(w, "internal error", code)
		return
	}
	jsonError(w, err.Error(), code)
}

func (h *Handler) tooLarge(width, height int) bool {
	return h.Cfg.MaxPixels > 0 && width > 0 && height > 0 && width > h.Cfg.MaxPixels/height
}

func newRun(id, source string, s settings, res *compress.Result, rep quality.Report) *store.Run {
	run := &store.Run{
		ID:             id,
		Source:         source,
		Width:          res.Original.Cols(),
		Height:         res.Original.Rows(),
		BlockSize:      res.BlockSize,
		Quality:        s.quality,
		Blocks:         res.Len(),
		DCTZeros:       res.CoefficientZeros,
		QuantizedZeros: res.QuantizedZeros,
		MSE:            rep.MSE,
	}
	if !math.IsInf(rep.PSNR, 0) && !math.IsNaN(rep.PSNR) {
		p := rep.PSNR
		run.PSNR = &p
	}
	return run
}

// Compress handles POST /api/v1/compress
func (h *Handler) Compress(w http.ResponseWriter, r *http.Request) {
	var format render.Format
	renderParam := r.URL.Query().Get("render")
	if renderParam != "" {
		f, err := render.ParseFormat(renderParam)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	var req compressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if h.tooLarge(req.Width, req.Height) {
		jsonError(w, "image exceeds pixel limit", http.StatusRequestEntityTooLarge)
		return
	}

	s, err := newSettings(req.BlockSize, req.Quality, req.Offset, req.Table)
	if err != nil {
		h.fail(w, "compress settings", badRequest(err))
		return
	}

	res, err := compress.CompressRows(req.Image, req.Width, req.Height, s.options(h)...)
	if err != nil {
		h.fail(w, "compress", err)
		return
	}
	rep, err := quality.Evaluate(res)
	if err != nil {
		h.fail(w, "evaluate", err)
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		h.fail(w, "encode result", err)
		return
	}

	resp := compressResponse{ID: uuid.NewString(), Report: rep, Result: raw}
	if renderParam != "" {
		if resp.Rendered, err = render.All(format, res); err != nil {
			h.fail(w, "render", err)
			return
		}
		resp.Format = format.String()
	}

	run := newRun(resp.ID, sourceMatrix, s, res, rep)
	run.Result = raw
	if err := h.Store.SaveRun(r.Context(), run); err != nil {
		h.fail(w, "save run", err)
		return
	}

	h.Log.Info("compressed matrix", "id", resp.ID, "blocks", res.Len(), "quantized_zeros", res.QuantizedZeros)
	jsonStatus(w, resp, http.StatusCreated)
}

// CompressImage handles POST /api/v1/compress/image
//
// Multipart form: "image" (PNG or JPEG), optional "blockSize" and "quality".
// The image is scaled down to whole blocks first. With ?output=png the
// reconstruction is returned as a PNG instead of the JSON summary.
func (h *Handler) CompressImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadBytes); err != nil {
		jsonError(w, "invalid upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "missing image field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	blockSize, err := formInt(r, "blockSize")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	q, err := formInt(r, "quality")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := newSettings(blockSize, q, nil, nil)
	if err != nil {
		h.fail(w, "compress settings", badRequest(err))
		return
	}

	img, err := imageio.LoadLimited(file, s.blockSize, h.Cfg.MaxPixels)
	if err != nil {
		switch {
		case errors.Is(err, imageio.ErrTooLarge):
			jsonError(w, "image exceeds pixel limit", http.StatusRequestEntityTooLarge)
		case errors.Is(err, imageio.ErrTooSmall):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, "cannot decode image: "+err.Error(), http.StatusBadRequest)
		}
		return
	}

	res, err := compress.Compress(img, img.Cols(), img.Rows(), s.options(h)...)
	if err != nil {
		h.fail(w, "compress image", err)
		return
	}
	rep, err := quality.Evaluate(res)
	if err != nil {
		h.fail(w, "evaluate", err)
		return
	}

	id := uuid.NewString()
	run := newRun(id, sourceImage, s, res, rep)
	if err := h.Store.SaveRun(r.Context(), run); err != nil {
		h.fail(w, "save run", err)
		return
	}
	h.Log.Info("compressed image", "id", id, "width", run.Width, "height", run.Height, "psnr", rep.PSNR)

	if r.URL.Query().Get("output") == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Run-Id", id)
		if err := imageio.EncodePNG(w, res.Compressed); err != nil {
			h.Log.Error("encode png", "id", id, "error", err)
		}
		return
	}

	jsonStatus(w, summaryResponse{
		ID:             id,
		Width:          run.Width,
		Height:         run.Height,
		BlockSize:      run.BlockSize,
		Quality:        run.Quality,
		Blocks:         run.Blocks,
		DCTZeros:       run.DCTZeros,
		QuantizedZeros: run.QuantizedZeros,
		Report:         rep,
	}, http.StatusCreated)
}

func formInt(r *http.Request, key string) (*int, error) {
	v := r.FormValue(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return &n, nil
}

type badRequestError struct{ err error }

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

// badRequest marks err as the client's fault regardless of its chain.
func badRequest(err error) error { return badRequestError{err} }
