// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no run has the requested id.
var ErrNotFound = errors.New("store: run not found")

// Run is one stored compression. Result holds the JSON-encoded
// compress.Result and is only populated by GetRun.
type Run struct {
	ID             string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	Source         string          `json:"source"` // "matrix" or "image"
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	BlockSize      int             `json:"block_size"`
	Quality        int             `json:"quality"`
	Blocks         int             `json:"blocks"`
	DCTZeros       int             `json:"dct_zero_count"`
	QuantizedZeros int             `json:"compressed_dct_zero_count"`
	MSE            float64         `json:"mse"`
	PSNR           *float64        `json:"psnr"` // nil for an exact reconstruction
	Result         json.RawMessage `json:"result,omitempty"`
}

// SaveRun inserts r. A zero CreatedAt is set to the current time.
func (s *Store) SaveRun(ctx context.Context, r *Run) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	var psnr sql.NullFloat64
	if r.PSNR != nil {
		psnr = sql.NullFloat64{Float64: *r.PSNR, Valid: true}
	}
	result := r.Result
	if result == nil {
		result = json.RawMessage("null")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, width, height, block_size, quality, blocks,
		                   dct_zeros, quantized_zeros, mse, psnr, result_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Source, r.Width, r.Height, r.BlockSize,
		r.Quality, r.Blocks, r.DCTZeros, r.QuantizedZeros, r.MSE, psnr, string(result))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

const summaryColumns = `id, created_at, source, width, height, block_size, quality, blocks,
	dct_zeros, quantized_zeros, mse, psnr`

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, extra ...any) (*Run, error) {
	var (
		r    Run
		ts   sqliteTime
		psnr sql.NullFloat64
	)
	dest := append([]any{&r.ID, &ts, &r.Source, &r.Width, &r.Height, &r.BlockSize, &r.Quality,
		&r.Blocks, &r.DCTZeros, &r.QuantizedZeros, &r.MSE, &psnr}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	r.CreatedAt = ts.Time
	if psnr.Valid {
		v := psnr.Float64
		r.PSNR = &v
	}
	return &r, nil
}

// GetRun returns the run with the given id, including its full result.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var result string
	row := s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+`, result_json FROM runs WHERE id = ?`, id)
	r, err := scanSummary(row, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	r.Result = json.RawMessage(result)
	return r, nil
}

// ListRuns returns up to limit run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// DeleteRun removes the run with the given id.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrNotFound)
	}
	return nil
}
