// SPDX-License-Identifier: MIT

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/katalvlaran/blockdct/internal/store"
)

const maxListLimit = 500

// ListRuns handles GET /api/v1/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		h.fail(w, "list runs", err)
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	jsonOK(w, map[string]any{"runs": runs})
}

// runID reads and validates the {id} path parameter.
func runID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		jsonError(w, "invalid run id", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// GetRun handles GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, ok := runID(w, r)
	if !ok {
		return
	}
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		h.fail(w, "get run", err)
		return
	}
	jsonOK(w, run)
}

// DeleteRun handles DELETE /api/v1/runs/{id}
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id, ok := runID(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteRun(r.Context(), id); err != nil {
		h.fail(w, "delete run", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
