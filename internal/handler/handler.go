// SPDX-License-Identifier: MIT

// Package handler exposes the compression pipeline and the run history over
// a JSON HTTP API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/katalvlaran/blockdct/internal/config"
	"github.com/katalvlaran/blockdct/internal/store"
)

type Handler struct {
	Store *store.Store
	Cfg   *config.Config
	Log   *slog.Logger
}

func New(st *store.Store, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Store: st, Cfg: cfg, Log: logger}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, v, http.StatusOK)
}

func jsonStatus(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// Healthz handles GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(); err != nil {
		h.Log.Error("health check", "error", err)
		jsonError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	jsonOK(w, map[string]string{"status": "ok"})
}
