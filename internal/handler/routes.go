// SPDX-License-Identifier: MIT

package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the router. rl throttles the /api/v1 group; nil disables it.
func (h *Handler) Routes(rl *RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		if rl != nil {
			r.Use(rl.Middleware)
		}

		r.Post("/compress", h.Compress)
		r.Post("/compress/image", h.CompressImage)
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)
		r.Delete("/runs/{id}", h.DeleteRun)
	})

	return r
}
