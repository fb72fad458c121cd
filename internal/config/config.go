// SPDX-License-Identifier: MIT

// Package config loads the service settings from the environment.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	ListenAddr     string
	DataDir        string
	LogLevel       string
	MaxUploadBytes int64
	MaxPixels      int     // upper bound on width*height accepted by the API
	Workers        int     // pipeline workers per request
	RateLimit      float64 // API requests per second per client IP
	RateBurst      int
	HistoryLimit   int // default page size for GET /api/v1/runs
}

func Load() *Config {
	return &Config{
		ListenAddr:     envOr("LISTEN_ADDR", ":8080"),
		DataDir:        envOr("DATA_DIR", "./data"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		MaxUploadBytes: envInt64Or("MAX_UPLOAD_BYTES", 10*1024*1024),
		MaxPixels:      envIntOr("MAX_PIXELS", 4096*4096),
		Workers:        envIntOr("WORKERS", 4),
		RateLimit:      envFloatOr("RATE_LIMIT", 2.0),
		RateBurst:      envIntOr("RATE_BURST", 30),
		HistoryLimit:   envIntOr("HISTORY_LIMIT", 50),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
