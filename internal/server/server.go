// Package server is the local preview of the published dashboard: it
// serves the site folder the way the static hosting platform would, plus a
// health probe and a JSON view of the indicator rows for quick checks
// before committing.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/projecttitan/titan/internal/config"
	"github.com/projecttitan/titan/internal/document"
)

// SecurityHeaders middleware adds essential security headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the preview router: health probe, indicators JSON, and
// the static site.
func NewRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Only trust X-Forwarded-For when explicitly behind a reverse proxy;
	// otherwise clients could spoof their IP past the rate limiter.
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}

	r.Use(SecurityHeaders)

	// 50 req/s with burst 100 is far above a human clicking around but
	// stops runaway scripts.
	limiter := NewIPRateLimiter(rate.Limit(50), 100)
	r.Use(RateLimitMiddleware(limiter))

	r.Get("/healthz", Healthz)
	r.Get("/api/indicators", IndicatorsHandler(cfg.SiteDir))
	r.Handle("/*", StaticHandler(os.DirFS(cfg.SiteDir)))

	return r
}

// Healthz returns a simple readiness payload.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// IndicatorsHandler parses the served index.html on each request and
// returns its indicator rows. Reading live means edits show up without a
// restart.
func IndicatorsHandler(siteDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := os.Open(filepath.Join(siteDir, "index.html"))
		if err != nil {
			writeError(w, http.StatusNotFound, "index.html not found")
			return
		}
		defer f.Close()

		doc, err := document.Parse(f)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to parse index.html")
			return
		}

		rows := doc.Rows()
		type indicatorJSON struct {
			Name   string `json:"name"`
			Value  string `json:"value"`
			Marker string `json:"trend_marker,omitempty"`
		}
		out := make([]indicatorJSON, 0, len(rows))
		for _, row := range rows {
			out = append(out, indicatorJSON{
				Name:   row.Name,
				Value:  row.Value,
				Marker: string(row.Marker),
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"indicators": out})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
