package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediashelf/collection-helper/internal/handler"
)

func Setup(h *handler.Handler, log zerolog.Logger, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	// Routes
	r.Get("/", h.Root)
	r.Get("/health", h.HealthCheck)
	r.Post("/recommendations", h.GenerateRecommendations)
	r.Post("/search", h.Search)
	r.Get("/stats", h.Stats)
	r.Get("/videos/libraries", h.ListVideoLibraries)
	r.Get("/videos/items", h.ListVideoItems)
	r.Get("/books", h.ListBooks)

	return r
}

// requestLogger logs one structured line per request, tagged with a
// generated request ID.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
