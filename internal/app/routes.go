package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"streak-coach-backend/internal/middleware"
	"streak-coach-backend/internal/observability"
	"streak-coach-backend/internal/streaks"
)

// NewRouter mounts the streak handler on every path except /health and
// /metrics.
func NewRouter(s streaks.Suggester, log logrus.FieldLogger) http.Handler {
	observability.InitMetrics()

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)

	// CORS. The streak handler answers preflights itself, so let them
	// through.
	r.Use(cors.New(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type"},
		OptionsPassthrough: true,
	}).Handler)

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	setup := streaks.SetupHandler(s, log)
	r.Handle("/", setup)
	r.Handle("/*", setup)

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
