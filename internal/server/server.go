// Package server exposes the simulation engine over HTTP for the dashboard
// frontend: one endpoint to run a simulation, one for bear/base/bull
// comparisons, plus a health check.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/config"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/scenario"
	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

// Server wires the engine and its settings defaults behind a chi router.
type Server struct {
	settings *config.Settings
	sim      *simulation.Engine
	compare  *scenario.Engine
	logger   *logrus.Logger
}

// New creates a server. Settings supply the defaults merged into partial
// requests; the logger receives one structured entry per simulation run.
func New(settings *config.Settings, logger *logrus.Logger) *Server {
	sim := simulation.NewEngine(settings.EngineConfig())
	return &Server{
		settings: settings,
		sim:      sim,
		compare:  scenario.NewEngine(sim),
		logger:   logger,
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/compare", s.handleCompare)
	})

	return r
}

// ListenAndServe runs the server on the settings' listen address.
func (s *Server) ListenAndServe() error {
	addr := s.settings.Server.ListenAddr
	s.logger.WithField("addr", addr).Info("starting simulation API")

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return srv.ListenAndServe()
}

// requestLogger assigns each request an ID and logs method, path, status and
// duration as structured fields.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"duration":  time.Since(start).String(),
		}).Info("request handled")
	})
}
