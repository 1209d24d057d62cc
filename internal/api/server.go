package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docqa/internal/config"
	"github.com/dgallion1/docqa/internal/embedding"
	"github.com/dgallion1/docqa/internal/resolver"
)

// Server is the HTTP API server for docqa.
type Server struct {
	router   chi.Router
	resolver *resolver.Resolver
	stats    *embedding.Stats
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(res *resolver.Resolver, stats *embedding.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		resolver: res,
		stats:    stats,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/answer", s.handleAnswer)
		r.Get("/sections", s.handleSections)
		r.Get("/summary", s.handleSummary)
		r.Get("/outline", s.handleOutline)
		r.Get("/stats/embed", s.handleEmbedStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
