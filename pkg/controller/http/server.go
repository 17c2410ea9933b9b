package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/riskreg/pkg/usecase"
)

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	maxBodyBytes int64
	allowOrigin  string
}

type Options func(*Server)

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Options {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithAllowOrigin sets Access-Control-Allow-Origin on API responses. Empty disables CORS headers.
func WithAllowOrigin(origin string) Options {
	return func(s *Server) {
		s.allowOrigin = origin
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		uc:           uc,
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if s.allowOrigin != "" {
			r.Use(cors(s.allowOrigin))
		}
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(limitBody(s.maxBodyBytes))

		r.Get("/taxonomy", s.taxonomyHandler)
		r.Post("/priority", s.priorityHandler)
		r.Post("/priority/summary", s.prioritySummaryHandler)
		r.Post("/analytics", s.analyticsHandler)

		r.Route("/risks", func(r chi.Router) {
			r.Post("/", s.createRiskHandler)
			r.Post("/query", s.queryRisksHandler)
			r.Post("/{riskID}", s.getRiskHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
