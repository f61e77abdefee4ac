// Package http exposes a Registry as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aretw0/turnstile/internal/logging"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Registry is the subset of turnstile.Registry the API depends on.
type Registry interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*domain.DFA, error)
	PutDescription(ctx context.Context, name string, desc domain.Description) (*domain.DFA, error)
	Delete(ctx context.Context, name string) error
	Accepts(ctx context.Context, name string, word []string) (bool, error)
	AcceptsIdentifiers(ctx context.Context, name string, ids []int) (bool, error)
	AcceptsWord(ctx context.Context, name, word string) (bool, int, error)
}

// Server serves the HTTP API for a Registry.
type Server struct {
	Registry Registry
	Streams  *StreamManager

	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the HTTP handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager with the caller, so its Hooks can be
// registered on the Registry that feeds /events.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewHandler creates the HTTP handler for the registry.
// Requests to documented routes are validated against the embedded OpenAPI document.
func NewHandler(reg Registry, opts ...Option) (http.Handler, error) {
	s := &Server{Registry: reg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}

	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiDocument)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validator.middleware(s.writeError))

		r.Get("/healthz", s.GetHealth)
		r.Get("/info", s.GetInfo)
		r.Get("/events", s.SubscribeEvents)
		r.Route("/automata", func(r chi.Router) {
			r.Get("/", s.ListAutomata)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.GetAutomaton)
				r.Put("/", s.PutAutomaton)
				r.Delete("/", s.DeleteAutomaton)
				r.Post("/accepts", s.Accepts)
				r.Get("/graph", s.GetGraph)
				r.Get("/jflap", s.GetJFLAP)
			})
		})
	})

	return r, nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", ww.Status())
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Turnstile API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
