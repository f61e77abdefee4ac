package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aretw0/turnstile"
	"github.com/aretw0/turnstile/internal/presentation/graph"
	"github.com/aretw0/turnstile/internal/presentation/jflap"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// QueryRequest is the body of POST /automata/{name}/accepts.
// Exactly one of the fields is used, in the order Identifiers, Input, Word.
type QueryRequest struct {
	Input       []string `json:"input,omitempty"`
	Identifiers []int    `json:"identifiers,omitempty"`
	Word        *string  `json:"word,omitempty"`
}

// Verdict is the body answered by POST /automata/{name}/accepts.
type Verdict struct {
	Automaton string `json:"automaton"`
	Accepted  bool   `json:"accepted"`
	Length    int    `json:"length"`
}

// AutomatonSummary is the body answered by PUT /automata/{name}.
type AutomatonSummary struct {
	Name    string `json:"name"`
	States  int    `json:"states"`
	Symbols int    `json:"symbols"`
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := LoadOpenAPI(r.Context()); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "turnstile-http",
		"version":     strings.TrimSpace(turnstile.Version),
		"api_version": apiVersion,
	})
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Registry.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"automata": names})
}

// GetAutomaton handles GET /automata/{name}.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	dfa, err := s.Registry.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == string(codec.FormatYAML) {
		data, err := codec.Encode(dfa, codec.FormatYAML)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
		return
	}
	s.writeJSON(w, http.StatusOK, dfa.Description())
}

// PutAutomaton handles PUT /automata/{name}.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	desc, err := codec.DecodeDescription(body, codec.FormatJSON)
	if err != nil {
		s.writeError(w, err)
		return
	}
	dfa, err := s.Registry.PutDescription(r.Context(), name, desc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, AutomatonSummary{
		Name:    name,
		States:  dfa.NumStates(),
		Symbols: dfa.Symbols().Len(),
	})
}

// DeleteAutomaton handles DELETE /automata/{name}.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Accepts handles POST /automata/{name}/accepts.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body QueryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	var (
		accepted bool
		length   int
		err      error
	)
	switch {
	case body.Identifiers != nil:
		length = len(body.Identifiers)
		accepted, err = s.Registry.AcceptsIdentifiers(r.Context(), name, body.Identifiers)
	case body.Input != nil:
		length = len(body.Input)
		accepted, err = s.Registry.Accepts(r.Context(), name, body.Input)
	case body.Word != nil:
		accepted, length, err = s.Registry.AcceptsWord(r.Context(), name, *body.Word)
	default:
		err = fmt.Errorf("%w: one of input, identifiers or word is required", errInvalidRequest)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, Verdict{Automaton: name, Accepted: accepted, Length: length})
}

// GetGraph handles GET /automata/{name}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	dfa, err := s.Registry.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("word") {
		ids, err := dfa.Symbols().Parse(r.URL.Query().Get("word"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.Trace(dfa, ids)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(dfa, overlay))
}

// GetJFLAP handles GET /automata/{name}/jflap.
func (s *Server) GetJFLAP(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	dfa, err := s.Registry.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+jflap.Extension))
	if err := jflap.Export(w, dfa); err != nil {
		s.logger.Error("jflap export failed", "automaton", name, "error", err)
	}
}

// StatusFor maps registry errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, ports.ErrInvalidName),
		errors.Is(err, domain.ErrMalformedDescription),
		errors.Is(err, domain.ErrUnknownSymbol),
		errors.Is(err, domain.ErrOutOfRangeSymbol),
		errors.Is(err, domain.ErrOutOfRangeState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
