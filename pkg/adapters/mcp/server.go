// Package mcp exposes a Registry as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turnstile"
	"github.com/aretw0/turnstile/internal/logging"
	"github.com/aretw0/turnstile/internal/presentation/graph"
	"github.com/aretw0/turnstile/internal/presentation/tui"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const resourceScheme = "automaton://"

// Registry is the subset of turnstile.Registry the MCP tools depend on.
type Registry interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*domain.DFA, error)
	PutDescription(ctx context.Context, name string, desc domain.Description) (*domain.DFA, error)
	Accepts(ctx context.Context, name string, word []string) (bool, error)
	AcceptsIdentifiers(ctx context.Context, name string, ids []int) (bool, error)
	AcceptsWord(ctx context.Context, name, word string) (bool, int, error)
}

// Verdict is the structured result of the accepts tool.
type Verdict struct {
	Automaton string `json:"automaton"`
	Accepted  bool   `json:"accepted"`
	Length    int    `json:"length"`
}

// Server wraps a Registry and exposes it as an MCP Server.
type Server struct {
	registry  Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(registry Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		registry:  registry,
		logger:    logger,
		mcpServer: server.NewMCPServer("turnstile-mcp", strings.TrimSpace(turnstile.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of the stored automata."),
	), s.handleList)

	s.mcpServer.AddTool(mcp.NewTool("accepts",
		mcp.WithDescription("Test whether an automaton accepts a word. Give exactly one of input, identifiers or word."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithArray("input", mcp.Description("Symbol representations"), mcp.WithStringItems()),
		mcp.WithArray("identifiers", mcp.Description("Symbol identifiers"), mcp.WithNumberItems()),
		mcp.WithString("word", mcp.Description("Whitespace separated word, or one character per symbol")),
	), s.handleAccepts)

	s.mcpServer.AddTool(mcp.NewTool("describe",
		mcp.WithDescription("Describe an automaton: symbols, states and transition table as markdown."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
	), s.handleDescribe)

	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render an automaton as a Mermaid flowchart, optionally tracing a word."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("word", mcp.Description("Word whose path to highlight")),
	), s.handleGraph)

	s.mcpServer.AddTool(mcp.NewTool("put_automaton",
		mcp.WithDescription("Store an automaton from a JSON description."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Automaton name")),
		mcp.WithString("description", mcp.Required(),
			mcp.Description("JSON with symbol_set, starting_state, state_transitions and accepting_states")),
	), s.handlePut)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.registry.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	if names == nil {
		names = []string{}
	}
	data, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	var (
		accepted bool
		length   int
	)
	switch {
	case args["identifiers"] != nil:
		ids := request.GetIntSlice("identifiers", nil)
		length = len(ids)
		accepted, err = s.registry.AcceptsIdentifiers(ctx, name, ids)
	case args["input"] != nil:
		word := request.GetStringSlice("input", nil)
		length = len(word)
		accepted, err = s.registry.Accepts(ctx, name, word)
	case args["word"] != nil:
		accepted, length, err = s.registry.AcceptsWord(ctx, name, request.GetString("word", ""))
	default:
		err = errors.New("one of input, identifiers or word is required")
	}
	if err != nil {
		s.logger.Debug("MCP accepts rejected", "automaton", name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.Marshal(Verdict{Automaton: name, Accepted: accepted, Length: length})
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dfa, err := s.registry.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(tui.Describe(name, dfa)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dfa, err := s.registry.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var overlay *graph.GraphOverlay
	if word := request.GetString("word", ""); word != "" {
		ids, err := dfa.Symbols().Parse(word)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		overlay = graph.Trace(dfa, ids)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(dfa, overlay)), nil
}

func (s *Server) handlePut(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := codec.DecodeDescription([]byte(raw), codec.FormatJSON)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dfa, err := s.registry.PutDescription(ctx, name, desc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("stored %s: %d states, %d symbols", name, dfa.NumStates(), dfa.Symbols().Len())), nil
}

func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate(resourceScheme+"{name}", "Automaton description",
		mcp.WithTemplateDescription("The JSON description of a stored automaton"),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcpServer.AddResourceTemplate(template, s.readAutomaton)
}

func (s *Server) readAutomaton(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	name := strings.TrimPrefix(uri, resourceScheme)
	dfa, err := s.registry.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := codec.Encode(dfa, codec.FormatJSON)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
