package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/turnstile/pkg/domain"
)

// allAutomata is the subscription key of clients that did not filter by automaton.
const allAutomata = ""

// StreamManager fans registry events out to connected SSE clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan string]struct{} // automaton -> set of channels
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan string]struct{}),
	}
}

// Subscribe registers a client for events of one automaton, or of all automata when
// automaton is empty. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(automaton string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	if _, ok := sm.subscribers[automaton]; !ok {
		sm.subscribers[automaton] = make(map[chan string]struct{})
	}
	sm.subscribers[automaton][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[automaton]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(sm.subscribers, automaton)
				}
			}
			close(ch)
		})
	}
}

// Subscribers reports the number of connected clients.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	n := 0
	for _, subs := range sm.subscribers {
		n += len(subs)
	}
	return n
}

// Broadcast sends msg to the subscribers of automaton and to unfiltered subscribers.
// Slow clients drop messages instead of blocking the caller.
func (sm *StreamManager) Broadcast(automaton string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	keys := []string{allAutomata}
	if automaton != allAutomata {
		keys = append(keys, automaton)
	}
	for _, key := range keys {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				slog.Warn("SSE: client buffer full, dropping event", "automaton", automaton)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			sm.publish(e.Automaton, queryPayload{QueryEvent: e, Error: errString(e.Err)})
		},
		OnStore: func(ctx context.Context, e *domain.StoreEvent) {
			sm.publish(e.Automaton, e)
		},
	}
}

type queryPayload struct {
	*domain.QueryEvent
	Error string `json:"error,omitempty"`
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (sm *StreamManager) publish(automaton string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("SSE: failed to encode event", "error", err)
		return
	}
	sm.Broadcast(automaton, string(data))
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	automaton := r.URL.Query().Get("automaton")
	events, cancel := s.Streams.Subscribe(automaton)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: client subscribed", "automaton", automaton)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "automaton", automaton)
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
