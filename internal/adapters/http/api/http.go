// Package api exposes the engine's command surface and operational
// endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	// Handle dispatches one inbound chat message for a channel and
	// returns the outbound text blocks.
	Handle(ctx context.Context, channelID, author, text string) []string

	// SessionCount reports the number of live sessions.
	SessionCount(ctx context.Context) int
}

// Server wires HTTP routes for the engine API.
type Server struct {
	commandsHandler *CommandsHandler
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
}

// NewServer creates the API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		commandsHandler: NewCommandsHandler(deps),
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/commands", MetricsMiddleware(s.commandsHandler.HandlePostCommand, "commands"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
