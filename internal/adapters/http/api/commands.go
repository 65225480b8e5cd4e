package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// commandRequest is one inbound chat message routed through HTTP.
type commandRequest struct {
	CommandID string `json:"command_id"`
	ChannelID string `json:"channel_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
}

func (c commandRequest) validate() error {
	switch {
	case strings.TrimSpace(c.ChannelID) == "":
		return errors.New("missing channel_id")
	case strings.TrimSpace(c.Author) == "":
		return errors.New("missing author")
	case strings.TrimSpace(c.Text) == "":
		return errors.New("missing text")
	}
	return nil
}

// commandResponse carries the engine's outbound text blocks.
type commandResponse struct {
	CommandID string   `json:"command_id"`
	Replies   []string `json:"replies"`
}

// CommandsHandler handles the command surface.
type CommandsHandler struct {
	deps     Dependencies
	limiters *channelLimiters
}

// NewCommandsHandler creates a new commands handler.
func NewCommandsHandler(deps Dependencies) *CommandsHandler {
	return &CommandsHandler{
		deps:     deps,
		limiters: newChannelLimiters(defaultRateLimitRPS, defaultRateLimitBurst),
	}
}

// HandlePostCommand handles POST /commands.
func (h *CommandsHandler) HandlePostCommand(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_command"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if !h.limiters.allow(req.ChannelID) {
		writeError(w, http.StatusTooManyRequests, "rate_limited", fmt.Errorf("%s: %w", op, ErrRateLimited))
		return
	}

	if req.CommandID == "" {
		req.CommandID = uuid.NewString()
	}

	replies := h.deps.Handle(r.Context(), req.ChannelID, req.Author, req.Text)
	writeJSON(w, http.StatusOK, commandResponse{
		CommandID: req.CommandID,
		Replies:   replies,
	})
}
