package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/desertthunder/maestro/internal/models"
)

// CommandService turns free-form command text into a playback outcome.
type CommandService interface {
	Handle(ctx context.Context, text string) models.Outcome
}

// commandRequest is the webhook request body: {"command": "..."}.
type commandRequest struct {
	Command string `json:"command"`
}

// CommandHandler serves the assistant webhook endpoint. Every dispatched
// command answers 200 with an outcome body; the success flag inside the
// outcome is the command-level verdict.
type CommandHandler struct {
	service CommandService
}

func NewCommandHandler(service CommandService) *CommandHandler {
	return &CommandHandler{service: service}
}

func (h *CommandHandler) Routes() []string {
	return []string{"/ai/command"}
}

func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		writeError(w, http.StatusBadRequest, "Command is required")
		return
	}

	outcome := h.service.Handle(r.Context(), req.Command)
	writeJSON(w, http.StatusOK, outcome)
}

// HealthHandler reports liveness and whether a usable credential exists.
type HealthHandler struct {
	authenticated func(ctx context.Context) bool
}

// NewHealthHandler creates a health handler. authenticated may be nil, in
// which case the flag is always false.
func NewHealthHandler(authenticated func(ctx context.Context) bool) *HealthHandler {
	return &HealthHandler{authenticated: authenticated}
}

func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authed := false
	if h.authenticated != nil {
		authed = h.authenticated(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"authenticated": authed,
	})
}
