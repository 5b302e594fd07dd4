// Package api provides the inbound HTTP surface of the gateway.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/artpar/meow/internal/core/deploy"
	"github.com/artpar/meow/internal/shell/orchestrator"
	"github.com/artpar/meow/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// Translator converts a prompt into a configuration document plus a derived
// explanation.
type Translator interface {
	Translate(ctx context.Context, prompt string) (*deploy.Document, string, error)
}

// Handler provides HTTP handlers for the gateway API.
type Handler struct {
	translator   Translator
	store        store.Store
	orchestrator orchestrator.Client
	llmReady     bool
	logger       *slog.Logger
}

// NewHandler creates a new API handler. llmReady reports whether the LLM
// credential is configured; it only affects what /health says.
func NewHandler(t Translator, s store.Store, o orchestrator.Client, llmReady bool, l *slog.Logger) *Handler {
	if l == nil {
		l = slog.Default()
	}
	return &Handler{
		translator:   t,
		store:        s,
		orchestrator: o,
		llmReady:     llmReady,
		logger:       l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestIDHeader)

	// Review UI
	r.Get("/", WebUIHandler().ServeHTTP)

	// Translation and confirmation
	r.Post("/parse", h.handleParse)
	r.Post("/confirm", h.handleConfirm)

	// Orchestrator pass-through
	r.Get("/status/{id}", h.handleStatus)
	r.Post("/stop/{id}", h.handleStop)
	r.Get("/list", h.handleList)
	r.Get("/health", h.handleHealth)

	return r
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Parse Handler
// =============================================================================

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		h.writeError(w, http.StatusBadRequest, "prompt is required", "validation_error")
		return
	}

	doc, explanation, err := h.translator.Translate(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("translation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, err.Error(), "translation_failed")
		return
	}

	if err := deploy.Validate(doc); err != nil {
		h.writeError(w, http.StatusBadRequest,
			"could not identify any containers to deploy from the prompt", "no_deployable_units")
		return
	}

	session := &store.Session{
		ID:        uuid.New().String(),
		Prompt:    req.Prompt,
		Config:    *doc,
		CreatedAt: time.Now(),
	}
	if err := h.store.Create(r.Context(), session); err != nil {
		h.logger.Error("failed to store session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to store session", "internal_error")
		return
	}

	h.logger.Info("prompt translated",
		"session_id", session.ID,
		"containers", doc.ContainerCount(),
	)

	h.writeJSON(w, http.StatusOK, ParseResponse{
		SessionID:   session.ID,
		Prompt:      req.Prompt,
		Config:      *doc,
		Explanation: explanation,
	})
}

// =============================================================================
// Confirm Handler
// =============================================================================

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if req.SessionID == "" {
		h.writeError(w, http.StatusBadRequest, "session_id is required", "validation_error")
		return
	}

	// Take removes the session atomically, so concurrent confirms for the
	// same id see exactly one success.
	session, err := h.store.Take(r.Context(), req.SessionID)
	if err != nil {
		if store.IsNotFound(err) {
			h.writeError(w, http.StatusNotFound, "session not found or expired", "session_not_found")
			return
		}
		h.logger.Error("failed to take session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session", "internal_error")
		return
	}

	result, err := h.orchestrator.Spawn(r.Context(), &session.Config)
	if err != nil {
		// Restore the session so the caller may retry confirmation without
		// re-translating.
		if restoreErr := h.store.Create(r.Context(), session); restoreErr != nil {
			h.logger.Error("failed to restore session after forward failure",
				"session_id", session.ID, "error", restoreErr)
		}
		h.logger.Error("deploy forward failed", "session_id", session.ID, "error", err)
		h.writeError(w, http.StatusServiceUnavailable, "orchestrator error: "+err.Error(), "orchestrator_unavailable")
		return
	}

	h.logger.Info("deployment confirmed",
		"session_id", session.ID,
		"deployment_id", result.ID,
	)

	h.writeJSON(w, http.StatusOK, DeploymentResponse{
		ID:      result.ID,
		Message: result.Message,
		Status:  result.Status,
		Config:  session.Config,
	})
}

// =============================================================================
// Pass-through Handlers
// =============================================================================

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.orchestrator.Status(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "orchestrator error: "+err.Error(), "orchestrator_unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.orchestrator.Stop(r.Context(), id)
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "orchestrator error: "+err.Error(), "orchestrator_unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.orchestrator.List(r.Context())
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "orchestrator error: "+err.Error(), "orchestrator_unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Health Handler
// =============================================================================

// handleHealth always answers 200: an unreachable orchestrator degrades the
// report but must not fail the request.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Gateway: "healthy",
		LLM:     "configured",
		Time:    time.Now().Format(time.RFC3339),
	}
	if !h.llmReady {
		resp.LLM = "missing_api_key"
	}

	switch err := h.orchestrator.Health(r.Context()); {
	case err == nil:
		resp.Orchestrator = "healthy"
	case hasStatusCode(err):
		resp.Orchestrator = "unhealthy"
	default:
		resp.Orchestrator = "unreachable"
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// hasStatusCode reports whether the orchestrator answered at all, even with
// a non-2xx status.
func hasStatusCode(err error) bool {
	var clientErr *orchestrator.ClientError
	return errors.As(err, &clientErr) && clientErr.StatusCode != 0
}

// =============================================================================
// Response Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
