// Package handler exposes the reading session endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"perspective/internal/identity"
	"perspective/internal/platform/metrics"
	"perspective/internal/platform/middleware"
	"perspective/internal/reading/models"
	"perspective/internal/transport/http/shared"
	"perspective/internal/transport/http/view"
	dErrors "perspective/pkg/domain-errors"
)

// Service defines the session operations the handler delegates to.
type Service interface {
	CreateSession(ctx context.Context) (*models.Session, error)
	Snapshot(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Begin(ctx context.Context, id uuid.UUID, category, question string) (*models.Session, error)
	ToggleReveal(ctx context.Context, id uuid.UUID, index int) (*models.Session, error)
	RequestInterpretation(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Reset(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ExampleQuestion(category string) string
}

// IdentityView is the read side of the identity service, used to decorate
// session responses with the signed-in state.
type IdentityView interface {
	Current() *identity.Record
	IsSignedIn() bool
}

// Handler handles reading session endpoints.
type Handler struct {
	logger   *slog.Logger
	readings Service
	identity IdentityView
	metrics  *metrics.Metrics
}

// New creates a new reading Handler.
func New(readings Service, ident IdentityView, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		readings: readings,
		identity: ident,
		metrics:  m,
	}
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sessionRouter := chi.NewRouter()
	sessionRouter.Use(middleware.Recovery(h.logger))
	sessionRouter.Use(middleware.RequestID)
	sessionRouter.Use(middleware.Logger(h.logger))
	sessionRouter.Use(middleware.Timeout(30 * time.Second))
	sessionRouter.Use(middleware.ContentTypeJSON)
	sessionRouter.Use(middleware.LatencyMiddleware(h.metrics))
	sessionRouter.Post("/sessions", h.handleCreate)
	sessionRouter.Get("/sessions/{id}", h.handleSnapshot)
	sessionRouter.Post("/sessions/{id}/begin", h.handleBegin)
	sessionRouter.Post("/sessions/{id}/reveal", h.handleReveal)
	sessionRouter.Post("/sessions/{id}/interpretation", h.handleInterpretation)
	sessionRouter.Post("/sessions/{id}/reset", h.handleReset)
	sessionRouter.Get("/sessions/{id}/example", h.handleExample)

	r.Mount("/", sessionRouter)
}

type beginRequest struct {
	Category string `json:"category"`
	Question string `json:"question"`
}

type revealRequest struct {
	Position int `json:"position"`
}

func (h *Handler) toView(s *models.Session) view.Session {
	return view.NewSession(s, h.identity.IsSignedIn(), h.identity.Current())
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.readings.CreateSession(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create session",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, h.toView(snap))
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.readings.Snapshot(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, h.toView(snap))
}

func (h *Handler) handleBegin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req beginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid begin request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	snap, err := h.readings.Begin(ctx, id, req.Category, req.Question)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, h.toView(snap))
}

func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	snap, err := h.readings.ToggleReveal(ctx, id, req.Position)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, h.toView(snap))
}

func (h *Handler) handleInterpretation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.readings.RequestInterpretation(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, h.toView(snap))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.readings.Reset(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, h.toView(snap))
}

func (h *Handler) handleExample(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessionID(w, r); !ok {
		return
	}
	category := r.URL.Query().Get("category")
	shared.RespondJSON(w, http.StatusOK, map[string]string{
		"question": h.readings.ExampleQuestion(category),
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return uuid.Nil, false
	}
	return id, true
}
