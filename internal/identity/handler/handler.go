// Package handler exposes the identity endpoints: session-scoped sign-in and
// sign-out plus the current-identity probe.
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

// Sessions is the slice of the reading service the auth endpoints drive.
// Sign-in may advance the session when it was waiting on an identity, and
// sign-out always resets it.
type Sessions interface {
	SignIn(ctx context.Context, id uuid.UUID, credential string) (*models.Session, bool, error)
	SignOut(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// IdentityView reads the current identity state.
type IdentityView interface {
	Current() *identity.Record
	IsSignedIn() bool
}

// Handler handles identity endpoints.
type Handler struct {
	logger   *slog.Logger
	sessions Sessions
	identity IdentityView
	metrics  *metrics.Metrics
}

// New creates a new identity Handler.
func New(sessions Sessions, ident IdentityView, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		sessions: sessions,
		identity: ident,
		metrics:  m,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	authRouter := chi.NewRouter()
	authRouter.Use(middleware.Recovery(h.logger))
	authRouter.Use(middleware.RequestID)
	authRouter.Use(middleware.Logger(h.logger))
	authRouter.Use(middleware.Timeout(30 * time.Second))
	authRouter.Use(middleware.ContentTypeJSON)
	authRouter.Use(middleware.LatencyMiddleware(h.metrics))
	authRouter.Post("/auth/sessions/{id}/signin", h.handleSignIn)
	authRouter.Post("/auth/sessions/{id}/signout", h.handleSignOut)
	authRouter.Get("/auth/me", h.handleMe)

	r.Mount("/", authRouter)
}

type signInRequest struct {
	Credential string `json:"credential"`
}

type signInResponse struct {
	SignedIn bool             `json:"signedIn"`
	Identity *identity.Record `json:"identity,omitempty"`
	Session  view.Session     `json:"session"`
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "credential is required"))
		return
	}

	snap, signedIn, err := h.sessions.SignIn(ctx, id, req.Credential)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if !signedIn {
		h.logger.WarnContext(ctx, "sign-in credential rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
	}
	shared.RespondJSON(w, http.StatusOK, signInResponse{
		SignedIn: signedIn,
		Identity: h.identity.Current(),
		Session:  view.NewSession(snap, signedIn, h.identity.Current()),
	})
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.sessions.SignOut(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, view.NewSession(snap, false, nil))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	rec := h.identity.Current()
	if rec == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "not signed in"))
		return
	}
	shared.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return uuid.Nil, false
	}
	return id, true
}
