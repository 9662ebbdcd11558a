// Package handler exposes the reading archive endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perspective/internal/archive"
	"perspective/internal/identity"
	"perspective/internal/platform/metrics"
	"perspective/internal/platform/middleware"
	"perspective/internal/transport/http/shared"
)

// Service lists archived readings for an identity.
type Service interface {
	List(ctx context.Context, rec *identity.Record) ([]*archive.Entry, error)
}

// IdentityView reads the current identity state.
type IdentityView interface {
	Current() *identity.Record
}

// Handler handles the archive endpoint.
type Handler struct {
	logger   *slog.Logger
	archive  Service
	identity IdentityView
	metrics  *metrics.Metrics
}

// New creates a new archive Handler.
func New(archiveSvc Service, ident IdentityView, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		archive:  archiveSvc,
		identity: ident,
		metrics:  m,
	}
}

// Register registers the archive route with the chi router.
func (h *Handler) Register(r chi.Router) {
	archiveRouter := chi.NewRouter()
	archiveRouter.Use(middleware.Recovery(h.logger))
	archiveRouter.Use(middleware.RequestID)
	archiveRouter.Use(middleware.Logger(h.logger))
	archiveRouter.Use(middleware.Timeout(30 * time.Second))
	archiveRouter.Use(middleware.ContentTypeJSON)
	archiveRouter.Use(middleware.LatencyMiddleware(h.metrics))
	archiveRouter.Get("/archive", h.handleList)

	r.Mount("/", archiveRouter)
}

type listResponse struct {
	Readings []*archive.Entry `json:"readings"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := h.archive.List(ctx, h.identity.Current())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []*archive.Entry{}
	}
	shared.RespondJSON(w, http.StatusOK, listResponse{Readings: entries})
}
