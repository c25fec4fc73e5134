package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// MediaService opens stored media files.
type MediaService interface {
	Open(ctx context.Context, kind model.MediaKind, name string) (io.ReadCloser, string, error)
}

// Media serves GET /api/v1/media/{kind}/{name}.
type Media struct {
	service MediaService
	logger  *logger.Logger
}

func NewMedia(service MediaService, logger *logger.Logger) *Media {
	return &Media{service: service, logger: logger}
}

func (h *Media) Download(w http.ResponseWriter, r *http.Request) {
	kind := model.MediaKind(chi.URLParam(r, "kind"))
	rc, contentType, err := h.service.Open(r.Context(), kind, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("failed to stream media",
			"kind", string(kind),
			"error", err.Error())
	}
}
