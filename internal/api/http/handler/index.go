package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
)

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Index serves the API root and the health probe.
type Index struct {
	db     Pinger
	logger *logger.Logger
}

func NewIndex(db Pinger, logger *logger.Logger) *Index {
	return &Index{db: db, logger: logger}
}

type link struct {
	Href string `json:"href"`
}

type indexResponse struct {
	Links map[string]link `json:"_links"`
}

// Root handles GET /api/v1.
func (h *Index) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, indexResponse{Links: map[string]link{
		"music": {Href: "/api/v1/music"},
		"auth":  {Href: "/api/v1/auth"},
	}})
}

// Health handles GET /healthz.
func (h *Index) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed",
			"error", err.Error())
		response.Error(w, http.StatusServiceUnavailable, "Database is unavailable")
		return
	}
	response.Text(w, http.StatusOK, "ok")
}
