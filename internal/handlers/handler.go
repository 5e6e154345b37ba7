package handlers

import (
	"errors"
	"net/http"

	"news-portal-api/internal/news"
	"news-portal-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	news    *news.Service
	hub     *realtime.Hub
	logger  zerolog.Logger
	siteURL string
}

func New(svc *news.Service, hub *realtime.Hub, logger zerolog.Logger, siteURL string) *Handler {
	return &Handler{
		news:    svc,
		hub:     hub,
		logger:  logger.With().Str("component", "http").Logger(),
		siteURL: siteURL,
	}
}

// fail writes the JSON error body for err. Unknown errors are logged and
// reported as 500 without leaking details.
func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, news.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
