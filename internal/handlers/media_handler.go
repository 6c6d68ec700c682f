package handlers

import (
	"net/http"

	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// MediaHandler streams GridFS-stored media referenced as /media/:id.
// Only registered when the gridfs storage driver is active.
type MediaHandler struct {
	gridfs *storage.GridFSStorage
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(gridfs *storage.GridFSStorage) *MediaHandler {
	return &MediaHandler{gridfs: gridfs}
}

// RegisterMediaRoutes registers the public media route
func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/:id", h.ServeMedia)
}

// ServeMedia streams a stored file by id
func (h *MediaHandler) ServeMedia(c echo.Context) error {
	stream, _, err := h.gridfs.Open(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}
	defer stream.Close()
	return c.Stream(http.StatusOK, "application/octet-stream", stream)
}
