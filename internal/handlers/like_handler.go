package handlers

import (
	"net/http"
	"strconv"

	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.LikePost)
	g.DELETE("/posts/:post_id/like", h.UnlikePost)
	g.GET("/posts/:post_id/like", h.GetLikeStatus)
}

// LikePost likes a post and notifies its author
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	if err := h.interactions.Like(getUserIDFromContext(c), uint(postID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"liked": true}})
}

// UnlikePost removes the like. The like notification stays; it is
// immutable history.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	if err := h.interactions.Unlike(getUserIDFromContext(c), uint(postID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikeStatus reports whether the caller has liked the post
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	liked, err := h.interactions.IsLiked(getUserIDFromContext(c), uint(postID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "has_liked": liked})
}
