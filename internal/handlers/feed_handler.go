package handlers

import (
	"net/http"
	"strconv"

	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the page of posts from the users the caller follows,
// newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page := pagination.Normalize(pageNum, limit)

	posts, meta, err := h.feedService.ComposeFeed(getUserIDFromContext(c), page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    meta,
	})
}
