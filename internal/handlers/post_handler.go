package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/pagination"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService  *services.PostService
	mediaStorage storage.MediaStorage
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, mediaStorage storage.MediaStorage) *PostHandler {
	return &PostHandler{postService: postService, mediaStorage: mediaStorage}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post. Accepts multipart form data with an
// optional media file; the upload happens before the post is written
// so a slow storage backend never holds a database transaction open.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	mediaURL := ""
	if fileHeader, err := c.FormFile("media"); err == nil {
		if h.mediaStorage == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
		}
		src, err := fileHeader.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer src.Close()
		mediaURL, err = h.mediaStorage.Upload(c.Request().Context(), src, "post_images", fileHeader.Filename)
		if err != nil {
			return respondError(c, err)
		}
	}

	post, err := h.postService.Create(getUserIDFromContext(c), req.Title, req.Content, mediaURL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns a paginated page of all posts, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page := pagination.Normalize(pageNum, limit)

	posts, meta, err := h.postService.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"meta":    meta,
	})
}

// GetPost returns a single post with its like count
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.postService.GetDetail(uint(postID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost updates a post; only the author may
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	post, err := h.postService.Update(getUserIDFromContext(c), uint(postID), req.Title, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post; only the author may. The stored media
// file goes with it.
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.postService.Get(uint(postID))
	if err != nil {
		return respondError(c, err)
	}
	if err := h.postService.Delete(getUserIDFromContext(c), uint(postID)); err != nil {
		return respondError(c, err)
	}
	if post.MediaURL != "" && h.mediaStorage != nil {
		// Best effort: an orphaned file must not fail the request.
		if err := h.mediaStorage.Delete(c.Request().Context(), post.MediaURL); err != nil {
			log.Printf("failed to delete media %s: %v", post.MediaURL, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
