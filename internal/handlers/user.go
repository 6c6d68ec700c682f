package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and user lookup requests.
type UserHandler struct {
	userService  *services.UserService
	mediaStorage storage.MediaStorage
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, mediaStorage storage.MediaStorage) *UserHandler {
	return &UserHandler{userService: userService, mediaStorage: mediaStorage}
}

// RegisterProfileRoutes registers profile and user routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile returns the authenticated user's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetProfile(getUserIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile partially updates the profile; multipart with an
// optional profile_picture file.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	current, err := h.userService.GetProfile(getUserIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}

	profilePictureURL := ""
	if fileHeader, err := c.FormFile("profile_picture"); err == nil {
		if h.mediaStorage == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
		}
		src, err := fileHeader.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer src.Close()
		profilePictureURL, err = h.mediaStorage.Upload(c.Request().Context(), src, "profile_pics", fileHeader.Filename)
		if err != nil {
			return respondError(c, err)
		}
	}

	user, err := h.userService.UpdateProfile(getUserIDFromContext(c), &req, profilePictureURL)
	if err != nil {
		return respondError(c, err)
	}

	// The replaced picture is unreferenced now; removal is best effort.
	if profilePictureURL != "" && current.ProfilePictureURL != "" && current.ProfilePictureURL != profilePictureURL {
		if err := h.mediaStorage.Delete(c.Request().Context(), current.ProfilePictureURL); err != nil {
			log.Printf("failed to delete replaced profile picture %s: %v", current.ProfilePictureURL, err)
		}
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteProfile removes the account and everything it owns.
func (h *UserHandler) DeleteProfile(c echo.Context) error {
	if err := h.userService.DeleteAccount(getUserIDFromContext(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUser returns a user's public profile with follow counts
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	profile, err := h.userService.GetPublicProfile(uint(userID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// SearchUsers searches users by username or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	users, err := h.userService.Search(query)
	if err != nil {
		return respondError(c, err)
	}
	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": results}})
}
