package handlers

import (
	"net/http"

	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	userService  *services.UserService
	mediaStorage storage.MediaStorage
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService *services.UserService, mediaStorage storage.MediaStorage) *AuthHandler {
	return &AuthHandler{userService: userService, mediaStorage: mediaStorage}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

// Register creates a new account. Accepts multipart form data with an
// optional profile_picture file.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	profilePictureURL, err := h.uploadProfilePicture(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Register(&req, profilePictureURL)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully", "user": user})
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	tokens, err := h.userService.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Refresh exchanges a refresh token for a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	tokens, err := h.userService.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) uploadProfilePicture(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("profile_picture")
	if err != nil {
		// No file attached.
		return "", nil
	}
	if h.mediaStorage == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.mediaStorage.Upload(c.Request().Context(), src, "profile_pics", fileHeader.Filename)
}
