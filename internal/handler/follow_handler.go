package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodjournal/internal/service"
)

// FollowHandler bundles follow graph endpoints.
type FollowHandler struct {
	followService service.FollowService
}

// NewFollowHandler creates a handler layer for the follow graph.
func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow godoc
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username to follow"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/follow [post]
func (h *FollowHandler) Follow(c echo.Context) error {
	followerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	if err := h.followService.Follow(c.Request().Context(), followerID, username); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "now following " + username,
	})
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username to unfollow"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/follow [delete]
func (h *FollowHandler) Unfollow(c echo.Context) error {
	followerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	if err := h.followService.Unfollow(c.Request().Context(), followerID, username); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "no longer following " + username,
	})
}
