package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/model"
	"foodjournal/internal/service"
)

// UserHandler bundles profile endpoints.
type UserHandler struct {
	userService   service.UserService
	followService service.FollowService
}

// NewUserHandler creates a handler layer for profiles.
func NewUserHandler(userService service.UserService, followService service.FollowService) *UserHandler {
	return &UserHandler{userService: userService, followService: followService}
}

// ProfileResponse is a user profile with social graph context.
type ProfileResponse struct {
	User        *model.User          `json:"user"`
	Counts      service.FollowCounts `json:"counts"`
	IsFollowing bool                 `json:"is_following"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	AboutMe string `json:"about_me" validate:"max=140"`
}

// GetProfile godoc
// @Summary Get a user's profile by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	username := c.Param("username")
	user, err := h.userService.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return toHTTPError(err)
	}

	counts, err := h.followService.Counts(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	isFollowing := false
	if viewerID != user.ID {
		isFollowing, err = h.followService.IsFollowing(c.Request().Context(), viewerID, username)
		if err != nil {
			return toHTTPError(err)
		}
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		User:        user,
		Counts:      counts,
		IsFollowing: isFollowing,
	})
}

// ListUsers godoc
// @Summary List members
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateAboutMe(c.Request().Context(), userID, req.AboutMe)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// toHTTPError converts domain errors into echo HTTP errors.
func toHTTPError(err error) *echo.HTTPError {
	var httpErr *apperrors.HTTPError
	if stderrors.As(err, &httpErr) {
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	mapped := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
}
