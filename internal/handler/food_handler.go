package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodjournal/internal/model"
	"foodjournal/internal/service"
)

// FoodHandler bundles dish and feed endpoints.
type FoodHandler struct {
	foodService service.FoodService
}

// NewFoodHandler creates a handler layer for dishes.
func NewFoodHandler(foodService service.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// DishResponse is a dish record plus its derived image URL.
type DishResponse struct {
	*model.FoodItem
	ImageURL string `json:"image_url"`
}

// CreateDishResponse reports the outcome of an upload-then-commit cycle.
type CreateDishResponse struct {
	Persisted bool          `json:"persisted"`
	Message   string        `json:"message"`
	Dish      *DishResponse `json:"dish,omitempty"`
}

// UpdateDishRequest carries the mutable dish fields.
type UpdateDishRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=80"`
	Comment *string `json:"comment" validate:"omitempty,max=200"`
	Public  *bool   `json:"public"`
}

func (h *FoodHandler) dishResponse(item *model.FoodItem) *DishResponse {
	return &DishResponse{
		FoodItem: item,
		ImageURL: h.foodService.ImageURL(item),
	}
}

func (h *FoodHandler) dishResponses(items []model.FoodItem) []*DishResponse {
	out := make([]*DishResponse, 0, len(items))
	for i := range items {
		out = append(out, h.dishResponse(&items[i]))
	}
	return out
}

func pageParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// CreateDish godoc
// @Summary Upload a new dish photo
// @Tags dishes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Dish title"
// @Param comment formData string false "Freeform comment"
// @Param public formData bool false "Visible to everyone (default true)"
// @Param image formData file true "Dish photo"
// @Success 201 {object} CreateDishResponse
// @Success 202 {object} CreateDishResponse "Upload failed, record discarded"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dishes [post]
func (h *FoodHandler) CreateDish(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	comment := c.FormValue("comment")
	public := true
	if v := c.FormValue("public"); v != "" {
		public, _ = strconv.ParseBool(v)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open uploaded file")
	}
	defer src.Close()

	item, err := h.foodService.CreateDish(c.Request().Context(), ownerID, service.CreateDishInput{
		Title:       title,
		Comment:     comment,
		Public:      public,
		Image:       src,
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Size:        file.Size,
	})
	if err != nil {
		return toHTTPError(err)
	}

	if !item.Persisted {
		// The image never reached the bucket and no row was written. The
		// client has to resubmit; nothing else in the request was lost.
		return c.JSON(http.StatusAccepted, CreateDishResponse{
			Persisted: false,
			Message:   "image upload failed, dish was not saved",
		})
	}

	return c.JSON(http.StatusCreated, CreateDishResponse{
		Persisted: true,
		Message:   "dish added",
		Dish:      h.dishResponse(item),
	})
}

// GetDish godoc
// @Summary Get a dish by id
// @Tags dishes
// @Produce json
// @Param id path int true "Dish ID"
// @Success 200 {object} DishResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{id} [get]
func (h *FoodHandler) GetDish(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	// Anonymous viewers carry id 0 and only see public dishes.
	var viewerID uint
	if uid, err := currentUserID(c); err == nil {
		viewerID = uid
	}

	item, err := h.foodService.GetDish(c.Request().Context(), uint(id), viewerID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.dishResponse(item))
}

// UpdateDish godoc
// @Summary Update a dish (owner only)
// @Tags dishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Dish ID"
// @Param request body UpdateDishRequest true "Fields to change"
// @Success 200 {object} DishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dishes/{id} [put]
func (h *FoodHandler) UpdateDish(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateDishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.foodService.UpdateDish(c.Request().Context(), ownerID, uint(id), service.DishUpdate{
		Title:   req.Title,
		Comment: req.Comment,
		Public:  req.Public,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.dishResponse(item))
}

// PublicFeed godoc
// @Summary Public feed of dishes
// @Tags feed
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} DishResponse
// @Router /dishes [get]
func (h *FoodHandler) PublicFeed(c echo.Context) error {
	limit, offset := pageParams(c)
	items, err := h.foodService.PublicFeed(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.dishResponses(items))
}

// Feed godoc
// @Summary Personalized feed: own dishes plus followed users' public dishes
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} DishResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /feed [get]
func (h *FoodHandler) Feed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, offset := pageParams(c)
	items, err := h.foodService.FeedFor(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, h.dishResponses(items))
}
