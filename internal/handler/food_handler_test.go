package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodjournal/internal/auth"
	apperrors "foodjournal/internal/errors"
	"foodjournal/internal/model"
	"foodjournal/internal/service"
)

const testJWTSecret = "test-secret"

// MockFoodService is a mock implementation of service.FoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) CreateDish(ctx context.Context, ownerID uint, in service.CreateDishInput) (*model.FoodItem, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockFoodService) GetDish(ctx context.Context, id, viewerID uint) (*model.FoodItem, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockFoodService) UpdateDish(ctx context.Context, ownerID, id uint, update service.DishUpdate) (*model.FoodItem, error) {
	args := m.Called(ctx, ownerID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodItem), args.Error(1)
}

func (m *MockFoodService) FeedFor(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodService) PublicFeed(ctx context.Context, limit, offset int) ([]model.FoodItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodService) DishesOf(ctx context.Context, userID uint, limit, offset int) ([]model.FoodItem, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodService) ImageURL(item *model.FoodItem) string {
	args := m.Called(item)
	return args.String(0)
}

// newDishByIDServer mounts GET /api/dishes/:id the way the router does: public,
// with token parsing that lets anonymous requests through.
func newDishByIDServer(svc service.FoodService) *echo.Echo {
	e := echo.New()
	e.GET("/api/dishes/:id", NewFoodHandler(svc).GetDish, echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(testJWTSecret),
		TokenLookup:            "header:" + echo.HeaderAuthorization,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	}))
	return e
}

func TestFoodHandler_GetDish_OwnerSeesPrivateDish(t *testing.T) {
	mockSvc := new(MockFoodService)
	private := &model.FoodItem{ID: 7, UserID: 2, Title: "Secret Soup", Public: false, ImageKey: "abc-soup.jpg"}
	mockSvc.On("GetDish", mock.Anything, uint(7), uint(2)).Return(private, nil)
	mockSvc.On("ImageURL", private).Return("https://foodjournal-images.s3.amazonaws.com/abc-soup.jpg")

	token, err := auth.NewJWTService(testJWTSecret).GenerateAccessToken(2, "alice")
	require.NoError(t, err)

	e := newDishByIDServer(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/dishes/7", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Secret Soup")
	mockSvc.AssertExpectations(t)
}

func TestFoodHandler_GetDish_AnonymousGetsNotFoundForPrivateDish(t *testing.T) {
	mockSvc := new(MockFoodService)
	mockSvc.On("GetDish", mock.Anything, uint(7), uint(0)).Return(nil, apperrors.ErrDishNotFound)

	e := newDishByIDServer(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/dishes/7", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestFoodHandler_GetDish_GarbageTokenTreatedAsAnonymous(t *testing.T) {
	mockSvc := new(MockFoodService)
	mockSvc.On("GetDish", mock.Anything, uint(7), uint(0)).Return(nil, apperrors.ErrDishNotFound)

	e := newDishByIDServer(mockSvc)
	req := httptest.NewRequest(http.MethodGet, "/api/dishes/7", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertExpectations(t)
}
