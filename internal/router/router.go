package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodjournal/internal/config"
	"foodjournal/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	followHandler *handler.FollowHandler,
	foodHandler *handler.FoodHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Anonymous read access: public dishes only. The dish-by-id route parses a
	// bearer token when one is sent so owners can read their private dishes.
	api.GET("/dishes", foodHandler.PublicFeed)
	api.GET("/dishes/:id", foodHandler.GetDish, optionalJWT(cfg.JWTSecret))

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateMe)

	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/:username", userHandler.GetProfile)
	secured.POST("/users/:username/follow", followHandler.Follow)
	secured.DELETE("/users/:username/follow", followHandler.Unfollow)

	secured.GET("/feed", foodHandler.Feed)
	secured.POST("/dishes", foodHandler.CreateDish)
	secured.PUT("/dishes/:id", foodHandler.UpdateDish)
}

// optionalJWT authenticates a request when a token is present but lets
// anonymous or badly-tokened requests through; handlers treat a missing
// identity as viewer id 0.
func optionalJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(secret),
		TokenLookup:            "header:" + echo.HeaderAuthorization,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
