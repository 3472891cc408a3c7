package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/handler"
	"tasktrack/internal/session"
	"tasktrack/internal/web"
)

// Register wires routes and middleware. Page routes and API routes share
// the same session guard but differ in the unauthenticated response:
// pages redirect to /login, the API answers with a structured 401.
func Register(
	e *echo.Echo,
	sessions *session.Manager,
	revoker session.RevocationStoreInterface,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	taskAPIHandler *handler.TaskAPIHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.Renderer = web.NewRenderer()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	redirectToLogin := func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	}
	unauthenticatedJSON := func(c echo.Context) error {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Page routes (session required, redirect on failure)
	pages := e.Group("",
		sessionJWT(sessions, redirectToLogin),
		session.Guard(revoker, redirectToLogin),
	)
	pages.GET("/", taskHandler.Index)
	pages.POST("/tasks", taskHandler.Create)
	pages.POST("/tasks/:id/update", taskHandler.Update)
	pages.POST("/tasks/:id/delete", taskHandler.Delete)

	// API routes (session required, structured 401 on failure)
	api := e.Group("/api",
		sessionJWT(sessions, unauthenticatedJSON),
		session.Guard(revoker, unauthenticatedJSON),
	)
	api.GET("/tasks", taskAPIHandler.ListTasks)
	api.POST("/tasks", taskAPIHandler.CreateTask)
	api.PUT("/tasks/:id", taskAPIHandler.UpdateTask)
	api.DELETE("/tasks/:id", taskAPIHandler.DeleteTask)
}

// sessionJWT validates the session cookie with the session manager and
// stashes the claims for the guard.
func sessionJWT(sessions *session.Manager, onFail func(echo.Context) error) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + session.CookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return sessions.Validate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return onFail(c)
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
