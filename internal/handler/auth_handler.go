package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
	"tasktrack/internal/web"
)

// AuthHandler serves the register/login/logout pages and forms.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
	revoker     session.RevocationStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager, revoker session.RevocationStoreInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		revoker:     revoker,
	}
}

// ShowRegister renders the registration page.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{
		"Flash": web.TakeFlash(c),
	})
}

// Register handles the registration form. Failures flash a message and
// redirect back to the form; success redirects to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	_, err := h.authService.Register(c.Request().Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			web.SetFlash(c, "Email and password are required.")
		case errors.Is(err, apperrors.ErrEmailTaken):
			web.SetFlash(c, "That email is already registered.")
		default:
			c.Logger().Errorf("register: %v", err)
			web.SetFlash(c, "Something went wrong, please try again.")
		}
		return c.Redirect(http.StatusFound, "/register")
	}

	web.SetFlash(c, "Account created! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login page.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Flash": web.TakeFlash(c),
	})
}

// Login handles the login form and establishes the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.Request().Context(), email, password)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.Logger().Errorf("login: %v", err)
		}
		web.SetFlash(c, "Invalid email or password.")
		return c.Redirect(http.StatusFound, "/login")
	}

	_, token, err := h.sessions.Issue(user.ID, user.Email)
	if err != nil {
		c.Logger().Errorf("issue session: %v", err)
		web.SetFlash(c, "Something went wrong, please try again.")
		return c.Redirect(http.StatusFound, "/login")
	}

	c.SetCookie(session.NewCookie(token))
	return c.Redirect(http.StatusFound, "/")
}

// Logout revokes the current session, if any, and clears the cookie.
// Safe to call without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		if claims, err := h.sessions.Validate(cookie.Value); err == nil {
			if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
				_ = h.revoker.Revoke(c.Request().Context(), claims.ID, ttl)
			}
		}
	}
	c.SetCookie(session.ExpiredCookie())
	return c.Redirect(http.StatusFound, "/login")
}
