package session

import (
	"github.com/labstack/echo/v4"
)

const identityContextKey = "session_identity"

// BindIdentity attaches the authenticated identity to the request context.
func BindIdentity(c echo.Context, ident Identity) {
	c.Set(identityContextKey, ident)
}

// CurrentIdentity returns the identity bound by the guard middleware.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityContextKey).(Identity)
	return ident, ok
}

// Guard enforces an authenticated, non-revoked session. It runs after the
// JWT middleware has validated the cookie token; onFail produces the
// surface-appropriate unauthenticated response (redirect for pages,
// structured 401 for the API).
func Guard(revoker RevocationStoreInterface, onFail func(echo.Context) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*Claims)
			if !ok || claims.ID == "" {
				return onFail(c)
			}
			revoked, _ := revoker.IsRevoked(c.Request().Context(), claims.ID)
			if revoked {
				return onFail(c)
			}
			BindIdentity(c, Identity{UserID: claims.UserID, Email: claims.Email})
			return next(c)
		}
	}
}
