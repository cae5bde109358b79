package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie that carries the access token.
const CookieName = "access_token"

// SetTokenCookie attaches the access token to the response. The cookie
// lifetime matches the token ttl, so both expire together.
func SetTokenCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie instructs the client to discard the access token.
// The token itself stays valid until its natural expiry; there is no
// server-side revocation list.
func ClearTokenCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
