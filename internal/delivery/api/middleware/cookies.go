package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Session cookies set by sign-in. Browsers send them on every portal request;
// API clients may use an Authorization header instead.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// AccessToken returns the bearer token of the request, falling back to the access cookie.
func AccessToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}

		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// RefreshToken returns the refresh token cookie, if any.
func RefreshToken(c echo.Context) string {
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// SetSessionCookies stores the session tokens as HttpOnly cookies.
func SetSessionCookies(c echo.Context, accessToken, refreshToken string, refreshTTL time.Duration) {
	c.SetCookie(sessionCookie(c, AccessTokenCookie, accessToken, refreshTTL))
	if refreshToken != "" {
		c.SetCookie(sessionCookie(c, RefreshTokenCookie, refreshToken, refreshTTL))
	}
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(c echo.Context) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		cookie := sessionCookie(c, name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

func sessionCookie(c echo.Context, name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}
}
