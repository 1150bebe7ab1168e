package context

import (
	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeySession is the key of the authenticated session in echo.Context.
	KeySession ContextKey = "session"

	// KeyProfile is the key of the profile that passed a portal gate.
	KeyProfile ContextKey = "profile"
)

// SetSession stores the authenticated session in echo.Context.
func SetSession(c echo.Context, session *entity.Session) {
	c.Set(string(KeySession), session)
}

// GetSession returns the authenticated session, or nil for anonymous requests.
func GetSession(c echo.Context) *entity.Session {
	session, _ := c.Get(string(KeySession)).(*entity.Session)

	return session
}

// GetUserID returns the user of the authenticated session.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	session := GetSession(c)
	if session == nil || session.UserID == uuid.Nil {
		return uuid.Nil, false
	}

	return session.UserID, true
}

// SetProfile stores the profile read by the portal gate.
func SetProfile(c echo.Context, profile *entity.Profile) {
	c.Set(string(KeyProfile), profile)
}

// GetProfile returns the profile read by the portal gate, if any.
func GetProfile(c echo.Context) *entity.Profile {
	profile, _ := c.Get(string(KeyProfile)).(*entity.Profile)

	return profile
}
