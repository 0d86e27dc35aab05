package handler

import (
	"github.com/labstack/echo/v4"

	"aura/internal/model"
)

// UserContextKey is where the auth middleware stores the resolved identity.
const UserContextKey = "user"

// CurrentUser returns the identity attached by the request gate. Protected
// routes can rely on it being present.
func CurrentUser(c echo.Context) model.PublicUser {
	user, _ := c.Get(UserContextKey).(model.PublicUser)
	return user
}
