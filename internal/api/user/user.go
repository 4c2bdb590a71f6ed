// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package user provides the user and effective-permission API handlers.
package user

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/philband/mender-gui/internal/api/common"
	"github.com/philband/mender-gui/internal/rbac"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	manager Manager,
) *User {
	return &User{
		manager: manager,
		logger:  logger,
	}
}

// GetMePermissions returns the caller's own effective permissions, resolved
// from the roles in the session token.
func (u *User) GetMePermissions(
	c echo.Context,
) error {
	caller, ok := common.CallerFrom(c)
	if !ok {
		return common.JSONError(c, http.StatusUnauthorized, "authentication required")
	}

	return c.JSON(http.StatusOK, PermissionsResponse{
		Subject:       caller.Subject,
		Roles:         caller.Roles,
		UIPermissions: caller.UIPermissions,
		Capabilities:  rbac.DeriveCapabilities(caller.UIPermissions),
	})
}

// GetUserPermissions returns the effective permissions of a management
// server user.
func (u *User) GetUserPermissions(
	c echo.Context,
) error {
	id := c.Param("id")

	perms, err := u.manager.UserPermissions(c.Request().Context(), id)
	if err != nil {
		u.logger.Warn(
			"user permission lookup failed",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
		return common.BackendError(c, err)
	}

	return c.JSON(http.StatusOK, PermissionsResponse{
		UserID:        id,
		UIPermissions: perms,
		Capabilities:  rbac.DeriveCapabilities(perms),
	})
}

// GetUsers reloads and returns the management server's users.
func (u *User) GetUsers(
	c echo.Context,
) error {
	users, err := u.manager.GetUserList(c.Request().Context())
	if err != nil {
		return common.BackendError(c, err)
	}

	return c.JSON(http.StatusOK, UsersResponse{Users: users})
}
